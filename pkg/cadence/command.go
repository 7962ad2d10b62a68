package cadence

// Command is the parsed subcommand selected on the command line. Each command
// type carries its own options; shared configuration lives in Config.
type Command interface {
	isCommand()
}

// RunCommand starts the HTTP server and blocks until the context is
// cancelled.
type RunCommand struct{}

func (*RunCommand) isCommand() {}

// MigrateCommand prepares the store schema and exits. Only meaningful for the
// PostgreSQL backend; the in-memory store has nothing to migrate.
type MigrateCommand struct{}

func (*MigrateCommand) isCommand() {}
