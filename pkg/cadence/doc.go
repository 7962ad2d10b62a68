// Package cadence implements the music submission portal application: the
// public intake API artists submit releases through, and the team-gated
// review console API used to approve or decline them.
//
// The application is a single [App] value wired together by [New] from a
// [Config] and driven by [Main], which parses the command line and either
// runs the HTTP server or migrates the store schema. All state flows through
// the [github.com/cadencehq/cadence/pkg/store.Store] interface; the default
// backend keeps everything in memory and loses it on restart.
//
// Request handlers are thin: schema validation happens at the boundary
// (intake.go), lifecycle rules live in the store, and handlers translate
// store sentinel errors into HTTP statuses in one place (handlers.go).
// Review consoles can subscribe to submission lifecycle events over a
// websocket (events.go).
package cadence
