package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UserID is a typed ID for user accounts
type UserID struct {
	uuid uuid.UUID
}

func NewUserID() UserID {
	return UserID{uuid: uuid.New()}
}

func NewUserIDFromUUID(id uuid.UUID) UserID {
	return UserID{uuid: id}
}

func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("invalid user ID: %w", err)
	}
	return UserID{uuid: id}, nil
}

func (u UserID) UUID() uuid.UUID { return u.uuid }
func (u UserID) String() string  { return u.uuid.String() }
func (u UserID) IsZero() bool    { return u.uuid == uuid.Nil }

func (u UserID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.uuid.String())
}

func (u *UserID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	u.uuid = id
	return nil
}

func (u UserID) Value() (driver.Value, error) {
	if u.IsZero() {
		return nil, nil
	}
	return u.uuid.String(), nil
}

func (u *UserID) Scan(value any) error {
	return scanUUID(value, &u.uuid)
}

func (UserID) GormDataType() string { return "uuid" }

// TrackID is a typed ID for track attachments.
//
// Tracks are addressed by list index at the API boundary, but every track
// carries a stable generated ID so the record itself survives deletions and
// renumbering of its neighbors.
type TrackID struct {
	uuid uuid.UUID
}

func NewTrackID() TrackID {
	return TrackID{uuid: uuid.New()}
}

func NewTrackIDFromUUID(id uuid.UUID) TrackID {
	return TrackID{uuid: id}
}

func ParseTrackID(s string) (TrackID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TrackID{}, fmt.Errorf("invalid track ID: %w", err)
	}
	return TrackID{uuid: id}, nil
}

func (t TrackID) UUID() uuid.UUID { return t.uuid }
func (t TrackID) String() string  { return t.uuid.String() }
func (t TrackID) IsZero() bool    { return t.uuid == uuid.Nil }

func (t TrackID) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.uuid.String())
}

func (t *TrackID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	t.uuid = id
	return nil
}

// scanUUID converts a database value into a uuid.UUID
func scanUUID(value any, target *uuid.UUID) error {
	if value == nil {
		*target = uuid.Nil
		return nil
	}
	switch v := value.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		*target = id
	case []byte:
		id, err := uuid.Parse(string(v))
		if err != nil {
			return err
		}
		*target = id
	default:
		return fmt.Errorf("cannot scan %T into uuid", value)
	}
	return nil
}
