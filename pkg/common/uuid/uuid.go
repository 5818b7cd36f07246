package uuid

import (
	"github.com/gofrs/uuid/v5"
)

// UUID is the token identifier used as primary key by every entity.
type UUID = uuid.UUID

var Nil = uuid.Nil

// NewV7 returns a time ordered identifier.
func NewV7() UUID {
	return uuid.Must(uuid.NewV7())
}

func NewV4() UUID {
	return uuid.Must(uuid.NewV4())
}

func FromString(s string) (UUID, error) {
	return uuid.FromString(s)
}

// Parse is FromString that treats the nil uuid as invalid.
func Parse(s string) (UUID, bool) {
	id, err := uuid.FromString(s)
	if err != nil || id.IsNil() {
		return Nil, false
	}
	return id, true
}
