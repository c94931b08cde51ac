package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID wraps google/uuid so that it can be bound from query strings
// and URI parameters by gin.
type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// UnmarshalParam implements gin's BindUnmarshaler. An empty parameter
// results in the Nil UUID.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return err
	}

	*u = UUID{parsed}
	return nil
}

// IsNil reports whether u is the all-zero UUID.
func (u UUID) IsNil() bool {
	return u.UUID == google_uuid.Nil
}

// Ptr returns a pointer to the wrapped UUID or nil for the Nil UUID.
func (u UUID) Ptr() *google_uuid.UUID {
	if u.IsNil() {
		return nil
	}

	id := u.UUID
	return &id
}
