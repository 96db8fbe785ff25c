// Package bag implements the tagged value stream used to persist engine state
package bag

import (
	"errors"
	"fmt"
)

// Packer writes primitive and versioned structured values in order
type Packer interface {
	PutBool(v bool)
	PutInt(v int)
	PutString(v string)
	PutNull()
	// PutStuff writes a version tag followed by whatever put writes
	PutStuff(version int, put func(p Packer))
}

// Unpacker reads values in the order they were packed
// The first failure is sticky: later reads return zero values and Err reports it
type Unpacker interface {
	GetBool() bool
	GetInt() int
	GetString() string
	// GetNull consumes a null marker if one is next and reports whether it did
	GetNull() bool
	// GetStuff reads a version tag and hands it to get, which reads the payload
	GetStuff(get func(version int) error)
	Fail(err error)
	Err() error
}

var (
	ErrUnpack             = errors.New("bag: unpack failed")
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrUnpack)
	ErrUnknownType        = fmt.Errorf("%w: unknown polymorphic type", ErrUnpack)
	ErrMalformed          = fmt.Errorf("%w: malformed payload", ErrUnpack)
	ErrUnexpectedNull     = fmt.Errorf("%w: unexpected null", ErrUnpack)
)

// RequireVersion fails for versions newer than supported or below 1
func RequireVersion(what string, version, supported int) error {
	if version < 1 || version > supported {
		return fmt.Errorf("%w: %s v%d (supported up to v%d)", ErrUnsupportedVersion, what, version, supported)
	}
	return nil
}

// UnknownType reports a discriminant that has no registered handler
func UnknownType(what string, tag int) error {
	return fmt.Errorf("%w: %s %d", ErrUnknownType, what, tag)
}

// PutOptionalInt writes v or a null marker
func PutOptionalInt(p Packer, v *int) {
	if v == nil {
		p.PutNull()
		return
	}
	p.PutInt(*v)
}

// OptionalInt reads a value written by PutOptionalInt
func OptionalInt(u Unpacker) *int {
	if u.GetNull() {
		return nil
	}
	v := u.GetInt()
	if u.Err() != nil {
		return nil
	}
	return &v
}

// PutOptionalString writes v or a null marker
func PutOptionalString(p Packer, v *string) {
	if v == nil {
		p.PutNull()
		return
	}
	p.PutString(*v)
}

// OptionalString reads a value written by PutOptionalString
func OptionalString(u Unpacker) *string {
	if u.GetNull() {
		return nil
	}
	v := u.GetString()
	if u.Err() != nil {
		return nil
	}
	return &v
}
