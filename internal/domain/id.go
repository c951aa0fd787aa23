package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// canonicalIDLength is the length of the hyphenated 8-4-4-4-12 form.
const canonicalIDLength = 36

// ID is the opaque 128-bit identifier of a User or Post.
//
// IDs produced by NewID are random UUIDs (version 4, RFC 4122 variant).
// IDs rehydrated from storage are trusted and not re-validated; call Valid
// explicitly where that guarantee matters.
type ID uuid.UUID

// NilID is the zero ID. It is never produced by NewID.
var NilID ID

// NewID generates a fresh random ID. Uniqueness is probabilistic; no
// collision detection is performed.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID decodes the canonical hyphenated hexadecimal form produced by
// ID.String. Upper- and lower-case hex digits are accepted. The URN, braced
// and unhyphenated forms are rejected.
//
// ParseID checks syntax only: the decoded value is not required to be Valid.
func ParseID(s string) (ID, error) {
	if len(s) != canonicalIDLength || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return NilID, &ParseError{Input: s, Err: errIDGrouping}
	}

	u, err := uuid.Parse(s)
	if err != nil {
		return NilID, &ParseError{Input: s, Err: err}
	}

	return ID(u), nil
}

// IDFromRaw builds an ID from its raw 16 bytes without any validation.
// It is the trusted constructor stores use when rehydrating rows.
func IDFromRaw(raw [16]byte) ID {
	return ID(raw)
}

// ValidateRaw reports whether raw carries the structural tag of a randomly
// generated ID: UUID version 4 with the RFC 4122 variant bits.
func ValidateRaw(raw [16]byte) bool {
	u := uuid.UUID(raw)
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}

// Valid reports whether the ID is of the random variant.
func (id ID) Valid() bool {
	return ValidateRaw(id)
}

// Raw returns the 16 raw bytes of the ID.
func (id ID) Raw() [16]byte {
	return id
}

// String returns the canonical lower-case hyphenated form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseID.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value implements driver.Valuer so an ID can be passed directly as a query
// argument. It is stored in its canonical text form.
func (id ID) Value() (driver.Value, error) {
	return id.String(), nil
}

// Scan implements sql.Scanner. It accepts the text form or 16 raw bytes and,
// like IDFromRaw, does not check Valid.
func (id *ID) Scan(src any) error {
	var u uuid.UUID
	if err := u.Scan(src); err != nil {
		return &ParseError{Input: fmt.Sprint(src), Err: err}
	}
	*id = ID(u)
	return nil
}
