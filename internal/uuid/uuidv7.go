package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a new UUIDv7 string. UUIDv7 values sort by creation time,
// which keeps ledger rows in insertion order on the primary key index.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to a random UUIDv4 if the entropy source fails
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates and normalizes a UUID string
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}

// Canonical returns the lowercase hyphenated form of s, or s unchanged when
// it is not a UUID.
func Canonical(s string) string {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return s
	}
	return parsed.String()
}
