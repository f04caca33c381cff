package storage

import (
	"fmt"
	"strings"
)

// Tier is the storage class of an object.
type Tier int

const (
	// TierUnspecified leaves the tier untouched.
	TierUnspecified Tier = iota
	TierHot
	TierCool
	TierArchive
)

// ParseTier converts a name (hot, cool, archive) into a Tier. The empty string is TierUnspecified.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unspecified", "unknown":
		return TierUnspecified, nil
	case "hot":
		return TierHot, nil
	case "cool":
		return TierCool, nil
	case "archive":
		return TierArchive, nil
	default:
		return TierUnspecified, fmt.Errorf("unknown tier %q", s)
	}
}

func (t Tier) String() string {
	switch t {
	case TierHot:
		return "hot"
	case TierCool:
		return "cool"
	case TierArchive:
		return "archive"
	default:
		return "unspecified"
	}
}

// MarshalText writes the tier name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText reads a tier name.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
