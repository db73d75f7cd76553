package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Roster and table dimensions. The roster always holds MaxMates slots;
// Settings.UserCount says how many of them are active.
const (
	MaxMates      = 10
	CallSlots     = 4
	MaxCheckItems = 10
)

// MateID identifies a roster member. It is a stable small integer
// (0..MaxMates-1), independent of any display ordering.
type MateID int

// Letter returns the classic A..J display id for the mate.
func (id MateID) Letter() string {
	if id < 0 || id >= MaxMates {
		return "?"
	}
	return string(rune('A' + id))
}

// UnmarshalJSON accepts the current integer form plus the two legacy
// encodings: a letter id ("A".."J") and a 1-based numeric string.
func (id *MateID) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*id = MateID(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("mate id: unsupported encoding %s", data)
	}
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'J' {
		*id = MateID(s[0] - 'A')
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("mate id: unsupported value %q", s)
	}
	*id = MateID(n - 1)
	return nil
}

// Valid reports whether the id addresses a roster slot.
func (id MateID) Valid() bool {
	return id >= 0 && id < MaxMates
}

// Mate is one member of the group roster. Mates are never deleted,
// only renamed or cleared.
type Mate struct {
	ID      MateID `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Contact string `bson:"contact" json:"contact"`
}

// DisplayName returns the mate's name, or the letter id as a placeholder.
func (m Mate) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return fmt.Sprintf("Mate %s", m.ID.Letter())
}
