package profile

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for profile access.
var (
	// ErrNoEntry is returned when a participant key has no entry.
	ErrNoEntry = errors.New("no profile entry")

	// ErrEmptySlot is returned when a save is requested with an empty
	// slot name.
	ErrEmptySlot = errors.New("slot name cannot be empty")

	// ErrEmptyKey is returned when a participant contributes an entry
	// under an empty key.
	ErrEmptyKey = errors.New("participant key cannot be empty")
)

// Profile is a named bag of participant-key to serialized-value entries.
// Identity is the (Title, Version) pair of the application that wrote it.
type Profile struct {
	title   string
	version string
	entries map[string]json.RawMessage
}

// New creates an empty profile with the given identity.
func New(title, version string) *Profile {
	return &Profile{
		title:   title,
		version: version,
		entries: make(map[string]json.RawMessage),
	}
}

// Title returns the identity title.
func (p *Profile) Title() string {
	return p.title
}

// Version returns the identity version.
func (p *Profile) Version() string {
	return p.version
}

// IsCompatible reports whether the profile was written by an application
// with the given identity.
func (p *Profile) IsCompatible(title, version string) bool {
	return p.title == title && p.version == version
}

// Put serializes a participant's value under its key. The value's format
// is owned by the participant, not by this package.
func (p *Profile) Put(key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode profile entry %q: %w", key, err)
	}
	p.entries[key] = raw
	return nil
}

// Get deserializes a participant's entry into out. Returns ErrNoEntry if
// the key has no entry.
func (p *Profile) Get(key string, out any) error {
	raw, ok := p.entries[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoEntry, key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode profile entry %q: %w", key, err)
	}
	return nil
}

// Keys returns the participant keys present in the bag.
func (p *Profile) Keys() []string {
	keys := make([]string, 0, len(p.entries))
	for k := range p.entries {
		keys = append(keys, k)
	}
	return keys
}

// Participant is a subsystem that contributes one entry to every profile
// and restores itself from one on load. Participants must register with
// the store before the first load.
type Participant interface {
	// ParticipantKey is the stable key the participant's entry is stored
	// under.
	ParticipantKey() string

	// SaveProfile contributes the participant's entry to the profile.
	SaveProfile(p *Profile) error

	// LoadProfile restores the participant from its entry, if present.
	LoadProfile(p *Profile) error
}
