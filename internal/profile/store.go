package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	profileFileName = "profile.json"
	slotSuffix      = ".save.json"
)

// Store reads and writes profiles and save slots under a single directory.
// All operations are synchronous; long-running I/O is not this package's
// concern beyond plain file reads and writes.
type Store struct {
	dir     string
	title   string
	version string
	logger  zerolog.Logger

	participants []Participant
}

// NewStore creates a store rooted at dir for the application identified by
// (title, version). The directory is created on first write.
func NewStore(dir, title, version string, logger zerolog.Logger) *Store {
	return &Store{
		dir:     dir,
		title:   title,
		version: version,
		logger:  logger.With().Str("component", "profile").Logger(),
	}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// RegisterParticipant adds a subsystem to the set contributing entries to
// every saved profile and slot. Registration is idempotent per key.
func (s *Store) RegisterParticipant(p Participant) {
	for _, existing := range s.participants {
		if existing.ParticipantKey() == p.ParticipantKey() {
			return
		}
	}
	s.participants = append(s.participants, p)
}

// NewProfile creates a profile carrying the current state of every
// registered participant.
func (s *Store) NewProfile() (*Profile, error) {
	p := New(s.title, s.version)
	for _, participant := range s.participants {
		if err := participant.SaveProfile(p); err != nil {
			return nil, fmt.Errorf("participant %q: %w", participant.ParticipantKey(), err)
		}
	}
	return p, nil
}

// Apply restores every registered participant from the profile. If the
// profile's identity does not match the application's, nothing is applied
// and Apply returns false.
func (s *Store) Apply(p *Profile) bool {
	if !p.IsCompatible(s.title, s.version) {
		s.logger.Debug().
			Str("profile_title", p.Title()).
			Str("profile_version", p.Version()).
			Msg("ignoring incompatible profile")
		return false
	}

	for _, participant := range s.participants {
		if err := participant.LoadProfile(p); err != nil {
			// Participants own their entry format; a failed restore
			// leaves that participant at its current state.
			s.logger.Warn().
				Err(err).
				Str("participant", participant.ParticipantKey()).
				Msg("participant restore failed")
		}
	}
	return true
}

// SaveProfile writes the profile to the store's profile file.
func (s *Store) SaveProfile(p *Profile) error {
	doc, err := s.encode(p, nil)
	if err != nil {
		return err
	}
	return s.writeFile(filepath.Join(s.dir, profileFileName), doc)
}

// LoadProfile reads the store's profile file. Returns false if the file is
// absent or unreadable.
func (s *Store) LoadProfile() (*Profile, bool) {
	p, _, ok := s.read(filepath.Join(s.dir, profileFileName))
	return p, ok
}

// Save serializes state plus one entry per registered participant and
// writes it under the named slot.
func (s *Store) Save(state any, slot string) error {
	if slot == "" {
		return ErrEmptySlot
	}

	p, err := s.NewProfile()
	if err != nil {
		return err
	}

	doc, err := s.encode(p, state)
	if err != nil {
		return err
	}

	if err := s.writeFile(s.slotPath(slot), doc); err != nil {
		return fmt.Errorf("save slot %q: %w", slot, err)
	}

	s.logger.Info().Str("slot", slot).Msg("session saved")
	return nil
}

// Load reads the named slot and returns its state payload. Returns false
// if the slot is absent, unreadable, or was written by an incompatible
// application version.
func (s *Store) Load(slot string) (json.RawMessage, bool) {
	if slot == "" {
		return nil, false
	}

	p, state, ok := s.read(s.slotPath(slot))
	if !ok {
		return nil, false
	}
	if !p.IsCompatible(s.title, s.version) {
		s.logger.Debug().Str("slot", slot).Msg("ignoring incompatible save slot")
		return nil, false
	}
	return state, state != nil
}

// LoadMostRecent returns the state payload of the most recently modified
// slot, along with the slot's name. Ties break lexicographically so the
// result is deterministic.
func (s *Store) LoadMostRecent() (json.RawMessage, string, bool) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, "", false
	}

	type candidate struct {
		slot    string
		modTime time.Time
	}
	var candidates []candidate

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, slotSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			slot:    strings.TrimSuffix(name, slotSuffix),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].modTime.Equal(candidates[j].modTime) {
			return candidates[i].modTime.After(candidates[j].modTime)
		}
		return candidates[i].slot < candidates[j].slot
	})

	for _, c := range candidates {
		if state, ok := s.Load(c.slot); ok {
			return state, c.slot, true
		}
	}
	return nil, "", false
}

// Slots returns the names of all slot files present, unordered.
func (s *Store) Slots() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	var slots []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasSuffix(name, slotSuffix) {
			slots = append(slots, strings.TrimSuffix(name, slotSuffix))
		}
	}
	return slots
}

// encode builds the on-disk JSON document: identity header, participant
// bag, and (for save slots) the state payload.
func (s *Store) encode(p *Profile, state any) ([]byte, error) {
	doc := []byte(`{}`)
	var err error

	if doc, err = sjson.SetBytes(doc, "title", p.Title()); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "version", p.Version()); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "saved_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}

	for key, raw := range p.entries {
		if doc, err = sjson.SetRawBytes(doc, "participants."+key, raw); err != nil {
			return nil, err
		}
	}

	if state != nil {
		raw, err := json.Marshal(state)
		if err != nil {
			return nil, fmt.Errorf("encode state: %w", err)
		}
		if doc, err = sjson.SetRawBytes(doc, "state", raw); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// read parses a document from disk. Any failure, including malformed JSON
// or a missing identity header, reads as not-found.
func (s *Store) read(path string) (*Profile, json.RawMessage, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, false
	}
	if !gjson.ValidBytes(data) {
		s.logger.Warn().Str("path", path).Msg("malformed profile document")
		return nil, nil, false
	}

	title := gjson.GetBytes(data, "title")
	version := gjson.GetBytes(data, "version")
	if !title.Exists() || !version.Exists() {
		s.logger.Warn().Str("path", path).Msg("profile document missing identity")
		return nil, nil, false
	}

	p := New(title.String(), version.String())
	gjson.GetBytes(data, "participants").ForEach(func(key, value gjson.Result) bool {
		p.entries[key.String()] = json.RawMessage(value.Raw)
		return true
	})

	var state json.RawMessage
	if st := gjson.GetBytes(data, "state"); st.Exists() {
		state = json.RawMessage(st.Raw)
	}

	return p, state, true
}

// writeFile writes atomically via a temp file and rename so a crash never
// leaves a truncated document behind.
func (s *Store) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}

func (s *Store) slotPath(slot string) string {
	// Keep slot names inside the store directory.
	return filepath.Join(s.dir, filepath.Base(slot)+slotSuffix)
}
