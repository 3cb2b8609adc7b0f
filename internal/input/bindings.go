package input

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gantry-engine/gantry/internal/profile"
)

// participantKey is the bindings' entry key in persisted profiles.
const participantKey = "input.bindings"

// Action is a named piece of game behavior triggered by a key press.
type Action struct {
	// Name uniquely identifies the action and is stable across rebinds.
	Name string

	// OnAction runs on the control thread when the bound key is pressed.
	OnAction func()
}

// Bindings maps keys to actions. It is populated by the application's
// input initializer before any scene is shown, and participates in profile
// persistence so user rebindings survive restarts.
type Bindings struct {
	byKey  map[Key]string
	byName map[string]Action
	logger zerolog.Logger
}

// NewBindings creates an empty bindings table.
func NewBindings(logger zerolog.Logger) *Bindings {
	return &Bindings{
		byKey:  make(map[Key]string),
		byName: make(map[string]Action),
		logger: logger.With().Str("component", "input").Logger(),
	}
}

// Bind associates an action with a key.
func (b *Bindings) Bind(action Action, key Key) error {
	if action.OnAction == nil {
		return ErrNilAction
	}
	if _, exists := b.byName[action.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateAction, action.Name)
	}
	if bound, exists := b.byKey[key]; exists {
		return fmt.Errorf("%w: %q is bound to %q", ErrDuplicateKey, key, bound)
	}

	b.byKey[key] = action.Name
	b.byName[action.Name] = action
	return nil
}

// Rebind moves an existing action to a new key. The key must be free.
func (b *Bindings) Rebind(name string, key Key) error {
	if _, exists := b.byName[name]; !exists {
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	if bound, exists := b.byKey[key]; exists {
		if bound == name {
			return nil
		}
		return fmt.Errorf("%w: %q is bound to %q", ErrDuplicateKey, key, bound)
	}

	for k, n := range b.byKey {
		if n == name {
			delete(b.byKey, k)
			break
		}
	}
	b.byKey[key] = name
	return nil
}

// KeyFor returns the key an action is currently bound to.
func (b *Bindings) KeyFor(name string) (Key, bool) {
	for k, n := range b.byKey {
		if n == name {
			return k, true
		}
	}
	return "", false
}

// HandlePress triggers the action bound to key, if any. Returns true when
// an action ran.
func (b *Bindings) HandlePress(key Key) bool {
	name, ok := b.byKey[key]
	if !ok {
		return false
	}
	b.byName[name].OnAction()
	return true
}

// ParticipantKey implements profile.Participant.
func (b *Bindings) ParticipantKey() string {
	return participantKey
}

// SaveProfile implements profile.Participant, contributing the current
// action-to-key mapping.
func (b *Bindings) SaveProfile(p *profile.Profile) error {
	mapping := make(map[string]Key, len(b.byName))
	for key, name := range b.byKey {
		mapping[name] = key
	}
	return p.Put(participantKey, mapping)
}

// LoadProfile implements profile.Participant, restoring persisted
// rebindings. Entries for actions that no longer exist are skipped.
func (b *Bindings) LoadProfile(p *profile.Profile) error {
	var mapping map[string]Key
	if err := p.Get(participantKey, &mapping); err != nil {
		return err
	}

	for name, key := range mapping {
		if err := b.Rebind(name, key); err != nil {
			b.logger.Warn().Err(err).Str("action", name).Msg("skipping persisted binding")
		}
	}
	return nil
}
