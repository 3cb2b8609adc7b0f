package services

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantry-engine/gantry/internal/fault"
	"github.com/gantry-engine/gantry/internal/profile"
	"github.com/gantry-engine/gantry/internal/settings"
)

func TestConfigure_BuildsEverySlot(t *testing.T) {
	snap := settings.Default().Freeze()
	faults := fault.New(zerolog.Nop(), fault.WithExitFunc(func(int) {}))

	r := Configure(snap, zerolog.Nop(), faults)

	require.NotNil(t, r.Bus())
	require.NotNil(t, r.Display())
	require.NotNil(t, r.Clock())
	require.NotNil(t, r.Profiles())
	require.NotNil(t, r.Bindings())
	require.NotNil(t, r.Achievements())
	require.NotNil(t, r.Notifications())
	assert.Same(t, faults, r.Faults())
	assert.Equal(t, snap, r.Settings())
}

func TestRegistry_SealPreventsRebinding(t *testing.T) {
	snap := settings.Default().Freeze()
	faults := fault.New(zerolog.Nop(), fault.WithExitFunc(func(int) {}))
	r := Configure(snap, zerolog.Nop(), faults)

	replacement := profile.NewStore(t.TempDir(), snap.Title, snap.Version, zerolog.Nop())
	r.ReplaceProfiles(replacement)
	assert.Same(t, replacement, r.Profiles())

	r.Seal()
	assert.True(t, r.IsSealed())
	assert.Panics(t, func() { r.ReplaceProfiles(replacement) })
}
