package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesEmbedded(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "embedded default.yaml drifted from Default()")
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 50.0, cfg.Physics.WalkSpeed)
	assert.Equal(t, 30.0, cfg.Physics.PatrolSpeed)
	assert.Equal(t, 0.1, cfg.Physics.MaxDeltaTime)
	assert.Equal(t, 300.0, cfg.Rules.TimeLimitSeconds)
	assert.Equal(t, 100, cfg.Rules.PassengerCap)
	assert.Equal(t, 50, cfg.Rules.RescueQuota)
	assert.Equal(t, 10, cfg.Rules.FinalLevel)
	assert.Equal(t, 0.5, cfg.Rules.SpawnInterval)
	assert.Equal(t, 2.0, cfg.Abilities.Cooldown)

	// Cumulative spawn thresholds must stay below 1 so "no ability"
	// remains the most common outcome.
	sum := cfg.Abilities.BridgeChance + cfg.Abilities.DoorChance + cfg.Abilities.BriberChance
	assert.Less(t, sum, 1.0)
}

func TestLoadPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	data := []byte("rules:\n  rescue_quota: 10\n  final_level: 3\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Rules.RescueQuota)
	assert.Equal(t, 3, cfg.Rules.FinalLevel)
	// Untouched sections keep defaults.
	assert.Equal(t, Default().Physics, cfg.Physics)
	assert.Equal(t, Default().Abilities, cfg.Abilities)
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedExplicitPathFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: ["), 0o600))
	_, err := Load(path)
	require.Error(t, err)
}
