package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qfactor/qfactor"
	"github.com/qfactor/qfactor/keygen"
)

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
verbose: true
sieve:
  bound: 50
  start: "367"
  size: 2000
  workers: 4
period:
  bases: [3, 5, 7]
  bits: 36
keygen:
  max_attempts: 10
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Verbose)
	assert.Equal(t, uint64(50), cfg.Sieve.Bound)
	require.NotNil(t, cfg.Sieve.Start)
	assert.Equal(t, int64(367), cfg.Sieve.Start.Int64())
	assert.Equal(t, 2000, cfg.Sieve.Size)
	assert.Equal(t, 4, cfg.Sieve.Workers)

	require.Len(t, cfg.Period.Bases, 3)
	assert.Equal(t, int64(7), cfg.Period.Bases[2].Int64())
	assert.Equal(t, uint(36), cfg.Period.Bits)

	assert.Equal(t, 10, cfg.Keygen.MaxAttempts)
	assert.Equal(t, int64(keygen.DefaultExponent), cfg.Keygen.Exponent)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeTempConfig(t, "verbose: false\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, qfactor.DefaultSieveParams(), cfg.Sieve)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeTempConfig(t, "sieve: [1, 2"))
	assert.Error(t, err)

	_, err = LoadConfig(writeTempConfig(t, "sieve:\n  start: abc\n"))
	assert.Error(t, err)
}
