package datagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2048, cfg.RecordSize)
	assert.Equal(t, 10000, cfg.Size)
	assert.Equal(t, "data_ordered_primary.dat", cfg.FileName("ordered_primary"))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{"zero size", func(c *Config) { c.Size = 0 }, ErrInvalidConfig},
		{"oversized", func(c *Config) { c.Size = MaxSize + 1 }, ErrInvalidConfig},
		{"zero record size", func(c *Config) { c.RecordSize = 0 }, ErrInvalidConfig},
		{"empty prefix", func(c *Config) { c.OutputPrefix = "" }, ErrInvalidConfig},
		{"empty ext", func(c *Config) { c.OutputExt = "" }, ErrInvalidConfig},
		{"long delimiter", func(c *Config) { c.FieldDelimiter = "||" }, ErrInvalidConfig},
		{"digit delimiter", func(c *Config) { c.FieldDelimiter = "7" }, ErrInvalidConfig},
		{"newline delimiter", func(c *Config) { c.FieldDelimiter = "\n" }, ErrInvalidConfig},
		// size 10000 needs "19999|9999|" = 11 characters
		{"record too small", func(c *Config) { c.RecordSize = 10 }, ErrRecordTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), tt.err)
		})
	}
}

func TestMaxPrefixLen(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 11, cfg.MaxPrefixLen())

	cfg.RecordSize = 11
	assert.NoError(t, cfg.Validate(), "zero padding is allowed")

	cfg.Size = 3
	assert.Equal(t, 4, cfg.MaxPrefixLen())
}
