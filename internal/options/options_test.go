package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type encoderConfig struct {
	k, m        uint8
	compression string
	calls       []string
}

var errBadWidth = errors.New("bad width")

func withWidths(k, m uint8) Option[*encoderConfig] {
	return New(func(c *encoderConfig) error {
		if k+m > 8 {
			return errBadWidth
		}
		c.k, c.m = k, m
		c.calls = append(c.calls, "widths")

		return nil
	})
}

func withCompression(name string) Option[*encoderConfig] {
	return NoError(func(c *encoderConfig) {
		c.compression = name
		c.calls = append(c.calls, "compression")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &encoderConfig{}
		err := Apply(cfg, withCompression("zstd"), withWidths(5, 3), withCompression("s2"))
		require.NoError(t, err)
		require.Equal(t, uint8(5), cfg.k)
		require.Equal(t, uint8(3), cfg.m)
		require.Equal(t, "s2", cfg.compression)
		require.Equal(t, []string{"compression", "widths", "compression"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &encoderConfig{}
		err := Apply(cfg, withWidths(7, 7), withCompression("lz4"))
		require.ErrorIs(t, err, errBadWidth)
		require.Empty(t, cfg.compression)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &encoderConfig{}
		require.NoError(t, Apply(cfg))
		require.Empty(t, cfg.calls)
	})

	t.Run("nil options are skipped", func(t *testing.T) {
		cfg := &encoderConfig{}
		require.NoError(t, Apply(cfg, nil, withCompression("none")))
		require.Equal(t, "none", cfg.compression)
	})
}
