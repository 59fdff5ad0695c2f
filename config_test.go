package extsort

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeConfigNil(t *testing.T) {
	c, err := mergeConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().ChunkSize, c.ChunkSize)
	assert.Equal(t, 1<<16, c.FileBufferSize)
	assert.NotEmpty(t, c.DirPrefix)
	assert.NotNil(t, c.Logger)
}

func TestMergeConfigDefaults(t *testing.T) {
	in := &Config{ChunkSize: 0, TempFilesDir: "/somewhere"}
	c, err := mergeConfig(in)
	require.NoError(t, err)

	assert.Equal(t, 0, c.ChunkSize, "zero chunk size is kept")
	assert.Equal(t, "/somewhere", c.TempFilesDir)
	assert.Equal(t, 1<<16, c.FileBufferSize)
	assert.Equal(t, DefaultConfig().DirPrefix, c.DirPrefix)

	// the caller's config is not modified
	assert.Equal(t, 0, in.FileBufferSize)
	assert.Empty(t, in.DirPrefix)
	assert.Nil(t, in.Logger)
}

func TestMergeConfigKeepsValues(t *testing.T) {
	logger := logrus.New()
	c, err := mergeConfig(&Config{ChunkSize: 10, FileBufferSize: 512, DirPrefix: "mine_", Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, 10, c.ChunkSize)
	assert.Equal(t, 512, c.FileBufferSize)
	assert.Equal(t, "mine_", c.DirPrefix)
	assert.Same(t, logger, c.Logger)
}

func TestMergeConfigInvalid(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		field  string
	}{
		{"negative chunk size", Config{ChunkSize: -1}, "ChunkSize"},
		{"negative buffer size", Config{FileBufferSize: -1}, "FileBufferSize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mergeConfig(&tt.config)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
