package extsort

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Config holds configuration settings for extsort
type Config struct {
	ChunkSize      int                // amount of records to buffer in memory before a chunk is written to disk, 0 writes one chunk per record
	TempFilesDir   string             // empty for use OS default ex: /var/tmp
	FileBufferSize int                // file IO buffer size for each chunk file
	DirPrefix      string             // name prefix of the directory created in TempFilesDir
	Logger         logrus.FieldLogger // nil uses the logrus standard logger
}

// DefaultConfig returns the default configuration options used if none provided
func DefaultConfig() *Config {
	return &Config{
		ChunkSize:      int(1e6),
		FileBufferSize: 1 << 16, // 64k
		DirPrefix:      fmt.Sprintf("extsort_%d_", os.Getpid()),
		TempFilesDir:   "",
		Logger:         logrus.StandardLogger(),
	}
}

// mergeConfig returns a copy of c with any values not set replaced by the defaults.
// ChunkSize is taken as is since zero is meaningful.
func mergeConfig(c *Config) (*Config, error) {
	d := DefaultConfig()
	if c == nil {
		return d, nil
	}
	m := *c
	if m.ChunkSize < 0 {
		return nil, &ConfigError{Field: "ChunkSize", Value: m.ChunkSize, Reason: "must not be negative"}
	}
	if m.FileBufferSize < 0 {
		return nil, &ConfigError{Field: "FileBufferSize", Value: m.FileBufferSize, Reason: "must not be negative"}
	}
	if m.FileBufferSize == 0 {
		m.FileBufferSize = d.FileBufferSize
	}
	if m.DirPrefix == "" {
		m.DirPrefix = d.DirPrefix
	}
	if m.Logger == nil {
		m.Logger = d.Logger
	}
	// skipping TempFilesDir as it is the empty string
	return &m, nil
}
