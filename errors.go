package extsort

import (
	"fmt"
)

// SerializationError represents an error that occurred while writing an item to a chunk
type SerializationError struct {
	// Cause is the original error or panic value raised during serialization
	Cause interface{}
	// Context provides additional information about what was being serialized
	Context string
}

func (e *SerializationError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("serialization error in %s: %v", e.Context, e.Cause)
	}
	return fmt.Sprintf("serialization error: %v", e.Cause)
}

func (e *SerializationError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// NewSerializationError creates a SerializationError
func NewSerializationError(cause interface{}, context string) error {
	return &SerializationError{Cause: cause, Context: context}
}

// DeserializationError represents an error that occurred while reading an item back from a chunk.
// It is distinct from the clean end of a chunk, which is never reported as an error.
type DeserializationError struct {
	// Cause is the original error or panic value raised during deserialization
	Cause interface{}
	// DataSize is the size of the framed data that failed to deserialize, when known
	DataSize int
	// Chunk is the index of the chunk being read
	Chunk int
	// Context provides additional information about what was being deserialized
	Context string
}

func (e *DeserializationError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("deserialization error in %s (chunk %d, data size: %d bytes): %v", e.Context, e.Chunk, e.DataSize, e.Cause)
	}
	return fmt.Sprintf("deserialization error (chunk %d, data size: %d bytes): %v", e.Chunk, e.DataSize, e.Cause)
}

func (e *DeserializationError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// NewDeserializationError creates a DeserializationError
func NewDeserializationError(cause interface{}, dataSize, chunk int, context string) error {
	return &DeserializationError{Cause: cause, DataSize: dataSize, Chunk: chunk, Context: context}
}

// ComparisonError represents a panic raised by the comparison function while sorting a chunk
type ComparisonError struct {
	// Cause is the original panic value
	Cause interface{}
	// Context provides additional information about when the comparison failed
	Context string
}

func (e *ComparisonError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("comparison panic in %s: %v", e.Context, e.Cause)
	}
	return fmt.Sprintf("comparison panic: %v", e.Cause)
}

func (e *ComparisonError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// NewComparisonError creates a ComparisonError
func NewComparisonError(cause interface{}, context string) error {
	return &ComparisonError{Cause: cause, Context: context}
}

// NewDiskError wraps the underlying I/O error with the operation and path it happened on
func NewDiskError(err error, operation, path string) error {
	if path != "" {
		return fmt.Errorf("disk error during %s on %s: %w", operation, path, err)
	}
	return fmt.Errorf("disk error during %s: %w", operation, err)
}

// ConfigError represents an error in configuration parameters
type ConfigError struct {
	// Field is the name of the configuration field that's invalid
	Field string
	// Value is the invalid value provided
	Value interface{}
	// Reason explains why the value is invalid
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field %s (value: %v): %s", e.Field, e.Value, e.Reason)
}
