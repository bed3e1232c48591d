package datagen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Fixed dataset constants. They describe the shape of the fixtures and are
// deliberately not exposed as flags or environment variables.
const (
	DefaultOutputPrefix   = "data"
	DefaultOutputExt      = "dat"
	DefaultFieldDelimiter = "|"
	DefaultRecordSize     = 2048
	DefaultSize           = 10000

	// MaxSize keeps every key inside the 32-bit range used by the verifier.
	MaxSize = math.MaxUint32 / 2
)

var (
	ErrInvalidConfig  = errors.New("invalid dataset config")
	ErrRecordTooSmall = errors.New("record size too small for key fields")
	ErrRangeMismatch  = errors.New("key ranges differ in length")
)

// Config describes one generated dataset pair.
type Config struct {
	OutputPrefix   string
	OutputExt      string
	FieldDelimiter string
	RecordSize     int
	Size           int
}

func DefaultConfig() Config {
	return Config{
		OutputPrefix:   DefaultOutputPrefix,
		OutputExt:      DefaultOutputExt,
		FieldDelimiter: DefaultFieldDelimiter,
		RecordSize:     DefaultRecordSize,
		Size:           DefaultSize,
	}
}

func (c Config) Validate() error {
	if c.OutputPrefix == "" {
		return fmt.Errorf("%w: output prefix cannot be empty", ErrInvalidConfig)
	}
	if c.OutputExt == "" {
		return fmt.Errorf("%w: output extension cannot be empty", ErrInvalidConfig)
	}
	if len(c.FieldDelimiter) != 1 {
		return fmt.Errorf("%w: field delimiter must be a single character, got %q", ErrInvalidConfig, c.FieldDelimiter)
	}
	switch d := c.FieldDelimiter[0]; {
	case d >= '0' && d <= '9':
		return fmt.Errorf("%w: field delimiter cannot be a digit", ErrInvalidConfig)
	case d == '\n' || d == '\r':
		return fmt.Errorf("%w: field delimiter cannot be a line terminator", ErrInvalidConfig)
	}
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be greater than 0", ErrInvalidConfig)
	}
	if c.Size > MaxSize {
		return fmt.Errorf("%w: size must not exceed %d", ErrInvalidConfig, MaxSize)
	}
	if c.RecordSize <= 0 {
		return fmt.Errorf("%w: record size must be greater than 0", ErrInvalidConfig)
	}
	if widest := c.MaxPrefixLen(); widest > c.RecordSize {
		return fmt.Errorf("%w: secondary key fields need %d characters, record size is %d",
			ErrRecordTooSmall, widest, c.RecordSize)
	}
	return nil
}

// MaxPrefixLen is the width of the longest key prefix any record can carry:
// the last secondary key, the widest primary key and both delimiters.
func (c Config) MaxPrefixLen() int {
	if c.Size <= 0 {
		return 0
	}
	secondary := len(strconv.Itoa(2*c.Size - 1))
	primary := len(strconv.Itoa(c.Size - 1))
	return secondary + primary + 2*len(c.FieldDelimiter)
}

// FileName builds "<prefix>_<kind>.<ext>", e.g. data_ordered_primary.dat.
func (c Config) FileName(kind string) string {
	return c.OutputPrefix + "_" + kind + "." + c.OutputExt
}
