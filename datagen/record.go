package datagen

import (
	"fmt"
	"strconv"
	"strings"
)

// PaddingAlphabet holds the characters used to fill records up to their
// fixed size.
const PaddingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Record is one output line without its terminator.
type Record string

func FormatPrimary(k Key, cfg Config, rnd Source) (Record, error) {
	return formatRecord(cfg, rnd, k)
}

// FormatSecondary renders "<secondary>|<primary>|<padding>".
func FormatSecondary(rel Relation, cfg Config, rnd Source) (Record, error) {
	return formatRecord(cfg, rnd, rel.Secondary, rel.Primary)
}

func formatRecord(cfg Config, rnd Source, keys ...Key) (Record, error) {
	var b strings.Builder
	b.Grow(cfg.RecordSize)
	for _, k := range keys {
		b.WriteString(strconv.Itoa(int(k)))
		b.WriteString(cfg.FieldDelimiter)
	}
	if b.Len() > cfg.RecordSize {
		return "", fmt.Errorf("%w: prefix %q is longer than %d", ErrRecordTooSmall, b.String(), cfg.RecordSize)
	}
	for b.Len() < cfg.RecordSize {
		b.WriteByte(PaddingAlphabet[rnd.Intn(len(PaddingAlphabet))])
	}
	return Record(b.String()), nil
}

// ParseKeys splits the first n key fields off a record.
func ParseKeys(rec string, delim string, n int) ([]Key, error) {
	fields := strings.SplitN(rec, delim, n+1)
	if len(fields) < n+1 {
		return nil, fmt.Errorf("record has %d fields, want at least %d", len(fields)-1, n)
	}
	keys := make([]Key, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("failed to parse key field %d %q: %w", i, fields[i], err)
		}
		if v < 0 {
			return nil, fmt.Errorf("key field %d is negative: %d", i, v)
		}
		keys[i] = Key(v)
	}
	return keys, nil
}
