package verify

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash/v2"

	"github.com/yourusername/go-relgen/datagen"
	"github.com/yourusername/go-relgen/output"
)

var ErrVerification = errors.New("fixture verification failed")

// Fingerprint summarises a multiset of lines independent of their order.
type Fingerprint struct {
	Count int
	Sum   uint64
	Xor   uint64
}

func (f *Fingerprint) add(h uint64) {
	f.Count++
	f.Sum += h
	f.Xor ^= h
}

type FileReport struct {
	Path        string
	Role        output.Role
	Ordered     bool
	Records     int
	Fingerprint Fingerprint
}

type Report struct {
	Files []FileReport
	// SameOrder is set for a role whose unordered file came out in insertion
	// order. It is legal (and certain for a single record) but worth a warning.
	SameOrder map[output.Role]bool
}

// Files re-reads the four fixture files and checks record width, key
// prefixes, ordering, key coverage and that each unordered file holds the
// same records as its ordered twin.
func Files(specs []output.FileSpec, cfg datagen.Config, codec output.Codec) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	report := &Report{SameOrder: make(map[output.Role]bool)}

	for _, role := range []output.Role{output.RolePrimary, output.RoleSecondary} {
		orderedSpec, ok := output.Find(specs, role, true)
		if !ok {
			return nil, fmt.Errorf("%w: no ordered %s file planned", ErrVerification, role)
		}
		unorderedSpec, ok := output.Find(specs, role, false)
		if !ok {
			return nil, fmt.Errorf("%w: no unordered %s file planned", ErrVerification, role)
		}

		ordered, err := checkFile(orderedSpec, cfg, codec)
		if err != nil {
			return nil, err
		}
		unordered, err := checkFile(unorderedSpec, cfg, codec)
		if err != nil {
			return nil, err
		}
		if ordered.fingerprint != unordered.fingerprint {
			return nil, fmt.Errorf("%w: %s and %s hold different records",
				ErrVerification, orderedSpec.Path, unorderedSpec.Path)
		}
		report.SameOrder[role] = slices.Equal(ordered.hashes, unordered.hashes)
		report.Files = append(report.Files, ordered.report(orderedSpec), unordered.report(unorderedSpec))
	}
	return report, nil
}

type fileStats struct {
	fingerprint Fingerprint
	hashes      []uint64
}

func (s fileStats) report(spec output.FileSpec) FileReport {
	return FileReport{
		Path:        spec.Path,
		Role:        spec.Role,
		Ordered:     spec.Ordered,
		Records:     s.fingerprint.Count,
		Fingerprint: s.fingerprint,
	}
}

func checkFile(spec output.FileSpec, cfg datagen.Config, codec output.Codec) (fileStats, error) {
	primary, secondary := datagen.GenerateKeys(cfg.Size)
	own, fields := primary, 1
	if spec.Role == output.RoleSecondary {
		own, fields = secondary, 2
	}

	ids := roaring.New()
	refs := roaring.New()
	stats := fileStats{hashes: make([]uint64, 0, cfg.Size)}
	last := datagen.Key(-1)
	lineNo := 0

	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s line %d: %s", ErrVerification, spec.Path, lineNo, fmt.Sprintf(format, args...))
	}

	err := output.ScanLines(spec.Path, codec, func(line string) error {
		lineNo++
		if len(line) != cfg.RecordSize {
			return fail("record length %d, want %d", len(line), cfg.RecordSize)
		}
		keys, err := datagen.ParseKeys(line, cfg.FieldDelimiter, fields)
		if err != nil {
			return fail("%v", err)
		}
		prefix := keyPrefix(keys, cfg.FieldDelimiter)
		if !strings.HasPrefix(line, prefix) {
			return fail("key fields are not canonical decimals")
		}
		if i := strings.IndexFunc(line[len(prefix):], notPadding); i >= 0 {
			return fail("invalid padding character %q", line[len(prefix)+i])
		}

		id := keys[0]
		if !own.Contains(id) {
			return fail("key %d outside [%d, %d)", id, own.Start, own.End)
		}
		if !ids.CheckedAdd(uint32(id)) {
			return fail("key %d appears twice", id)
		}

		orderKey := id
		if fields == 2 {
			ref := keys[1]
			if !primary.Contains(ref) {
				return fail("foreign key %d outside [%d, %d)", ref, primary.Start, primary.End)
			}
			if !refs.CheckedAdd(uint32(ref)) {
				return fail("foreign key %d referenced twice", ref)
			}
			orderKey = ref
		}
		if spec.Ordered {
			if orderKey <= last {
				return fail("primary key %d after %d breaks ascending order", orderKey, last)
			}
			last = orderKey
		}

		h := xxhash.Sum64String(line)
		stats.fingerprint.add(h)
		stats.hashes = append(stats.hashes, h)
		return nil
	})
	if err != nil {
		return fileStats{}, err
	}

	if got := ids.GetCardinality(); got != uint64(cfg.Size) {
		return fileStats{}, fmt.Errorf("%w: %s covers %d keys, want %d", ErrVerification, spec.Path, got, cfg.Size)
	}
	if fields == 2 {
		if got := refs.GetCardinality(); got != uint64(cfg.Size) {
			return fileStats{}, fmt.Errorf("%w: %s references %d primary keys, want %d", ErrVerification, spec.Path, got, cfg.Size)
		}
	}
	return stats, nil
}

func keyPrefix(keys []datagen.Key, delim string) string {
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k.String())
		b.WriteString(delim)
	}
	return b.String()
}

func notPadding(r rune) bool {
	return !strings.ContainsRune(datagen.PaddingAlphabet, r)
}
