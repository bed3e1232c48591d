package benchmark

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"sort"
	"time"

	"github.com/yourusername/go-relgen/datagen"
	"github.com/yourusername/go-relgen/output"
)

// KeyedRecord is a fixture line with the key it joins on.
type KeyedRecord struct {
	Key  datagen.Key
	Line string
}

// LoadRecords reads a fixture file keyed on key field `field` (0 is the
// record's own key, 1 the foreign key of a secondary record).
func LoadRecords(path string, codec output.Codec, delim string, field int) ([]KeyedRecord, error) {
	var records []KeyedRecord
	err := output.ScanLines(path, codec, func(line string) error {
		keys, err := datagen.ParseKeys(line, delim, field+1)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		records = append(records, KeyedRecord{Key: keys[field], Line: line})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func SortByKey(records []KeyedRecord) {
	slices.SortStableFunc(records, func(a, b KeyedRecord) int {
		return cmp.Compare(a.Key, b.Key)
	})
}

func IsSorted(records []KeyedRecord) bool {
	return slices.IsSortedFunc(records, func(a, b KeyedRecord) int {
		return cmp.Compare(a.Key, b.Key)
	})
}

// MergeJoin joins primary records (unique keys) with secondary records on
// the secondary's foreign key. Both inputs must be sorted by key. emit may be
// nil; the number of matches is returned.
func MergeJoin(primary, secondary []KeyedRecord, emit func(p, s KeyedRecord)) (int, error) {
	if !IsSorted(primary) {
		return 0, fmt.Errorf("primary input is not sorted by key")
	}
	if !IsSorted(secondary) {
		return 0, fmt.Errorf("secondary input is not sorted by key")
	}

	matches := 0
	i, j := 0, 0
	for i < len(primary) && j < len(secondary) {
		switch {
		case primary[i].Key < secondary[j].Key:
			i++
		case primary[i].Key > secondary[j].Key:
			j++
		default:
			if emit != nil {
				emit(primary[i], secondary[j])
			}
			matches++
			j++
		}
	}
	return matches, nil
}

// Timing is one measured step of a join run.
type Timing struct {
	Label    string
	Records  int
	Duration time.Duration
}

// Percentile returns the p-th percentile (0-100) of durations.
func Percentile(durations []time.Duration, p float64) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), durations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

func WriteCSV(outputCSVPath string, startFreshCSVFile bool, timings []Timing) error {
	mode := os.O_APPEND | os.O_CREATE | os.O_WRONLY
	if startFreshCSVFile {
		mode = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}

	f, err := os.OpenFile(outputCSVPath, mode, 0644)
	if err != nil {
		return fmt.Errorf("failed to open CSV %s: %w", outputCSVPath, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if startFreshCSVFile {
		if err := writer.Write([]string{"Timestamp", "Step", "Records", "Duration"}); err != nil {
			return err
		}
	}

	now := time.Now().Format("2006-01-02 15:04:05")
	for _, t := range timings {
		record := []string{now, t.Label, fmt.Sprintf("%d", t.Records), t.Duration.String()}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV %s: %w", outputCSVPath, err)
	}
	return f.Close()
}
