package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/yourusername/go-relgen/datagen"
)

const bufferSize = 64 * 1024

// WriteRecords writes one record per line, newline terminated, in slice
// order. A failed write leaves whatever reached the file in place.
func WriteRecords(path string, records []datagen.Record, codec Codec) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	buf := bufio.NewWriterSize(file, bufferSize)
	w, err := codec.NewWriter(buf)
	if err != nil {
		return err
	}
	if err := writeLines(w, records); err != nil {
		return fmt.Errorf("failed to write records to %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish %s stream for %s: %w", codec, path, err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	return file.Close()
}

func writeLines(w io.Writer, records []datagen.Record) error {
	for _, rec := range records {
		if _, err := io.WriteString(w, string(rec)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
