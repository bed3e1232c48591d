package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const maxLineSize = 16 * 1024 * 1024

type fileReader struct {
	io.ReadCloser
	file *os.File
}

func (r fileReader) Close() error {
	err := r.ReadCloser.Close()
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// OpenReader opens a fixture file and undoes its codec.
func OpenReader(path string, codec Codec) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	r, err := codec.NewReader(bufio.NewReaderSize(file, bufferSize))
	if err != nil {
		file.Close()
		return nil, err
	}
	return fileReader{ReadCloser: r, file: file}, nil
}

// ScanLines calls fn for every line of a fixture file, without terminators.
func ScanLines(path string, codec Codec, fn func(line string) error) error {
	r, err := OpenReader(path, codec)
	if err != nil {
		return err
	}
	defer r.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufferSize), maxLineSize)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// ReadLines loads every line of a fixture file.
func ReadLines(path string, codec Codec) ([]string, error) {
	var lines []string
	err := ScanLines(path, codec, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	return lines, err
}
