package fileutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVReader reads seed and import files. Blank lines are skipped by encoding/csv,
// lines starting with '#' are treated as comments.
type CSVReader struct {
	FilePath string
}

// NewCSVReader returns a CSVReader instance for a specified CSV file
func NewCSVReader(fp string) *CSVReader {
	return &CSVReader{
		FilePath: fp,
	}
}

// ReadHeader reads ONLY the header of the specified CSV file, with each column trimmed
func (r *CSVReader) ReadHeader() ([]string, error) {
	f, err := os.Open(r.FilePath)
	if err != nil {
		return nil, fmt.Errorf("opening a csv file: %w", err)
	}
	defer f.Close()

	header, err := newReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	return trimAll(header), nil
}

// ReadAndProcessByRow streams the rows after the header into processorFn together
// with their 1-based line number. Cells are trimmed before the call.
func (r *CSVReader) ReadAndProcessByRow(processorFn func(line int, row []string) error) error {
	f, err := os.Open(r.FilePath)
	if err != nil {
		return fmt.Errorf("opening a csv file: %w", err)
	}
	defer f.Close()

	reader := newReader(f)

	// Skip header
	if _, err = reader.Read(); err != nil {
		return fmt.Errorf("reading CSV header: %w", err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading CSV row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if err = processorFn(line, trimAll(row)); err != nil {
			return err
		}
	}

	return nil
}

func newReader(rd io.Reader) *csv.Reader {
	reader := csv.NewReader(rd)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	return reader
}

func trimAll(row []string) []string {
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}
	return row
}
