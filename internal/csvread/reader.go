// Package csvread streams episode sheets exported as CSV. It tolerates the
// quirks of desktop spreadsheet exports: UTF-8 BOMs, semicolon delimiters
// from es-CL locales, and ragged trailing columns.
package csvread

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader streams rows from a CSV episode sheet as column→value maps.
type Reader struct {
	file    *os.File
	cr      *csv.Reader
	headers []string
}

// Open opens a CSV file, sniffs the delimiter from the header line, and
// reads the header record.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}

	br := bufio.NewReader(f)
	peek, _ := br.Peek(len(utf8BOM))
	if bytes.Equal(peek, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	return &Reader{file: f, cr: cr, headers: headers}, nil
}

// Headers returns the trimmed header row.
func (r *Reader) Headers() []string {
	return r.headers
}

// Read returns the next row as a column→value map, padding ragged rows with
// empty strings. Returns io.EOF when the file is exhausted.
func (r *Reader) Read() (map[string]string, error) {
	rec, err := r.cr.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read csv row: %w", err)
	}

	row := make(map[string]string, len(r.headers))
	for i, h := range r.headers {
		if i < len(rec) {
			row[h] = rec[i]
		} else {
			row[h] = ""
		}
	}
	return row, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// ReadAll loads an entire sheet into memory. Meant for precheck and the
// check command; the staging path streams row by row instead.
func ReadAll(path string) (headers []string, rows []map[string]string, err error) {
	r, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return r.Headers(), rows, nil
}

// sniffDelimiter inspects the buffered header line and picks the delimiter
// with the most occurrences. Defaults to comma.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(4096)
	line := peek
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		line = peek[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}
