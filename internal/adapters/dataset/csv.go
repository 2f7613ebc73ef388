// Package dataset reads and writes the employee, survey and metrics tables
// as CSV files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/okian/ignite/internal/domain/features"
)

// dateLayout is used for date-only columns.
const dateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // validators are safe for concurrent use

// row is one CSV record addressed by header name.
type row struct {
	index  map[string]int
	fields []string
	line   int
}

func (r row) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// float returns nil for an empty or absent cell.
func (r row) float(col string) (*float64, error) {
	s := r.str(col)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, r.errorf("%s=%q is not a number", col, s)
	}
	return &v, nil
}

// time accepts RFC 3339 or a plain date; empty cells give the zero time.
func (r row) time(col string) (time.Time, error) {
	s := r.str(col)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, r.errorf("%s=%q is not a date", col, s)
	}
	return t, nil
}

func (r row) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", r.line, fmt.Sprintf(format, args...), ErrInvalidRecord)
}

// check validates a decoded record's tags.
func (r row) check(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "EmployeeID" {
					return fmt.Errorf("line %d: %w", r.line, features.ErrMissingColumn)
				}
			}
		}
		return r.errorf("%v", err)
	}
	return nil
}

// readRows decodes a header line and hands each following record to fn.
// The employee_id column must be present in the header.
func readRows(rd io.Reader, fn func(row) error) error {
	cr := csv.NewReader(rd)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := index["employee_id"]; !ok {
		return fmt.Errorf("header: %w", features.ErrMissingColumn)
	}

	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := fn(row{index: index, fields: fields, line: line}); err != nil {
			return err
		}
	}
}

// writeRows writes header and then every record produced by rows.
func writeRows(w io.Writer, header []string, n int, record func(i int) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(record(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
