// Package dataset loads the tabular test data the suite is driven by.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Columns of the registration file, by header name.
const (
	ColumnFirstName           = "firstName"
	ColumnLastName            = "lastName"
	ColumnTelephone           = "telephone"
	ColumnPassword            = "password"
	ColumnSubscribeNewsletter = "subscribeNewsletter"
)

var requiredColumns = []string{
	ColumnFirstName,
	ColumnLastName,
	ColumnTelephone,
	ColumnPassword,
	ColumnSubscribeNewsletter,
}

// Dataset errors
var (
	ErrEmptyFile     = errors.New("registration data has no header row")
	ErrMissingColumn = errors.New("registration data is missing a column")
)

// Registration is one account to sign up with.
type Registration struct {
	FirstName           string
	LastName            string
	Telephone           string
	Password            string
	SubscribeNewsletter string
}

// WantsNewsletter reports whether the newsletter radio should be set to Yes.
func (r Registration) WantsNewsletter() bool {
	switch strings.ToLower(strings.TrimSpace(r.SubscribeNewsletter)) {
	case "yes", "y", "true", "1":
		return true
	default:
		return false
	}
}

// LoadRegistrations reads and parses the registration file at path.
func LoadRegistrations(path string) ([]Registration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registration data: %w", err)
	}
	defer f.Close()

	records, err := ParseRegistrations(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ParseRegistrations decodes CSV whose header row names the columns. Column
// order is free, extra columns are ignored and blank lines are skipped.
func ParseRegistrations(r io.Reader) ([]Registration, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Rows may carry fewer trailing fields than the header
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var out []Registration
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if isBlank(row) {
			continue
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		out = append(out, Registration{
			FirstName:           field(ColumnFirstName),
			LastName:            field(ColumnLastName),
			Telephone:           field(ColumnTelephone),
			Password:            field(ColumnPassword),
			SubscribeNewsletter: field(ColumnSubscribeNewsletter),
		})
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
