// Package output renders generated users for the command line.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	domain "usertables-generator/internal/domain/user"
	"usertables-generator/pkg/date"
)

// Output formats
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// Formats lists the accepted format names.
var Formats = []string{FormatTable, FormatCSV, FormatJSON}

var header = []string{
	"ID", "Name", "Surname", "Patronymic", "Gender", "Date of birth", "Age",
	"Postal code", "Country", "Region", "City", "Street", "House", "Apartment", "Tax ID",
}

// record is the JSON line shape of a user.
type record struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	Patronymic  string    `json:"patronymic,omitempty"`
	Gender      string    `json:"gender"`
	DateOfBirth date.Date `json:"date_of_birth"`
	Age         int       `json:"age"`
	PostalCode  int       `json:"postal_code"`
	Country     string    `json:"country"`
	Region      string    `json:"region,omitempty"`
	City        string    `json:"city,omitempty"`
	Street      string    `json:"street,omitempty"`
	House       int       `json:"house,omitempty"`
	Apartment   int       `json:"apartment"`
	TaxID       string    `json:"tax_id"`
}

// Write renders users to w in the named format.
func Write(w io.Writer, format string, users []*domain.User) error {
	switch format {
	case FormatTable:
		return writeTable(w, users)
	case FormatCSV:
		return writeCSV(w, users)
	case FormatJSON:
		return writeJSON(w, users)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeTable(w io.Writer, users []*domain.User) error {
	renderer := lipgloss.NewRenderer(w)
	headerStyle := renderer.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(header...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, u := range users {
		t.Row(fields(u)...)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, users []*domain.User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, u := range users {
		if err := cw.Write(fields(u)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, users []*domain.User) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, u := range users {
		if err := enc.Encode(toRecord(u)); err != nil {
			return fmt.Errorf("failed to write json line: %w", err)
		}
	}
	return nil
}

// fields returns the table and csv cells of u in header order.
func fields(u *domain.User) []string {
	id := ""
	if u.ID != 0 {
		id = strconv.FormatInt(u.ID, 10)
	}
	house := ""
	if u.House != 0 {
		house = strconv.Itoa(u.House)
	}
	return []string{
		id,
		u.Name,
		u.Surname,
		u.Patronymic,
		string(u.Gender),
		u.DateOfBirth.String(),
		strconv.Itoa(u.Age),
		strconv.Itoa(u.PostalCode),
		u.Country,
		u.Region,
		u.City,
		u.Street,
		house,
		strconv.Itoa(u.Apartment),
		u.TaxID,
	}
}

func toRecord(u *domain.User) record {
	return record{
		ID:          u.ID,
		Name:        u.Name,
		Surname:     u.Surname,
		Patronymic:  u.Patronymic,
		Gender:      string(u.Gender),
		DateOfBirth: u.DateOfBirth,
		Age:         u.Age,
		PostalCode:  u.PostalCode,
		Country:     u.Country,
		Region:      u.Region,
		City:        u.City,
		Street:      u.Street,
		House:       u.House,
		Apartment:   u.Apartment,
		TaxID:       u.TaxID,
	}
}
