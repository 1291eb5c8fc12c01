// Package export renders user datasets as CSV files, optionally
// compressed.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/wajeeh/souqadmin/internal/feature/user"
)

// Header is the fixed CSV header row.
var Header = []string{"ID", "Name", "Email", "Mobile", "Status", "Registration Date", "Total Spent"}

// MarshalCSV renders users as RFC 4180 CSV: header row first, one row per
// record, fields containing delimiters quoted.
func MarshalCSV(users []*user.User) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, u := range users {
		row := []string{
			strconv.Itoa(u.ID),
			u.Name,
			u.Email,
			u.Mobile,
			string(u.Status),
			u.RegistrationDate.String(),
			strconv.Itoa(u.TotalSpent),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename builds the export file name for the given timestamp and
// compression type, e.g. "users_export_2026-03-01T10-30-00Z.csv.gz".
func Filename(now time.Time, compression Type) string {
	stamp := now.UTC().Format("2006-01-02T15-04-05Z")
	name := fmt.Sprintf("users_export_%s.csv", stamp)
	return name + Extension(compression)
}
