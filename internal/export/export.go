// Package export writes a ledger as a five-column spreadsheet CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/headroom/internal/calendar"
	"github.com/cleared-dev/headroom/internal/ledger"
)

// Header is the CSV header for export files.
const Header = "year,month,day,label,amount"

const (
	numFields = 5
	colYear   = 0
	colMonth  = 1
	colDay    = 2
	colLabel  = 3
	colAmount = 4
)

// Record is one exported ledger row.
type Record struct {
	Year   int
	Month  int
	Day    int
	Label  string
	Amount int64
}

// FromRow builds the record for a ledger row. Label text uses "--" in
// place of "=" so spreadsheets do not read banners as formulas.
func FromRow(r ledger.Row) Record {
	return Record{
		Year:   r.Date.Year(),
		Month:  int(r.Date.Month()),
		Day:    r.Date.Day(),
		Label:  strings.ReplaceAll(r.Item.Label(), "=", "--"),
		Amount: r.Amount(),
	}
}

// MarshalRecord converts a Record to a CSV row.
func MarshalRecord(rec Record) []string {
	row := make([]string, numFields)
	row[colYear] = fmt.Sprintf("%04d", rec.Year)
	row[colMonth] = fmt.Sprintf("%02d", rec.Month)
	row[colDay] = fmt.Sprintf("%02d", rec.Day)
	row[colLabel] = rec.Label
	row[colAmount] = strconv.FormatInt(rec.Amount, 10)
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(record []string) (Record, error) {
	if len(record) != numFields {
		return Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var ints [3]int
	for i, col := range []int{colYear, colMonth, colDay} {
		v, err := strconv.Atoi(record[col])
		if err != nil {
			return Record{}, fmt.Errorf("parsing %s %q: %w", strings.Split(Header, ",")[col], record[col], err)
		}
		ints[i] = v
	}

	amount, err := strconv.ParseInt(record[colAmount], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return Record{
		Year:   ints[0],
		Month:  ints[1],
		Day:    ints[2],
		Label:  record[colLabel],
		Amount: amount,
	}, nil
}

// WriteLedger writes the header and one record per ledger row.
func WriteLedger(w io.Writer, l *ledger.Ledger) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range l.Rows() {
		if err := cw.Write(MarshalRecord(FromRow(row))); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRecords reads every record from an export file.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading export CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	// Skip header row.
	var out []Record
	for i, rec := range records[1:] {
		r, err := UnmarshalRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// FileName returns the export file name for a run on runDate.
func FileName(runDate time.Time) string {
	return "export_" + calendar.Format(runDate) + ".csv"
}

// Save writes l to <dir>/export_<runDate>.csv, replacing an export from the
// same day, and returns the path.
func Save(dir string, runDate time.Time, l *ledger.Ledger) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(dir, FileName(runDate))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export: %w", err)
	}
	if err := WriteLedger(f, l); err != nil {
		f.Close()
		return "", fmt.Errorf("writing export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export: %w", err)
	}
	return path, nil
}
