// Package runlog keeps a CSV history of goal outcomes across planning runs.
package runlog

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
	"github.com/cleared-dev/headroom/internal/goals"
)

// FileName is the log file inside the log directory.
const FileName = "goal-outcomes.csv"

// Entry is one row in the run log.
type Entry struct {
	RunAt      time.Time
	Reference  time.Time
	Goal       string
	Importance int
	Amount     int64
	Status     goals.Status
	PlacedOn   time.Time // zero unless placed
}

// Header is the CSV header for goal-outcomes.csv.
const Header = "run_at,reference_date,goal,importance,amount,status,placed_on"

const (
	numFields     = 7
	colRunAt      = 0
	colReference  = 1
	colGoal       = 2
	colImportance = 3
	colAmount     = 4
	colStatus     = 5
	colPlacedOn   = 6
)

// FromOutcomes converts scheduler outcomes into log entries.
func FromOutcomes(runAt, reference time.Time, outcomes []goals.Outcome) []Entry {
	entries := make([]Entry, 0, len(outcomes))
	for _, o := range outcomes {
		e := Entry{
			RunAt:      runAt,
			Reference:  reference,
			Goal:       o.Goal.Name,
			Importance: o.Goal.Importance,
			Amount:     o.Goal.Amount,
			Status:     o.Status,
		}
		if o.Placed() {
			e.PlacedOn = o.Date
		}
		entries = append(entries, e)
	}
	return entries
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colRunAt] = e.RunAt.Format(time.RFC3339)
	row[colReference] = calendar.Format(e.Reference)
	row[colGoal] = e.Goal
	row[colImportance] = strconv.Itoa(e.Importance)
	row[colAmount] = strconv.FormatInt(e.Amount, 10)
	row[colStatus] = string(e.Status)
	if !e.PlacedOn.IsZero() {
		row[colPlacedOn] = calendar.Format(e.PlacedOn)
	}
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	runAt, err := time.Parse(time.RFC3339, record[colRunAt])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing run_at %q: %w", record[colRunAt], err)
	}
	reference, err := calendar.ParseDate(record[colReference])
	if err != nil {
		return Entry{}, err
	}
	importance, err := strconv.Atoi(record[colImportance])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing importance %q: %w", record[colImportance], err)
	}
	amount, err := strconv.ParseInt(record[colAmount], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var placed time.Time
	if record[colPlacedOn] != "" {
		placed, err = calendar.ParseDate(record[colPlacedOn])
		if err != nil {
			return Entry{}, err
		}
	}

	return Entry{
		RunAt:      runAt,
		Reference:  reference,
		Goal:       record[colGoal],
		Importance: importance,
		Amount:     amount,
		Status:     goals.Status(record[colStatus]),
		PlacedOn:   placed,
	}, nil
}

// Append writes entries to <dir>/goal-outcomes.csv, creating the file and
// header if needed.
func Append(dir string, entries []Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <dir>/goal-outcomes.csv.
// Returns an empty slice if the file does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
