// Package catalog reads the list of financial items a plan is built from.
package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/headroom/internal/calendar"
	"github.com/cleared-dev/headroom/internal/item"
)

// Defaults applied when an entry leaves the field out.
const (
	DefaultEveryMonths   = 1
	DefaultIncreaseEvery = 12
)

// File is the on-disk catalog layout: a single list under "items".
type File struct {
	Items []Entry `yaml:"items" toml:"items"`
}

// Entry is one catalog item as written by the user.
type Entry struct {
	Kind   item.Kind `yaml:"kind" toml:"kind"`
	Name   string    `yaml:"name" toml:"name"`
	Amount Amount    `yaml:"amount" toml:"amount"`
	// Start is the date of a one-time item, the first occurrence of a
	// recurring one and the deadline of a goal.
	Start Date `yaml:"start,omitempty" toml:"start,omitempty"`
	End   Date `yaml:"end,omitempty" toml:"end,omitempty"`

	EveryMonths    int    `yaml:"every_months,omitempty" toml:"every_months,omitempty"`
	IncreaseAmount Amount `yaml:"increase_amount,omitempty" toml:"increase_amount,omitempty"`
	IncreaseEvery  int    `yaml:"increase_every,omitempty" toml:"increase_every,omitempty"`
	Importance     int    `yaml:"importance,omitempty" toml:"importance,omitempty"`
}

// Item converts the entry into its item variant. Fractional amounts are
// truncated toward zero. The entry is expected to be valid.
func (e Entry) Item() (item.Item, error) {
	amount := e.Amount.IntPart()
	switch e.Kind {
	case item.KindOneTime:
		return item.NewOneTime(e.Name, amount, e.Start.Time), nil
	case item.KindRecurring:
		return item.NewRecurring(e.Name, amount, e.Start.Time, e.End.Time, e.every()), nil
	case item.KindIncremental:
		return item.NewIncremental(e.Name, amount, e.Start.Time, e.End.Time, e.every(),
			e.IncreaseAmount.IntPart(), e.increaseEvery()), nil
	case item.KindGoal:
		return item.NewGoal(e.Name, amount, e.Start.Time, e.Importance), nil
	default:
		return nil, fmt.Errorf("unknown item kind %q", e.Kind)
	}
}

func (e Entry) every() int {
	if e.EveryMonths == 0 {
		return DefaultEveryMonths
	}
	return e.EveryMonths
}

func (e Entry) increaseEvery() int {
	if e.IncreaseEvery == 0 {
		return DefaultIncreaseEvery
	}
	return e.IncreaseEvery
}

// Build validates entries and converts them to items in catalog order.
func Build(entries []Entry) ([]item.Item, error) {
	if errs := Validate(entries); len(errs) > 0 {
		return nil, joinValidation(errs)
	}
	items := make([]item.Item, 0, len(entries))
	for _, e := range entries {
		it, err := e.Item()
		if err != nil {
			return nil, fmt.Errorf("building %q: %w", e.Name, err)
		}
		items = append(items, it)
	}
	return items, nil
}

// Amount is a decimal money value. It decodes from numbers or strings and
// is written back as a plain YAML number.
type Amount struct {
	decimal.Decimal
}

// NewAmount returns a whole-unit amount.
func NewAmount(v int64) Amount {
	return Amount{decimal.NewFromInt(v)}
}

// MustAmount parses s and panics on failure. It is meant for literals.
func MustAmount(s string) Amount {
	return Amount{decimal.RequireFromString(s)}
}

// MarshalYAML implements yaml.Marshaler.
func (a Amount) MarshalYAML() (any, error) {
	tag := "!!float"
	if a.IsInteger() {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: a.String()}, nil
}

// Date is a calendar date. It decodes from "YYYY-MM-DD" strings and from
// TOML dates or datetimes, and is zero when absent.
type Date struct {
	time.Time
}

// NewDate returns the given day as a Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{calendar.Date(year, month, day)}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		d.Time = time.Time{}
		return nil
	}
	t, err := calendar.ParseDate(string(text))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler. Datetimes keep their date
// part as written.
func (d *Date) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case time.Time:
		d.Time = calendar.Date(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("date: unsupported TOML value %T", v)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return nil, nil
	}
	return []byte(calendar.Format(d.Time)), nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: calendar.Format(d.Time)}, nil
}

// String renders the date, or "-" when absent.
func (d Date) String() string {
	if d.IsZero() {
		return "-"
	}
	return calendar.Format(d.Time)
}
