package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/headroom/internal/calendar"
	"github.com/cleared-dev/headroom/internal/item"
	"github.com/cleared-dev/headroom/internal/ledger"
)

const sampleYAML = `items:
  - kind: incremental
    name: "= Salary ="
    amount: 4060
    start: 2022-02-25
    increase_amount: 500
    increase_every: 12
  - kind: recurring
    name: Water
    amount: -26
    start: 2022-11-01
    every_months: 2
  - kind: recurring
    name: Phone Plan
    amount: -75.99
    start: "2022-11-27"
    end: 2024-04-01
  - kind: one_time
    name: Savings Account
    amount: 500
  - kind: goal
    name: City Bike
    amount: -1500
    importance: 6
`

const sampleTOML = `[[items]]
kind = "recurring"
name = "Rent"
amount = -1051
start = 2022-07-26

[[items]]
kind = "incremental"
name = "Salary"
amount = "4060.50"
start = "2022-02-25"
increase_amount = 500

[[items]]
kind = "goal"
name = "Bike"
amount = -1500
start = "2023-06-01"
importance = 6
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestYAMLDecoder(t *testing.T) {
	entries, err := YAMLDecoder{}.Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Len(t, entries, 5)

	salary := entries[0]
	assert.Equal(t, item.KindIncremental, salary.Kind)
	assert.Equal(t, "= Salary =", salary.Name)
	assert.Equal(t, "4060", salary.Amount.String())
	assert.True(t, calendar.Date(2022, time.February, 25).Equal(salary.Start.Time))
	assert.Equal(t, "500", salary.IncreaseAmount.String())
	assert.Equal(t, 12, salary.IncreaseEvery)

	phone := entries[2]
	assert.Equal(t, "-75.99", phone.Amount.String())
	assert.True(t, calendar.Date(2022, time.November, 27).Equal(phone.Start.Time), "quoted dates decode too")
	assert.True(t, calendar.Date(2024, time.April, 1).Equal(phone.End.Time))

	assert.True(t, entries[3].Start.IsZero())
	assert.Equal(t, 6, entries[4].Importance)
}

func TestYAMLDecoder_UnknownField(t *testing.T) {
	_, err := YAMLDecoder{}.Decode(strings.NewReader("items:\n  - kind: goal\n    name: x\n    amount: 1\n    priority: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "priority")
}

func TestYAMLDecoder_Empty(t *testing.T) {
	entries, err := YAMLDecoder{}.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTOMLDecoder(t *testing.T) {
	entries, err := TOMLDecoder{}.Decode(strings.NewReader(sampleTOML))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, item.KindRecurring, entries[0].Kind)
	assert.Equal(t, "-1051", entries[0].Amount.String())
	assert.True(t, calendar.Date(2022, time.July, 26).Equal(entries[0].Start.Time))

	assert.Equal(t, "4060.5", entries[1].Amount.String())
	assert.Equal(t, "500", entries[1].IncreaseAmount.String())
	assert.True(t, calendar.Date(2023, time.June, 1).Equal(entries[2].Start.Time))
}

func TestTOMLDecoder_Dates(t *testing.T) {
	entries, err := TOMLDecoder{}.Decode(strings.NewReader("[[items]]\nkind = \"one_time\"\nname = \"x\"\namount = 1\nstart = 2023-01-10T23:30:00-05:00\n"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, calendar.Date(2023, time.January, 10).Equal(entries[0].Start.Time), "datetime keeps its written date")

	_, err = TOMLDecoder{}.Decode(strings.NewReader("[[items]]\nkind = \"one_time\"\nname = \"x\"\namount = 1\nstart = \"2023-01-10garbage\"\n"))
	assert.Error(t, err)
}

func TestYAMLDecoder_MalformedDate(t *testing.T) {
	_, err := YAMLDecoder{}.Decode(strings.NewReader("items:\n  - kind: one_time\n    name: x\n    amount: 1\n    start: 2023-01-015\n"))
	assert.Error(t, err)
}

func TestTOMLDecoder_UnknownKey(t *testing.T) {
	_, err := TOMLDecoder{}.Decode(strings.NewReader("[[items]]\nkind = \"goal\"\nname = \"x\"\namount = 1\nweight = 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weight")
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.IsType(t, YAMLDecoder{}, r.ForPath("catalog.yaml"))
	assert.IsType(t, YAMLDecoder{}, r.ForPath("dir/CATALOG.YML"))
	assert.IsType(t, TOMLDecoder{}, r.ForPath("catalog.toml"))
	assert.Nil(t, r.ForPath("catalog.json"))

	assert.Panics(t, func() { r.Register(YAMLDecoder{}) })
}

func TestLoad(t *testing.T) {
	items, err := Load(writeFile(t, "catalog.yaml", sampleYAML))
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, int64(-75), items[2].AmountOn(calendar.Date(2023, time.January, 27)), "fractions truncate toward zero")

	salary, ok := items[0].(*item.Incremental)
	require.True(t, ok)
	assert.Equal(t, int64(4560), salary.AmountOn(calendar.Date(2023, time.February, 25)))

	water, ok := items[1].(*item.Recurring)
	require.True(t, ok)
	assert.Equal(t, 2, water.Period)

	goals := item.Goals(items)
	require.Len(t, goals, 1)
	assert.Equal(t, "Goal (6): City Bike", goals[0].Label())
}

func TestLoad_TOML(t *testing.T) {
	items, err := Load(writeFile(t, "catalog.toml", sampleTOML))
	require.NoError(t, err)
	require.Len(t, items, 3)
	inc, ok := items[1].(*item.Incremental)
	require.True(t, ok)
	assert.Equal(t, int64(4060), inc.Amount)
	assert.Equal(t, 1, inc.Period)
	assert.Equal(t, DefaultIncreaseEvery, inc.IncreaseEvery)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "catalog.json", "{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")

	_, err = Load(writeFile(t, "catalog.yaml", "items:\n  - kind: weekly\n    name: x\n    amount: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 2")

	_, err = Load(writeFile(t, "catalog.yaml", "items:\n  - kind: goal\n    name: x\n    amount: lots\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	start := NewDate(2023, time.March, 1)
	tests := []struct {
		name  string
		entry Entry
		rule  int
	}{
		{"missing name", Entry{Kind: item.KindOneTime, Amount: NewAmount(1)}, 1},
		{"unknown kind", Entry{Kind: "weekly", Name: "x"}, 2},
		{"end without start", Entry{Kind: item.KindRecurring, Name: "x", End: start}, 3},
		{"end before start", Entry{Kind: item.KindRecurring, Name: "x", Start: start, End: NewDate(2023, time.February, 1)}, 4},
		{"negative period", Entry{Kind: item.KindRecurring, Name: "x", Start: start, EveryMonths: -1}, 5},
		{"negative increase interval", Entry{Kind: item.KindIncremental, Name: "x", Start: start, IncreaseEvery: -12}, 6},
		{"three decimals", Entry{Kind: item.KindOneTime, Name: "x", Amount: MustAmount("1.005")}, 7},
		{"three decimal increase", Entry{Kind: item.KindIncremental, Name: "x", Start: start, IncreaseAmount: MustAmount("0.125")}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate([]Entry{tt.entry})
			require.Len(t, errs, 1, "%v", errs)
			assert.Equal(t, tt.rule, errs[0].Rule)
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	entries := []Entry{
		{Kind: item.KindRecurring, Name: "Undated", Amount: NewAmount(-5)},
		{Kind: item.KindRecurring, Name: "Same day", Amount: NewAmount(-5), Start: NewDate(2023, time.March, 1), End: NewDate(2023, time.March, 1)},
		{Kind: item.KindGoal, Name: "Deadline", Amount: MustAmount("-10.50"), Start: NewDate(2023, time.March, 1)},
	}
	assert.Empty(t, Validate(entries))
}

func TestValidate_Intervals(t *testing.T) {
	start := NewDate(2023, time.March, 1)
	assert.Empty(t, Validate([]Entry{{Kind: item.KindIncremental, Name: "defaults", Start: start}}), "zero means default")

	errs := Validate([]Entry{{Kind: item.KindIncremental, Name: "x", Start: start, EveryMonths: -1, IncreaseEvery: -2}})
	require.Len(t, errs, 2)
	assert.Equal(t, "rule 5 [x]: every_months must not be negative, got -1", errs[0].Error())
	assert.Equal(t, "rule 6 [x]: increase_every must not be negative, got -2", errs[1].Error())
}

func TestValidationError_Error(t *testing.T) {
	errs := Validate([]Entry{{Kind: item.KindOneTime}})
	require.Len(t, errs, 1)
	assert.Equal(t, "rule 1 [#1]: name is required", errs[0].Error())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)
	assert.Contains(t, contents, "amount: 4060\n")
	assert.Contains(t, contents, "amount: 1870.85\n")
	assert.Contains(t, contents, "start: 2022-02-25\n")
	assert.NotContains(t, contents, "end: \"\"")

	got, err := ReadEntries(path)
	require.NoError(t, err)
	want := Default()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Kind, got[i].Kind, want[i].Name)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.True(t, want[i].Amount.Equal(got[i].Amount.Decimal), want[i].Name)
		assert.True(t, want[i].IncreaseAmount.Equal(got[i].IncreaseAmount.Decimal), want[i].Name)
		assert.True(t, want[i].Start.Equal(got[i].Start.Time), want[i].Name)
		assert.True(t, want[i].End.Equal(got[i].End.Time), want[i].Name)
		assert.Equal(t, want[i].EveryMonths, got[i].EveryMonths)
		assert.Equal(t, want[i].IncreaseEvery, got[i].IncreaseEvery)
		assert.Equal(t, want[i].Importance, got[i].Importance)
	}
}

func TestDefaultProjects(t *testing.T) {
	items, err := Build(Default())
	require.NoError(t, err)
	assert.Len(t, item.Goals(items), 6)

	p := &ledger.Projector{Policy: ledger.Policy{Minimum: 500}, Now: calendar.Date(2023, time.January, 1)}
	l, err := p.Project(items, 8, 300)
	require.NoError(t, err)
	assert.Equal(t, 300, l.Len(), "row cap reached first")
	assert.Equal(t, -1, l.Verify())

	l, err = p.Project(items, 8, 0)
	require.NoError(t, err)
	assert.Equal(t, -1, l.Verify())
	last, ok := l.Last()
	require.True(t, ok)
	assert.True(t, last.Date.Before(calendar.Date(2031, time.January, 1)), "horizon reached, last row %s", calendar.Format(last.Date))
	assert.True(t, last.Date.After(calendar.Date(2030, time.November, 30)))
}
