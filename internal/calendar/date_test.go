package calendar

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseAndString(t *testing.T) {
	d, err := Parse("2026-03-09")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Year != 2026 || d.Month != time.March || d.Day != 9 {
		t.Errorf("parsed = %+v, want 2026-03-09", d)
	}
	if got := d.String(); got != "2026-03-09" {
		t.Errorf("String() = %q, want %q", got, "2026-03-09")
	}
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"", "2026-13-01", "09/03/2026", "tomorrow"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) expected error", s)
		}
	}
}

func TestAddDaysCrossesMonthAndYear(t *testing.T) {
	tests := []struct {
		start string
		n     int
		want  string
	}{
		{"2026-01-31", 1, "2026-02-01"},
		{"2026-12-31", 1, "2027-01-01"},
		{"2026-03-01", -1, "2026-02-28"},
		{"2028-03-01", -1, "2028-02-29"},
		{"2026-05-10", 0, "2026-05-10"},
	}
	for _, tt := range tests {
		got := MustParse(tt.start).AddDays(tt.n).String()
		if got != tt.want {
			t.Errorf("%s + %d = %s, want %s", tt.start, tt.n, got, tt.want)
		}
	}
}

func TestDaysSince(t *testing.T) {
	a := MustParse("2026-10-19")
	b := MustParse("2026-10-12")
	if got := a.DaysSince(b); got != 7 {
		t.Errorf("DaysSince = %d, want 7", got)
	}
	if got := b.DaysSince(a); got != -7 {
		t.Errorf("DaysSince = %d, want -7", got)
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := map[string]string{
		"2026-10-19": "2026-10-19", // Monday
		"2026-10-21": "2026-10-19",
		"2026-10-25": "2026-10-19", // Sunday
		"2026-10-26": "2026-10-26",
	}
	for in, want := range tests {
		if got := MustParse(in).StartOfWeek().String(); got != want {
			t.Errorf("StartOfWeek(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := time.Date(2026, 10, 20, 2, 0, 0, 0, time.UTC)
	if got := Of(ts.In(loc)).String(); got != "2026-10-19" {
		t.Errorf("Of in UTC-5 = %s, want 2026-10-19", got)
	}
	if got := Of(ts).String(); got != "2026-10-20" {
		t.Errorf("Of in UTC = %s, want 2026-10-20", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2026-10-19"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Date != MustParse("2026-10-19") {
		t.Errorf("date = %v, want 2026-10-19", payload.Date)
	}

	if err := json.Unmarshal([]byte(`{"date":"2026-10-19T23:30:00Z"}`), &payload); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if payload.Date != MustParse("2026-10-19") {
		t.Errorf("date from timestamp = %v, want 2026-10-19", payload.Date)
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"date":"2026-10-19"}` {
		t.Errorf("marshal = %s", out)
	}
}

func TestZeroDate(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Error("expected zero date")
	}
	out, _ := json.Marshal(d)
	if string(out) != "null" {
		t.Errorf("zero marshal = %s, want null", out)
	}
	v, err := d.Value()
	if err != nil || v != nil {
		t.Errorf("zero Value() = %v, %v; want nil, nil", v, err)
	}
}

func TestScan(t *testing.T) {
	var d Date
	if err := d.Scan("2026-10-19"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2026-10-19" {
		t.Errorf("scanned = %s", d)
	}
	if err := d.Scan([]byte("2026-01-02 00:00:00")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if d.String() != "2026-01-02" {
		t.Errorf("scanned = %s", d)
	}
	if err := d.Scan(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2026-02-03" {
		t.Errorf("scanned = %s", d)
	}
	if err := d.Scan(42); err == nil {
		t.Error("expected error for int")
	}
}
