package appointment

import (
	"testing"
	"time"
)

func TestComputeAvailabilityAllFree(t *testing.T) {
	slots := ComputeAvailability(nil)
	if len(slots) != 7 {
		t.Fatalf("expected 7 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if !s.Available {
			t.Fatalf("expected slot %s to be available", s.Hora)
		}
	}
}

func TestComputeAvailabilityMarksOccupied(t *testing.T) {
	occupied := map[string]bool{"09:00": true, "15:00": true}
	slots := ComputeAvailability(occupied)
	if len(slots) != 7 {
		t.Fatalf("expected 7 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if occupied[s.Hora] == s.Available {
			t.Fatalf("slot %s: expected available=%v, got %v", s.Hora, !occupied[s.Hora], s.Available)
		}
	}
}

func TestWithinBusinessHours(t *testing.T) {
	cases := []struct {
		hora string
		want bool
	}{
		{"08:59", false},
		{"09:00", true},
		{"12:30", true},
		{"13:00", true},
		{"13:01", false},
		{"14:59", false},
		{"15:00", true},
		{"17:45", true},
		{"18:00", true},
		{"18:01", false},
	}
	for _, c := range cases {
		ts, err := ParseDateTime("2024-01-15", c.hora)
		if err != nil {
			t.Fatalf("ParseDateTime(%q): %v", c.hora, err)
		}
		if got := WithinBusinessHours(ts); got != c.want {
			t.Errorf("WithinBusinessHours(%s) = %v, want %v", c.hora, got, c.want)
		}
	}
}

func TestIsBusinessDay(t *testing.T) {
	cases := []struct {
		fecha string
		want  bool
	}{
		{"2024-01-15", true},  // Monday
		{"2024-01-19", true},  // Friday
		{"2024-01-13", false}, // Saturday
		{"2024-01-14", false}, // Sunday
	}
	for _, c := range cases {
		d, err := ParseDate(c.fecha)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", c.fecha, err)
		}
		if got := IsBusinessDay(d); got != c.want {
			t.Errorf("IsBusinessDay(%s) = %v, want %v", c.fecha, got, c.want)
		}
	}
}

// The MySQL driver hands datetimes back converted to the server's local
// zone (loc=Local in the DSN). A cita booked at 09:00 must still key slot
// "09:00" after that round trip, on any host zone.
func TestAvailabilityKeyMatchesDriverZone(t *testing.T) {
	booked, err := ParseDateTime("2024-01-15", "09:00")
	if err != nil {
		t.Fatalf("ParseDateTime: %v", err)
	}

	fromDriver := booked.In(time.Local)
	occupied := map[string]bool{fromDriver.Format("15:04"): true}

	for _, s := range ComputeAvailability(occupied) {
		if s.Hora == "09:00" && s.Available {
			t.Fatalf("slot 09:00 reported available despite being booked")
		}
	}
}

func TestParseDateRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"", "15-01-2024", "2024/01/15", "not-a-date"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q): expected error", bad)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	ts, err := ParseDateTime("2024-01-15", "09:00")
	if err != nil {
		t.Fatalf("ParseDateTime: %v", err)
	}
	want := time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local)
	if !ts.Equal(want) {
		t.Fatalf("expected %v, got %v", want, ts)
	}
	if ts.Location() != time.Local {
		t.Fatalf("expected local-zone time, got %v", ts.Location())
	}

	if _, err := ParseDateTime("2024-01-15", "9am"); err == nil {
		t.Fatalf("expected error for malformed time")
	}
	if _, err := ParseDateTime("someday", "09:00"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}
