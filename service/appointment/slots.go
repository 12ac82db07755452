package appointment

import (
	"fmt"
	"time"
)

// Slots are the fixed candidate start times offered every working day.
var Slots = []string{"09:00", "10:00", "11:00", "12:00", "15:00", "16:00", "17:00"}

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

// Dates are interpreted in the server's local zone, the same zone the
// MySQL driver converts datetimes to (loc=Local in the DSN). Parsing in
// UTC instead would shift stored times and misalign slot keys.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func ParseDateTime(fecha, hora string) (time.Time, error) {
	t, err := time.ParseInLocation(dateTimeLayout, fecha+" "+hora, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q, expected YYYY-MM-DD and HH:MM", fecha, hora)
	}
	return t, nil
}

func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WithinBusinessHours reports whether t falls inside 09:00-13:00 or
// 15:00-18:00, top-of-hour boundary included.
func WithinBusinessHours(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	return (m >= 9*60 && m <= 13*60) || (m >= 15*60 && m <= 18*60)
}

type SlotAvailability struct {
	Hora      string `json:"hora"`
	Available bool   `json:"available"`
}

// ComputeAvailability reports each fixed slot against the set of occupied
// "HH:MM" times for the requested day.
func ComputeAvailability(occupied map[string]bool) []SlotAvailability {
	out := make([]SlotAvailability, 0, len(Slots))
	for _, s := range Slots {
		out = append(out, SlotAvailability{Hora: s, Available: !occupied[s]})
	}
	return out
}
