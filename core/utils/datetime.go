package utils

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

var (
	frenchWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
	frenchMonths   = [...]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"}
)

// FormatDateFR renders t as "samedi 1 juin 2026 à 10:00" in t's location.
func FormatDateFR(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d à %02d:%02d",
		frenchWeekdays[t.Weekday()], t.Day(), frenchMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// ParseDatetime reads a user supplied instant. Layouts without an offset, such as
// the browser datetime-local value, are read in loc.
func ParseDatetime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return dateparse.ParseIn(s, loc)
}
