package core

import (
	"fmt"
	"time"
)

// TimeOfDay is a time-of-day component (hours/minutes/seconds, no date)
// used by Service's time-based price brackets, which repeat daily.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// TimeOfDayFromTime extracts the time-of-day component of t.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Before implements Ordered[TimeOfDay].
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds() < other.seconds()
}

// String renders as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}
