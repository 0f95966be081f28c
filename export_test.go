package gpx

import "time"

// SetTimeNow replaces the clock used to stamp metadata and returns a func
// restoring it.
func SetTimeNow(now func() time.Time) (restore func()) {
	prev := timeNow
	timeNow = now
	return func() { timeNow = prev }
}
