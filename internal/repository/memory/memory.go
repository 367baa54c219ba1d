// Package memory provides map-backed implementations of the repository
// interfaces. They share the gorm.ErrRecordNotFound sentinel with the GORM
// repositories so the service layer is oblivious to the backend. Used by
// tests and DB_DRIVER=memory.
package memory

import "time"

// touch returns a timestamp strictly after prev, so updated_at always
// increases across updates even within clock resolution.
func touch(prev time.Time) time.Time {
	now := time.Now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}
