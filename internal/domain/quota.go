package domain

import (
	"time"

	"github.com/google/uuid"
)

// DayLayout is the calendar-day key format for quota records.
const DayLayout = "2006-01-02"

// QuotaRecord counts a user's generation requests for one calendar day.
type QuotaRecord struct {
	UserID       uuid.UUID
	UsageDate    string
	RequestCount int
}

// DayOf returns the quota day key for t in UTC.
func DayOf(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
