package domain

import (
	"time"
)

// DailyRecord represents one calendar day's aggregate customer satisfaction
// score together with the calendar attributes derived from its date.
// The date is the unique key: after a merge there is at most one record
// per calendar day.
type DailyRecord struct {
	Date              time.Time `json:"date" validate:"required"`
	SatisfactionScore float64   `json:"satisfaction_score" validate:"min=0,max=10"`
	Month             string    `json:"month"`      // e.g. "August 2025"
	MonthShort        string    `json:"month_short"` // e.g. "Aug"
	DayName           string    `json:"day_name"`   // e.g. "Tuesday"
	IsWeekend         bool      `json:"is_weekend"`
	ISOWeek           int       `json:"iso_week"`
}

// NewDailyRecord builds a DailyRecord for the given date and score,
// populating all derived calendar fields.
func NewDailyRecord(date time.Time, score float64) DailyRecord {
	_, week := date.ISOWeek()
	wd := date.Weekday()
	return DailyRecord{
		Date:              date,
		SatisfactionScore: score,
		Month:             date.Format("January 2006"),
		MonthShort:        date.Format("Jan"),
		DayName:           wd.String(),
		IsWeekend:         wd == time.Saturday || wd == time.Sunday,
		ISOWeek:           week,
	}
}

// DateKey returns the record's merge key.
func (r DailyRecord) DateKey() time.Time {
	return r.Date
}

// DailySummary represents aggregate statistics over a filtered daily view.
type DailySummary struct {
	Days            int     `json:"days"`
	AverageScore    float64 `json:"average_score"`
	DaysBelowTarget int     `json:"days_below_target"`
	BestScore       float64 `json:"best_score"`
	BestDate        string  `json:"best_date,omitempty"`
	WorstScore      float64 `json:"worst_score"`
	WorstDate       string  `json:"worst_date,omitempty"`
}

// DatasetOverview describes the merged dataset currently backing the
// dashboard views.
type DatasetOverview struct {
	MinDate       time.Time `json:"min_date"`
	MaxDate       time.Time `json:"max_date"`
	TotalDays     int       `json:"total_days"`
	TotalEvents   int       `json:"total_events"`
	UploadedFiles int       `json:"uploaded_files"`
}
