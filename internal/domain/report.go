package domain

import "time"

// ReportEntry is one tracked work interval from the time-control report.
type ReportEntry struct {
	WorkStart time.Time `json:"work_start"`
	WorkEnd   time.Time `json:"work_end"`
}

// Object is a work object registered in the remote service.
type Object struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	City        string `json:"city"`
	CountReport int    `json:"count_report"`
}

// ObjectDraft is the payload for creating a new work object.
type ObjectDraft struct {
	Name string `json:"name"`
	City string `json:"city"`
}

// ProfitReport aggregates object finances over a requested period.
type ProfitReport struct {
	ObjectID int64   `json:"object_id"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}
