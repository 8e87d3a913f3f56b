package management

import "time"

// Labels used when an entry's block or category join is missing. The
// entry still counts towards totals, but analytics buckets skip it.
const (
	UnknownBlockLabel  = "Unbekannt"
	UnassignedCategory = "Nicht zugewiesen"
)

// topBlocksLimit caps the perBlock breakdown; the full sorted list is
// computed first and truncated afterwards.
const topBlocksLimit = 15

type Totals struct {
	TotalMinutes       int `json:"totalMinutes"`
	BillableMinutes    int `json:"billableMinutes"`
	NonBillableMinutes int `json:"nonBillableMinutes"`
}

type UserSummary struct {
	UserID          string `json:"userId"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	TotalMinutes    int    `json:"totalMinutes"`
	BillableMinutes int    `json:"billableMinutes"`
	ExpectedMinutes int    `json:"expectedMinutes"`
	OvertimeMinutes int    `json:"overtimeMinutes"`
}

type CategorySummary struct {
	CategoryID      int64  `json:"categoryId"`
	Name            string `json:"name"`
	Minutes         int    `json:"minutes"`
	BillableMinutes int    `json:"billableMinutes"`
}

type BlockSummary struct {
	BlockID         int64  `json:"blockId"`
	Label           string `json:"label"`
	CategoryName    string `json:"categoryName"`
	Minutes         int    `json:"minutes"`
	BillableMinutes int    `json:"billableMinutes"`
}

type EntryDetail struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	UserName        string  `json:"userName"`
	BlockID         *int64  `json:"blockId"`
	BlockLabel      string  `json:"blockLabel"`
	CategoryName    string  `json:"categoryName"`
	Start           string  `json:"start"`
	End             *string `json:"end"`
	DurationMinutes int     `json:"durationMinutes"`
	Note            *string `json:"note"`
	IsBillable      bool    `json:"isBillable"`
}

type UserOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Overview is the aggregated management snapshot for one time range.
// All minute figures are integers; overtime may be negative.
type Overview struct {
	RangeStart  string            `json:"rangeStart"`
	RangeEnd    string            `json:"rangeEnd"`
	Totals      Totals            `json:"totals"`
	PerUser     []UserSummary     `json:"perUser"`
	PerCategory []CategorySummary `json:"perCategory"`
	PerBlock    []BlockSummary    `json:"perBlock"`
	Entries     []EntryDetail     `json:"entries"`
	Users       []UserOption      `json:"users"`
}

// OverviewQuery narrows the aggregation. UserID empty means all users.
type OverviewQuery struct {
	UserID     string
	RangeStart time.Time
	RangeEnd   time.Time
}
