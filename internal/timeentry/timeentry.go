package timeentry

import (
	"time"

	timeentryDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/timeentry"
	"github.com/Adprivat/praxislabor/internal/timeutil"
)

// Labels shown when an entry's block or category no longer resolves.
const (
	UnknownBlockLabel  = "Unbekannt"
	UnassignedCategory = "Nicht zugewiesen"
)

type Entry struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	BlockID         *int64     `json:"block_id"`
	BlockLabel      string     `json:"block_label"`
	CategoryName    string     `json:"category_name"`
	IsBillable      bool       `json:"is_billable"`
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end"`
	DurationMinutes int        `json:"duration_minutes"`
	DurationLabel   string     `json:"duration_label"`
	Note            *string    `json:"note,omitempty"`
	Source          string     `json:"source"`
}

type Favorite struct {
	ID         int64      `json:"id"`
	BlockID    int64      `json:"block_id"`
	BlockLabel string     `json:"block_label"`
	IsBillable bool       `json:"is_billable"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

// FromDataModel flattens an entry row and its (possibly missing) block
// join into the API shape. A missing block renders the fallback labels
// and is never billable.
func FromDataModel(e *timeentryDatamodel.TimeEntry) *Entry {
	duration := 0
	if e.DurationMinutes != nil {
		duration = *e.DurationMinutes
	} else {
		duration = timeutil.DurationMinutes(e.Start, e.End)
	}

	entry := &Entry{
		ID:              e.ID,
		UserID:          e.UserID,
		BlockLabel:      UnknownBlockLabel,
		CategoryName:    UnassignedCategory,
		Start:           e.Start,
		End:             e.End,
		DurationMinutes: duration,
		DurationLabel:   timeutil.HoursLabel(duration),
		Note:            e.Note,
		Source:          e.Source,
	}

	if e.Block != nil {
		blockID := e.Block.ID
		entry.BlockID = &blockID
		entry.BlockLabel = e.Block.Label
		entry.IsBillable = e.Block.IsBillable
		if e.Block.Category != nil {
			entry.CategoryName = e.Block.Category.Name
		}
	}
	return entry
}

func FavoriteFromDataModel(f *timeentryDatamodel.FavoriteBlock) *Favorite {
	favorite := &Favorite{
		ID:         f.ID,
		BlockID:    f.BlockID,
		BlockLabel: UnknownBlockLabel,
		LastUsedAt: f.LastUsedAt,
	}
	if f.Block != nil {
		favorite.BlockLabel = f.Block.Label
		favorite.IsBillable = f.Block.IsBillable
	}
	return favorite
}
