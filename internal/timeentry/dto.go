package timeentry

import (
	"errors"
	"fmt"
	"time"

	timeentryDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/timeentry"
)

type EntryFormDTO struct {
	BlockID int64   `json:"block_id"`
	Date    string  `json:"date"`  // 2006-01-02
	Start   string  `json:"start"` // 15:04
	End     *string `json:"end,omitempty"`
	Note    *string `json:"note,omitempty"`
	Source  string  `json:"source,omitempty"`
}

func (dto EntryFormDTO) Validate() error {
	if dto.BlockID <= 0 {
		return errors.New("block id is required")
	}
	if dto.Date == "" {
		return errors.New("date is required")
	}
	if dto.Start == "" {
		return errors.New("start time is required")
	}
	if _, err := combineDateTime(dto.Date, dto.Start); err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}
	if dto.End != nil {
		if _, err := combineDateTime(dto.Date, *dto.End); err != nil {
			return fmt.Errorf("invalid end: %w", err)
		}
	}
	switch dto.Source {
	case "", timeentryDatamodel.SourceManual, timeentryDatamodel.SourceQuickSelect:
	default:
		return errors.New("source must be MANUAL or QUICK_SELECT")
	}
	return nil
}

// StartTime resolves the combined date+time start timestamp. Validate
// must have passed first.
func (dto EntryFormDTO) StartTime() time.Time {
	t, _ := combineDateTime(dto.Date, dto.Start)
	return t
}

// EndTime resolves the optional end timestamp on the same date.
func (dto EntryFormDTO) EndTime() *time.Time {
	if dto.End == nil {
		return nil
	}
	t, _ := combineDateTime(dto.Date, *dto.End)
	return &t
}

func (dto EntryFormDTO) ResolvedSource() string {
	if dto.Source == "" {
		return timeentryDatamodel.SourceManual
	}
	return dto.Source
}

func combineDateTime(date, clock string) (time.Time, error) {
	return time.Parse(time.RFC3339, fmt.Sprintf("%sT%s:00Z", date, clock))
}
