package management

import (
	"log/slog"
	"math"
	"sort"
	"time"

	scheduleDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/schedule"
	timeentryDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/timeentry"
	userDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/user"
	"github.com/Adprivat/praxislabor/internal/timeutil"
)

type RepositoryAPI interface {
	// EntriesInRange returns non-deleted entries whose start falls
	// within [start, end], newest first, with user and block joins
	// preloaded. userID empty means all users.
	EntriesInRange(start, end time.Time, userID string) ([]*timeentryDatamodel.TimeEntry, error)
	// SchedulesForUsers returns schedule rows for the given users
	// ordered by valid_from descending.
	SchedulesForUsers(userIDs []string) ([]*scheduleDatamodel.WorkSchedule, error)
	ActiveUsers() ([]*userDatamodel.User, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetOverview folds the entries of the requested range into totals,
// per-user, per-category and per-block breakdowns. The fold is a pure
// read: identical inputs always produce the identical snapshot.
func (s *Service) GetOverview(query OverviewQuery) (*Overview, error) {
	entries, err := s.repo.EntriesInRange(query.RangeStart, query.RangeEnd, query.UserID)
	if err != nil {
		s.logger.Error("failed to load entries for overview", "error", err)
		return nil, err
	}

	userIDs := make([]string, 0, len(entries))
	seenUsers := make(map[string]bool)
	for _, entry := range entries {
		if !seenUsers[entry.UserID] {
			seenUsers[entry.UserID] = true
			userIDs = append(userIDs, entry.UserID)
		}
	}

	schedules, err := s.repo.SchedulesForUsers(userIDs)
	if err != nil {
		s.logger.Error("failed to load schedules for overview", "error", err)
		return nil, err
	}

	// Rows arrive valid_from descending, so the first row per user at
	// or before the range end is that user's active schedule. Later
	// rows reflect past contracts and are skipped.
	activeSchedules := make(map[string]*scheduleDatamodel.WorkSchedule)
	for _, schedule := range schedules {
		if schedule.ValidFrom.After(query.RangeEnd) {
			continue
		}
		if _, ok := activeSchedules[schedule.UserID]; !ok {
			activeSchedules[schedule.UserID] = schedule
		}
	}

	totals := Totals{}
	perUser := make(map[string]*UserSummary)
	perCategory := make(map[int64]*CategorySummary)
	perBlock := make(map[int64]*BlockSummary)
	entryDetails := make([]EntryDetail, 0, len(entries))

	for _, entry := range entries {
		duration := entryDuration(entry)
		block := entry.Block
		isBillable := block != nil && block.IsBillable

		detail := EntryDetail{
			ID:              entry.ID,
			UserID:          entry.UserID,
			BlockLabel:      UnknownBlockLabel,
			CategoryName:    UnassignedCategory,
			Start:           entry.Start.UTC().Format(time.RFC3339),
			DurationMinutes: duration,
			Note:            entry.Note,
			IsBillable:      isBillable,
		}
		if entry.User != nil {
			detail.UserName = entry.User.Name
		}
		if entry.End != nil {
			endISO := entry.End.UTC().Format(time.RFC3339)
			detail.End = &endISO
		}
		if block != nil {
			blockID := block.ID
			detail.BlockID = &blockID
			detail.BlockLabel = block.Label
			if block.Category != nil {
				detail.CategoryName = block.Category.Name
			}
		}
		entryDetails = append(entryDetails, detail)

		totals.TotalMinutes += duration
		if isBillable {
			totals.BillableMinutes += duration
		}

		userSummary, ok := perUser[entry.UserID]
		if !ok {
			userSummary = &UserSummary{UserID: entry.UserID}
			if entry.User != nil {
				userSummary.Name = entry.User.Name
				userSummary.Email = entry.User.Email
			}
			perUser[entry.UserID] = userSummary
		}
		userSummary.TotalMinutes += duration
		if isBillable {
			userSummary.BillableMinutes += duration
		}

		if block != nil && block.Category != nil {
			categorySummary, ok := perCategory[block.Category.ID]
			if !ok {
				categorySummary = &CategorySummary{
					CategoryID: block.Category.ID,
					Name:       block.Category.Name,
				}
				perCategory[block.Category.ID] = categorySummary
			}
			categorySummary.Minutes += duration
			if isBillable {
				categorySummary.BillableMinutes += duration
			}
		}

		if block != nil {
			blockSummary, ok := perBlock[block.ID]
			if !ok {
				blockSummary = &BlockSummary{
					BlockID:      block.ID,
					Label:        block.Label,
					CategoryName: "-",
				}
				if block.Category != nil {
					blockSummary.CategoryName = block.Category.Name
				}
				perBlock[block.ID] = blockSummary
			}
			blockSummary.Minutes += duration
			if isBillable {
				blockSummary.BillableMinutes += duration
			}
		}
	}

	totals.NonBillableMinutes = totals.TotalMinutes - totals.BillableMinutes

	workdays := timeutil.CountWorkdays(query.RangeStart, query.RangeEnd)
	for _, summary := range perUser {
		schedule, ok := activeSchedules[summary.UserID]
		if !ok {
			// Without a schedule every logged minute counts as
			// overtime rather than being measured against zero.
			summary.ExpectedMinutes = 0
			summary.OvertimeMinutes = summary.TotalMinutes
			continue
		}
		dailyTarget := float64(schedule.WeeklyMinutes) / 5
		summary.ExpectedMinutes = int(math.Round(float64(workdays) * dailyTarget))
		summary.OvertimeMinutes = summary.TotalMinutes - summary.ExpectedMinutes
	}

	activeUsers, err := s.repo.ActiveUsers()
	if err != nil {
		s.logger.Error("failed to load active users for overview", "error", err)
		return nil, err
	}
	userOptions := make([]UserOption, 0, len(activeUsers))
	for _, u := range activeUsers {
		userOptions = append(userOptions, UserOption{ID: u.ID, Name: u.Name, Email: u.Email})
	}

	perUserList := make([]UserSummary, 0, len(perUser))
	for _, summary := range perUser {
		perUserList = append(perUserList, *summary)
	}
	sort.Slice(perUserList, func(i, j int) bool {
		if perUserList[i].TotalMinutes != perUserList[j].TotalMinutes {
			return perUserList[i].TotalMinutes > perUserList[j].TotalMinutes
		}
		return perUserList[i].UserID < perUserList[j].UserID
	})

	perCategoryList := make([]CategorySummary, 0, len(perCategory))
	for _, summary := range perCategory {
		perCategoryList = append(perCategoryList, *summary)
	}
	sort.Slice(perCategoryList, func(i, j int) bool {
		if perCategoryList[i].Minutes != perCategoryList[j].Minutes {
			return perCategoryList[i].Minutes > perCategoryList[j].Minutes
		}
		return perCategoryList[i].CategoryID < perCategoryList[j].CategoryID
	})

	perBlockList := make([]BlockSummary, 0, len(perBlock))
	for _, summary := range perBlock {
		perBlockList = append(perBlockList, *summary)
	}
	sort.Slice(perBlockList, func(i, j int) bool {
		if perBlockList[i].Minutes != perBlockList[j].Minutes {
			return perBlockList[i].Minutes > perBlockList[j].Minutes
		}
		return perBlockList[i].BlockID < perBlockList[j].BlockID
	})
	if len(perBlockList) > topBlocksLimit {
		perBlockList = perBlockList[:topBlocksLimit]
	}

	return &Overview{
		RangeStart:  query.RangeStart.UTC().Format(time.RFC3339),
		RangeEnd:    query.RangeEnd.UTC().Format(time.RFC3339),
		Totals:      totals,
		PerUser:     perUserList,
		PerCategory: perCategoryList,
		PerBlock:    perBlockList,
		Entries:     entryDetails,
		Users:       userOptions,
	}, nil
}

// entryDuration prefers the stored minutes and falls back to deriving
// them from the interval for rows persisted without one.
func entryDuration(entry *timeentryDatamodel.TimeEntry) int {
	if entry.DurationMinutes != nil {
		return *entry.DurationMinutes
	}
	return timeutil.DurationMinutes(entry.Start, entry.End)
}
