package timeentry

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Adprivat/praxislabor/internal"
	catalogDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/catalog"
	timeentryDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/timeentry"
	"github.com/Adprivat/praxislabor/internal/core/events"
	"github.com/Adprivat/praxislabor/internal/timeutil"
)

const defaultDashboardDays = 7

type RepositoryAPI interface {
	GetBlock(id int64) (*catalogDatamodel.ActivityBlock, error)
	GetByID(id string) (*timeentryDatamodel.TimeEntry, error)
	// CreateWithFavorite inserts the entry and upserts the owner's
	// favorite marker for the block in one transaction.
	CreateWithFavorite(entry *timeentryDatamodel.TimeEntry) error
	UpdateWithFavorite(entry *timeentryDatamodel.TimeEntry) error
	SoftDelete(id string, at time.Time) error
	ListForUser(userID string, since time.Time) ([]*timeentryDatamodel.TimeEntry, error)
	ListFavorites(userID string) ([]*timeentryDatamodel.FavoriteBlock, error)
	AppendHistory(record *timeentryDatamodel.TimeEntryHistory) error
}

type Service struct {
	repo   RepositoryAPI
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

func (s *Service) CreateEntry(userID string, dto EntryFormDTO) (*Entry, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	block, err := s.repo.GetBlock(dto.BlockID)
	if err != nil || block == nil {
		return nil, internal.ErrBlockNotFound
	}
	if !block.Active {
		return nil, internal.NewValidationError("activity block is inactive", internal.ErrCodeInvalidBlock)
	}

	start := dto.StartTime()
	end := dto.EndTime()
	duration := timeutil.DurationMinutes(start, end)

	record := &timeentryDatamodel.TimeEntry{
		ID:              uuid.NewString(),
		UserID:          userID,
		BlockID:         dto.BlockID,
		Start:           start,
		End:             end,
		DurationMinutes: &duration,
		Note:            trimmedNote(dto.Note),
		Source:          dto.ResolvedSource(),
	}

	if err := s.repo.CreateWithFavorite(record); err != nil {
		s.logger.Error("failed to create time entry", "error", err, "user_id", userID, "block_id", dto.BlockID)
		return nil, err
	}

	s.logger.Info("time entry created",
		"entry_id", record.ID,
		"user_id", userID,
		"block_id", dto.BlockID,
		"duration_minutes", duration)

	s.publishChange(events.EventTypeEntryCreated, record, userID)

	record.Block = block
	return FromDataModel(record), nil
}

func (s *Service) UpdateEntry(entryID, actorID string, actorIsAdmin bool, dto EntryFormDTO) (*Entry, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	record, err := s.repo.GetByID(entryID)
	if err != nil || record == nil || record.DeletedAt != nil {
		return nil, internal.ErrEntryNotFound
	}
	if record.UserID != actorID && !actorIsAdmin {
		s.logger.Warn("entry update denied", "entry_id", entryID, "actor_id", actorID, "owner_id", record.UserID)
		return nil, internal.ErrNotEntryOwner
	}

	block, err := s.repo.GetBlock(dto.BlockID)
	if err != nil || block == nil {
		return nil, internal.ErrBlockNotFound
	}

	start := dto.StartTime()
	end := dto.EndTime()
	duration := timeutil.DurationMinutes(start, end)

	record.BlockID = dto.BlockID
	record.Start = start
	record.End = end
	record.DurationMinutes = &duration
	record.Note = trimmedNote(dto.Note)
	record.EditedByID = &actorID
	if record.UserID != actorID {
		record.Source = timeentryDatamodel.SourceAdminAdjustment
	}

	if err := s.repo.UpdateWithFavorite(record); err != nil {
		s.logger.Error("failed to update time entry", "error", err, "entry_id", entryID)
		return nil, err
	}

	s.logger.Info("time entry updated", "entry_id", entryID, "actor_id", actorID, "duration_minutes", duration)

	s.publishChange(events.EventTypeEntryUpdated, record, actorID)

	record.Block = block
	return FromDataModel(record), nil
}

func (s *Service) DeleteEntry(entryID, actorID string, actorIsAdmin bool) error {
	record, err := s.repo.GetByID(entryID)
	if err != nil || record == nil || record.DeletedAt != nil {
		return internal.ErrEntryNotFound
	}
	if record.UserID != actorID && !actorIsAdmin {
		s.logger.Warn("entry delete denied", "entry_id", entryID, "actor_id", actorID, "owner_id", record.UserID)
		return internal.ErrNotEntryOwner
	}

	now := time.Now()
	if err := s.repo.SoftDelete(entryID, now); err != nil {
		s.logger.Error("failed to soft-delete time entry", "error", err, "entry_id", entryID)
		return err
	}

	s.logger.Info("time entry deleted", "entry_id", entryID, "actor_id", actorID)

	record.DeletedAt = &now
	s.publishChange(events.EventTypeEntryDeleted, record, actorID)
	return nil
}

// ListRecent returns the caller's non-deleted entries for the dashboard
// window, newest first.
func (s *Service) ListRecent(userID string, days int) ([]*Entry, error) {
	if days <= 0 {
		days = defaultDashboardDays
	}
	since := timeutil.StartOfDay(time.Now()).AddDate(0, 0, -(days - 1))

	rows, err := s.repo.ListForUser(userID, since)
	if err != nil {
		s.logger.Error("failed to list time entries", "error", err, "user_id", userID)
		return nil, err
	}

	entries := make([]*Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, FromDataModel(row))
	}
	return entries, nil
}

func (s *Service) ListFavorites(userID string) ([]*Favorite, error) {
	rows, err := s.repo.ListFavorites(userID)
	if err != nil {
		s.logger.Error("failed to list favorites", "error", err, "user_id", userID)
		return nil, err
	}

	favorites := make([]*Favorite, 0, len(rows))
	for _, row := range rows {
		favorites = append(favorites, FavoriteFromDataModel(row))
	}
	return favorites, nil
}

func (s *Service) publishChange(eventType string, record *timeentryDatamodel.TimeEntry, actorID string) {
	if s.bus == nil {
		return
	}
	snapshot, err := json.Marshal(record)
	if err != nil {
		s.logger.Error("failed to serialize entry snapshot", "error", err, "entry_id", record.ID)
		return
	}
	event := events.NewEntryChangedEvent(eventType, record.ID, record.UserID, actorID, string(snapshot))
	if err := s.bus.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish entry event", "error", err, "entry_id", record.ID)
	}
}

func trimmedNote(note *string) *string {
	if note == nil || *note == "" {
		return nil
	}
	return note
}
