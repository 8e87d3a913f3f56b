package team

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Adprivat/praxislabor/internal"
	"github.com/Adprivat/praxislabor/internal/auth"
	scheduleDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/schedule"
	userDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/user"
	"github.com/Adprivat/praxislabor/internal/timeutil"
)

type EntryActivity struct {
	UserID     string
	EntryCount int64
	LastStart  *time.Time
}

type RepositoryAPI interface {
	// ListEmployees returns EMPLOYEE rows, active and inactive,
	// ordered by name ascending.
	ListEmployees() ([]*userDatamodel.User, error)
	// EntryActivity aggregates non-deleted entry counts and newest
	// entry start per user.
	EntryActivity(userIDs []string) ([]*EntryActivity, error)
	GetUser(id string) (*userDatamodel.User, error)
	EmailExists(email string) (bool, error)
	// CreateWithSchedule inserts the user and their initial work
	// schedule in one transaction.
	CreateWithSchedule(user *userDatamodel.User, schedule *scheduleDatamodel.WorkSchedule) error
	// Deactivate clears the password hash and flags the row inactive.
	Deactivate(id string) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// TeamOverview lists all employee accounts split into active and
// inactive, annotated with their logging activity.
func (s *Service) TeamOverview() (*Overview, error) {
	employees, err := s.repo.ListEmployees()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}

	userIDs := make([]string, 0, len(employees))
	for _, employee := range employees {
		userIDs = append(userIDs, employee.ID)
	}

	activity, err := s.repo.EntryActivity(userIDs)
	if err != nil {
		s.logger.Error("failed to load entry activity", "error", err)
		return nil, err
	}
	activityByUser := make(map[string]*EntryActivity, len(activity))
	for _, a := range activity {
		activityByUser[a.UserID] = a
	}

	overview := &Overview{
		Active:   []Member{},
		Inactive: []Member{},
	}
	for _, employee := range employees {
		member := Member{
			ID:        employee.ID,
			Name:      employee.Name,
			Email:     employee.Email,
			IsActive:  employee.IsActive,
			CreatedAt: employee.CreatedAt.UTC().Format(time.RFC3339),
		}
		if a, ok := activityByUser[employee.ID]; ok {
			member.EntryCount = a.EntryCount
			if a.LastStart != nil {
				lastActive := a.LastStart.UTC().Format(time.RFC3339)
				member.LastActiveAt = &lastActive
			}
		}
		if member.IsActive {
			overview.Active = append(overview.Active, member)
		} else {
			overview.Inactive = append(overview.Inactive, member)
		}
	}

	return overview, nil
}

// CreateEmployee provisions a new account together with its initial
// 40-hour work schedule, both in a single transaction.
func (s *Service) CreateEmployee(actor *auth.User, dto CreateEmployeeDTO) (*Member, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	email := dto.NormalizedEmail()
	taken, err := s.repo.EmailExists(email)
	if err != nil {
		s.logger.Error("failed to check email uniqueness", "error", err)
		return nil, err
	}
	if taken {
		return nil, internal.ErrEmailTaken
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	now := time.Now()
	user := &userDatamodel.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         dto.NormalizedName(),
		PasswordHash: &hash,
		Role:         userDatamodel.RoleEmployee,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	schedule := &scheduleDatamodel.WorkSchedule{
		UserID:        user.ID,
		ValidFrom:     timeutil.StartOfDay(now),
		WeeklyMinutes: defaultWeeklyMinutes,
		CreatedByID:   &actor.ID,
		CreatedAt:     now,
	}

	if err := s.repo.CreateWithSchedule(user, schedule); err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", email)
		return nil, err
	}
	s.logger.Info("employee created", "user_id", user.ID, "created_by", actor.ID)

	return &Member{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		IsActive:  true,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// DeactivateEmployee locks an account out without deleting its rows,
// so historic entries keep their author.
func (s *Service) DeactivateEmployee(actor *auth.User, userID string) error {
	if userID == actor.ID {
		return internal.ErrSelfDeactivate
	}

	user, err := s.repo.GetUser(userID)
	if err != nil || user == nil {
		return internal.ErrUserNotFound
	}
	if user.Role != userDatamodel.RoleEmployee {
		return internal.ErrNotEmployee
	}

	if err := s.repo.Deactivate(userID); err != nil {
		s.logger.Error("failed to deactivate employee", "error", err, "user_id", userID)
		return err
	}
	s.logger.Info("employee deactivated", "user_id", userID, "deactivated_by", actor.ID)
	return nil
}
