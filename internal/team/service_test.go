package team_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/Adprivat/praxislabor/internal"
	"github.com/Adprivat/praxislabor/internal/auth"
	scheduleDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/schedule"
	userDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/user"
	"github.com/Adprivat/praxislabor/internal/team"
)

func TestTeam(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Team Suite")
}

type mockTeamRepository struct {
	employees   []*userDatamodel.User
	activity    []*team.EntryActivity
	usersByID   map[string]*userDatamodel.User
	takenEmails map[string]bool

	createdUser     *userDatamodel.User
	createdSchedule *scheduleDatamodel.WorkSchedule
	deactivatedID   string

	listError   error
	createError error
}

func newMockTeamRepository() *mockTeamRepository {
	return &mockTeamRepository{
		usersByID:   make(map[string]*userDatamodel.User),
		takenEmails: make(map[string]bool),
	}
}

func (m *mockTeamRepository) ListEmployees() ([]*userDatamodel.User, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.employees, nil
}

func (m *mockTeamRepository) EntryActivity(userIDs []string) ([]*team.EntryActivity, error) {
	return m.activity, nil
}

func (m *mockTeamRepository) GetUser(id string) (*userDatamodel.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}

func (m *mockTeamRepository) EmailExists(email string) (bool, error) {
	return m.takenEmails[email], nil
}

func (m *mockTeamRepository) CreateWithSchedule(user *userDatamodel.User, schedule *scheduleDatamodel.WorkSchedule) error {
	if m.createError != nil {
		return m.createError
	}
	m.createdUser = user
	m.createdSchedule = schedule
	return nil
}

func (m *mockTeamRepository) Deactivate(id string) error {
	m.deactivatedID = id
	return nil
}

var _ = Describe("Team Service", func() {
	var (
		repo    *mockTeamRepository
		service *team.Service
		manager *auth.User
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = newMockTeamRepository()
		service = team.NewService(repo, bcrypt.MinCost, logger)
		manager = &auth.User{ID: "user-manager", Role: userDatamodel.RoleManager, IsActive: true}
	})

	validDTO := func() team.CreateEmployeeDTO {
		return team.CreateEmployeeDTO{
			Name:            "  Anna Acker ",
			Email:           "Anna@Example.com",
			Password:        "superSecret1",
			ConfirmPassword: "superSecret1",
		}
	}

	Describe("TeamOverview", func() {
		It("splits employees into active and inactive", func() {
			lastStart := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
			repo.employees = []*userDatamodel.User{
				{ID: "u1", Name: "Anna", Email: "anna@example.com", IsActive: true},
				{ID: "u2", Name: "Ben", Email: "ben@example.com", IsActive: false},
			}
			repo.activity = []*team.EntryActivity{
				{UserID: "u1", EntryCount: 12, LastStart: &lastStart},
			}

			overview, err := service.TeamOverview()
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.Active).To(HaveLen(1))
			Expect(overview.Inactive).To(HaveLen(1))
			Expect(overview.Active[0].EntryCount).To(Equal(int64(12)))
			Expect(*overview.Active[0].LastActiveAt).To(Equal("2024-03-04T09:00:00Z"))
			Expect(overview.Inactive[0].EntryCount).To(BeZero())
			Expect(overview.Inactive[0].LastActiveAt).To(BeNil())
		})

		It("returns empty slices for an empty roster", func() {
			overview, err := service.TeamOverview()
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.Active).To(BeEmpty())
			Expect(overview.Inactive).To(BeEmpty())
		})
	})

	Describe("CreateEmployee", func() {
		It("creates the user and a default schedule together", func() {
			member, err := service.CreateEmployee(manager, validDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(member.Name).To(Equal("Anna Acker"))
			Expect(member.Email).To(Equal("anna@example.com"))
			Expect(member.IsActive).To(BeTrue())

			Expect(repo.createdUser).NotTo(BeNil())
			Expect(repo.createdUser.Role).To(Equal(userDatamodel.RoleEmployee))
			Expect(repo.createdUser.PasswordHash).NotTo(BeNil())
			Expect(*repo.createdUser.PasswordHash).NotTo(Equal("superSecret1"))

			Expect(repo.createdSchedule).NotTo(BeNil())
			Expect(repo.createdSchedule.WeeklyMinutes).To(Equal(2400))
			Expect(repo.createdSchedule.UserID).To(Equal(repo.createdUser.ID))
			Expect(*repo.createdSchedule.CreatedByID).To(Equal(manager.ID))
			Expect(repo.createdSchedule.ValidFrom.Hour()).To(BeZero())
		})

		It("stores a verifiable bcrypt hash", func() {
			_, err := service.CreateEmployee(manager, validDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(auth.VerifyPassword(*repo.createdUser.PasswordHash, "superSecret1")).To(Succeed())
		})

		It("rejects mismatched passwords", func() {
			dto := validDTO()
			dto.ConfirmPassword = "different1234"
			_, err := service.CreateEmployee(manager, dto)
			Expect(err).To(HaveOccurred())
			Expect(repo.createdUser).To(BeNil())
		})

		It("rejects short passwords", func() {
			dto := validDTO()
			dto.Password = "short"
			dto.ConfirmPassword = "short"
			_, err := service.CreateEmployee(manager, dto)
			Expect(err).To(HaveOccurred())
		})

		It("rejects an already taken email", func() {
			repo.takenEmails["anna@example.com"] = true
			_, err := service.CreateEmployee(manager, validDTO())
			Expect(err).To(MatchError(internal.ErrEmailTaken))
		})
	})

	Describe("DeactivateEmployee", func() {
		BeforeEach(func() {
			repo.usersByID["u1"] = &userDatamodel.User{ID: "u1", Role: userDatamodel.RoleEmployee, IsActive: true}
			repo.usersByID["m1"] = &userDatamodel.User{ID: "m1", Role: userDatamodel.RoleManager, IsActive: true}
		})

		It("deactivates an employee", func() {
			Expect(service.DeactivateEmployee(manager, "u1")).To(Succeed())
			Expect(repo.deactivatedID).To(Equal("u1"))
		})

		It("refuses to deactivate the caller", func() {
			err := service.DeactivateEmployee(manager, manager.ID)
			Expect(err).To(MatchError(internal.ErrSelfDeactivate))
			Expect(repo.deactivatedID).To(BeEmpty())
		})

		It("refuses to deactivate non-employees", func() {
			err := service.DeactivateEmployee(manager, "m1")
			Expect(err).To(MatchError(internal.ErrNotEmployee))
		})

		It("fails for unknown users", func() {
			err := service.DeactivateEmployee(manager, "missing")
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})
	})
})
