package management_test

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	catalogDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/catalog"
	scheduleDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/schedule"
	timeentryDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/timeentry"
	userDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/user"
	"github.com/Adprivat/praxislabor/internal/management"
)

func TestManagement(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Management Suite")
}

type mockManagementRepository struct {
	entries        []*timeentryDatamodel.TimeEntry
	schedules      []*scheduleDatamodel.WorkSchedule
	users          []*userDatamodel.User
	entriesError   error
	schedulesError error
	usersError     error

	requestedUserIDs []string
}

func (m *mockManagementRepository) EntriesInRange(start, end time.Time, userID string) ([]*timeentryDatamodel.TimeEntry, error) {
	if m.entriesError != nil {
		return nil, m.entriesError
	}
	filtered := make([]*timeentryDatamodel.TimeEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		if userID != "" && entry.UserID != userID {
			continue
		}
		if entry.Start.Before(start) || entry.Start.After(end) {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered, nil
}

func (m *mockManagementRepository) SchedulesForUsers(userIDs []string) ([]*scheduleDatamodel.WorkSchedule, error) {
	if m.schedulesError != nil {
		return nil, m.schedulesError
	}
	m.requestedUserIDs = userIDs
	return m.schedules, nil
}

func (m *mockManagementRepository) ActiveUsers() ([]*userDatamodel.User, error) {
	if m.usersError != nil {
		return nil, m.usersError
	}
	return m.users, nil
}

func testUser(id, name, email string) *userDatamodel.User {
	return &userDatamodel.User{ID: id, Name: name, Email: email, Role: userDatamodel.RoleEmployee, IsActive: true}
}

func billableBlock(id int64, label string, category *catalogDatamodel.ActivityCategory) *catalogDatamodel.ActivityBlock {
	block := &catalogDatamodel.ActivityBlock{ID: id, Label: label, IsBillable: true, Active: true, Category: category}
	if category != nil {
		block.CategoryID = category.ID
	}
	return block
}

func internalBlock(id int64, label string, category *catalogDatamodel.ActivityCategory) *catalogDatamodel.ActivityBlock {
	block := billableBlock(id, label, category)
	block.IsBillable = false
	return block
}

func entryAt(id string, user *userDatamodel.User, block *catalogDatamodel.ActivityBlock, start time.Time, minutes int) *timeentryDatamodel.TimeEntry {
	end := start.Add(time.Duration(minutes) * time.Minute)
	entry := &timeentryDatamodel.TimeEntry{
		ID:              id,
		UserID:          user.ID,
		Start:           start,
		End:             &end,
		DurationMinutes: &minutes,
		Source:          timeentryDatamodel.SourceManual,
		User:            user,
		Block:           block,
	}
	if block != nil {
		entry.BlockID = block.ID
	}
	return entry
}

var _ = Describe("Management Service", func() {
	var (
		repo    *mockManagementRepository
		service *management.Service

		// Monday through Friday, five workdays.
		rangeStart = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
		rangeEnd   = time.Date(2024, 3, 8, 23, 59, 59, 0, time.UTC)

		treatment = &catalogDatamodel.ActivityCategory{ID: 1, Name: "Behandlung", Active: true}
		admin     = &catalogDatamodel.ActivityCategory{ID: 2, Name: "Verwaltung", Active: true}

		anna *userDatamodel.User
		ben  *userDatamodel.User
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = &mockManagementRepository{}
		service = management.NewService(repo, logger)

		anna = testUser("user-anna", "Anna Acker", "anna@example.com")
		ben = testUser("user-ben", "Ben Brandt", "ben@example.com")
	})

	query := func() management.OverviewQuery {
		return management.OverviewQuery{RangeStart: rangeStart, RangeEnd: rangeEnd}
	}

	Describe("totals", func() {
		It("splits billable and non-billable minutes", func() {
			physio := billableBlock(10, "Physiotherapie", treatment)
			orga := internalBlock(11, "Orga", admin)
			repo.entries = []*timeentryDatamodel.TimeEntry{
				entryAt("e1", anna, physio, rangeStart.Add(9*time.Hour), 120),
				entryAt("e2", anna, orga, rangeStart.Add(12*time.Hour), 45),
			}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.Totals.TotalMinutes).To(Equal(165))
			Expect(overview.Totals.BillableMinutes).To(Equal(120))
			Expect(overview.Totals.NonBillableMinutes).To(Equal(45))
		})

		It("prefers the stored duration over the interval", func() {
			physio := billableBlock(10, "Physiotherapie", treatment)
			entry := entryAt("e1", anna, physio, rangeStart.Add(9*time.Hour), 90)
			stored := 30
			entry.DurationMinutes = &stored
			repo.entries = []*timeentryDatamodel.TimeEntry{entry}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.Totals.TotalMinutes).To(Equal(30))
		})

		It("counts an open entry without end or stored duration as zero", func() {
			physio := billableBlock(10, "Physiotherapie", treatment)
			entry := entryAt("e1", anna, physio, rangeStart.Add(9*time.Hour), 90)
			entry.End = nil
			entry.DurationMinutes = nil
			repo.entries = []*timeentryDatamodel.TimeEntry{entry}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.Totals.TotalMinutes).To(Equal(0))
			Expect(overview.Entries).To(HaveLen(1))
			Expect(overview.Entries[0].DurationMinutes).To(Equal(0))
			Expect(overview.Entries[0].End).To(BeNil())
		})

		It("returns an empty snapshot for an empty range", func() {
			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.Totals).To(Equal(management.Totals{}))
			Expect(overview.PerUser).To(BeEmpty())
			Expect(overview.PerCategory).To(BeEmpty())
			Expect(overview.PerBlock).To(BeEmpty())
			Expect(overview.Entries).To(BeEmpty())
		})
	})

	Describe("missing joins", func() {
		It("keeps orphaned entries in totals but out of the analytics buckets", func() {
			entry := entryAt("e1", anna, nil, rangeStart.Add(9*time.Hour), 60)
			repo.entries = []*timeentryDatamodel.TimeEntry{entry}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.Totals.TotalMinutes).To(Equal(60))
			Expect(overview.Totals.BillableMinutes).To(Equal(0))
			Expect(overview.PerUser).To(HaveLen(1))
			Expect(overview.PerUser[0].TotalMinutes).To(Equal(60))
			Expect(overview.PerCategory).To(BeEmpty())
			Expect(overview.PerBlock).To(BeEmpty())

			Expect(overview.Entries[0].BlockID).To(BeNil())
			Expect(overview.Entries[0].BlockLabel).To(Equal("Unbekannt"))
			Expect(overview.Entries[0].CategoryName).To(Equal("Nicht zugewiesen"))
			Expect(overview.Entries[0].IsBillable).To(BeFalse())
		})

		It("marks a block without category with a dash in the block breakdown", func() {
			loose := billableBlock(20, "Sonderaufgabe", nil)
			repo.entries = []*timeentryDatamodel.TimeEntry{
				entryAt("e1", anna, loose, rangeStart.Add(9*time.Hour), 60),
			}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.PerCategory).To(BeEmpty())
			Expect(overview.PerBlock).To(HaveLen(1))
			Expect(overview.PerBlock[0].CategoryName).To(Equal("-"))
		})
	})

	Describe("overtime", func() {
		It("measures logged minutes against the schedule over the workdays", func() {
			physio := billableBlock(10, "Physiotherapie", treatment)
			repo.entries = []*timeentryDatamodel.TimeEntry{
				entryAt("e1", anna, physio, rangeStart.Add(9*time.Hour), 2000),
			}
			repo.schedules = []*scheduleDatamodel.WorkSchedule{
				{ID: 1, UserID: anna.ID, ValidFrom: rangeStart.AddDate(-1, 0, 0), WeeklyMinutes: 2400},
			}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.PerUser).To(HaveLen(1))
			Expect(overview.PerUser[0].ExpectedMinutes).To(Equal(2400))
			Expect(overview.PerUser[0].OvertimeMinutes).To(Equal(-400))
		})

		It("treats every minute as overtime when no schedule exists", func() {
			physio := billableBlock(10, "Physiotherapie", treatment)
			repo.entries = []*timeentryDatamodel.TimeEntry{
				entryAt("e1", anna, physio, rangeStart.Add(9*time.Hour), 300),
			}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.PerUser[0].ExpectedMinutes).To(Equal(0))
			Expect(overview.PerUser[0].OvertimeMinutes).To(Equal(300))
		})

		It("ignores schedules that only become valid after the range", func() {
			physio := billableBlock(10, "Physiotherapie", treatment)
			repo.entries = []*timeentryDatamodel.TimeEntry{
				entryAt("e1", anna, physio, rangeStart.Add(9*time.Hour), 300),
			}
			repo.schedules = []*scheduleDatamodel.WorkSchedule{
				{ID: 1, UserID: anna.ID, ValidFrom: rangeEnd.AddDate(0, 1, 0), WeeklyMinutes: 2400},
			}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.PerUser[0].ExpectedMinutes).To(Equal(0))
			Expect(overview.PerUser[0].OvertimeMinutes).To(Equal(300))
		})

		It("applies the newest schedule that started before the range end", func() {
			physio := billableBlock(10, "Physiotherapie", treatment)
			repo.entries = []*timeentryDatamodel.TimeEntry{
				entryAt("e1", anna, physio, rangeStart.Add(9*time.Hour), 1200),
			}
			// valid_from descending, as the repository delivers them.
			repo.schedules = []*scheduleDatamodel.WorkSchedule{
				{ID: 3, UserID: anna.ID, ValidFrom: rangeEnd.AddDate(0, 2, 0), WeeklyMinutes: 3000},
				{ID: 2, UserID: anna.ID, ValidFrom: rangeStart.AddDate(0, -1, 0), WeeklyMinutes: 1200},
				{ID: 1, UserID: anna.ID, ValidFrom: rangeStart.AddDate(-1, 0, 0), WeeklyMinutes: 2400},
			}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.PerUser[0].ExpectedMinutes).To(Equal(1200))
			Expect(overview.PerUser[0].OvertimeMinutes).To(Equal(0))
		})

		It("rounds the expected minutes for uneven weekly targets", func() {
			physio := billableBlock(10, "Physiotherapie", treatment)
			repo.entries = []*timeentryDatamodel.TimeEntry{
				entryAt("e1", anna, physio, rangeStart.Add(9*time.Hour), 100),
			}
			// 1111 / 5 = 222.2 per day, 5 workdays -> 1111.
			repo.schedules = []*scheduleDatamodel.WorkSchedule{
				{ID: 1, UserID: anna.ID, ValidFrom: rangeStart.AddDate(-1, 0, 0), WeeklyMinutes: 1111},
			}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.PerUser[0].ExpectedMinutes).To(Equal(1111))
		})
	})

	Describe("breakdowns", func() {
		It("sorts users, categories and blocks by minutes descending", func() {
			physio := billableBlock(10, "Physiotherapie", treatment)
			orga := internalBlock(11, "Orga", admin)
			repo.entries = []*timeentryDatamodel.TimeEntry{
				entryAt("e1", anna, physio, rangeStart.Add(9*time.Hour), 60),
				entryAt("e2", ben, orga, rangeStart.Add(10*time.Hour), 240),
			}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.PerUser[0].UserID).To(Equal(ben.ID))
			Expect(overview.PerUser[1].UserID).To(Equal(anna.ID))
			Expect(overview.PerCategory[0].Name).To(Equal("Verwaltung"))
			Expect(overview.PerBlock[0].Label).To(Equal("Orga"))
		})

		It("caps the block breakdown at fifteen rows", func() {
			entries := make([]*timeentryDatamodel.TimeEntry, 0, 20)
			for i := 0; i < 20; i++ {
				block := billableBlock(int64(100+i), "Block", treatment)
				entries = append(entries, entryAt(
					fmt.Sprintf("e%d", i), anna, block, rangeStart.Add(9*time.Hour), 10+i,
				))
			}
			repo.entries = entries

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.PerBlock).To(HaveLen(15))
			// Largest block first, smallest contributors truncated.
			Expect(overview.PerBlock[0].Minutes).To(Equal(29))
			Expect(overview.PerBlock[14].Minutes).To(Equal(15))
			Expect(overview.Entries).To(HaveLen(20))
		})

		It("accumulates multiple entries of the same block", func() {
			physio := billableBlock(10, "Physiotherapie", treatment)
			repo.entries = []*timeentryDatamodel.TimeEntry{
				entryAt("e1", anna, physio, rangeStart.Add(9*time.Hour), 60),
				entryAt("e2", ben, physio, rangeStart.Add(14*time.Hour), 30),
			}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.PerBlock).To(HaveLen(1))
			Expect(overview.PerBlock[0].Minutes).To(Equal(90))
			Expect(overview.PerCategory).To(HaveLen(1))
			Expect(overview.PerCategory[0].Minutes).To(Equal(90))
		})
	})

	Describe("snapshot", func() {
		It("is deterministic for identical inputs", func() {
			physio := billableBlock(10, "Physiotherapie", treatment)
			orga := internalBlock(11, "Orga", admin)
			repo.entries = []*timeentryDatamodel.TimeEntry{
				entryAt("e1", anna, physio, rangeStart.Add(9*time.Hour), 60),
				entryAt("e2", ben, orga, rangeStart.Add(10*time.Hour), 60),
			}
			repo.users = []*userDatamodel.User{anna, ben}

			first, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			second, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})

		It("lists active users for the filter dropdown", func() {
			repo.users = []*userDatamodel.User{anna, ben}

			overview, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(overview.Users).To(HaveLen(2))
			Expect(overview.Users[0].ID).To(Equal(anna.ID))
			Expect(overview.Users[0].Email).To(Equal("anna@example.com"))
		})

		It("fetches schedules only for users that logged time", func() {
			physio := billableBlock(10, "Physiotherapie", treatment)
			repo.entries = []*timeentryDatamodel.TimeEntry{
				entryAt("e1", anna, physio, rangeStart.Add(9*time.Hour), 60),
				entryAt("e2", anna, physio, rangeStart.Add(12*time.Hour), 60),
			}

			_, err := service.GetOverview(query())
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.requestedUserIDs).To(Equal([]string{anna.ID}))
		})

		It("propagates repository failures", func() {
			repo.entriesError = errors.New("db down")
			_, err := service.GetOverview(query())
			Expect(err).To(HaveOccurred())
		})
	})
})
