package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalogDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/catalog"
	timeentryDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/timeentry"
	userDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/user"
	"github.com/Adprivat/praxislabor/internal/timeentry"
)

func TestTimeEntryRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TimeEntryRepository Suite")
}

var _ = Describe("TimeEntryRepository", func() {
	var (
		db   *gorm.DB
		repo timeentry.RepositoryAPI
	)

	newEntry := func(id string, start time.Time, minutes int) *timeentryDatamodel.TimeEntry {
		end := start.Add(time.Duration(minutes) * time.Minute)
		return &timeentryDatamodel.TimeEntry{
			ID:              id,
			UserID:          "user-1",
			BlockID:         101,
			Start:           start,
			End:             &end,
			DurationMinutes: &minutes,
			Source:          timeentryDatamodel.SourceManual,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.User{},
			&catalogDatamodel.ActivityCategory{},
			&catalogDatamodel.ActivityTag{},
			&catalogDatamodel.ActivityBlock{},
			&timeentryDatamodel.TimeEntry{},
			&timeentryDatamodel.FavoriteBlock{},
			&timeentryDatamodel.TimeEntryHistory{},
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&userDatamodel.User{ID: "user-1", Email: "anna@example.com", Name: "Anna", Role: userDatamodel.RoleEmployee, IsActive: true}).Error).To(Succeed())
		Expect(db.Create(&catalogDatamodel.ActivityCategory{ID: 1, Name: "Entwicklung", Active: true}).Error).To(Succeed())
		Expect(db.Create(&catalogDatamodel.ActivityBlock{ID: 101, Label: "Feature-Entwicklung", CategoryID: 1, IsBillable: true, Active: true}).Error).To(Succeed())

		repo = NewTimeEntryRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("CreateWithFavorite", func() {
		It("persists the entry and the favorite marker together", func() {
			start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
			Expect(repo.CreateWithFavorite(newEntry("e1", start, 60))).To(Succeed())

			var count int64
			Expect(db.Model(&timeentryDatamodel.TimeEntry{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))

			favorites, err := repo.ListFavorites("user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(favorites).To(HaveLen(1))
			Expect(favorites[0].BlockID).To(Equal(int64(101)))
		})

		It("does not duplicate the favorite on repeated use", func() {
			start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
			Expect(repo.CreateWithFavorite(newEntry("e1", start, 60))).To(Succeed())
			Expect(repo.CreateWithFavorite(newEntry("e2", start.Add(2*time.Hour), 30))).To(Succeed())

			favorites, err := repo.ListFavorites("user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(favorites).To(HaveLen(1))
		})
	})

	Describe("SoftDelete", func() {
		It("flags the row instead of removing it", func() {
			start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
			Expect(repo.CreateWithFavorite(newEntry("e1", start, 60))).To(Succeed())
			Expect(repo.SoftDelete("e1", time.Now())).To(Succeed())

			var count int64
			Expect(db.Model(&timeentryDatamodel.TimeEntry{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))

			entries, err := repo.ListForUser("user-1", start.Add(-time.Hour))
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})

	Describe("ListForUser", func() {
		It("returns entries since the cutoff, newest first, with joins", func() {
			day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
			Expect(repo.CreateWithFavorite(newEntry("old", day.AddDate(0, 0, -10), 60))).To(Succeed())
			Expect(repo.CreateWithFavorite(newEntry("e1", day.Add(9*time.Hour), 60))).To(Succeed())
			Expect(repo.CreateWithFavorite(newEntry("e2", day.Add(14*time.Hour), 30))).To(Succeed())

			entries, err := repo.ListForUser("user-1", day)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].ID).To(Equal("e2"))
			Expect(entries[1].ID).To(Equal("e1"))
			Expect(entries[0].Block).NotTo(BeNil())
			Expect(entries[0].Block.Category.Name).To(Equal("Entwicklung"))
		})
	})

	Describe("AppendHistory", func() {
		It("stores the audit record with a timestamp", func() {
			record := &timeentryDatamodel.TimeEntryHistory{
				EntryID:  "e1",
				Action:   timeentryDatamodel.HistoryActionCreated,
				Snapshot: `{"id":"e1"}`,
			}
			Expect(repo.AppendHistory(record)).To(Succeed())
			Expect(record.ChangedAt).NotTo(BeZero())
		})
	})
})
