package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		_, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			clearTables(db)
		}

		seedCatalog(db)
		seedUsers(db)
		seedSchedules(db)
		seedEntries(db)

		fmt.Println("Seeding finished")
	},
}

func clearTables(db *gorm.DB) {
	// Child tables first, the schema has no cascading deletes.
	tables := []string{
		"time_entry_history",
		"time_entries",
		"favorite_blocks",
		"work_schedules",
		"users",
		"activity_blocks",
		"activity_tags",
		"activity_categories",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear table %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedCatalog(db *gorm.DB) {
	categories := []struct {
		ID        int64
		Name      string
		Color     string
		SortOrder int
	}{
		{1, "Entwicklung", "#2563eb", 1},
		{2, "Meetings", "#16a34a", 2},
		{3, "Verwaltung", "#f59e0b", 3},
		{4, "Abwesenheit", "#64748b", 4},
	}
	for _, c := range categories {
		var exists int
		if err := db.Raw("SELECT 1 FROM activity_categories WHERE id = ?", c.ID).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO activity_categories (id, name, color, sort_order, active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
			c.ID, c.Name, c.Color, c.SortOrder,
		).Error; err != nil {
			log.Fatalf("failed to insert category %s: %v", c.Name, err)
		}
		fmt.Println("Seeded category:", c.Name)
	}

	tags := []struct {
		ID         int64
		Name       string
		CategoryID int64
		SortOrder  int
	}{
		{11, "Backend", 1, 1},
		{12, "Frontend", 1, 2},
		{21, "Intern", 2, 1},
		{22, "Kunde", 2, 2},
	}
	for _, t := range tags {
		var exists int
		if err := db.Raw("SELECT 1 FROM activity_tags WHERE id = ?", t.ID).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO activity_tags (id, name, category_id, sort_order, active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
			t.ID, t.Name, t.CategoryID, t.SortOrder,
		).Error; err != nil {
			log.Fatalf("failed to insert tag %s: %v", t.Name, err)
		}
	}

	blocks := []struct {
		ID         int64
		Label      string
		CategoryID int64
		TagID      *int64
		IsBillable bool
		SortOrder  int
	}{
		{101, "Feature-Entwicklung", 1, int64Ptr(11), true, 1},
		{102, "Code Review", 1, int64Ptr(11), true, 2},
		{103, "Bugfixing", 1, nil, true, 3},
		{201, "Teammeeting", 2, int64Ptr(21), false, 1},
		{205, "Kundentermin", 2, int64Ptr(22), true, 2},
		{301, "Administration", 3, nil, false, 1},
		{401, "Urlaub", 4, nil, false, 1},
	}
	for _, b := range blocks {
		var exists int
		if err := db.Raw("SELECT 1 FROM activity_blocks WHERE id = ?", b.ID).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO activity_blocks (id, label, category_id, tag_id, is_billable, sort_order, active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
			b.ID, b.Label, b.CategoryID, b.TagID, b.IsBillable, b.SortOrder,
		).Error; err != nil {
			log.Fatalf("failed to insert block %s: %v", b.Label, err)
		}
		fmt.Println("Seeded block:", b.Label)
	}
}

func seedUsers(db *gorm.DB) {
	users := []struct {
		ID       string
		Email    string
		Name     string
		Role     string
		Password string
	}{
		{"user-1", "p.muster@firma.de", "Patricia Muster", "EMPLOYEE", "test1234"},
		{"user-2", "m.lead@firma.de", "Maximilian Lead", "MANAGER", "test1234"},
		{"user-3", "a.admin@firma.de", "Alex Admin", "ADMIN", "admin123"},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE id = ?", u.ID).Row().Scan(&exists); err == nil {
			if err := db.Exec(
				"UPDATE users SET email = ?, name = ?, role = ?, password_hash = ?, is_active = true, updated_at = now() WHERE id = ?",
				u.Email, u.Name, u.Role, string(hash), u.ID,
			).Error; err != nil {
				log.Fatalf("failed to refresh user %s: %v", u.Email, err)
			}
			continue
		}
		if err := db.Exec(
			"INSERT INTO users (id, email, name, role, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, true, now(), now())",
			u.ID, u.Email, u.Name, u.Role, string(hash),
		).Error; err != nil {
			log.Fatalf("failed to insert user %s: %v", u.Email, err)
		}
		fmt.Println("Seeded user:", u.Email)
	}
}

func seedSchedules(db *gorm.DB) {
	validFrom := time.Now().AddDate(0, 0, -30)
	for _, userID := range []string{"user-1", "user-2"} {
		var exists int
		if err := db.Raw("SELECT 1 FROM work_schedules WHERE user_id = ?", userID).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO work_schedules (user_id, valid_from, weekly_minutes, created_by_id, created_at) VALUES (?, ?, ?, ?, now())",
			userID, validFrom, 40*60, "user-3",
		).Error; err != nil {
			log.Fatalf("failed to insert schedule for %s: %v", userID, err)
		}
		fmt.Println("Seeded work schedule for:", userID)
	}
}

func seedEntries(db *gorm.DB) {
	entries := []struct {
		ID        string
		BlockID   int64
		DayOffset int
		StartHour int
		Minutes   int
		Note      *string
		Source    string
	}{
		{"entry-1", 101, 1, 8, 240, strPtr("Ticket #4512"), "MANUAL"},
		{"entry-2", 201, 1, 13, 120, nil, "QUICK_SELECT"},
		{"entry-3", 102, 2, 9, 180, strPtr("Code Review API"), "MANUAL"},
		{"entry-4", 205, 2, 13, 60, strPtr("Kundenstatus ACME"), "MANUAL"},
		{"entry-5", 401, 5, 8, 420, strPtr("Kurzurlaub"), "ADMIN_ADJUSTMENT"},
	}
	for _, e := range entries {
		var exists int
		if err := db.Raw("SELECT 1 FROM time_entries WHERE id = ?", e.ID).Row().Scan(&exists); err == nil {
			continue
		}

		day := time.Now().UTC().AddDate(0, 0, -e.DayOffset)
		start := time.Date(day.Year(), day.Month(), day.Day(), e.StartHour, 0, 0, 0, time.UTC)
		end := start.Add(time.Duration(e.Minutes) * time.Minute)

		if err := db.Exec(
			"INSERT INTO time_entries (id, user_id, block_id, start, \"end\", duration_minutes, note, source, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, now(), now())",
			e.ID, "user-1", e.BlockID, start, end, e.Minutes, e.Note, e.Source,
		).Error; err != nil {
			log.Fatalf("failed to insert entry %s: %v", e.ID, err)
		}
	}
	fmt.Println("Seeded time entries for user-1")

	var exists int
	if err := db.Raw("SELECT 1 FROM favorite_blocks WHERE user_id = ? AND block_id = ?", "user-1", int64(101)).Row().Scan(&exists); err != nil {
		if err := db.Exec(
			"INSERT INTO favorite_blocks (user_id, block_id, last_used_at) VALUES (?, ?, now())",
			"user-1", int64(101),
		).Error; err != nil {
			log.Fatalf("failed to insert favorite: %v", err)
		}
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}
