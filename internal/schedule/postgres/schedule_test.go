package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ScottHCollier/inntrac-app/internal/schedule"
)

func TestScheduleRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ScheduleRepository Suite")
}

type SQLiteSchedule struct {
	ID        string    `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id;not null"`
	SiteID    string    `gorm:"column:site_id;not null"`
	GroupID   string    `gorm:"column:group_id;not null"`
	StartTime time.Time `gorm:"column:start_time;not null"`
	EndTime   time.Time `gorm:"column:end_time;not null"`
	Status    bool      `gorm:"not null;default:false"`
	Type      int       `gorm:"not null;default:0"`
	Hours     float64   `gorm:"not null;default:0"`
}

func (SQLiteSchedule) TableName() string {
	return "schedules"
}

type SQLiteUser struct {
	ID             string `gorm:"primaryKey"`
	FirstName      string `gorm:"column:first_name"`
	Surname        string `gorm:"column:surname"`
	Email          string `gorm:"column:email"`
	DefaultGroupID string `gorm:"column:default_group_id"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

type SQLiteUserSite struct {
	UserID string `gorm:"column:user_id;primaryKey"`
	SiteID string `gorm:"column:site_id;primaryKey"`
}

func (SQLiteUserSite) TableName() string {
	return "user_sites"
}

var _ = Describe("ScheduleRepository", func() {
	var (
		db   *gorm.DB
		repo schedule.Repository
	)

	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	newEntry := func(id, userID string, start time.Time, typ int, status bool) *schedule.Schedule {
		return &schedule.Schedule{
			ID:        id,
			UserID:    userID,
			SiteID:    "site-1",
			GroupID:   "group-1",
			StartTime: start,
			EndTime:   start.Add(8 * time.Hour),
			Status:    status,
			Type:      typ,
			Hours:     8,
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteSchedule{}, &SQLiteUser{}, &SQLiteUserSite{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewScheduleRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create and GetByID", func() {
		It("round-trips a schedule entry", func() {
			entry := newEntry("sched-1", "user-1", monday.Add(9*time.Hour), 0, false)

			err := repo.Create(entry)
			Expect(err).NotTo(HaveOccurred())

			retrieved, err := repo.GetByID("sched-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.UserID).To(Equal("user-1"))
			Expect(retrieved.SiteID).To(Equal("site-1"))
			Expect(retrieved.Hours).To(Equal(8.0))
		})

		It("returns an error for an unknown id", func() {
			_, err := repo.GetByID("missing")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CreateBatch", func() {
		It("persists every entry in the batch", func() {
			batch := []*schedule.Schedule{
				newEntry("sched-1", "user-1", monday.Add(9*time.Hour), 0, false),
				newEntry("sched-2", "user-1", monday.AddDate(0, 0, 1).Add(9*time.Hour), 0, false),
				newEntry("sched-3", "user-2", monday.Add(9*time.Hour), 0, false),
			}

			err := repo.CreateBatch(batch)
			Expect(err).NotTo(HaveOccurred())

			var count int64
			db.Model(&SQLiteSchedule{}).Count(&count)
			Expect(count).To(Equal(int64(3)))
		})

		It("accepts an empty batch", func() {
			Expect(repo.CreateBatch(nil)).To(Succeed())
		})
	})

	Describe("GetInWindow", func() {
		BeforeEach(func() {
			entries := []*schedule.Schedule{
				newEntry("in-1", "user-1", monday.Add(9*time.Hour), 0, false),
				newEntry("in-2", "user-2", monday.AddDate(0, 0, 6).Add(9*time.Hour), 0, false),
				newEntry("next-week", "user-1", monday.AddDate(0, 0, 7).Add(9*time.Hour), 0, false),
				newEntry("prev-week", "user-1", monday.AddDate(0, 0, -1).Add(9*time.Hour), 0, false),
			}
			Expect(repo.CreateBatch(entries)).To(Succeed())

			elsewhere := newEntry("other-site", "user-3", monday.Add(9*time.Hour), 0, false)
			elsewhere.SiteID = "site-2"
			Expect(repo.Create(elsewhere)).To(Succeed())
		})

		It("returns only entries starting inside the half-open window", func() {
			entries, err := repo.GetInWindow("site-1", monday, monday.AddDate(0, 0, 7))
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].ID).To(Equal("in-1"))
			Expect(entries[1].ID).To(Equal("in-2"))
		})

		It("scopes to the requested site", func() {
			entries, err := repo.GetInWindow("site-2", monday, monday.AddDate(0, 0, 7))
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].ID).To(Equal("other-site"))
		})
	})

	Describe("GetPendingTimeOff", func() {
		BeforeEach(func() {
			pending := newEntry("off-pending", "user-1", monday, int(schedule.TypeTimeOff), true)
			resolved := newEntry("off-resolved", "user-1", monday.AddDate(0, 0, 1), int(schedule.TypeTimeOff), false)
			working := newEntry("working", "user-2", monday.Add(9*time.Hour), int(schedule.TypePending), true)
			Expect(repo.CreateBatch([]*schedule.Schedule{pending, resolved, working})).To(Succeed())
		})

		It("returns only open time-off requests", func() {
			entries, err := repo.GetPendingTimeOff("site-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].ID).To(Equal("off-pending"))
		})
	})

	Describe("Update", func() {
		It("persists mutated fields", func() {
			entry := newEntry("sched-1", "user-1", monday.Add(9*time.Hour), 0, false)
			Expect(repo.Create(entry)).To(Succeed())

			entry.Type = int(schedule.TypeAccepted)
			entry.Status = false
			Expect(repo.Update(entry)).To(Succeed())

			retrieved, err := repo.GetByID("sched-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Type).To(Equal(int(schedule.TypeAccepted)))
		})
	})

	Describe("Delete", func() {
		It("removes the entry", func() {
			entry := newEntry("sched-1", "user-1", monday.Add(9*time.Hour), 0, false)
			Expect(repo.Create(entry)).To(Succeed())

			Expect(repo.Delete("sched-1")).To(Succeed())

			_, err := repo.GetByID("sched-1")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListUsers", func() {
		BeforeEach(func() {
			users := []*SQLiteUser{
				{ID: "user-1", FirstName: "Alice", Surname: "Archer", Email: "alice@example.com", DefaultGroupID: "group-1"},
				{ID: "user-2", FirstName: "Bob", Surname: "Baker", Email: "bob@example.com", DefaultGroupID: "group-2"},
				{ID: "user-3", FirstName: "Carol", Surname: "Cooper", Email: "carol@example.com", DefaultGroupID: "group-1"},
			}
			Expect(db.Create(&users).Error).NotTo(HaveOccurred())

			memberships := []*SQLiteUserSite{
				{UserID: "user-1", SiteID: "site-1"},
				{UserID: "user-2", SiteID: "site-1"},
				{UserID: "user-3", SiteID: "site-2"},
			}
			Expect(db.Create(&memberships).Error).NotTo(HaveOccurred())
		})

		It("lists the users attached to a site in name order", func() {
			rows, err := repo.ListUsers("site-1", "", "", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].FirstName).To(Equal("Alice"))
			Expect(rows[1].FirstName).To(Equal("Bob"))
		})

		It("narrows by default group", func() {
			rows, err := repo.ListUsers("site-1", "group-2", "", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].ID).To(Equal("user-2"))
		})

		It("narrows to a single user", func() {
			rows, err := repo.ListUsers("site-1", "", "user-1", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Email).To(Equal("alice@example.com"))
		})

		It("matches names case-insensitively", func() {
			rows, err := repo.ListUsers("site-1", "", "", "bAk")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Surname).To(Equal("Baker"))
		})

		It("returns no rows for a site with no members", func() {
			rows, err := repo.ListUsers("site-9", "", "", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})
	})
})
