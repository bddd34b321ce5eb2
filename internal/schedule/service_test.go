package schedule

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ScottHCollier/inntrac-app/internal"
)

// Mock Repository for testing
type mockScheduleRepository struct {
	schedules   map[string]*Schedule
	users       []*UserRow
	returnError bool
}

func newMockScheduleRepository() *mockScheduleRepository {
	return &mockScheduleRepository{
		schedules: make(map[string]*Schedule),
	}
}

func (m *mockScheduleRepository) Create(s *Schedule) error {
	if m.returnError {
		return errors.New("db down")
	}
	m.schedules[s.ID] = s
	return nil
}

func (m *mockScheduleRepository) CreateBatch(schedules []*Schedule) error {
	if m.returnError {
		return errors.New("db down")
	}
	for _, s := range schedules {
		m.schedules[s.ID] = s
	}
	return nil
}

func (m *mockScheduleRepository) GetByID(id string) (*Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, errors.New("not found")
}

func (m *mockScheduleRepository) GetInWindow(siteID string, from, to time.Time) ([]*Schedule, error) {
	if m.returnError {
		return nil, errors.New("db down")
	}
	var out []*Schedule
	for _, s := range m.schedules {
		if s.SiteID == siteID && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockScheduleRepository) GetPendingTimeOff(siteID string) ([]*Schedule, error) {
	var out []*Schedule
	for _, s := range m.schedules {
		if s.SiteID == siteID && s.Type == int(TypeTimeOff) && s.Status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockScheduleRepository) Update(s *Schedule) error {
	if m.returnError {
		return errors.New("db down")
	}
	m.schedules[s.ID] = s
	return nil
}

func (m *mockScheduleRepository) Delete(id string) error {
	delete(m.schedules, id)
	return nil
}

func (m *mockScheduleRepository) ListUsers(siteID, groupID, userID, searchTerm string) ([]*UserRow, error) {
	if m.returnError {
		return nil, errors.New("db down")
	}
	return m.users, nil
}

var _ = Describe("ScheduleService", func() {
	var (
		service *Service
		repo    *mockScheduleRepository
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	validItem := func() ScheduleItemDTO {
		return ScheduleItemDTO{
			UserID:    "user-1",
			SiteID:    "site-1",
			GroupID:   "group-1",
			StartTime: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC),
		}
	}

	BeforeEach(func() {
		repo = newMockScheduleRepository()
		service = NewService(repo, nil, testLogger)
	})

	Describe("CreateSchedule", func() {
		It("persists the schedule with a generated id and computed hours", func() {
			created, err := service.CreateSchedule(validItem())

			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeEmpty())
			Expect(created.Hours).To(Equal(8.0))
			Expect(repo.schedules).To(HaveKey(created.ID))
		})

		It("rejects an end before the start", func() {
			dto := validItem()
			dto.EndTime = dto.StartTime.Add(-time.Hour)

			_, err := service.CreateSchedule(dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("BulkCreate", func() {
		It("creates exactly one row per input", func() {
			items := []ScheduleItemDTO{validItem(), validItem(), validItem()}

			created, err := service.BulkCreate(items)

			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(HaveLen(3))
			Expect(repo.schedules).To(HaveLen(3))
		})

		It("does not deduplicate identical inputs", func() {
			items := []ScheduleItemDTO{validItem(), validItem()}

			_, err := service.BulkCreate(items)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.BulkCreate(items)
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.schedules).To(HaveLen(4))
		})

		It("rejects an empty batch", func() {
			_, err := service.BulkCreate(nil)
			Expect(err).To(HaveOccurred())
		})

		It("rejects the whole batch when one item is invalid", func() {
			bad := validItem()
			bad.UserID = ""

			_, err := service.BulkCreate([]ScheduleItemDTO{validItem(), bad})

			Expect(err).To(HaveOccurred())
			Expect(repo.schedules).To(BeEmpty())
		})
	})

	Describe("BulkUpdate", func() {
		It("marks pending time off accepted", func() {
			existing := &Schedule{
				ID:        "sched-1",
				UserID:    "user-1",
				SiteID:    "site-1",
				GroupID:   "group-1",
				StartTime: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
				Status:    true,
				Type:      int(TypeTimeOff),
			}
			repo.schedules[existing.ID] = existing

			updated, err := service.BulkUpdate([]ScheduleItemDTO{{
				ID:        existing.ID,
				UserID:    existing.UserID,
				SiteID:    existing.SiteID,
				GroupID:   existing.GroupID,
				StartTime: existing.StartTime,
				EndTime:   existing.EndTime,
				Status:    existing.Status,
				Type:      int(TypeAccepted),
			}})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(HaveLen(1))
			Expect(repo.schedules["sched-1"].Type).To(Equal(int(TypeAccepted)))
		})

		It("requires an id on every item", func() {
			_, err := service.BulkUpdate([]ScheduleItemDTO{validItem()})
			Expect(err).To(HaveOccurred())
		})

		It("fails on unknown schedules", func() {
			dto := validItem()
			dto.ID = "missing"

			_, err := service.BulkUpdate([]ScheduleItemDTO{dto})
			Expect(err).To(Equal(internal.ErrScheduleNotFound))
		})
	})

	Describe("RequestTimeOff", func() {
		It("persists one schedule per expanded day", func() {
			created, err := service.RequestTimeOff(context.Background(), TimeOffDTO{
				UserID:    "user-1",
				SiteID:    "site-1",
				GroupID:   "group-1",
				StartTime: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(HaveLen(3))
			Expect(repo.schedules).To(HaveLen(3))
		})

		It("rejects a start after the end", func() {
			_, err := service.RequestTimeOff(context.Background(), TimeOffDTO{
				UserID:    "user-1",
				SiteID:    "site-1",
				GroupID:   "group-1",
				StartTime: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("WeekRows", func() {
		It("attaches each user's schedules to their row", func() {
			repo.users = []*UserRow{
				{ID: "user-1", FirstName: "Ada"},
				{ID: "user-2", FirstName: "Ben"},
			}
			repo.schedules["s1"] = &Schedule{
				ID: "s1", UserID: "user-1", SiteID: "site-1",
				StartTime: time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC),
			}

			rows, err := service.WeekRows(WeekQuery{
				WeekStart: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
				WeekEnd:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
				SiteID:    "site-1",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Schedules).To(HaveLen(1))
			Expect(rows[1].Schedules).To(BeEmpty())
		})

		It("excludes schedules outside the window", func() {
			repo.users = []*UserRow{{ID: "user-1"}}
			repo.schedules["s1"] = &Schedule{
				ID: "s1", UserID: "user-1", SiteID: "site-1",
				StartTime: time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC),
			}

			rows, err := service.WeekRows(WeekQuery{
				WeekStart: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
				WeekEnd:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
				SiteID:    "site-1",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].Schedules).To(BeEmpty())
		})
	})

	Describe("PendingTimeOff", func() {
		It("returns only users with pending requests", func() {
			repo.users = []*UserRow{
				{ID: "user-1", FirstName: "Ada"},
				{ID: "user-2", FirstName: "Ben"},
			}
			repo.schedules["s1"] = &Schedule{
				ID: "s1", UserID: "user-1", SiteID: "site-1",
				Type: int(TypeTimeOff), Status: true,
			}

			rows, err := service.PendingTimeOff("site-1")

			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].ID).To(Equal("user-1"))
			Expect(rows[0].Schedules).To(HaveLen(1))
		})
	})

	Describe("DeleteSchedule", func() {
		It("returns not found for unknown ids", func() {
			Expect(service.DeleteSchedule("missing")).To(Equal(internal.ErrScheduleNotFound))
		})
	})
})
