package account

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ScottHCollier/inntrac-app/internal/core/events"
	"github.com/ScottHCollier/inntrac-app/internal/email"
	"github.com/ScottHCollier/inntrac-app/internal/schedule"
)

type stubScheduleRepository struct{}

func (stubScheduleRepository) Create(*schedule.Schedule) error        { return nil }
func (stubScheduleRepository) CreateBatch([]*schedule.Schedule) error { return nil }
func (stubScheduleRepository) GetByID(string) (*schedule.Schedule, error) {
	return nil, errors.New("not found")
}
func (stubScheduleRepository) GetInWindow(string, time.Time, time.Time) ([]*schedule.Schedule, error) {
	return nil, nil
}
func (stubScheduleRepository) GetPendingTimeOff(string) ([]*schedule.Schedule, error) {
	return nil, nil
}
func (stubScheduleRepository) Update(*schedule.Schedule) error { return nil }
func (stubScheduleRepository) Delete(string) error             { return nil }
func (stubScheduleRepository) ListUsers(string, string, string, string) ([]*schedule.UserRow, error) {
	return nil, nil
}

var _ = Describe("Account EventHandler", func() {
	var (
		repo    *mockAccountRepository
		emails  *mockEmailQueue
		bus     *events.EventBus
		handler *EventHandler
	)

	BeforeEach(func() {
		repo = newMockAccountRepository()
		repo.add(&User{ID: "user-1", Email: "staff@example.com", FirstName: "Alice"})

		emails = &mockEmailQueue{}
		bus = events.NewEventBus(testLogger)
		handler = NewEventHandler(repo, emails, testLogger)
		handler.RegisterEventHandlers(bus)
	})

	It("queues a confirmation email when time off is requested", func() {
		scheduleService := schedule.NewService(stubScheduleRepository{}, bus, testLogger)

		_, err := scheduleService.RequestTimeOff(context.Background(), schedule.TimeOffDTO{
			UserID:    "user-1",
			SiteID:    "site-1",
			GroupID:   "group-1",
			StartTime: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		})
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		Expect(bus.Drain(ctx)).To(Succeed())

		queued := emails.all()
		Expect(queued).To(HaveLen(1))
		Expect(queued[0].To).To(Equal("staff@example.com"))
		Expect(queued[0].Template).To(Equal(email.TemplateTimeOff))
		Expect(queued[0].Body).To(ContainSubstring("Alice"))
	})

	It("fails without queueing when the user does not exist", func() {
		event := events.NewTimeOffRequested("ghost-user", "site-1", 3)

		err := bus.PublishSync(context.Background(), event)

		Expect(err).To(HaveOccurred())
		Expect(emails.all()).To(BeEmpty())
	})

	It("rejects events of the wrong concrete type", func() {
		event := events.BaseEvent{
			ID:        "evt-1",
			Type:      events.EventTypeTimeOffRequested,
			Timestamp: time.Now(),
		}

		err := bus.PublishSync(context.Background(), event)

		Expect(err).To(HaveOccurred())
		Expect(emails.all()).To(BeEmpty())
	})
})
