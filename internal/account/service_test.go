package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ScottHCollier/inntrac-app/internal"
	"github.com/ScottHCollier/inntrac-app/internal/email"
	"github.com/ScottHCollier/inntrac-app/internal/group"
	"github.com/ScottHCollier/inntrac-app/internal/shift"
	"github.com/ScottHCollier/inntrac-app/internal/site"
)

func TestAccount(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Account Module Suite")
}

// Mock Repository for testing
type mockAccountRepository struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (m *mockAccountRepository) add(u *User) {
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
}

func (m *mockAccountRepository) Create(u *User) error {
	m.add(u)
	return nil
}

func (m *mockAccountRepository) GetByID(id string) (*User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func (m *mockAccountRepository) GetByEmail(addr string) (*User, error) {
	if u, ok := m.byEmail[addr]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func (m *mockAccountRepository) EmailExists(addr string) (bool, error) {
	_, ok := m.byEmail[addr]
	return ok, nil
}

// mockEmailQueue records enqueued emails. Handlers run on bus goroutines, so
// access is guarded.
type mockEmailQueue struct {
	mu     sync.Mutex
	queued []*email.Email
}

func (m *mockEmailQueue) Enqueue(e *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = append(m.queued, e)
	return nil
}

func (m *mockEmailQueue) NextBatch(limit int) ([]*email.Email, error) { return nil, nil }
func (m *mockEmailQueue) MarkSent(id string) error                    { return nil }
func (m *mockEmailQueue) MarkFailed(id string) error                  { return nil }

func (m *mockEmailQueue) all() []*email.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*email.Email(nil), m.queued...)
}

type mockSiteChecker struct{ sites map[string]*site.Site }

func (m *mockSiteChecker) GetByID(id string) (*site.Site, error) {
	if s, ok := m.sites[id]; ok {
		return s, nil
	}
	return nil, errors.New("not found")
}

type mockGroupChecker struct{ groups map[string]*group.Group }

func (m *mockGroupChecker) GetByID(id string) (*group.Group, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, errors.New("not found")
}

type mockShiftProvider struct{}

func (mockShiftProvider) GetByUser(userID string, from, to time.Time) ([]*shift.Shift, error) {
	return []*shift.Shift{}, nil
}

type mockTokenIssuer struct{}

func (mockTokenIssuer) GenerateAccessToken(userID, email string) (string, time.Time, error) {
	return "access-token", time.Now().Add(time.Hour), nil
}

func (mockTokenIssuer) GenerateInviteToken(email string) (string, error) {
	return "invite-token-123", nil
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ = Describe("Account Service", func() {
	var (
		repo    *mockAccountRepository
		emails  *mockEmailQueue
		service *Service
	)

	newService := func(baseURL string) *Service {
		return NewService(
			repo,
			&mockSiteChecker{sites: map[string]*site.Site{"site-1": {ID: "site-1", Name: "The Crown"}}},
			&mockGroupChecker{groups: map[string]*group.Group{"group-1": {ID: "group-1", SiteID: "site-1", Name: "Bar"}}},
			mockShiftProvider{},
			emails,
			mockTokenIssuer{},
			baseURL,
			nil,
			testLogger,
		)
	}

	BeforeEach(func() {
		repo = newMockAccountRepository()
		emails = &mockEmailQueue{}
		service = newService("https://app.inntrac.com")
	})

	Describe("AddUser", func() {
		validDTO := AddUserDTO{
			FirstName: "Alice",
			Surname:   "Baker",
			Email:     "alice@example.com",
			SiteID:    "site-1",
			GroupID:   "group-1",
		}

		It("creates the user and queues a welcome email with the invite link", func() {
			user, err := service.AddUser(context.Background(), validDTO)

			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).NotTo(BeEmpty())
			Expect(user.PasswordHash).To(BeEmpty())

			queued := emails.all()
			Expect(queued).To(HaveLen(1))
			Expect(queued[0].To).To(Equal("alice@example.com"))
			Expect(queued[0].Template).To(Equal(email.TemplateWelcome))
			Expect(queued[0].Body).To(Equal("https://app.inntrac.com/setPassword?token=invite-token-123"))
		})

		It("strips a trailing slash from the configured base URL", func() {
			service = newService("https://app.inntrac.com/")

			_, err := service.AddUser(context.Background(), validDTO)

			Expect(err).NotTo(HaveOccurred())
			Expect(emails.all()[0].Body).To(Equal("https://app.inntrac.com/setPassword?token=invite-token-123"))
		})

		It("sends the bare token when no base URL is configured", func() {
			service = newService("")

			_, err := service.AddUser(context.Background(), validDTO)

			Expect(err).NotTo(HaveOccurred())
			Expect(emails.all()[0].Body).To(Equal("invite-token-123"))
		})

		It("rejects an email that is already in use", func() {
			repo.add(&User{ID: "user-1", Email: "alice@example.com"})

			_, err := service.AddUser(context.Background(), validDTO)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(emails.all()).To(BeEmpty())
		})

		It("rejects an unknown site", func() {
			dto := validDTO
			dto.SiteID = "ghost-site"

			_, err := service.AddUser(context.Background(), dto)

			Expect(err).To(HaveOccurred())
			Expect(emails.all()).To(BeEmpty())
		})
	})
})
