package shift

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ScottHCollier/inntrac-app/internal"
)

func TestShift(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Shift Module Suite")
}

var _ = Describe("NormalizeTimes", func() {
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	It("keeps both times on the shift date for a daytime shift", func() {
		st, et, err := NormalizeTimes(date, "09:00", "17:00")

		Expect(err).NotTo(HaveOccurred())
		Expect(st).To(Equal(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)))
		Expect(et).To(Equal(time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC)))
	})

	It("rolls an end before 09:00 to the following day", func() {
		st, et, err := NormalizeTimes(date, "22:00", "04:00")

		Expect(err).NotTo(HaveOccurred())
		Expect(st).To(Equal(time.Date(2024, 6, 3, 22, 0, 0, 0, time.UTC)))
		Expect(et).To(Equal(time.Date(2024, 6, 4, 4, 0, 0, 0, time.UTC)))
	})

	It("rolls the end day even when the start is in the morning", func() {
		// The threshold looks only at the end hour.
		_, et, err := NormalizeTimes(date, "02:00", "08:59")

		Expect(err).NotTo(HaveOccurred())
		Expect(et).To(Equal(time.Date(2024, 6, 4, 8, 59, 0, 0, time.UTC)))
	})

	It("keeps an end at exactly 09:00 on the same day", func() {
		_, et, err := NormalizeTimes(date, "01:00", "09:00")

		Expect(err).NotTo(HaveOccurred())
		Expect(et).To(Equal(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)))
	})

	It("rejects malformed clock strings", func() {
		_, _, err := NormalizeTimes(date, "9am", "17:00")
		Expect(err).To(HaveOccurred())

		_, _, err = NormalizeTimes(date, "09:00", "25:00")
		Expect(err).To(HaveOccurred())

		_, _, err = NormalizeTimes(date, "09:00", "17:61")
		Expect(err).To(HaveOccurred())
	})
})

// Mock Repository for testing
type mockShiftRepository struct {
	shifts      map[string]*Shift
	returnError bool
}

func newMockShiftRepository() *mockShiftRepository {
	return &mockShiftRepository{shifts: make(map[string]*Shift)}
}

func (m *mockShiftRepository) Create(s *Shift) error {
	if m.returnError {
		return errors.New("db down")
	}
	m.shifts[s.ID] = s
	return nil
}

func (m *mockShiftRepository) GetByID(id string) (*Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return s, nil
	}
	return nil, errors.New("not found")
}

func (m *mockShiftRepository) GetByUser(userID string, from, to time.Time) ([]*Shift, error) {
	var out []*Shift
	for _, s := range m.shifts {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockShiftRepository) Update(s *Shift) error {
	m.shifts[s.ID] = s
	return nil
}

func (m *mockShiftRepository) Delete(id string) error {
	delete(m.shifts, id)
	return nil
}

var _ = Describe("ShiftService", func() {
	var (
		service *Service
		repo    *mockShiftRepository
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	validDTO := func() CreateShiftDTO {
		return CreateShiftDTO{
			UserID:  "user-1",
			GroupID: "group-1",
			SiteID:  "site-1",
			Date:    "2024-06-03",
			Start:   "09:00",
			End:     "17:00",
		}
	}

	BeforeEach(func() {
		repo = newMockShiftRepository()
		service = NewService(repo, testLogger)
	})

	Describe("CreateShift", func() {
		It("persists a normalized shift", func() {
			created, err := service.CreateShift(validDTO())

			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeEmpty())
			Expect(created.StartTime.Hour()).To(Equal(9))
			Expect(repo.shifts).To(HaveKey(created.ID))
		})

		It("accepts an overnight shift ending the next morning", func() {
			dto := validDTO()
			dto.Start = "22:00"
			dto.End = "04:00"

			created, err := service.CreateShift(dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(created.EndTime.Day()).To(Equal(4))
			Expect(created.EndTime.After(created.StartTime)).To(BeTrue())
		})

		It("rejects a start at or after the normalized end", func() {
			dto := validDTO()
			dto.Start = "17:00"
			dto.End = "09:00"

			_, err := service.CreateShift(dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("rejects a bad date", func() {
			dto := validDTO()
			dto.Date = "03/06/2024"

			_, err := service.CreateShift(dto)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateShift", func() {
		It("returns not found for unknown shifts", func() {
			_, err := service.UpdateShift("missing", UpdateShiftDTO{
				GroupID: "group-1",
				Date:    "2024-06-03",
				Start:   "09:00",
				End:     "17:00",
			})
			Expect(err).To(Equal(internal.ErrShiftNotFound))
		})
	})

	Describe("DeleteShift", func() {
		It("returns not found for unknown shifts", func() {
			Expect(service.DeleteShift("missing")).To(Equal(internal.ErrShiftNotFound))
		})
	})
})
