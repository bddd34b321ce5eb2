package schedule

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSchedule(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Schedule Module Suite")
}

var _ = Describe("Week navigation", func() {
	Describe("WeekStart", func() {
		It("returns the Monday of the containing week", func() {
			// Thursday 6 June 2024
			thursday := time.Date(2024, 6, 6, 15, 30, 0, 0, time.UTC)
			monday := WeekStart(thursday)

			Expect(monday.Weekday()).To(Equal(time.Monday))
			Expect(monday).To(Equal(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)))
		})

		It("maps Sunday to the Monday six days earlier", func() {
			sunday := time.Date(2024, 6, 9, 8, 0, 0, 0, time.UTC)
			Expect(WeekStart(sunday)).To(Equal(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)))
		})

		It("is idempotent", func() {
			anchor := time.Date(2024, 6, 6, 15, 30, 0, 0, time.UTC)
			once := WeekStart(anchor)
			Expect(WeekStart(once)).To(Equal(once))
		})

		It("truncates the time of day", func() {
			monday := time.Date(2024, 6, 3, 23, 59, 0, 0, time.UTC)
			Expect(WeekStart(monday)).To(Equal(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)))
		})
	})

	Describe("Navigate", func() {
		monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

		It("moves forward exactly seven days", func() {
			Expect(Navigate(monday, DirectionNext)).To(Equal(monday.AddDate(0, 0, 7)))
		})

		It("moves back exactly seven days", func() {
			Expect(Navigate(monday, DirectionPrevious)).To(Equal(monday.AddDate(0, 0, -7)))
		})

		It("round-trips to the same Monday", func() {
			Expect(Navigate(Navigate(monday, DirectionNext), DirectionPrevious)).To(Equal(monday))
		})
	})

	Describe("WeekDays", func() {
		It("returns seven consecutive days starting Monday", func() {
			monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
			days := WeekDays(monday)

			Expect(days[0]).To(Equal(monday))
			Expect(days[6]).To(Equal(monday.AddDate(0, 0, 6)))
			for i := 1; i < 7; i++ {
				Expect(days[i].Sub(days[i-1])).To(Equal(24 * time.Hour))
			}
		})
	})

	Describe("WeekLabel", func() {
		It("shows the month once when the week stays in one month", func() {
			monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
			Expect(WeekLabel(monday)).To(Equal("2nd - 8th Sep"))
		})

		It("shows both months when the week spans two", func() {
			monday := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)
			Expect(WeekLabel(monday)).To(Equal("30th Sep - 6th Oct"))
		})

		It("uses teen ordinals for 11th through 13th", func() {
			monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
			Expect(WeekLabel(monday)).To(Equal("11th - 17th Mar"))
		})

		It("uses st, nd and rd where they apply", func() {
			monday := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
			Expect(WeekLabel(monday)).To(Equal("1st - 7th Jul"))

			monday = time.Date(2024, 4, 22, 0, 0, 0, 0, time.UTC)
			Expect(WeekLabel(monday)).To(Equal("22nd - 28th Apr"))
		})
	})
})

var _ = Describe("Time off expansion", func() {
	Describe("ExpandTimeOffDays", func() {
		It("includes one day past the end of the range", func() {
			start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
			end := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)

			days := ExpandTimeOffDays(start, end)

			Expect(days).To(HaveLen(3))
			Expect(days[0]).To(Equal(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)))
			Expect(days[1]).To(Equal(time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)))
			Expect(days[2]).To(Equal(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)))
		})

		It("yields two days for a single-day request", func() {
			day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
			Expect(ExpandTimeOffDays(day, day)).To(HaveLen(2))
		})

		It("truncates times of day before expanding", func() {
			start := time.Date(2024, 6, 3, 14, 45, 0, 0, time.UTC)
			end := time.Date(2024, 6, 3, 22, 0, 0, 0, time.UTC)

			days := ExpandTimeOffDays(start, end)
			Expect(days[0]).To(Equal(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)))
		})
	})

	Describe("BuildTimeOff", func() {
		dto := TimeOffDTO{
			UserID:    "user-1",
			SiteID:    "site-1",
			GroupID:   "group-1",
			StartTime: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		}

		It("creates one time-off schedule per expanded day", func() {
			schedules := BuildTimeOff(dto)

			Expect(schedules).To(HaveLen(3))
			for _, s := range schedules {
				Expect(s.ID).NotTo(BeEmpty())
				Expect(s.UserID).To(Equal("user-1"))
				Expect(s.Type).To(Equal(int(TypeTimeOff)))
				Expect(s.Status).To(BeTrue())
				Expect(s.Hours).To(BeZero())
				Expect(s.StartTime).To(Equal(s.EndTime))
			}
		})
	})
})

var _ = Describe("Repeat week", func() {
	base := []*Schedule{
		{
			ID:        "a",
			UserID:    "user-1",
			SiteID:    "site-1",
			GroupID:   "group-1",
			StartTime: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC),
			Status:    true,
			Type:      int(TypeAccepted),
			Hours:     8,
		},
		{
			ID:        "b",
			UserID:    "user-2",
			SiteID:    "site-1",
			GroupID:   "group-1",
			StartTime: time.Date(2024, 6, 4, 22, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 6, 5, 4, 0, 0, 0, time.UTC),
			Status:    false,
			Type:      int(TypePending),
			Hours:     6,
		},
	}

	It("produces one copy per input, seven days later", func() {
		shifted := ShiftWeekForward(base)

		Expect(shifted).To(HaveLen(len(base)))
		for i, s := range shifted {
			Expect(s.StartTime).To(Equal(base[i].StartTime.AddDate(0, 0, 7)))
			Expect(s.EndTime).To(Equal(base[i].EndTime.AddDate(0, 0, 7)))
			Expect(s.UserID).To(Equal(base[i].UserID))
			Expect(s.Status).To(Equal(base[i].Status))
			Expect(s.Type).To(Equal(base[i].Type))
			Expect(s.Hours).To(Equal(base[i].Hours))
		}
	})

	It("assigns fresh ids to every copy", func() {
		shifted := ShiftWeekForward(base)

		for i, s := range shifted {
			Expect(s.ID).NotTo(BeEmpty())
			Expect(s.ID).NotTo(Equal(base[i].ID))
		}
	})

	It("stacks duplicates when repeated from the same base", func() {
		first := ShiftWeekForward(base)
		second := ShiftWeekForward(base)

		Expect(first[0].StartTime).To(Equal(second[0].StartTime))
		Expect(first[0].ID).NotTo(Equal(second[0].ID))
	})

	It("does not mutate the input schedules", func() {
		before := *base[0]
		ShiftWeekForward(base)
		Expect(*base[0]).To(Equal(before))
	})
})

var _ = Describe("IntervalHours", func() {
	It("returns fractional hours between two instants", func() {
		start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 3, 17, 30, 0, 0, time.UTC)
		Expect(IntervalHours(start, end)).To(Equal(8.5))
	})

	It("spans midnight for overnight intervals", func() {
		start := time.Date(2024, 6, 3, 22, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 4, 4, 0, 0, 0, time.UTC)
		Expect(IntervalHours(start, end)).To(Equal(6.0))
	})
})
