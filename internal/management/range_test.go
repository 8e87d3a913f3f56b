package management_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Adprivat/praxislabor/internal/management"
)

var _ = Describe("DetermineRange", func() {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	It("defaults to the trailing seven days", func() {
		start, end := management.DetermineRange("", "", "", now)
		Expect(start).To(Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)))
		Expect(end.Format("2006-01-02 15:04:05")).To(Equal("2024-03-15 23:59:59"))
	})

	It("spans thirty days for the month period", func() {
		start, end := management.DetermineRange("month", "", "", now)
		Expect(start).To(Equal(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)))
		Expect(end.Day()).To(Equal(15))
	})

	It("spans a full year for the year period", func() {
		start, _ := management.DetermineRange("year", "", "", now)
		Expect(start).To(Equal(time.Date(2023, 3, 17, 0, 0, 0, 0, time.UTC)))
	})

	It("honours explicit bounds for custom ranges", func() {
		start, end := management.DetermineRange("custom", "2024-01-01", "2024-01-31", now)
		Expect(start).To(Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		Expect(end.Format("2006-01-02")).To(Equal("2024-01-31"))
	})

	It("swaps inverted custom bounds", func() {
		start, end := management.DetermineRange("custom", "2024-02-20", "2024-02-01", now)
		Expect(start.Format("2006-01-02")).To(Equal("2024-02-01"))
		Expect(end.Format("2006-01-02")).To(Equal("2024-02-20"))
		Expect(start.Before(end)).To(BeTrue())
	})

	It("falls back to seven days when the custom from date is malformed", func() {
		start, _ := management.DetermineRange("custom", "not-a-date", "", now)
		Expect(start).To(Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)))
	})

	It("anchors the range at the to date when given", func() {
		start, end := management.DetermineRange("", "", "2024-03-10", now)
		Expect(end.Format("2006-01-02")).To(Equal("2024-03-10"))
		Expect(start).To(Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
	})
})
