package management_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Adprivat/praxislabor/internal/management"
)

var _ = Describe("CSV Export", func() {
	overviewWith := func(users ...management.UserSummary) *management.Overview {
		return &management.Overview{
			RangeStart: "2024-03-04T00:00:00Z",
			RangeEnd:   "2024-03-08T23:59:59Z",
			PerUser:    users,
		}
	}

	It("writes the header even without users", func() {
		var buf strings.Builder
		Expect(management.WriteCSV(&buf, overviewWith())).To(Succeed())
		Expect(buf.String()).To(Equal("Name,Email,Total-Min,Billable-Min,Expected-Min,Overtime-Min"))
	})

	It("writes one row per user with signed overtime", func() {
		var buf strings.Builder
		err := management.WriteCSV(&buf, overviewWith(management.UserSummary{
			Name:            "Anna Acker",
			Email:           "anna@example.com",
			TotalMinutes:    2000,
			BillableMinutes: 1500,
			ExpectedMinutes: 2400,
			OvertimeMinutes: -400,
		}))
		Expect(err).NotTo(HaveOccurred())

		lines := strings.Split(buf.String(), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[1]).To(Equal("Anna Acker,anna@example.com,2000,1500,2400,-400"))
	})

	It("quotes fields containing commas or quotes", func() {
		var buf strings.Builder
		err := management.WriteCSV(&buf, overviewWith(management.UserSummary{
			Name:  `Acker, Anna "Ann"`,
			Email: "anna@example.com",
		}))
		Expect(err).NotTo(HaveOccurred())

		lines := strings.Split(buf.String(), "\n")
		Expect(lines[1]).To(HavePrefix(`"Acker, Anna ""Ann""",anna@example.com`))
	})

	It("derives the filename from the range dates", func() {
		name := management.ExportFilename(overviewWith())
		Expect(name).To(Equal("management-export-2024-03-04-2024-03-08.csv"))
	})
})
