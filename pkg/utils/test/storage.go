package testutils

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/storage"
)

// NewTestReminder creates a pending reminder with a fixed ID.
func NewTestReminder(id, text, when string) *reminder.Reminder {
	return &reminder.Reminder{
		ID:   id,
		Text: text,
		When: when,
	}
}

// DescribeDriver registers the behaviour every storage.Driver must have.
// newDriver is called before each spec; the returned driver is closed after it.
func DescribeDriver(newDriver func() storage.Driver) {
	var (
		driver storage.Driver
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = newDriver()
	})

	AfterEach(func() {
		if driver != nil {
			Expect(driver.Close()).To(Succeed())
		}
	})

	Describe("List", func() {
		It("returns an empty list for a new store", func() {
			reminders, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(reminders).To(BeEmpty())
		})

		It("keeps insertion order", func() {
			Expect(driver.Put(ctx, NewTestReminder("b", "segundo", "10:00"))).To(Succeed())
			Expect(driver.Put(ctx, NewTestReminder("a", "primero", "09:00"))).To(Succeed())
			Expect(driver.Put(ctx, NewTestReminder("c", "tercero", "11:00"))).To(Succeed())

			reminders, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(reminders).To(HaveLen(3))
			Expect(reminders[0].ID).To(Equal("b"))
			Expect(reminders[1].ID).To(Equal("a"))
			Expect(reminders[2].ID).To(Equal("c"))
		})
	})

	Describe("Put and Get", func() {
		It("stores and retrieves every field", func() {
			r := &reminder.Reminder{
				ID:       "r1",
				Text:     "Llamar a mamá",
				When:     "05/03/2026 18:30",
				Repeat:   reminder.RepeatDaily,
				Notified: true,
			}
			Expect(driver.Put(ctx, r)).To(Succeed())

			got, err := driver.Get(ctx, "r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(r))
		})

		It("replaces an existing reminder in place", func() {
			Expect(driver.Put(ctx, NewTestReminder("a", "uno", "09:00"))).To(Succeed())
			Expect(driver.Put(ctx, NewTestReminder("b", "dos", "10:00"))).To(Succeed())
			Expect(driver.Put(ctx, NewTestReminder("a", "uno editado", "09:30"))).To(Succeed())

			reminders, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(reminders).To(HaveLen(2))
			Expect(reminders[0].Text).To(Equal("uno editado"))
			Expect(reminders[0].When).To(Equal("09:30"))
		})

		It("does not alias the stored value", func() {
			r := NewTestReminder("a", "uno", "09:00")
			Expect(driver.Put(ctx, r)).To(Succeed())
			r.Text = "changed"

			got, err := driver.Get(ctx, "a")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Text).To(Equal("uno"))
		})

		It("returns NotFoundError for an unknown ID", func() {
			_, err := driver.Get(ctx, "missing")
			Expect(err).To(MatchError(storage.NotFoundError{ID: "missing"}))
			Expect(storage.IsNotFound(err)).To(BeTrue())
		})

		It("rejects nil reminders", func() {
			Expect(driver.Put(ctx, nil)).To(MatchError(storage.ErrNilReminder))
		})
	})

	Describe("Update", func() {
		It("replaces an existing reminder in place", func() {
			Expect(driver.Put(ctx, NewTestReminder("a", "uno", "09:00"))).To(Succeed())
			Expect(driver.Put(ctx, NewTestReminder("b", "dos", "10:00"))).To(Succeed())

			edited := NewTestReminder("a", "uno", "09:00")
			edited.Notified = true
			Expect(driver.Update(ctx, edited)).To(Succeed())

			reminders, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(reminders).To(HaveLen(2))
			Expect(reminders[0].ID).To(Equal("a"))
			Expect(reminders[0].Notified).To(BeTrue())
		})

		It("does not insert a reminder that is not stored", func() {
			Expect(driver.Put(ctx, NewTestReminder("a", "uno", "09:00"))).To(Succeed())
			_, err := driver.Delete(ctx, "a")
			Expect(err).NotTo(HaveOccurred())

			err = driver.Update(ctx, NewTestReminder("a", "uno", "09:00"))
			Expect(err).To(MatchError(storage.NotFoundError{ID: "a"}))

			reminders, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(reminders).To(BeEmpty())
		})

		It("rejects nil reminders", func() {
			Expect(driver.Update(ctx, nil)).To(MatchError(storage.ErrNilReminder))
		})
	})

	Describe("Delete", func() {
		It("removes a reminder", func() {
			Expect(driver.Put(ctx, NewTestReminder("a", "uno", "09:00"))).To(Succeed())
			Expect(driver.Put(ctx, NewTestReminder("b", "dos", "10:00"))).To(Succeed())

			ok, err := driver.Delete(ctx, "a")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			reminders, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(reminders).To(HaveLen(1))
			Expect(reminders[0].ID).To(Equal("b"))
		})

		It("reports false for an unknown ID", func() {
			ok, err := driver.Delete(ctx, "missing")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Replace", func() {
		It("swaps the whole list", func() {
			Expect(driver.Put(ctx, NewTestReminder("a", "uno", "09:00"))).To(Succeed())

			Expect(driver.Replace(ctx, []*reminder.Reminder{
				NewTestReminder("x", "equis", "12:00"),
				NewTestReminder("y", "ye", "13:00"),
			})).To(Succeed())

			reminders, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(reminders).To(HaveLen(2))
			Expect(reminders[0].ID).To(Equal("x"))
			Expect(reminders[1].ID).To(Equal("y"))

			_, err = driver.Get(ctx, "a")
			Expect(storage.IsNotFound(err)).To(BeTrue())
		})

		It("accepts an empty list", func() {
			Expect(driver.Put(ctx, NewTestReminder("a", "uno", "09:00"))).To(Succeed())
			Expect(driver.Replace(ctx, nil)).To(Succeed())

			reminders, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(reminders).To(BeEmpty())
		})
	})
}
