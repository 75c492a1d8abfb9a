package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/eventstream"
	"github.com/papercomputeco/neno/pkg/logger"
	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/reminder/service"
	"github.com/papercomputeco/neno/pkg/storage"
	"github.com/papercomputeco/neno/pkg/storage/inmemory"
	testutils "github.com/papercomputeco/neno/pkg/utils/test"
)

var _ = Describe("Service", func() {
	var (
		ctx       context.Context
		store     *inmemory.Driver
		publisher *testutils.MockPublisher
		svc       *service.Service
		now       time.Time
		notified  int
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = inmemory.NewDriver()
		publisher = testutils.NewMockPublisher()
		now = time.Date(2026, time.March, 5, 10, 30, 0, 0, time.Local)
		notified = 0

		svc = service.New(store,
			service.WithPublisher(publisher),
			service.WithUser("ana"),
			service.WithClock(func() time.Time { return now }),
			service.WithLogger(logger.Nop()),
		)
		_, err := svc.Broadcaster().Register(func() { notified++ })
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Add", func() {
		It("stores a reminder with an absolute time", func() {
			r, err := svc.Add(ctx, "tomar pastilla", "09:00", reminder.RepeatDaily)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.When).To(Equal("06/03/2026 09:00"))

			stored, err := store.Get(ctx, r.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(Equal(r))
		})

		It("notifies listeners and publishes an update", func() {
			r, err := svc.Add(ctx, "agua", "05/03/2026 12:00", reminder.RepeatNone)
			Expect(err).NotTo(HaveOccurred())

			Expect(notified).To(Equal(1))
			events := publisher.Events()
			Expect(events).To(HaveLen(1))
			Expect(events[0].EventType).To(Equal(eventstream.EventTypeRemindersUpdated))
			Expect(events[0].Action).To(Equal(service.ActionAdded))
			Expect(events[0].User).To(Equal("ana"))
			Expect(events[0].Reminder.ID).To(Equal(r.ID))
		})

		It("still succeeds when publishing fails", func() {
			publisher.Err = errors.New("broker down")
			_, err := svc.Add(ctx, "agua", "12:00", reminder.RepeatNone)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects invalid times", func() {
			_, err := svc.Add(ctx, "agua", "mediodía", reminder.RepeatNone)
			Expect(err).To(MatchError(reminder.ErrInvalidWhen))
			Expect(notified).To(BeZero())
		})
	})

	Describe("Update", func() {
		It("edits a reminder and re-arms it", func() {
			r, err := svc.Add(ctx, "agua", "05/03/2026 10:00", reminder.RepeatNone)
			Expect(err).NotTo(HaveOccurred())
			r.Notified = true
			Expect(store.Put(ctx, r)).To(Succeed())

			updated, err := svc.Update(ctx, r.ID, "agua con limón", "05/03/2026 11:00", reminder.RepeatDaily)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Text).To(Equal("agua con limón"))
			Expect(updated.When).To(Equal("05/03/2026 11:00"))
			Expect(updated.Repeat).To(Equal(reminder.RepeatDaily))
			Expect(updated.Notified).To(BeFalse())
			Expect(publisher.Events()[1].Action).To(Equal(service.ActionUpdated))
		})

		It("keeps the text when the new text is empty", func() {
			r, err := svc.Add(ctx, "agua", "11:00", reminder.RepeatNone)
			Expect(err).NotTo(HaveOccurred())

			updated, err := svc.Update(ctx, r.ID, " ", "12:00", reminder.RepeatNone)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Text).To(Equal("agua"))
		})

		It("returns NotFoundError for unknown reminders", func() {
			_, err := svc.Update(ctx, "missing", "x", "11:00", reminder.RepeatNone)
			Expect(storage.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("removes a reminder and announces it", func() {
			r, err := svc.Add(ctx, "agua", "11:00", reminder.RepeatNone)
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Delete(ctx, r.ID)).To(Succeed())

			list, err := svc.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
			Expect(notified).To(Equal(2))
			Expect(publisher.Events()[1].Action).To(Equal(service.ActionDeleted))
		})

		It("returns NotFoundError for unknown reminders", func() {
			err := svc.Delete(ctx, "missing")
			Expect(storage.IsNotFound(err)).To(BeTrue())
			Expect(notified).To(BeZero())
		})
	})
})
