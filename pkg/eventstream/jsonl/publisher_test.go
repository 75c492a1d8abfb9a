package jsonl_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/eventstream"
	"github.com/papercomputeco/neno/pkg/eventstream/jsonl"
	"github.com/papercomputeco/neno/pkg/reminder"
)

var _ = Describe("Publisher", func() {
	var (
		ctx  context.Context
		path string
	)

	BeforeEach(func() {
		ctx = context.Background()
		path = filepath.Join(GinkgoT().TempDir(), "logs", "events.jsonl")
	})

	readLines := func() []eventstream.Event {
		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		var events []eventstream.Event
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			var e eventstream.Event
			Expect(json.Unmarshal(scanner.Bytes(), &e)).To(Succeed())
			events = append(events, e)
		}
		return events
	}

	It("requires a path", func() {
		_, err := jsonl.NewPublisher("")
		Expect(err).To(HaveOccurred())
	})

	It("appends one line per event across reopens", func() {
		r := reminder.New("regar las plantas", "24/12/2026 10:00", reminder.RepeatNone)

		p, err := jsonl.NewPublisher(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Publish(ctx, eventstream.NewEvent(eventstream.EventTypeRemindersUpdated, r))).To(Succeed())
		Expect(p.Close()).To(Succeed())

		p, err = jsonl.NewPublisher(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Publish(ctx, eventstream.NewEvent(eventstream.EventTypeReminderFired, r))).To(Succeed())
		Expect(p.Close()).To(Succeed())

		events := readLines()
		Expect(events).To(HaveLen(2))
		Expect(events[0].EventType).To(Equal(eventstream.EventTypeRemindersUpdated))
		Expect(events[1].EventType).To(Equal(eventstream.EventTypeReminderFired))
		Expect(events[1].Reminder.Text).To(Equal("regar las plantas"))
	})

	It("rejects nil events and publishing after close", func() {
		p, err := jsonl.NewPublisher(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Publish(ctx, nil)).To(MatchError(eventstream.ErrNilEvent))

		Expect(p.Close()).To(Succeed())
		Expect(p.Close()).To(Succeed())
		Expect(p.Publish(ctx, eventstream.NewEvent(eventstream.EventTypeRemindersUpdated, nil))).To(MatchError(os.ErrClosed))
	})
})
