// Package eventstreamutils builds the configured reminder event publisher.
package eventstreamutils

import (
	"errors"

	"github.com/papercomputeco/neno/pkg/eventstream"
	"github.com/papercomputeco/neno/pkg/eventstream/jsonl"
	"github.com/papercomputeco/neno/pkg/eventstream/kafka"
	"github.com/papercomputeco/neno/pkg/eventstream/nop"
)

type NewPublisherOpts struct {
	KafkaBrokers []string
	KafkaTopic   string

	// EventsLogPath is a JSON lines file that also receives every event.
	EventsLogPath string
}

// NewPublisher returns the publishers the options enable. Nothing configured
// yields a no-op publisher; more than one sink yields an eventstream.Multi.
func NewPublisher(o *NewPublisherOpts) (eventstream.Publisher, error) {
	var sinks eventstream.Multi

	if len(o.KafkaBrokers) > 0 {
		p, err := kafka.NewPublisher(kafka.Config{
			Brokers: o.KafkaBrokers,
			Topic:   o.KafkaTopic,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, p)
	}

	if o.EventsLogPath != "" {
		p, err := jsonl.NewPublisher(o.EventsLogPath)
		if err != nil {
			return nil, errors.Join(err, sinks.Close())
		}
		sinks = append(sinks, p)
	}

	switch len(sinks) {
	case 0:
		return nop.NewPublisher(), nil
	case 1:
		return sinks[0], nil
	default:
		return sinks, nil
	}
}
