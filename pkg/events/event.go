// Package events publishes checkout notifications to Kafka.
package events

import "time"

type Event struct {
	ID            string
	AggregateType string
	AggregateID   string
	Type          string
	Payload       []byte
	Headers       map[string]string
	CreatedAt     time.Time
}
