// Package notifier delivers guest-facing lifecycle notifications.
// Delivery is fire-and-forget: the booking flow never fails because a
// message did not go out.
package notifier

import (
	"context"
	"log"
)

// LogSender writes notifications to the process log. It stands in for
// a real channel (email, push) behind the same interface.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(_ context.Context, userID int64, event, message string) {
	log.Printf("notify user_id=%d event=%s message=%q", userID, event, message)
}
