package service

import (
	"log"
	"sync"
)

// AlertQueue collects alerts until the UI polls for them.
type AlertQueue struct {
	mu       sync.Mutex
	messages []string
}

func NewAlertQueue() *AlertQueue {
	return &AlertQueue{}
}

func (q *AlertQueue) Alert(message string) {
	q.mu.Lock()
	q.messages = append(q.messages, message)
	q.mu.Unlock()
}

// Drain returns the pending alerts and clears the queue.
func (q *AlertQueue) Drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.messages
	q.messages = nil
	if out == nil {
		out = []string{}
	}
	return out
}

// LogNotifier writes alerts to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Alert(message string) {
	log.Printf("ALERT: %s", message)
}
