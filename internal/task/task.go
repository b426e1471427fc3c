// Package task provides the message bridge between background operations
// and their polling consumers. A worker goroutine posts a stream of progress
// messages ending in exactly one terminal message; the consumer drains the
// queue with Poll until it sees that terminal.
//
// The vocabulary is deliberately closed: five message types cover every
// operation, so consumers never need operation-specific decoding.
package task

import (
	"errors"
	"sync"
)

// ErrActive is returned by Start when the bridge already has an operation
// running. At most one operation runs per bridge at a time.
var ErrActive = errors.New("operation already running")

// Type classifies a bridge message.
type Type string

const (
	// Status announces a phase change ("Scanning /srv/manuals").
	Status Type = "status"
	// Progress reports position within a known total.
	Progress Type = "progress"
	// Info carries a non-fatal notice (a file that failed to extract).
	Info Type = "info"
	// Finished is the success terminal, carrying the operation's result.
	Finished Type = "finished"
	// Error is the failure terminal.
	Error Type = "error"
)

// Message is one unit of worker-to-consumer communication. Current and
// Total are meaningful only for Progress; Payload only for Finished.
type Message struct {
	Type    Type   `json:"type"`
	Text    string `json:"text,omitempty"`
	Current int    `json:"current,omitempty"`
	Total   int    `json:"total,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// Terminal reports whether this message ends the operation.
func (m Message) Terminal() bool {
	return m.Type == Finished || m.Type == Error
}

// Bridge is an unbounded FIFO message queue for one operation at a time.
// Posting never blocks the worker; consumers drain with Poll at their own
// cadence. Safe for concurrent use.
type Bridge struct {
	mu     sync.Mutex
	queue  []Message
	active bool
}

// NewBridge returns an idle bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Start claims the bridge for a new operation, clearing any messages left
// over from the previous one. Returns ErrActive if an operation is already
// running.
func (b *Bridge) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active {
		return ErrActive
	}
	b.active = true
	b.queue = nil
	return nil
}

// Active reports whether an operation is currently running.
func (b *Bridge) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// Poll drains and returns all queued messages in posting order. Returns nil
// when nothing is queued.
func (b *Bridge) Poll() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.queue
	b.queue = nil
	return msgs
}

// Status posts a phase-change message.
func (b *Bridge) Status(text string) {
	b.post(Message{Type: Status, Text: text})
}

// Progress posts a position within a known total.
func (b *Bridge) Progress(current, total int, text string) {
	b.post(Message{Type: Progress, Current: current, Total: total, Text: text})
}

// Info posts a non-fatal notice.
func (b *Bridge) Info(text string) {
	b.post(Message{Type: Info, Text: text})
}

// Finish posts the success terminal with the operation's result and releases
// the bridge.
func (b *Bridge) Finish(payload any) {
	b.terminate(Message{Type: Finished, Payload: payload})
}

// Fail posts the failure terminal and releases the bridge.
func (b *Bridge) Fail(err error) {
	b.terminate(Message{Type: Error, Text: err.Error()})
}

func (b *Bridge) post(m Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return
	}
	b.queue = append(b.queue, m)
}

// terminate appends the terminal and releases in one critical section so no
// message can be queued after the terminal.
func (b *Bridge) terminate(m Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return
	}
	b.queue = append(b.queue, m)
	b.active = false
}
