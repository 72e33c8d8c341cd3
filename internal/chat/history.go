package chat

import (
	"sync"
	"time"
)

// Role identifies who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation.
type Message struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// History keeps the most recent messages, dropping the oldest once full.
// It is safe for concurrent use.
type History struct {
	mu    sync.Mutex
	buf   []Message
	start int
	size  int
}

// NewHistory returns a history holding at most capacity messages. A
// non-positive capacity is treated as 1.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]Message, capacity)}
}

// Add appends a message, evicting the oldest when at capacity.
func (h *History) Add(role Role, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := Message{Role: role, Text: text, At: time.Now()}
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = msg
		h.size++
		return
	}
	h.buf[h.start] = msg
	h.start = (h.start + 1) % len(h.buf)
}

// Messages returns a copy of the retained messages, oldest first.
func (h *History) Messages() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Message, h.size)
	for i := range out {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Len returns the number of retained messages.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}
