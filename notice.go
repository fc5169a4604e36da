package docview

import (
	"sync"
	"time"
)

// NoticeLevel classifies a Notice.
type NoticeLevel string

// Notice levels.
const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a short message shown to users of the viewer.
type Notice struct {
	Time    time.Time
	Level   NoticeLevel
	Message string
}

// DefaultNoticeCapacity is the number of notices kept when no capacity is given.
const DefaultNoticeCapacity = 50

// Notices is a bounded ring buffer of notices. Once full, adding a notice
// drops the oldest one. The zero value is not usable; use NewNotices.
//
// Notices is safe for concurrent use.
type Notices struct {
	mu    sync.Mutex
	items []Notice
	next  int
	full  bool
	now   func() time.Time
}

// NewNotices returns a buffer holding at most capacity notices.
// A non-positive capacity means DefaultNoticeCapacity.
func NewNotices(capacity int) *Notices {
	if capacity <= 0 {
		capacity = DefaultNoticeCapacity
	}
	return &Notices{
		items: make([]Notice, capacity),
		now:   time.Now,
	}
}

// Add appends a notice, evicting the oldest one when the buffer is full.
func (n *Notices) Add(level NoticeLevel, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.items[n.next] = Notice{Time: n.now(), Level: level, Message: msg}
	n.next = (n.next + 1) % len(n.items)
	if n.next == 0 {
		n.full = true
	}
}

// List returns a copy of the buffered notices, oldest first.
func (n *Notices) List() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.full {
		return append([]Notice(nil), n.items[:n.next]...)
	}
	out := make([]Notice, 0, len(n.items))
	out = append(out, n.items[n.next:]...)
	return append(out, n.items[:n.next]...)
}

// Len returns the number of buffered notices.
func (n *Notices) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.full {
		return len(n.items)
	}
	return n.next
}
