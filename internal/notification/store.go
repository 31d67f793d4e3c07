package notification

import "time"

// Type is the display category of a notification.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Notification is the client-side mirror of one server notification.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	Read      bool      `json:"read"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store mirrors the user's notification list between polls and keeps the
// unread count consistent with it. Owned by a single session, no locking.
type Store struct {
	items       []Notification
	unreadCount int
}

// NewStore creates an empty notification store.
func NewStore() *Store {
	return &Store{}
}

// SetAll replaces the mirrored list, e.g. after a poll.
func (s *Store) SetAll(items []Notification) {
	s.items = make([]Notification, len(items))
	copy(s.items, items)
	s.recount()
}

// Add prepends a notification, newest first.
func (s *Store) Add(n Notification) {
	s.items = append([]Notification{n}, s.items...)
	s.recount()
}

// MarkRead marks one notification read. Unknown IDs are ignored.
func (s *Store) MarkRead(id string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Read = true
			break
		}
	}
	s.recount()
}

// MarkAllRead marks everything read.
func (s *Store) MarkAllRead() {
	for i := range s.items {
		s.items[i].Read = true
	}
	s.unreadCount = 0
}

// Remove drops one notification. Unknown IDs are ignored.
func (s *Store) Remove(id string) {
	items := s.items[:0]
	for _, n := range s.items {
		if n.ID != id {
			items = append(items, n)
		}
	}
	s.items = items
	s.recount()
}

// All returns the mirrored notifications, newest first.
func (s *Store) All() []Notification {
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

// UnreadCount returns how many notifications are unread.
func (s *Store) UnreadCount() int {
	return s.unreadCount
}

func (s *Store) recount() {
	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	s.unreadCount = count
}
