package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Thread is a two-party conversation. The participant pair is unique: the
// first message between two users creates the thread and every later message
// lands in the same one. Threads are never deleted.
type Thread struct {
	ID      string `gorm:"primaryKey" json:"id"`
	User1ID string `gorm:"not null;index" json:"user1Id"`
	User2ID string `gorm:"not null;index" json:"user2Id"`

	// PairKey is the order-normalized participant pair ("min:max"). The
	// unique index on it is what makes find-or-create race-safe.
	PairKey string `gorm:"uniqueIndex;not null" json:"-"`

	LastMessageAt time.Time `json:"lastMessageAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BeforeCreate fills in the ID and the normalized pair key.
func (t *Thread) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.PairKey == "" {
		t.PairKey = PairKeyFor(t.User1ID, t.User2ID)
	}
	return
}

// PairKeyFor returns the order-independent key for a participant pair.
func PairKeyFor(a, b string) string {
	if a < b {
		return a + ":" + b
	}
	return b + ":" + a
}

// HasParticipant reports whether userID is one of the two parties.
func (t *Thread) HasParticipant(userID string) bool {
	return t.User1ID == userID || t.User2ID == userID
}

// OtherParticipant returns the party that is not userID. Callers must check
// HasParticipant first.
func (t *Thread) OtherParticipant(userID string) string {
	if t.User1ID == userID {
		return t.User2ID
	}
	return t.User1ID
}

// MessageContent is the multilingual body stored on every message. When
// translation is unavailable the original text is mirrored into both keys.
type MessageContent struct {
	EN string `json:"en"`
	JA string `json:"ja"`
}

// Message belongs to a Thread. Immutable once created except for the read
// flag.
type Message struct {
	ID       string         `gorm:"primaryKey" json:"id"`
	ThreadID string         `gorm:"not null;index:idx_thread_msg" json:"threadId"`
	SenderID string         `gorm:"not null;index:idx_thread_msg" json:"senderId"`
	Content  datatypes.JSON `gorm:"not null" json:"content"`
	IsRead   bool           `gorm:"not null;default:false" json:"isRead"`

	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a UUID when unset.
func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// SetContent marshals the multilingual body into the JSON column.
func (m *Message) SetContent(c MessageContent) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.Content = datatypes.JSON(b)
	return nil
}

// GetContent unmarshals the multilingual body.
func (m *Message) GetContent() (MessageContent, error) {
	var c MessageContent
	err := json.Unmarshal(m.Content, &c)
	return c, err
}

// ThreadSummary is the inbox view of a thread: the thread itself, its most
// recent message and the caller's unread count.
type ThreadSummary struct {
	Thread      Thread   `json:"thread"`
	LastMessage *Message `json:"lastMessage,omitempty"`
	UnreadCount int      `json:"unreadCount"`
}
