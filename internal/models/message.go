package models

import "time"

// Message is a directed communication unit between two users. Immutable after
// creation except for the read timestamp.
type Message struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	SenderID   uint       `gorm:"not null;index:idx_messages_pair" json:"sender_id"`
	ReceiverID uint       `gorm:"not null;index:idx_messages_pair" json:"receiver_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	Sender     *User      `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// ConversationSummary pairs a counterpart with the latest message exchanged,
// used for the inbox view.
type ConversationSummary struct {
	Counterpart *User    `json:"counterpart"`
	LastMessage *Message `json:"last_message"`
	UnreadCount int64    `json:"unread_count"`
}
