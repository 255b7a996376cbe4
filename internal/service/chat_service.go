package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"atelier/internal/models"
	"atelier/internal/repository"

	"gorm.io/gorm"
)

const maxMessageContentLen = 10000 // 10K characters

// DirectMessagePublisher pushes a realtime event toward one user's live
// connections. Implemented by notifications.Notifier.
type DirectMessagePublisher interface {
	PublishDirectMessage(ctx context.Context, userID uint, payload string) error
}

// ChatService provides two-party direct-message business logic.
type ChatService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	publisher   DirectMessagePublisher
}

// NewChatService returns a new ChatService. publisher may be nil, in which
// case messages are stored but not pushed live.
func NewChatService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	publisher DirectMessagePublisher,
) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// SendMessageInput is the input for sending a direct message.
type SendMessageInput struct {
	SenderID   uint
	ReceiverID uint
	Content    string
}

// directMessageEvent is the wire shape pushed over the realtime channel.
type directMessageEvent struct {
	Type    string          `json:"type"`
	Payload *models.Message `json:"payload"`
}

// Conversation returns the full two-party history between the viewer and the
// counterpart, both directions, chronological ascending.
func (s *ChatService) Conversation(ctx context.Context, viewerID, otherID uint, limit, offset int) ([]*models.Message, error) {
	if viewerID == 0 {
		return nil, models.NewAuthRequiredError("Sign in to view messages")
	}
	if otherID == 0 || otherID == viewerID {
		return nil, models.NewValidationError("Invalid counterpart")
	}
	messages, err := s.messageRepo.Conversation(ctx, viewerID, otherID, limit, offset)
	if err != nil {
		return nil, models.NewLoadError(err)
	}
	return messages, nil
}

// Send stores one message from the viewer to the counterpart and pushes the
// stored row to both participants' live channels. Delivery is symmetric: the
// receiver gets the message and the sender gets the echo, so clients can rely
// on the push alone to append.
func (s *ChatService) Send(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	if in.SenderID == 0 {
		return nil, models.NewAuthRequiredError("Sign in to send messages")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if len(content) > maxMessageContentLen {
		return nil, models.NewValidationError("Message content too long (max 10000 characters)")
	}
	if in.ReceiverID == 0 || in.ReceiverID == in.SenderID {
		return nil, models.NewValidationError("Invalid recipient")
	}

	if _, err := s.userRepo.GetByID(ctx, in.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", in.ReceiverID)
		}
		return nil, err
	}

	message := &models.Message{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if sender, err := s.userRepo.GetByID(ctx, in.SenderID); err == nil {
		message.Sender = sender
	}

	s.publish(ctx, message)

	return message, nil
}

// publish pushes the stored message to both participants. Best-effort: a
// failed push degrades to reload-on-demand, it never fails the send.
func (s *ChatService) publish(ctx context.Context, message *models.Message) {
	if s.publisher == nil {
		return
	}
	event := directMessageEvent{Type: "message", Payload: message}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	_ = s.publisher.PublishDirectMessage(ctx, message.ReceiverID, string(payload))
	_ = s.publisher.PublishDirectMessage(ctx, message.SenderID, string(payload))
}

// Inbox returns one summary per counterpart, most recent conversation first.
func (s *ChatService) Inbox(ctx context.Context, viewerID uint) ([]*models.ConversationSummary, error) {
	if viewerID == 0 {
		return nil, models.NewAuthRequiredError("Sign in to view messages")
	}

	counterpartIDs, err := s.messageRepo.Counterparts(ctx, viewerID)
	if err != nil {
		return nil, models.NewLoadError(err)
	}
	if len(counterpartIDs) == 0 {
		return []*models.ConversationSummary{}, nil
	}

	users, err := s.userRepo.GetByIDs(ctx, counterpartIDs)
	if err != nil {
		return nil, models.NewLoadError(err)
	}
	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	summaries := make([]*models.ConversationSummary, 0, len(counterpartIDs))
	for _, otherID := range counterpartIDs {
		counterpart, ok := byID[otherID]
		if !ok {
			continue
		}
		last, err := s.messageRepo.LatestBetween(ctx, viewerID, otherID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewLoadError(err)
		}
		unread, err := s.messageRepo.UnreadCount(ctx, viewerID, otherID)
		if err != nil {
			return nil, models.NewLoadError(err)
		}
		summaries = append(summaries, &models.ConversationSummary{
			Counterpart: counterpart,
			LastMessage: last,
			UnreadCount: unread,
		})
	}
	return summaries, nil
}

// MarkRead stamps every unread message from the counterpart to the viewer.
func (s *ChatService) MarkRead(ctx context.Context, viewerID, otherID uint) error {
	if viewerID == 0 {
		return models.NewAuthRequiredError("Sign in to view messages")
	}
	if otherID == 0 || otherID == viewerID {
		return models.NewValidationError("Invalid counterpart")
	}
	return s.messageRepo.MarkRead(ctx, viewerID, otherID)
}
