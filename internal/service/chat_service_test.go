package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// messageRepoStub is a stub for repository.MessageRepository.
type messageRepoStub struct {
	createFn        func(context.Context, *models.Message) error
	conversationFn  func(context.Context, uint, uint, int, int) ([]*models.Message, error)
	counterpartsFn  func(context.Context, uint) ([]uint, error)
	latestBetweenFn func(context.Context, uint, uint) (*models.Message, error)
	unreadCountFn   func(context.Context, uint, uint) (int64, error)
	markReadFn      func(context.Context, uint, uint) error
}

func (s *messageRepoStub) Create(ctx context.Context, msg *models.Message) error {
	return s.createFn(ctx, msg)
}
func (s *messageRepoStub) Conversation(ctx context.Context, userID, otherID uint, limit, offset int) ([]*models.Message, error) {
	return s.conversationFn(ctx, userID, otherID, limit, offset)
}
func (s *messageRepoStub) Counterparts(ctx context.Context, userID uint) ([]uint, error) {
	return s.counterpartsFn(ctx, userID)
}
func (s *messageRepoStub) LatestBetween(ctx context.Context, userID, otherID uint) (*models.Message, error) {
	return s.latestBetweenFn(ctx, userID, otherID)
}
func (s *messageRepoStub) UnreadCount(ctx context.Context, userID, otherID uint) (int64, error) {
	return s.unreadCountFn(ctx, userID, otherID)
}
func (s *messageRepoStub) MarkRead(ctx context.Context, userID, otherID uint) error {
	return s.markReadFn(ctx, userID, otherID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn: func(_ context.Context, msg *models.Message) error {
			msg.ID = 1
			msg.CreatedAt = time.Now()
			return nil
		},
		conversationFn: func(_ context.Context, _, _ uint, _, _ int) ([]*models.Message, error) {
			return nil, nil
		},
		counterpartsFn:  func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		latestBetweenFn: func(_ context.Context, _, _ uint) (*models.Message, error) { return &models.Message{}, nil },
		unreadCountFn:   func(_ context.Context, _, _ uint) (int64, error) { return 0, nil },
		markReadFn:      func(_ context.Context, _, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByIDsFn      func(context.Context, []uint) ([]*models.User, error)
	listByRoleFn    func(context.Context, string, int, int) ([]*models.User, error)
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]*models.User, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *userRepoStub) ListByRole(ctx context.Context, role string, limit, offset int) ([]*models.User, error) {
	return s.listByRoleFn(ctx, role, limit, offset)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, gorm.ErrRecordNotFound },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, gorm.ErrRecordNotFound },
		getByIDsFn:      func(_ context.Context, _ []uint) ([]*models.User, error) { return nil, nil },
		listByRoleFn:    func(_ context.Context, _ string, _, _ int) ([]*models.User, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
	}
}

// publisherStub records every publish by target user ID.
type publisherStub struct {
	published map[uint][]string
}

func newPublisherStub() *publisherStub {
	return &publisherStub{published: make(map[uint][]string)}
}

func (p *publisherStub) PublishDirectMessage(_ context.Context, userID uint, payload string) error {
	p.published[userID] = append(p.published[userID], payload)
	return nil
}

func TestChatService_Send_Validation(t *testing.T) {
	t.Parallel()

	svc := NewChatService(noopMessageRepo(), noopUserRepo(), nil)
	ctx := context.Background()

	t.Run("anonymous sender rejected", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Send(ctx, SendMessageInput{ReceiverID: 2, Content: "hi"})
		assertAuthRequiredError(t, err)
	})

	tests := []struct {
		name  string
		input SendMessageInput
	}{
		{name: "empty content", input: SendMessageInput{SenderID: 1, ReceiverID: 2}},
		{name: "whitespace-only content", input: SendMessageInput{SenderID: 1, ReceiverID: 2, Content: "   \n\t "}},
		{name: "content too long", input: SendMessageInput{SenderID: 1, ReceiverID: 2, Content: strings.Repeat("x", 10001)}},
		{name: "missing recipient", input: SendMessageInput{SenderID: 1, Content: "hi"}},
		{name: "self as recipient", input: SendMessageInput{SenderID: 1, ReceiverID: 1, Content: "hi"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Send(ctx, tc.input)
			assertValidationError(t, err)
		})
	}
}

func TestChatService_Send_UnknownRecipient(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewChatService(noopMessageRepo(), users, nil)

	_, err := svc.Send(context.Background(), SendMessageInput{SenderID: 1, ReceiverID: 42, Content: "hi"})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestChatService_Send_PublishesToBothParticipants(t *testing.T) {
	t.Parallel()

	pub := newPublisherStub()
	svc := NewChatService(noopMessageRepo(), noopUserRepo(), pub)

	msg, err := svc.Send(context.Background(), SendMessageInput{SenderID: 1, ReceiverID: 2, Content: "  hello  "})
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content, "content must be stored trimmed")

	require.Len(t, pub.published[1], 1, "sender must receive the echo")
	require.Len(t, pub.published[2], 1, "receiver must receive the message")
	assert.Equal(t, pub.published[1][0], pub.published[2][0], "both sides see the identical stored event")
	assert.Contains(t, pub.published[2][0], `"type":"message"`)
}

func TestChatService_Send_WorksWithoutPublisher(t *testing.T) {
	t.Parallel()

	svc := NewChatService(noopMessageRepo(), noopUserRepo(), nil)
	msg, err := svc.Send(context.Background(), SendMessageInput{SenderID: 1, ReceiverID: 2, Content: "hi"})
	require.NoError(t, err)
	assert.NotNil(t, msg)
}

func TestChatService_Conversation(t *testing.T) {
	t.Parallel()

	t.Run("anonymous viewer rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewChatService(noopMessageRepo(), noopUserRepo(), nil)
		_, err := svc.Conversation(context.Background(), 0, 2, 50, 0)
		assertAuthRequiredError(t, err)
	})

	t.Run("self as counterpart rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewChatService(noopMessageRepo(), noopUserRepo(), nil)
		_, err := svc.Conversation(context.Background(), 1, 1, 50, 0)
		assertValidationError(t, err)
	})

	t.Run("returns history from the store", func(t *testing.T) {
		t.Parallel()
		msgs := noopMessageRepo()
		msgs.conversationFn = func(_ context.Context, userID, otherID uint, _, _ int) ([]*models.Message, error) {
			return []*models.Message{
				{ID: 1, SenderID: userID, ReceiverID: otherID, Content: "first"},
				{ID: 2, SenderID: otherID, ReceiverID: userID, Content: "second"},
			}, nil
		}
		svc := NewChatService(msgs, noopUserRepo(), nil)

		history, err := svc.Conversation(context.Background(), 1, 2, 50, 0)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "first", history[0].Content)
		assert.Equal(t, "second", history[1].Content)
	})
}

func TestChatService_Inbox(t *testing.T) {
	t.Parallel()

	msgs := noopMessageRepo()
	msgs.counterpartsFn = func(_ context.Context, _ uint) ([]uint, error) { return []uint{3, 2}, nil }
	msgs.latestBetweenFn = func(_ context.Context, _, otherID uint) (*models.Message, error) {
		return &models.Message{SenderID: otherID, Content: "latest"}, nil
	}
	msgs.unreadCountFn = func(_ context.Context, _, otherID uint) (int64, error) {
		if otherID == 3 {
			return 2, nil
		}
		return 0, nil
	}

	users := noopUserRepo()
	users.getByIDsFn = func(_ context.Context, ids []uint) ([]*models.User, error) {
		out := make([]*models.User, 0, len(ids))
		for _, id := range ids {
			out = append(out, &models.User{ID: id})
		}
		return out, nil
	}

	svc := NewChatService(msgs, users, nil)
	summaries, err := svc.Inbox(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Counterpart order from the repo is preserved: most recent first.
	assert.Equal(t, uint(3), summaries[0].Counterpart.ID)
	assert.Equal(t, int64(2), summaries[0].UnreadCount)
	assert.Equal(t, uint(2), summaries[1].Counterpart.ID)
	assert.Equal(t, int64(0), summaries[1].UnreadCount)
}

func TestChatService_MarkRead_Validation(t *testing.T) {
	t.Parallel()

	svc := NewChatService(noopMessageRepo(), noopUserRepo(), nil)
	assertAuthRequiredError(t, svc.MarkRead(context.Background(), 0, 2))
	assertValidationError(t, svc.MarkRead(context.Background(), 1, 1))
}
