package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseUserIDParam extracts the :userId route parameter as a positive uint.
func parseUserIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("userId")
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid user ID")
	}
	return uint(id), nil
}

// GetInbox handles GET /api/messages
func (s *Server) GetInbox(c *fiber.Ctx) error {
	summaries, err := s.chatService.Inbox(c.Context(), viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summaries)
}

// GetConversation handles GET /api/messages/:userId
func (s *Server) GetConversation(c *fiber.Ctx) error {
	otherID, err := parseUserIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	page := parsePagination(c, 50)
	messages, err := s.chatService.Conversation(c.Context(), viewerID(c), otherID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(messages)
}

// SendMessage handles POST /api/messages/:userId
func (s *Server) SendMessage(c *fiber.Ctx) error {
	otherID, err := parseUserIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.chatService.Send(c.Context(), service.SendMessageInput{
		SenderID:   viewerID(c),
		ReceiverID: otherID,
		Content:    req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// MarkConversationRead handles POST /api/messages/:userId/read
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	otherID, err := parseUserIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.chatService.MarkRead(c.Context(), viewerID(c), otherID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
