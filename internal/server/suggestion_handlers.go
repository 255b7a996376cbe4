package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GenerateSuggestion handles POST /api/suggestions
func (s *Server) GenerateSuggestion(c *fiber.Ctx) error {
	var req struct {
		Prompt string `json:"prompt"`
		Kind   string `json:"kind"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Kind == "" {
		req.Kind = service.SuggestionKindHouse
	}

	suggestion, err := s.suggestionService.Generate(c.Context(), req.Prompt, req.Kind)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(suggestion)
}
