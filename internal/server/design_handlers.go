package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetDesigns handles GET /api/designs
func (s *Server) GetDesigns(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	var authorID *uint
	if raw := c.QueryInt("author_id", 0); raw > 0 {
		id := uint(raw)
		authorID = &id
	}

	designs, err := s.designService.ListDesigns(c.Context(), service.ListDesignsInput{
		ViewerID: viewerID(c),
		AuthorID: authorID,
		Category: c.Query("category"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(designs)
}

// GetDesign handles GET /api/designs/:id
func (s *Server) GetDesign(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid design ID"))
	}

	design, err := s.designService.GetDesign(c.Context(), id, viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(design)
}

// GetSavedDesigns handles GET /api/designs/saved
func (s *Server) GetSavedDesigns(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	designs, err := s.designService.ListSavedDesigns(c.Context(), viewerID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(designs)
}

// CreateDesign handles POST /api/designs
func (s *Server) CreateDesign(c *fiber.Ctx) error {
	var req struct {
		Title    string                `json:"title" validate:"required,max=200"`
		ImageURL string                `json:"image_url" validate:"required"`
		Category string                `json:"category" validate:"required,oneof=floorplan inspiration"`
		Metadata models.DesignMetadata `json:"metadata"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validateBody(&req); err != nil {
		return respondError(c, err)
	}

	design, err := s.designService.CreateDesign(c.Context(), service.CreateDesignInput{
		UserID:   viewerID(c),
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Category: req.Category,
		Metadata: req.Metadata,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(design)
}

// ToggleLike handles POST /api/designs/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	design, err := s.designService.ToggleLike(c.Context(), viewerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(design)
}

// ToggleSave handles POST /api/designs/:id/save
func (s *Server) ToggleSave(c *fiber.Ctx) error {
	design, err := s.designService.ToggleSave(c.Context(), viewerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(design)
}

// UpdateDesign handles PATCH /api/designs/:id
func (s *Server) UpdateDesign(c *fiber.Ctx) error {
	var req struct {
		Title    string                 `json:"title"`
		Metadata *models.DesignMetadata `json:"metadata"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	design, err := s.designService.UpdateDesign(c.Context(), service.UpdateDesignInput{
		UserID:   viewerID(c),
		DesignID: c.Params("id"),
		Title:    req.Title,
		Metadata: req.Metadata,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(design)
}

// DeleteDesign handles DELETE /api/designs/:id
func (s *Server) DeleteDesign(c *fiber.Ctx) error {
	err := s.designService.DeleteDesign(c.Context(), service.DeleteDesignInput{
		UserID:   viewerID(c),
		DesignID: c.Params("id"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
