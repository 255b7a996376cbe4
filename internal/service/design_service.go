// Package service provides application business logic (designs, chat, suggestions, users).
package service

import (
	"context"
	"errors"
	"strings"

	"atelier/internal/cache"
	"atelier/internal/models"
	"atelier/internal/repository"

	"gorm.io/gorm"
)

const (
	maxDesignTitleLen = 200
	// feedPageSize is the only anonymous page size served cache-aside; a
	// cached slice must match the limit the caller asked for.
	feedPageSize = 20
)

// DesignService provides design catalog and interaction business logic.
type DesignService struct {
	designRepo repository.DesignRepository
}

// NewDesignService creates a new design service
func NewDesignService(designRepo repository.DesignRepository) *DesignService {
	return &DesignService{designRepo: designRepo}
}

// CreateDesignInput is the input for publishing a design.
type CreateDesignInput struct {
	UserID   uint
	Title    string
	ImageURL string
	Category string
	Metadata models.DesignMetadata
}

// ListDesignsInput scopes a design feed query.
type ListDesignsInput struct {
	ViewerID uint
	AuthorID *uint
	Category string
	Limit    int
	Offset   int
}

// UpdateDesignInput carries the partial fields an owner may change.
type UpdateDesignInput struct {
	UserID   uint
	DesignID string
	Title    string
	Metadata *models.DesignMetadata
}

// DeleteDesignInput identifies the design to remove and the acting user.
type DeleteDesignInput struct {
	UserID   uint
	DesignID string
}

// CreateDesign validates and stores a new design post.
func (s *DesignService) CreateDesign(ctx context.Context, in CreateDesignInput) (*models.Design, error) {
	if in.UserID == 0 {
		return nil, models.NewAuthRequiredError("Sign in to publish a design")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxDesignTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return nil, models.NewValidationError("image_url is required")
	}
	if !models.IsValidCategory(in.Category) {
		return nil, models.NewValidationError("Invalid category")
	}
	if err := in.Metadata.Validate(in.Category); err != nil {
		return nil, err
	}

	design := &models.Design{
		UserID:   in.UserID,
		Title:    title,
		ImageURL: in.ImageURL,
		Category: in.Category,
		Metadata: in.Metadata,
	}
	if err := s.designRepo.Create(ctx, design); err != nil {
		return nil, err
	}
	return s.designRepo.GetByID(ctx, design.ID, in.UserID)
}

// ListDesigns returns the feed, newest first. On failure the caller gets a
// LoadError and an empty sequence, never a partial one.
func (s *DesignService) ListDesigns(ctx context.Context, in ListDesignsInput) ([]*models.Design, error) {
	if in.Category != "" && !models.IsValidCategory(in.Category) {
		return nil, models.NewValidationError("Invalid category")
	}

	filter := repository.DesignFilter{
		AuthorID: in.AuthorID,
		Category: in.Category,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}

	// Anonymous default first page is the hot path; serve it cache-aside.
	// Other limits go straight to the repository.
	if in.ViewerID == 0 && in.AuthorID == nil && in.Category == "" && in.Offset == 0 && in.Limit == feedPageSize {
		var designs []*models.Design
		err := cache.Aside(ctx, cache.FeedKey, &designs, cache.FeedTTL, func() error {
			var fetchErr error
			designs, fetchErr = s.designRepo.List(ctx, 0, filter)
			return fetchErr
		})
		if err != nil {
			return nil, models.NewLoadError(err)
		}
		return designs, nil
	}

	designs, err := s.designRepo.List(ctx, in.ViewerID, filter)
	if err != nil {
		return nil, models.NewLoadError(err)
	}
	return designs, nil
}

// GetDesign fetches one design enriched with the viewer's like/save state.
func (s *DesignService) GetDesign(ctx context.Context, id string, viewerID uint) (*models.Design, error) {
	design, err := s.designRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Design", id)
		}
		return nil, models.NewLoadError(err)
	}
	return design, nil
}

// ListSavedDesigns returns the designs the viewer has bookmarked.
func (s *DesignService) ListSavedDesigns(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Design, error) {
	if viewerID == 0 {
		return nil, models.NewAuthRequiredError("Sign in to view saved designs")
	}
	designs, err := s.designRepo.ListSavedByUser(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, models.NewLoadError(err)
	}
	return designs, nil
}

// ToggleLike flips the viewer's like relation for the design. The stored
// relation, not the caller, decides the current state, so two rapid toggles
// cannot drift the count. Returns the re-fetched design so callers render
// server truth.
func (s *DesignService) ToggleLike(ctx context.Context, viewerID uint, designID string) (*models.Design, error) {
	if viewerID == 0 {
		return nil, models.NewAuthRequiredError("Sign in to like designs")
	}

	liked, err := s.designRepo.IsLiked(ctx, viewerID, designID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.designRepo.Unlike(ctx, viewerID, designID); err != nil {
			return nil, err
		}
	} else {
		if err := s.designRepo.Like(ctx, viewerID, designID); err != nil {
			return nil, err
		}
	}

	return s.designRepo.GetByID(ctx, designID, viewerID)
}

// ToggleSave flips the viewer's save relation for the design. Symmetric to ToggleLike.
func (s *DesignService) ToggleSave(ctx context.Context, viewerID uint, designID string) (*models.Design, error) {
	if viewerID == 0 {
		return nil, models.NewAuthRequiredError("Sign in to save designs")
	}

	saved, err := s.designRepo.IsSaved(ctx, viewerID, designID)
	if err != nil {
		return nil, err
	}

	if saved {
		if err := s.designRepo.Unsave(ctx, viewerID, designID); err != nil {
			return nil, err
		}
	} else {
		if err := s.designRepo.Save(ctx, viewerID, designID); err != nil {
			return nil, err
		}
	}

	return s.designRepo.GetByID(ctx, designID, viewerID)
}

// UpdateDesign merges partial fields into an owned design. The metadata union
// is re-validated against the design's category before writing.
func (s *DesignService) UpdateDesign(ctx context.Context, in UpdateDesignInput) (*models.Design, error) {
	if in.UserID == 0 {
		return nil, models.NewAuthRequiredError("Sign in to update designs")
	}

	design, err := s.designRepo.GetByID(ctx, in.DesignID, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Design", in.DesignID)
		}
		return nil, err
	}

	if design.UserID != in.UserID {
		return nil, models.NewPermissionDeniedError("You can only update your own designs")
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		if len(title) > maxDesignTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		design.Title = title
	}
	if in.Metadata != nil {
		if err := in.Metadata.Validate(design.Category); err != nil {
			return nil, err
		}
		design.Metadata = *in.Metadata
	}

	if err := s.designRepo.Update(ctx, design); err != nil {
		return nil, err
	}
	return design, nil
}

// DeleteDesign removes an owned design. Ownership is checked against the
// stored row, which is the actual authority, not a cached client view.
func (s *DesignService) DeleteDesign(ctx context.Context, in DeleteDesignInput) error {
	if in.UserID == 0 {
		return models.NewAuthRequiredError("Sign in to delete designs")
	}

	design, err := s.designRepo.GetByID(ctx, in.DesignID, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Design", in.DesignID)
		}
		return err
	}

	if design.UserID != in.UserID {
		return models.NewPermissionDeniedError("You can only delete your own designs")
	}

	return s.designRepo.Delete(ctx, in.DesignID)
}
