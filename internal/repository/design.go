// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"atelier/internal/cache"
	"atelier/internal/models"

	"gorm.io/gorm"
)

// DesignFilter scopes a design listing.
type DesignFilter struct {
	AuthorID *uint
	Category string
	Limit    int
	Offset   int
}

// DesignRepository defines the interface for design data operations
type DesignRepository interface {
	Create(ctx context.Context, design *models.Design) error
	GetByID(ctx context.Context, id string, viewerID uint) (*models.Design, error)
	List(ctx context.Context, viewerID uint, filter DesignFilter) ([]*models.Design, error)
	ListSavedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Design, error)
	Update(ctx context.Context, design *models.Design) error
	Delete(ctx context.Context, id string) error
	IsLiked(ctx context.Context, userID uint, designID string) (bool, error)
	IsSaved(ctx context.Context, userID uint, designID string) (bool, error)
	Like(ctx context.Context, userID uint, designID string) error
	Unlike(ctx context.Context, userID uint, designID string) error
	Save(ctx context.Context, userID uint, designID string) error
	Unsave(ctx context.Context, userID uint, designID string) error
}

// designRepository implements DesignRepository
type designRepository struct {
	db *gorm.DB
}

// NewDesignRepository creates a new design repository
func NewDesignRepository(db *gorm.DB) DesignRepository {
	return &designRepository{db: db}
}

func (r *designRepository) Create(ctx context.Context, design *models.Design) error {
	err := r.db.WithContext(ctx).Create(design).Error
	if err == nil {
		cache.InvalidateFeed(ctx)
	}
	return err
}

func (r *designRepository) GetByID(ctx context.Context, id string, viewerID uint) (*models.Design, error) {
	var design models.Design
	err := r.applyDesignDetails(r.db.WithContext(ctx), viewerID).
		Preload("User").
		Where("designs.id = ?", id).
		First(&design).Error
	if err != nil {
		return nil, err
	}
	return &design, nil
}

func (r *designRepository) List(ctx context.Context, viewerID uint, filter DesignFilter) ([]*models.Design, error) {
	var designs []*models.Design
	q := r.applyDesignDetails(r.db.WithContext(ctx), viewerID).
		Preload("User")
	if filter.AuthorID != nil {
		q = q.Where("designs.user_id = ?", *filter.AuthorID)
	}
	if filter.Category != "" {
		q = q.Where("designs.category = ?", filter.Category)
	}
	err := q.Order("designs.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&designs).Error
	if err != nil {
		return nil, err
	}
	return designs, nil
}

func (r *designRepository) ListSavedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Design, error) {
	var designs []*models.Design
	err := r.applyDesignDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Joins("JOIN saves ON saves.design_id = designs.id AND saves.user_id = ?", userID).
		Order("saves.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&designs).Error
	if err != nil {
		return nil, err
	}
	return designs, nil
}

// applyDesignDetails adds subqueries to fetch counts and the viewer's
// liked/saved status in a single query.
func (r *designRepository) applyDesignDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "designs.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.design_id = designs.id) as likes_count, " +
		"(SELECT COUNT(*) FROM saves WHERE saves.design_id = designs.id) as saves_count"

	if viewerID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.design_id = designs.id AND likes.user_id = ?) as liked"+
			", EXISTS(SELECT 1 FROM saves WHERE saves.design_id = designs.id AND saves.user_id = ?) as saved",
			viewerID, viewerID)
	}

	return db.Select(selectQuery + ", false as liked, false as saved")
}

func (r *designRepository) Update(ctx context.Context, design *models.Design) error {
	if err := r.db.WithContext(ctx).Save(design).Error; err != nil {
		return err
	}
	cache.InvalidateDesign(ctx, design.ID)
	return nil
}

func (r *designRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Design{}).Error; err != nil {
		return err
	}
	cache.InvalidateDesign(ctx, id)
	return nil
}

func (r *designRepository) IsLiked(ctx context.Context, userID uint, designID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND design_id = ?", userID, designID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *designRepository) IsSaved(ctx context.Context, userID uint, designID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Save{}).
		Where("user_id = ? AND design_id = ?", userID, designID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *designRepository) Like(ctx context.Context, userID uint, designID string) error {
	// INSERT ... ON CONFLICT DO NOTHING is atomic and keeps rapid duplicate
	// toggles from producing duplicate key errors.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (design_id, user_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (design_id, user_id) DO NOTHING`,
		designID, userID,
	)
	if result.Error == nil {
		cache.InvalidateDesign(ctx, designID)
	}
	return result.Error
}

func (r *designRepository) Unlike(ctx context.Context, userID uint, designID string) error {
	err := r.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND design_id = ?", userID, designID).
		Delete(&models.Like{}).Error
	if err == nil {
		cache.InvalidateDesign(ctx, designID)
	}
	return err
}

func (r *designRepository) Save(ctx context.Context, userID uint, designID string) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO saves (design_id, user_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (design_id, user_id) DO NOTHING`,
		designID, userID,
	)
	if result.Error == nil {
		cache.InvalidateDesign(ctx, designID)
	}
	return result.Error
}

func (r *designRepository) Unsave(ctx context.Context, userID uint, designID string) error {
	err := r.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND design_id = ?", userID, designID).
		Delete(&models.Save{}).Error
	if err == nil {
		cache.InvalidateDesign(ctx, designID)
	}
	return err
}
