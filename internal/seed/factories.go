// Package seed creates demo data for development databases. Not used in
// production builds.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"atelier/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var inspirationStyles = []string{
	"scandinavian", "brutalist", "mid-century modern", "japandi",
	"mediterranean", "industrial", "art deco", "cottagecore",
}

// Factory builds domain entities and optionally persists them. With DryRun
// set it assigns synthetic IDs and skips all database writes.
type Factory struct {
	db     *gorm.DB
	opts   Options
	rng    *rand.Rand
	nextID uint
}

// NewFactory creates a Factory bound to db.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seedVal := time.Now().UnixNano()
	gofakeit.Seed(seedVal)
	return &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(seedVal)),
		nextID: 1000,
	}
}

// BuildUser constructs an account without persisting it.
func (f *Factory) BuildUser(role string) *models.User {
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Role:      role,
		Bio:       gofakeit.Sentence(12),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	if f.opts.SkipBcrypt {
		user.PasswordHash = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.PasswordHash = string(hashed)
	}
	return user
}

// CreateUser persists a generated account.
func (f *Factory) CreateUser(role string) (*models.User, error) {
	user := f.BuildUser(role)
	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildDesign constructs a design for the given author with category-matching
// metadata, without persisting it.
func (f *Factory) BuildDesign(author *models.User) *models.Design {
	category := models.CategoryInspiration
	if f.rng.Intn(2) == 0 {
		category = models.CategoryFloorplan
	}

	design := &models.Design{
		UserID:   author.ID,
		Title:    gofakeit.Sentence(4),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		Category: category,
		Metadata: f.buildMetadata(category),
	}

	// spread creation times so feeds look lived-in
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour
	design.CreatedAt = time.Now().Add(-back)
	return design
}

func (f *Factory) buildMetadata(category string) models.DesignMetadata {
	if category == models.CategoryFloorplan {
		return models.DesignMetadata{
			Floorplan: &models.FloorplanDetails{
				Rooms:   gofakeit.Number(1, 8),
				AreaSqm: float64(gofakeit.Number(30, 400)),
			},
		}
	}
	return models.DesignMetadata{
		Inspiration: &models.InspirationDetails{
			Style: inspirationStyles[f.rng.Intn(len(inspirationStyles))],
		},
	}
}

// CreateDesignsBatch persists multiple designs in one call.
func (f *Factory) CreateDesignsBatch(designs []*models.Design) error {
	if len(designs) == 0 {
		return nil
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateDesignsBatch: %d designs (no DB write)", len(designs))
		return nil
	}
	return f.db.Create(&designs).Error
}

// BuildMessage constructs a direct message between two accounts.
func (f *Factory) BuildMessage(sender, receiver *models.User) *models.Message {
	return &models.Message{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Content:    gofakeit.Sentence(f.rng.Intn(12) + 3),
		CreatedAt:  time.Now().Add(-time.Duration(f.rng.Intn(72)) * time.Hour),
	}
}

// CreateMessagesBatch persists multiple messages in one call.
func (f *Factory) CreateMessagesBatch(messages []*models.Message) error {
	if len(messages) == 0 {
		return nil
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateMessagesBatch: %d messages (no DB write)", len(messages))
		return nil
	}
	return f.db.Create(&messages).Error
}
