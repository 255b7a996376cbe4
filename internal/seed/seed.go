package seed

import (
	"fmt"
	"log"

	"atelier/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func onConflictDoNothing() clause.OnConflict {
	return clause.OnConflict{DoNothing: true}
}

// Options configures a seeding run.
type Options struct {
	NumUsers   int
	NumDesigns int
	// MaxDays bounds how far back generated timestamps reach.
	MaxDays int
	// SkipBcrypt stores a plaintext placeholder instead of hashing, for
	// fast local iterations where login is not exercised.
	SkipBcrypt bool
	// DryRun builds entities and logs counts without touching the database.
	DryRun bool
}

// Seeder populates a development database with plausible marketplace data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder over db with the given options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 30
	}
	if opts.NumDesigns <= 0 {
		opts.NumDesigns = 120
	}
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll removes previously seeded rows. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	if s.opts.DryRun {
		log.Println("[dry-run] ClearAll skipped")
		return nil
	}
	for _, model := range []any{
		&models.Message{}, &models.Like{}, &models.Save{},
		&models.Design{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Run creates users, designs, like/save relations, and conversations.
func (s *Seeder) Run() error {
	users, err := s.createUsers()
	if err != nil {
		return err
	}

	designs, err := s.createDesigns(users)
	if err != nil {
		return err
	}

	if err := s.createReactions(users, designs); err != nil {
		return err
	}

	if err := s.createConversations(users); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d designs", len(users), len(designs))
	return nil
}

// createUsers generates a mix of homeowners and architects, roughly 2:1.
func (s *Seeder) createUsers() ([]*models.User, error) {
	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		role := models.RoleHomeowner
		if i%3 == 0 {
			role = models.RoleArchitect
		}
		user, err := s.factory.CreateUser(role)
		if err != nil {
			return nil, fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createDesigns(users []*models.User) ([]*models.Design, error) {
	designs := make([]*models.Design, 0, s.opts.NumDesigns)
	for i := 0; i < s.opts.NumDesigns; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		designs = append(designs, s.factory.BuildDesign(author))
	}
	if err := s.factory.CreateDesignsBatch(designs); err != nil {
		return nil, fmt.Errorf("creating designs: %w", err)
	}
	return designs, nil
}

// createReactions sprinkles likes and saves over the feed. Composite primary
// keys make duplicate picks harmless upserts.
func (s *Seeder) createReactions(users []*models.User, designs []*models.Design) error {
	if s.opts.DryRun {
		log.Println("[dry-run] createReactions skipped")
		return nil
	}
	rng := s.factory.rng
	for _, design := range designs {
		for i := 0; i < rng.Intn(6); i++ {
			like := models.Like{DesignID: design.ID, UserID: users[rng.Intn(len(users))].ID}
			if err := s.db.Clauses(onConflictDoNothing()).Create(&like).Error; err != nil {
				return fmt.Errorf("creating like: %w", err)
			}
		}
		for i := 0; i < rng.Intn(3); i++ {
			save := models.Save{DesignID: design.ID, UserID: users[rng.Intn(len(users))].ID}
			if err := s.db.Clauses(onConflictDoNothing()).Create(&save).Error; err != nil {
				return fmt.Errorf("creating save: %w", err)
			}
		}
	}
	return nil
}

// createConversations pairs homeowners with architects and exchanges a short
// back-and-forth between each pair.
func (s *Seeder) createConversations(users []*models.User) error {
	var homeowners, architects []*models.User
	for _, u := range users {
		if u.Role == models.RoleArchitect {
			architects = append(architects, u)
		} else {
			homeowners = append(homeowners, u)
		}
	}
	if len(homeowners) == 0 || len(architects) == 0 {
		return nil
	}

	rng := s.factory.rng
	var messages []*models.Message
	for _, owner := range homeowners {
		architect := architects[rng.Intn(len(architects))]
		exchanges := rng.Intn(5) + 1
		for i := 0; i < exchanges; i++ {
			if i%2 == 0 {
				messages = append(messages, s.factory.BuildMessage(owner, architect))
			} else {
				messages = append(messages, s.factory.BuildMessage(architect, owner))
			}
		}
	}
	if err := s.factory.CreateMessagesBatch(messages); err != nil {
		return fmt.Errorf("creating messages: %w", err)
	}
	return nil
}
