// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"tinfoil/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	ShouldClean bool
}

type fixtureTheory struct {
	Title    string
	Content  string
	Keywords []string
	Likes    int
}

// fixtureTheories are the canonical demo theories shown on a fresh install.
var fixtureTheories = []fixtureTheory{
	{
		Title:    "The Truth About Aliens",
		Content:  "Did you know that aliens is actually controlled by government? The evidence dates back to 1985. Insiders claim that technology was created to distract us from this truth.",
		Keywords: []string{"aliens", "government", "technology"},
		Likes:    42,
	},
	{
		Title:    "The Truth About Illuminati",
		Content:  "The secret connection between illuminati and celebrities has been hidden from the public for decades. Research suggests that media was engineered to cover up this relationship.",
		Keywords: []string{"illuminati", "celebrities", "media"},
		Likes:    78,
	},
	{
		Title:    "The Truth About Moon Landing",
		Content:  "Government documents reveal that moon landing was invented by nasa to monitor conspiracy. This operation has been active since 1969 and explains why aliens keeps appearing in the media.",
		Keywords: []string{"moon landing", "nasa", "conspiracy"},
		Likes:    56,
	},
}

// Seed populates the database with the fixture theories, their tags, a batch
// of test users, and some comments so lists are not empty.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users...", opts.NumUsers)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	theories, err := createFixtureTheories(db, users)
	if err != nil {
		return fmt.Errorf("failed to create theories: %w", err)
	}
	log.Printf("%d fixture theories created", len(theories))

	comments, err := createComments(db, users, theories)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("%d comments created", comments)

	log.Println("Database seeding completed successfully")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE theory_tags, tags, comments, likes, shares, reports, activity_logs, generated_theories, theories, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	// One hash shared by all seed users keeps the seeder fast; bcrypt at
	// default cost per user is noticeably slow for large batches.
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)

		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createFixtureTheories(db *gorm.DB, users []models.User) ([]models.Theory, error) {
	theories := make([]models.Theory, 0, len(fixtureTheories))

	for i, fixture := range fixtureTheories {
		theory := models.Theory{
			Title:   fixture.Title,
			Content: fixture.Content,
			Likes:   fixture.Likes,
		}
		if len(users) > 0 {
			owner := users[i%len(users)].ID
			theory.CreatedByID = &owner
		}
		if err := db.Create(&theory).Error; err != nil {
			return nil, err
		}

		for pos, name := range fixture.Keywords {
			tag, err := findOrCreateTag(db, name)
			if err != nil {
				return nil, err
			}
			link := models.TheoryTag{TheoryID: theory.ID, TagID: tag.ID, Position: pos}
			if err := db.Create(&link).Error; err != nil {
				return nil, err
			}
		}
		theories = append(theories, theory)
	}
	return theories, nil
}

func createComments(db *gorm.DB, users []models.User, theories []models.Theory) (int, error) {
	if len(users) == 0 || len(theories) == 0 {
		return 0, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	created := 0
	for _, theory := range theories {
		for i := 0; i < 2+r.Intn(3); i++ {
			comment := models.Comment{
				TheoryID: theory.ID,
				UserID:   users[r.Intn(len(users))].ID,
				Content:  gofakeit.Sentence(6 + r.Intn(10)),
			}
			if err := db.Create(&comment).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func findOrCreateTag(db *gorm.DB, name string) (*models.Tag, error) {
	var tag models.Tag
	err := db.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	tag = models.Tag{Name: name}
	if err := db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
