package repository

import (
	"context"
	"errors"

	"tinfoil/internal/middleware"
	"tinfoil/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines persistence operations for tags. GetOrCreate is the
// storage half of tag reconciliation: the unique index on tags.name is the
// authority, and a lost creation race degrades into a second lookup.
type TagRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	GetOrCreate(ctx context.Context, name string) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository returns a new TagRepository implementation.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

// GetOrCreate resolves a tag name to its record, creating it when unseen.
// INSERT ... ON CONFLICT DO NOTHING makes concurrent creates of the same
// name converge on a single row; whichever submission loses the race
// re-reads the winner's record.
func (r *tagRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	if tag, err := r.GetByName(ctx, name); err != nil || tag != nil {
		return tag, err
	}

	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO tags (name, created_at)
		 VALUES (?, NOW())
		 ON CONFLICT (name) DO NOTHING`,
		name,
	)
	if result.Error != nil {
		return nil, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		middleware.TagsCreated.Inc()
	}

	tag, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		// Insert reported a conflict but the row is gone; treat as a
		// storage-level failure rather than retrying blind.
		return nil, models.NewInternalError(errors.New("tag vanished after insert: " + name))
	}
	return tag, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Tag already exists")
		}
		return models.NewInternalError(err)
	}
	middleware.TagsCreated.Inc()
	return nil
}

// Delete removes a tag and its theory links. Theories keep their other tags.
func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.TheoryTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Tag{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Tag", id)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}
