package repository

import (
	"context"
	"errors"

	"tinfoil/internal/cache"
	"tinfoil/internal/models"

	"gorm.io/gorm"
)

// TheoryRepository defines persistence operations for theories. Tag links are
// managed here: tagIDs passed to Create/Update are written to the join table
// with their positions so submission order survives round-trips.
type TheoryRepository interface {
	Create(ctx context.Context, theory *models.Theory, tagIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Theory, error)
	List(ctx context.Context, limit, offset int) ([]*models.Theory, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Theory, error)
	Update(ctx context.Context, theory *models.Theory, tagIDs []uint) error
	Delete(ctx context.Context, id uint) error
	IncrementLikes(ctx context.Context, id uint, delta int) error
	IncrementShares(ctx context.Context, id uint, delta int) error
}

type theoryRepository struct {
	db *gorm.DB
}

// NewTheoryRepository returns a new TheoryRepository implementation.
func NewTheoryRepository(db *gorm.DB) TheoryRepository {
	return &theoryRepository{db: db}
}

func (r *theoryRepository) Create(ctx context.Context, theory *models.Theory, tagIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(theory).Error; err != nil {
			return err
		}
		return replaceTheoryTags(tx, theory.ID, tagIDs)
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateTheoriesList(ctx)
	return r.loadTags(ctx, []*models.Theory{theory})
}

func (r *theoryRepository) GetByID(ctx context.Context, id uint) (*models.Theory, error) {
	var theory models.Theory
	key := cache.TheoryKey(id)

	err := cache.Aside(ctx, key, &theory, cache.TheoryTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("CreatedBy").
			First(&theory, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Theory", id)
			}
			return models.NewInternalError(err)
		}
		return r.loadTags(ctx, []*models.Theory{&theory})
	})
	if err != nil {
		return nil, err
	}
	return &theory, nil
}

func (r *theoryRepository) List(ctx context.Context, limit, offset int) ([]*models.Theory, error) {
	var theories []*models.Theory
	if err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&theories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.loadTags(ctx, theories); err != nil {
		return nil, err
	}
	return theories, nil
}

func (r *theoryRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Theory, error) {
	var theories []*models.Theory
	if err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&theories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.loadTags(ctx, theories); err != nil {
		return nil, err
	}
	return theories, nil
}

// Update saves the theory row and, when tagIDs is non-nil, replaces its tag
// links in the same transaction.
func (r *theoryRepository) Update(ctx context.Context, theory *models.Theory, tagIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(theory).Error; err != nil {
			return err
		}
		if tagIDs == nil {
			return nil
		}
		if err := tx.Where("theory_id = ?", theory.ID).Delete(&models.TheoryTag{}).Error; err != nil {
			return err
		}
		return replaceTheoryTags(tx, theory.ID, tagIDs)
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateTheory(ctx, theory.ID)
	cache.InvalidateTheoriesList(ctx)
	return r.loadTags(ctx, []*models.Theory{theory})
}

func (r *theoryRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("theory_id = ?", id).Delete(&models.TheoryTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Theory{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateTheory(ctx, id)
	cache.InvalidateTheoriesList(ctx)
	return nil
}

func (r *theoryRepository) IncrementLikes(ctx context.Context, id uint, delta int) error {
	return r.incrementCounter(ctx, id, "likes", delta)
}

func (r *theoryRepository) IncrementShares(ctx context.Context, id uint, delta int) error {
	return r.incrementCounter(ctx, id, "shares", delta)
}

// incrementCounter bumps a counter column, clamped at zero.
func (r *theoryRepository) incrementCounter(ctx context.Context, id uint, column string, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Theory{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr("GREATEST("+column+" + ?, 0)", delta))
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Theory", id)
	}

	cache.InvalidateTheory(ctx, id)
	return nil
}

// replaceTheoryTags inserts the join rows for a theory in submission order.
func replaceTheoryTags(tx *gorm.DB, theoryID uint, tagIDs []uint) error {
	for position, tagID := range tagIDs {
		link := models.TheoryTag{
			TheoryID: theoryID,
			TagID:    tagID,
			Position: position,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// loadTags populates Tags for each theory, ordered by submission position.
func (r *theoryRepository) loadTags(ctx context.Context, theories []*models.Theory) error {
	if len(theories) == 0 {
		return nil
	}

	ids := make([]uint, len(theories))
	for i, th := range theories {
		ids[i] = th.ID
	}

	type taggedRow struct {
		models.Tag
		TheoryID uint
	}

	var rows []taggedRow
	if err := r.db.WithContext(ctx).
		Table("tags").
		Select("tags.*, theory_tags.theory_id").
		Joins("JOIN theory_tags ON theory_tags.tag_id = tags.id").
		Where("theory_tags.theory_id IN ?", ids).
		Order("theory_tags.theory_id ASC, theory_tags.position ASC").
		Scan(&rows).Error; err != nil {
		return models.NewInternalError(err)
	}

	byTheory := make(map[uint][]models.Tag, len(theories))
	for _, row := range rows {
		byTheory[row.TheoryID] = append(byTheory[row.TheoryID], row.Tag)
	}
	for _, th := range theories {
		tags := byTheory[th.ID]
		if tags == nil {
			tags = []models.Tag{}
		}
		th.Tags = tags
	}
	return nil
}
