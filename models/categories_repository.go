package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

// ResolveOrCreate returns the id of the category with the given name,
// inserting it first when it does not exist yet. The insert relies on the
// unique index on name, so concurrent callers converge on a single row.
func (r *CategoriesRepository) ResolveOrCreate(ctx context.Context, name string) (uint, error) {
	if name == "" {
		return 0, ErrInvalidCategory
	}

	db := r.db.WithContext(ctx)

	category := Category{Name: name}
	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&category).Error; err != nil {
		return 0, fmt.Errorf("insert category %q: %w", name, err)
	}
	if category.ID != 0 {
		return category.ID, nil
	}

	// Already present: the insert was a no-op.
	var existing Category
	if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
		return 0, fmt.Errorf("lookup category %q: %w", name, err)
	}
	return existing.ID, nil
}

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
