package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemsRepository struct {
	db *gorm.DB
}

func NewItemsRepository(db *gorm.DB) *ItemsRepository {
	return &ItemsRepository{
		db: db,
	}
}

func (r *ItemsRepository) Insert(ctx context.Context, name string, categoryID uint, imageName string) (uint, error) {
	item := Item{
		Name:       name,
		CategoryID: categoryID,
		ImageName:  imageName,
	}
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(&item).Error; err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: category %d does not exist", ErrForeignKeyViolation, categoryID)
		}
		return 0, err
	}
	return item.ID, nil
}

func (r *ItemsRepository) GetByID(ctx context.Context, id uint) (*Item, error) {
	var item Item
	if err := r.db.WithContext(ctx).
		Joins("Category").
		First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err // Other DB error
	}
	return &item, nil
}

// GetAllItems returns every item in insertion order.
func (r *ItemsRepository) GetAllItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := r.db.WithContext(ctx).
		Joins("Category").
		Order("items.id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByName returns the items whose name contains keyword, ignoring case.
// Both sides are folded by the database's LOWER, so a keyword always matches
// the exact name it was cut from. The keyword is matched literally; an empty
// keyword matches every item.
func (r *ItemsRepository) SearchByName(ctx context.Context, keyword string) ([]Item, error) {
	pattern := "%" + likeEscaper.Replace(keyword) + "%"

	var items []Item
	if err := r.db.WithContext(ctx).
		Joins("Category").
		Where(`LOWER(items.name) LIKE LOWER(?) ESCAPE '\'`, pattern).
		Order("items.id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
