package models

// Item represents a listed item.
// It references its category and the stored image asset by name.
type Item struct {
	ID         uint     `gorm:"primaryKey"`
	Name       string   `gorm:"not null"`
	CategoryID uint     `gorm:"not null;index"`
	Category   Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	ImageName  string   `gorm:"not null"`
}

func (i *Item) TableName() string {
	return "items"
}
