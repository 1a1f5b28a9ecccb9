package movie

import (
	"time"
)

// Movie represents a movie in the catalog.
type Movie struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Title          string    `gorm:"uniqueIndex;size:200;not null" json:"title"`
	Image          string    `gorm:"size:1000;not null" json:"image"`
	PublishingYear string    `gorm:"size:4;not null" json:"publishing_year"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for the Movie entity.
func (Movie) TableName() string {
	return "movies"
}
