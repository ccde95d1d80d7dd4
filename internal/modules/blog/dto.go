package blog

import (
	"time"

	"github.com/pulsefit/core/internal/models"
)

type CreatePostDTO struct {
	Title         string             `json:"title" binding:"required"`
	Slug          string             `json:"slug"  binding:"required"`
	Excerpt       string             `json:"excerpt"`
	Content       string             `json:"content"`
	FeaturedImage string             `json:"featured_image"`
	Category      string             `json:"category"`
	Tags          models.StringArray `json:"tags"`
	Status        string             `json:"status"`
	PublishDate   *time.Time         `json:"publish_date"`
	AuthorID      *uint              `json:"author_id"`
}

type UpdatePostDTO struct {
	Title         *string            `json:"title"`
	Slug          *string            `json:"slug"`
	Excerpt       *string            `json:"excerpt"`
	Content       *string            `json:"content"`
	FeaturedImage *string            `json:"featured_image"`
	Category      *string            `json:"category"`
	Tags          models.StringArray `json:"tags"`
	Status        *string            `json:"status"`
	PublishDate   *time.Time         `json:"publish_date"`
	AuthorID      *uint              `json:"author_id"`
}
