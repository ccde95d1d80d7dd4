package models

import "time"

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// PostModel is a blog post.
type PostModel struct {
	Base
	Title         string      `json:"title"          gorm:"not null"`
	Slug          string      `json:"slug"           gorm:"uniqueIndex;not null"`
	Excerpt       string      `json:"excerpt"        gorm:"type:text"`
	Content       string      `json:"content"        gorm:"type:longtext"`
	FeaturedImage string      `json:"featured_image"`
	Category      string      `json:"category"       gorm:"index"`
	Tags          StringArray `json:"tags"           gorm:"type:text"`
	Status        string      `json:"status"         gorm:"default:'draft';index"`
	PublishDate   *time.Time  `json:"publish_date"`
	AuthorID      *uint       `json:"author_id"      gorm:"index"`
	Author        *UserModel  `json:"-"              gorm:"foreignKey:AuthorID"`
}

func (PostModel) TableName() string { return "posts" }

// PubliclyVisible reports whether the post is readable without auth at
// the given instant.
func (p PostModel) PubliclyVisible(now time.Time) bool {
	if p.Status != PostStatusPublished {
		return false
	}
	return p.PublishDate == nil || !p.PublishDate.After(now)
}
