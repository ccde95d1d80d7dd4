package models

// GalleryAlbumModel groups gallery images.
type GalleryAlbumModel struct {
	Base
	Name        string `json:"name"        gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	CoverImage  string `json:"cover_image"`
	IsActive    bool   `json:"is_active"   gorm:"default:true;index"`
	SortOrder   int    `json:"sort_order"  gorm:"default:0"`
}

func (GalleryAlbumModel) TableName() string { return "gallery_albums" }

// GalleryImageModel is a single gallery image. AlbumID is nullable so
// orphaned images are allowed; deleting an album cascades to its images
// at the storage layer.
type GalleryImageModel struct {
	Base
	AlbumID       *uint              `json:"album_id"       gorm:"index"`
	Album         *GalleryAlbumModel `json:"-"              gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE"`
	FilePath      string             `json:"file_path"      gorm:"not null"`
	ThumbnailPath string             `json:"thumbnail_path"`
	Caption       string             `json:"caption"`
	SortOrder     int                `json:"sort_order"     gorm:"default:0"`
}

func (GalleryImageModel) TableName() string { return "gallery_images" }
