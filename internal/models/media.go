package models

// MediaModel is an uploaded file. Filename is a generated unique token;
// the physical artifacts (original plus derived renditions) live under
// the static directory and are removed together with the row.
type MediaModel struct {
	Base
	Filename     string `json:"filename"      gorm:"uniqueIndex;not null"`
	OriginalName string `json:"original_name"`
	StoredPath   string `json:"stored_path"   gorm:"not null"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AltText      string `json:"alt_text"`
}

func (MediaModel) TableName() string { return "media" }
