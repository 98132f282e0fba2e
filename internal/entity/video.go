package entity

import (
	"time"
)

// Video is the single persisted record linking an admitted video blob to
// its thumbnail. A row exists only for uploads whose blobs were fully
// written and type-checked.
type Video struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	SizeInKB     int64     `json:"sizeInKb"`
	Duration     int       `json:"duration"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Video) TableName() string {
	return "videos"
}
