package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"video-streaming/internal/entity"
)

var ErrNotFound = errors.New("video not found")

// VideoRepository is the metadata store for admitted videos. Records are
// created once and never updated in place.
type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *entity.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (*entity.Video, error) {
	var video entity.Video
	if err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) FindAll(ctx context.Context) ([]entity.Video, error) {
	var videos []entity.Video
	if err := r.db.WithContext(ctx).Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}
