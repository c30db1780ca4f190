package repository

import (
	"coursehub_backend/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Create(log *model.FeedbackLog) error {
	return r.DB.Create(log).Error
}

func (r *FeedbackRepository) FindByUserAndCourse(userID, courseID uint, limit int) ([]model.FeedbackLog, error) {
	var logs []model.FeedbackLog
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *FeedbackRepository) CountByUserAndCourse(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.FeedbackLog{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count, err
}
