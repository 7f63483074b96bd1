package repository

import (
	"tlms_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	return r.DB.Create(review).Error
}

func (r *ReviewRepository) FindByID(id uint) (*model.Review, error) {
	var rv model.Review
	err := r.DB.First(&rv, id).Error
	return &rv, err
}

func (r *ReviewRepository) FindByUserAndCourse(userID, courseID uint) (*model.Review, error) {
	var rv model.Review
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&rv).Error
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// ListByCourse 课程评价列表；sort 取值 newest | rating_asc | rating_desc
func (r *ReviewRepository) ListByCourse(courseID uint, visibleOnly bool, minRating int, sort string, page, limit int) ([]model.Review, int64, error) {
	var rvs []model.Review
	var total int64

	query := r.DB.Model(&model.Review{}).Where("course_id = ?", courseID)
	if visibleOnly {
		query = query.Where("visible = ?", true)
	}
	if minRating > 0 {
		query = query.Where("rating >= ?", minRating)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at desc"
	switch sort {
	case "rating_asc":
		order = "rating asc, created_at desc"
	case "rating_desc":
		order = "rating desc, created_at desc"
	}

	offset := (page - 1) * limit
	err := query.Preload("User").Order(order).Offset(offset).Limit(limit).Find(&rvs).Error
	return rvs, total, err
}

func (r *ReviewRepository) SetVisibility(id uint, visible bool) error {
	return r.DB.Model(&model.Review{}).Where("id = ?", id).Update("visible", visible).Error
}

// AggregateRating 课程可见评价的平均分与数量
func (r *ReviewRepository) AggregateRating(courseID uint) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.DB.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("course_id = ? AND visible = ?", courseID, true).
		Scan(&result).Error
	return result.Avg, result.Count, err
}
