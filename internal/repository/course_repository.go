package repository

import (
	"tlms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CreateTree 在一个事务内写入课程及其模块/课时/题目
func (r *CourseRepository) CreateTree(course *model.Course) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(course).Error
	})
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var c model.Course
	err := r.DB.Preload("Educator").First(&c, id).Error
	return &c, err
}

// FindTreeByID 课程详情，含模块/课时/题目，按位置排序
func (r *CourseRepository) FindTreeByID(id uint) (*model.Course, error) {
	var c model.Course
	err := r.DB.
		Preload("Educator").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.position asc")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position asc")
		}).
		Preload("Modules.Lessons.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.position asc")
		}).
		First(&c, id).Error
	return &c, err
}

func (r *CourseRepository) ListPublished(category, search string, page, limit int) ([]model.Course, int64, error) {
	var cs []model.Course
	var total int64
	query := r.DB.Model(&model.Course{}).Where("status = ?", model.CoursePublished)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Educator").Order("created_at desc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

func (r *CourseRepository) ListByStatus(status model.CourseStatus, page, limit int) ([]model.Course, int64, error) {
	var cs []model.Course
	var total int64
	query := r.DB.Model(&model.Course{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Educator").Order("created_at asc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

func (r *CourseRepository) ListByEducator(educatorID uint) ([]model.Course, error) {
	var cs []model.Course
	err := r.DB.Where("educator_id = ?", educatorID).Order("created_at desc").Find(&cs).Error
	return cs, err
}

func (r *CourseRepository) ListAll() ([]model.Course, error) {
	var cs []model.Course
	err := r.DB.Find(&cs).Error
	return cs, err
}

func (r *CourseRepository) UpdateStatus(id uint, status model.CourseStatus, reason string) error {
	updates := map[string]interface{}{"status": status}
	if reason != "" {
		updates["removal_reason"] = reason
	}
	return r.DB.Model(&model.Course{}).Where("id = ?", id).Updates(updates).Error
}

func (r *CourseRepository) UpdateRating(id uint, rating float64, count int) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", id).
		Updates(map[string]interface{}{"rating": rating, "rating_count": count}).Error
}

// CountLessons 课程下的课时总数，用于报名时初始化进度
func (r *CourseRepository) CountLessons(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
