package repository

import (
	"time"
	"tlms_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(e *model.Enrollment) error {
	return r.DB.Create(e).Error
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.First(&e, id).Error
	return &e, err
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var es []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).Preload("Course").Order("created_at desc").Find(&es).Error
	return es, err
}

func (r *EnrollmentRepository) ListAll() ([]model.Enrollment, error) {
	var es []model.Enrollment
	err := r.DB.Find(&es).Error
	return es, err
}

func (r *EnrollmentRepository) HasCompleted(enrollmentID, lessonID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
		Count(&count).Error
	return count > 0, err
}

// CompleteLesson 记录课时完成并重算进度，同一事务内完成
func (r *EnrollmentRepository) CompleteLesson(e *model.Enrollment, lessonID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.LessonCompletion{EnrollmentID: e.ID, LessonID: lessonID}).Error; err != nil {
			return err
		}

		e.CompletedLessons++
		if e.TotalLessons > 0 {
			e.Progress = float64(e.CompletedLessons) / float64(e.TotalLessons) * 100
		}
		if e.TotalLessons > 0 && e.CompletedLessons >= e.TotalLessons {
			now := time.Now()
			e.CompletedAt = &now
		}
		return tx.Save(e).Error
	})
}

func (r *EnrollmentRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
