package database

import (
	"fmt"
	"log"
	"tlms_backend/internal/config"
	"tlms_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.QuizQuestion{},
		&model.Enrollment{},
		&model.LessonCompletion{},
		&model.Review{},
		&model.PaymentOrder{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认课程分类（为空则插入常用分类）
	var catCount int64
	db.Model(&model.Category{}).Count(&catCount)
	if catCount == 0 {
		defaultCategories := []model.Category{
			{Code: "development", Name: "开发", Description: "编程与软件开发", Enabled: true},
			{Code: "design", Name: "设计", Description: "UI/UX 与平面设计", Enabled: true},
			{Code: "business", Name: "商业", Description: "商业与管理", Enabled: true},
			{Code: "marketing", Name: "市场营销", Description: "营销与增长", Enabled: true},
			{Code: "language", Name: "语言", Description: "外语学习", Enabled: true},
			{Code: "science", Name: "科学", Description: "数学与自然科学", Enabled: true},
		}
		for _, c := range defaultCategories {
			db.Create(&c)
		}
	}

	return db, nil
}
