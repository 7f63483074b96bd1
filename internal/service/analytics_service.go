package service

import (
	"sort"
	"time"
	"tlms_backend/internal/model"
	"tlms_backend/internal/repository"
	"tlms_backend/internal/util"
)

// AnalyticsService 管理端统计看板。
// 所有统计都是对一次性抓取的快照做纯计算，不落库、不缓存。
type AnalyticsService struct {
	Users       *repository.UserRepository
	Courses     *repository.CourseRepository
	Enrollments *repository.EnrollmentRepository
}

func NewAnalyticsService(users *repository.UserRepository, courses *repository.CourseRepository, enrollments *repository.EnrollmentRepository) *AnalyticsService {
	return &AnalyticsService{Users: users, Courses: courses, Enrollments: enrollments}
}

type TimeWindow string

const (
	WindowToday TimeWindow = "today"
	WindowWeek  TimeWindow = "week"
	WindowMonth TimeWindow = "month"
	WindowYear  TimeWindow = "year"
	WindowAll   TimeWindow = "all"
)

// windowStart 返回窗口起点；all 窗口返回 ok=false 表示不过滤
func windowStart(w TimeWindow, now time.Time) (time.Time, bool) {
	switch w {
	case WindowToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case WindowWeek:
		return now.AddDate(0, 0, -7), true
	case WindowMonth:
		return now.AddDate(0, -1, 0), true
	case WindowYear:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// Snapshot 一次抓取的只读数据集
type Snapshot struct {
	Courses     []model.Course
	Enrollments []model.Enrollment
	Users       []model.User
}

type OverviewStats struct {
	Window             TimeWindow `json:"window"`
	EnrollmentCount    int        `json:"enrollmentCount"`
	Revenue            float64    `json:"revenue"`
	AvgEnrollmentValue float64    `json:"avgEnrollmentValue"`
	AdminRevenue       float64    `json:"adminRevenue"`
	EducatorRevenue    float64    `json:"educatorRevenue"`
	LearnerCount       int        `json:"learnerCount"`
	EducatorCount      int        `json:"educatorCount"`
	PublishedCourses   int        `json:"publishedCourses"`
}

type CourseStat struct {
	CourseID    uint    `json:"courseId"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Enrollments int     `json:"enrollments"`
	Revenue     float64 `json:"revenue"`
	Rating      float64 `json:"rating"`
}

// filterEnrollments 按时间窗口过滤报名记录
func filterEnrollments(enrollments []model.Enrollment, window TimeWindow, now time.Time) []model.Enrollment {
	start, ok := windowStart(window, now)
	if !ok {
		return enrollments
	}
	var out []model.Enrollment
	for _, e := range enrollments {
		if !e.CreatedAt.Before(start) {
			out = append(out, e)
		}
	}
	return out
}

// ComputeOverview 汇总统计：报名数、收入（缺失价格按 0）、客单价、分成
func ComputeOverview(snap Snapshot, window TimeWindow, now time.Time) OverviewStats {
	priceByID := make(map[uint]float64, len(snap.Courses))
	for _, c := range snap.Courses {
		priceByID[c.ID] = c.Price
	}

	filtered := filterEnrollments(snap.Enrollments, window, now)

	var revenue float64
	for _, e := range filtered {
		revenue += priceByID[e.CourseID] // 未知课程价格按 0 计
	}

	stats := OverviewStats{
		Window:          window,
		EnrollmentCount: len(filtered),
		Revenue:         revenue,
	}
	if len(filtered) > 0 {
		stats.AvgEnrollmentValue = revenue / float64(len(filtered))
	}
	stats.AdminRevenue, stats.EducatorRevenue = util.SplitRevenue(revenue)

	for _, u := range snap.Users {
		switch u.Role {
		case model.Learner:
			stats.LearnerCount++
		case model.Educator:
			stats.EducatorCount++
		}
	}
	for _, c := range snap.Courses {
		if c.Status == model.CoursePublished {
			stats.PublishedCourses++
		}
	}

	return stats
}

// TopCourses 按报名数降序取前 N，稳定排序（并列保持原始顺序）
func TopCourses(snap Snapshot, window TimeWindow, now time.Time, n int) []CourseStat {
	filtered := filterEnrollments(snap.Enrollments, window, now)

	countByID := make(map[uint]int)
	for _, e := range filtered {
		countByID[e.CourseID]++
	}

	stats := make([]CourseStat, 0, len(snap.Courses))
	for _, c := range snap.Courses {
		count := countByID[c.ID]
		stats = append(stats, CourseStat{
			CourseID:    c.ID,
			Title:       c.Title,
			Category:    c.Category,
			Enrollments: count,
			Revenue:     float64(count) * c.Price,
			Rating:      c.Rating,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Enrollments > stats[j].Enrollments
	})

	if n > 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

func (s *AnalyticsService) loadSnapshot() (Snapshot, error) {
	courses, err := s.Courses.ListAll()
	if err != nil {
		return Snapshot{}, err
	}
	enrollments, err := s.Enrollments.ListAll()
	if err != nil {
		return Snapshot{}, err
	}
	users, err := s.Users.ListAll()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Courses: courses, Enrollments: enrollments, Users: users}, nil
}

func (s *AnalyticsService) Overview(window TimeWindow) (OverviewStats, error) {
	snap, err := s.loadSnapshot()
	if err != nil {
		return OverviewStats{}, err
	}
	return ComputeOverview(snap, window, time.Now()), nil
}

func (s *AnalyticsService) Ranking(window TimeWindow, n int) ([]CourseStat, error) {
	snap, err := s.loadSnapshot()
	if err != nil {
		return nil, err
	}
	return TopCourses(snap, window, time.Now(), n), nil
}
