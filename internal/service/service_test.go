package service

import (
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/pkg/logger"
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 每个测试独立的内存库，TranslateError 和生产配置保持一致，
// 唯一索引冲突同样翻译为 gorm.ErrDuplicatedKey
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.Course{},
		&model.CourseModule{},
		&model.Enrollment{},
		&model.FeedbackLog{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

type testEnv struct {
	db             *gorm.DB
	courseRepo     *repository.CourseRepository
	moduleRepo     *repository.ModuleRepository
	enrollmentRepo *repository.EnrollmentRepository
	feedbackRepo   *repository.FeedbackRepository
	access         *AccessService
	enrollment     *EnrollmentService
	course         *CourseService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	courseRepo := repository.NewCourseRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	access := NewAccessService(enrollmentRepo)

	return &testEnv{
		db:             db,
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		enrollmentRepo: enrollmentRepo,
		feedbackRepo:   feedbackRepo,
		access:         access,
		enrollment:     NewEnrollmentService(enrollmentRepo, courseRepo),
		course:         NewCourseService(courseRepo, moduleRepo, enrollmentRepo, access),
	}
}

func (e *testEnv) seedCourse(t *testing.T, moduleCount int) *model.Course {
	t.Helper()

	course := &model.Course{Title: "C语言入门", Published: true}
	if err := e.courseRepo.Create(course); err != nil {
		t.Fatalf("seed course: %v", err)
	}

	for i := 0; i < moduleCount; i++ {
		module := &model.CourseModule{
			CourseID: course.ID,
			Title:    fmt.Sprintf("第%d章", i+1),
			Content:  fmt.Sprintf("正文%d", i+1),
		}
		if err := e.moduleRepo.Create(module); err != nil {
			t.Fatalf("seed module: %v", err)
		}
	}
	return course
}

func TestMain(m *testing.M) {
	// ResolveAccess 降级时会写日志，测试里换成空logger
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func uintPtr(v uint) *uint {
	return &v
}
