package service

import (
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/util"
	"coursehub_backend/pkg/logger"
	"coursehub_backend/pkg/monitoring"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
	}
}

// Enroll 选课，同一用户同一课程只允许一条记录
// 访问级别在这里从选课类型推导并落库，之后读路径不再重算
// 重复选课由唯一索引兜底返回 ErrAlreadyEnrolled，调用方应跳转到已有课程页而不是重试
func (s *EnrollmentService) Enroll(userID, courseID uint, enrollType model.EnrollmentType) (*model.Enrollment, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if enrollType == "" {
		enrollType = model.EnrollmentFree
	}

	enrollment := &model.Enrollment{
		UserID:             userID,
		CourseID:           courseID,
		EnrollmentType:     enrollType,
		AccessLevel:        model.DeriveAccessLevel(enrollType),
		ProgressPercentage: 0,
	}

	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		if errors.Is(err, util.ErrAlreadyEnrolled) {
			monitoring.EnrollmentCounter.WithLabelValues("conflict").Inc()
			return nil, err
		}
		// 写路径的存储故障必须上抛，静默吞掉会让调用方误以为选课成功
		monitoring.EnrollmentCounter.WithLabelValues("error").Inc()
		logger.Log.Error("enrollment insert failed",
			zap.Uint("userId", userID),
			zap.Uint("courseId", courseID),
			zap.Error(err))
		return nil, err
	}

	monitoring.EnrollmentCounter.WithLabelValues("created").Inc()
	return enrollment, nil
}

// GetUserEnrollments 用户的全部选课记录（我的课程页）
func (s *EnrollmentService) GetUserEnrollments(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.FindByUserID(userID)
}
