package service

import (
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	ModuleRepo     *repository.ModuleRepository
	EnrollmentRepo *repository.EnrollmentRepository
	AccessService  *AccessService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	accessService *AccessService,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		ModuleRepo:     moduleRepo,
		EnrollmentRepo: enrollmentRepo,
		AccessService:  accessService,
	}
}

type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=5000"`
	CoverURL    string `json:"coverUrl" binding:"max=255"`
	IsPaid      bool   `json:"isPaid"`
}

type CreateModuleRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=5000"`
	Content     string `json:"content"`
	Duration    int    `json:"duration" binding:"min=0"`
}

// ModuleView 带可见性标记的章节视图，不可见章节正文不下发
type ModuleView struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"orderIndex"`
	Duration    int    `json:"duration"`
	Viewable    bool   `json:"viewable"`
	Content     string `json:"content,omitempty"`
}

type CourseDetail struct {
	Course  model.Course `json:"course"`
	Access  AccessInfo   `json:"access"`
	Modules []ModuleView `json:"modules"`
}

func (s *CourseService) ListCourses(page, limit int) ([]model.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.CourseRepo.FindAll(page, limit)
}

// GetCourseDetail 课程详情页：访问级别只解析一次，逐章节套用可见性判定
// 游客只能看到前几章的正文，其余章节保留标题做预览列表
func (s *CourseService) GetCourseDetail(userID *uint, courseID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByIDWithModules(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	access := s.AccessService.ResolveAccess(userID, courseID)

	views := make([]ModuleView, 0, len(course.Modules))
	for i, m := range course.Modules {
		view := ModuleView{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			OrderIndex:  m.OrderIndex,
			Duration:    m.Duration,
			Viewable:    CanViewModuleWithTier(access.Tier, i),
		}
		if view.Viewable {
			view.Content = m.Content
		}
		views = append(views, view)
	}

	course.Modules = nil
	return &CourseDetail{
		Course:  *course,
		Access:  access,
		Modules: views,
	}, nil
}

func (s *CourseService) CreateCourse(createdBy uint, req CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		IsPaid:      req.IsPaid,
		Published:   true,
		CreatedBy:   createdBy,
	}
	return course, s.CourseRepo.Create(course)
}

func (s *CourseService) AddModule(courseID uint, req CreateModuleRequest) (*model.CourseModule, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	module := &model.CourseModule{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Duration:    req.Duration,
	}
	return module, s.ModuleRepo.Create(module)
}

func (s *CourseService) DeleteCourse(id uint) error {
	if _, err := s.CourseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.CourseRepo.Delete(id)
}
