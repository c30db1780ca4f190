package service

import (
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/util"
	"coursehub_backend/pkg/logger"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FeedbackService 配额闸门 + AI生成 + 历史落库
type FeedbackService struct {
	AccessService *AccessService
	AIService     *AIService
	FeedbackRepo  *repository.FeedbackRepository
	ModuleRepo    *repository.ModuleRepository
}

func NewFeedbackService(
	accessService *AccessService,
	aiService *AIService,
	feedbackRepo *repository.FeedbackRepository,
	moduleRepo *repository.ModuleRepository,
) *FeedbackService {
	return &FeedbackService{
		AccessService: accessService,
		AIService:     aiService,
		FeedbackRepo:  feedbackRepo,
		ModuleRepo:    moduleRepo,
	}
}

type FeedbackRequest struct {
	ModuleID     uint   `json:"moduleId"`
	Answer       string `json:"answer" binding:"required,max=10000"`
	AttemptsUsed int    `json:"attemptsUsed" binding:"min=0"`
}

type FeedbackResult struct {
	Feedback string        `json:"feedback"`
	Quota    QuotaDecision `json:"quota"`
}

// GenerateFeedback 先过配额闸门再调模型，拒绝时把判定结果原样带回给前端提示
// 生成记录落库仅供历史查询，失败不影响返回
func (s *FeedbackService) GenerateFeedback(userID *uint, courseID uint, req FeedbackRequest) (*FeedbackResult, error) {
	decision := s.AccessService.CanUseAIFeedback(userID, courseID, req.AttemptsUsed)
	if !decision.CanUse {
		return &FeedbackResult{Quota: decision}, util.ErrFeedbackNotAllowed
	}

	var context string
	if req.ModuleID != 0 {
		module, err := s.ModuleRepo.FindByID(req.ModuleID)
		if err == nil && module.CourseID == courseID {
			context = fmt.Sprintf("章节: %s\n%s", module.Title, module.Description)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warn("module lookup failed for feedback context",
				zap.Uint("moduleId", req.ModuleID),
				zap.Error(err))
		}
	}

	feedback, err := s.AIService.Chat(req.Answer, context)
	if err != nil {
		return nil, err
	}

	// 配额通过时 userID 一定非空
	log := &model.FeedbackLog{
		UserID:   *userID,
		CourseID: courseID,
		ModuleID: req.ModuleID,
		Prompt:   req.Answer,
		Feedback: feedback,
		Model:    s.AIService.Model(),
	}
	if err := s.FeedbackRepo.Create(log); err != nil {
		logger.Log.Error("feedback log insert failed",
			zap.Uint("userId", *userID),
			zap.Uint("courseId", courseID),
			zap.Error(err))
	}

	return &FeedbackResult{
		Feedback: feedback,
		Quota:    decision,
	}, nil
}

// GetFeedbackHistory 最近的反馈记录
func (s *FeedbackService) GetFeedbackHistory(userID, courseID uint, limit int) ([]model.FeedbackLog, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.FeedbackRepo.FindByUserAndCourse(userID, courseID, limit)
}
