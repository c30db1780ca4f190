package service

import (
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/util"
	"coursehub_backend/pkg/logger"
	"errors"
	"strconv"

	"coursehub_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AccessService 课程访问级别判定：游客/限免/完整 三档
// 所有判定都是对一次选课记录查询的纯计算，可并发调用，无共享状态
type AccessService struct {
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewAccessService(enrollmentRepo *repository.EnrollmentRepository) *AccessService {
	return &AccessService{EnrollmentRepo: enrollmentRepo}
}

// AccessInfo 一次判定的完整结果
// CanViewAnalytics 和 CanUseAI 目前取值始终一致，保留两个独立字段，避免以后分化时破坏API
type AccessInfo struct {
	Tier             model.AccessTier      `json:"tier"`
	CanViewAnalytics bool                  `json:"canViewAnalytics"`
	CanUseAI         bool                  `json:"canUseAI"`
	EnrollmentType   *model.EnrollmentType `json:"enrollmentType"`
}

func guestAccess() AccessInfo {
	return AccessInfo{
		Tier:             model.TierGuest,
		CanViewAnalytics: false,
		CanUseAI:         false,
		EnrollmentType:   nil,
	}
}

// ResolveAccess 解析用户对课程的访问级别
// 未登录直接返回游客结果，不发起任何查询；已登录但未选课和游客同样处理
// 查询出错也降级为游客（读路径只会少给权限，不会多给），但要留日志
func (s *AccessService) ResolveAccess(userID *uint, courseID uint) AccessInfo {
	if userID == nil {
		return guestAccess()
	}

	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(*userID, courseID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warn("enrollment lookup failed, degrading to guest access",
				zap.Uint("userId", *userID),
				zap.Uint("courseId", courseID),
				zap.Error(err))
		}
		return guestAccess()
	}

	enrolled := enrollment.EnrollmentType != model.EnrollmentFree
	enrollType := enrollment.EnrollmentType
	return AccessInfo{
		Tier:             enrollment.Tier(),
		CanViewAnalytics: enrolled,
		CanUseAI:         enrolled,
		EnrollmentType:   &enrollType,
	}
}

// CanViewModule 章节可见性判定，moduleIndex 为章节在课程内的序号（0起算）
// 游客只能看前 PreviewModuleCount 个章节，选过课的不限
func (s *AccessService) CanViewModule(userID *uint, courseID uint, moduleIndex int) bool {
	access := s.ResolveAccess(userID, courseID)
	return CanViewModuleWithTier(access.Tier, moduleIndex)
}

// CanViewModuleWithTier 已经解析过级别时走这里，避免每个章节重复查库
func CanViewModuleWithTier(tier model.AccessTier, moduleIndex int) bool {
	if tier == model.TierGuest {
		return moduleIndex < util.PreviewModuleCount
	}
	return true
}

// QuotaDecision AI反馈配额判定结果
// AttemptsRemaining 为 nil 表示不限次（full 层级）
type QuotaDecision struct {
	CanUse            bool   `json:"canUse"`
	Reason            string `json:"reason,omitempty"`
	AttemptsRemaining *int   `json:"attemptsRemaining,omitempty"`
}

// CanUseAIFeedback AI反馈配额判定
// attemptsUsed 由调用方自带（前端会话内计数，刷新清零），本服务不持久化任何计数——
// 这是页面提示用的软限制，不是安全边界
func (s *AccessService) CanUseAIFeedback(userID *uint, courseID uint, attemptsUsed int) QuotaDecision {
	access := s.ResolveAccess(userID, courseID)
	decision := decideQuota(access.Tier, attemptsUsed)

	monitoring.AIQuotaCounter.WithLabelValues(
		string(access.Tier),
		strconv.FormatBool(decision.CanUse),
	).Inc()

	return decision
}

func decideQuota(tier model.AccessTier, attemptsUsed int) QuotaDecision {
	switch tier {
	case model.TierGuest:
		return QuotaDecision{
			CanUse: false,
			Reason: "registration required",
		}
	case model.TierLimited:
		remaining := util.FreeAIFeedbackLimit - attemptsUsed
		if remaining <= 0 {
			zero := 0
			return QuotaDecision{
				CanUse:            false,
				Reason:            "trial exhausted",
				AttemptsRemaining: &zero,
			}
		}
		return QuotaDecision{
			CanUse:            true,
			AttemptsRemaining: &remaining,
		}
	default:
		return QuotaDecision{CanUse: true}
	}
}
