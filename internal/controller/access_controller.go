package controller

import (
	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AccessController struct {
	AccessService *service.AccessService
}

func NewAccessController(accessService *service.AccessService) *AccessController {
	return &AccessController{AccessService: accessService}
}

// AccessSnapshot 详情页一次拉全：访问级别 + 配额判定
type AccessSnapshot struct {
	Access service.AccessInfo     `json:"access"`
	Quota  *service.QuotaDecision `json:"quota,omitempty"`
}

// GetAccess godoc
// @Summary 课程访问级别查询
// @Description 返回当前调用方（游客或登录用户）对课程的访问级别和AI反馈配额判定
// @Tags 访问控制
// @Produce  json
// @Param id path int true "课程ID"
// @Param attemptsUsed query int false "本次会话已用的AI反馈次数"
// @Success 200 {object} util.Response{data=AccessSnapshot}
// @Router /api/courses/{id}/access [get]
func (c *AccessController) GetAccess(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID := util.UserIDFromContext(ctx)
	access := c.AccessService.ResolveAccess(userID, courseID)

	snapshot := AccessSnapshot{Access: access}
	if attemptsStr, exists := ctx.GetQuery("attemptsUsed"); exists {
		attempts, err := strconv.Atoi(attemptsStr)
		if err != nil || attempts < 0 {
			util.BadRequest(ctx, "invalid attemptsUsed")
			return
		}
		quota := c.AccessService.CanUseAIFeedback(userID, courseID, attempts)
		snapshot.Quota = &quota
	}

	util.Success(ctx, snapshot)
}

// CheckModuleAccess godoc
// @Summary 章节可见性查询
// @Description 按章节序号判定当前调用方能否查看正文
// @Tags 访问控制
// @Produce  json
// @Param id path int true "课程ID"
// @Param index path int true "章节序号（0起算）"
// @Success 200 {object} util.Response{data=object}
// @Router /api/courses/{id}/modules/{index}/access [get]
func (c *AccessController) CheckModuleAccess(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil || index < 0 {
		util.BadRequest(ctx, "invalid index")
		return
	}

	canView := c.AccessService.CanViewModule(util.UserIDFromContext(ctx), courseID, index)
	util.Success(ctx, gin.H{"canView": canView})
}
