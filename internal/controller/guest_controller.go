package controller

import (
	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSessionService *service.GuestSessionService
}

func NewGuestController(guestSessionService *service.GuestSessionService) *GuestController {
	return &GuestController{GuestSessionService: guestSessionService}
}

// InitSession godoc
// @Summary 初始化游客会话
// @Description 请求头带已有会话ID则返回该会话（幂等），否则新建
// @Tags 游客
// @Produce  json
// @Param X-Guest-Session header string false "已有会话ID"
// @Success 200 {object} util.Response{data=model.GuestSession}
// @Router /api/guest/session [post]
func (c *GuestController) InitSession(ctx *gin.Context) {
	session, err := c.GuestSessionService.InitSession(ctx.Request.Context(), ctx.GetHeader(util.GuestSessionHeader))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// TrackPreviewRequest 预览上报
type TrackPreviewRequest struct {
	CourseID uint `json:"courseId" binding:"required"`
}

// TrackPreview godoc
// @Summary 上报课程预览
// @Description 把课程ID幂等追加到游客会话的预览列表，保持首次预览顺序
// @Tags 游客
// @Accept  json
// @Produce  json
// @Param X-Guest-Session header string false "会话ID，缺省新建"
// @Param body body TrackPreviewRequest true "课程ID"
// @Success 200 {object} util.Response{data=model.GuestSession}
// @Router /api/guest/session/preview [post]
func (c *GuestController) TrackPreview(ctx *gin.Context) {
	var req TrackPreviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.GuestSessionService.TrackPreview(ctx.Request.Context(), ctx.GetHeader(util.GuestSessionHeader), req.CourseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// ClearSession godoc
// @Summary 清除游客会话
// @Tags 游客
// @Produce  json
// @Param X-Guest-Session header string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/guest/session [delete]
func (c *GuestController) ClearSession(ctx *gin.Context) {
	if err := c.GuestSessionService.ClearSession(ctx.Request.Context(), ctx.GetHeader(util.GuestSessionHeader)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
