package controller

import (
	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	FeedbackService *service.FeedbackService
}

func NewFeedbackController(feedbackService *service.FeedbackService) *FeedbackController {
	return &FeedbackController{FeedbackService: feedbackService}
}

// GenerateFeedback godoc
// @Summary 生成AI反馈
// @Description 对学生作答生成AI反馈；游客和超额的limited用户返回403，带拒绝原因和剩余次数
// @Tags AI反馈
// @Accept  json
// @Produce  json
// @Param id path int true "课程ID"
// @Param body body service.FeedbackRequest true "作答内容和本次会话已用次数"
// @Success 200 {object} util.Response{data=service.FeedbackResult}
// @Failure 403 {object} util.Response{data=service.QuotaDecision} "配额拒绝"
// @Router /api/courses/{id}/feedback [post]
func (c *FeedbackController) GenerateFeedback(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.FeedbackService.GenerateFeedback(util.UserIDFromContext(ctx), courseID, req)
	if err != nil {
		if errors.Is(err, util.ErrFeedbackNotAllowed) {
			// 拒绝不算异常：把判定结果带回去给前端做"注册继续"/"升级解锁"提示
			ctx.JSON(http.StatusForbidden, util.Response{
				Code:    http.StatusForbidden,
				Message: result.Quota.Reason,
				Data:    result.Quota,
			})
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// GetFeedbackHistory godoc
// @Summary AI反馈历史
// @Tags AI反馈
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param limit query int false "条数"
// @Success 200 {object} util.Response{data=[]model.FeedbackLog}
// @Router /api/courses/{id}/feedback/history [get]
func (c *FeedbackController) GetFeedbackHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	logs, err := c.FeedbackService.GetFeedbackHistory(user.UserID, courseID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, logs)
}
