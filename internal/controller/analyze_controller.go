package controller

import (
	"net/http"

	"aeducacao_backend/internal/model"
	"aeducacao_backend/internal/service"
	"aeducacao_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyzeController struct {
	AnalyzeService *service.AnalyzeService
}

func NewAnalyzeController(analyzeService *service.AnalyzeService) *AnalyzeController {
	return &AnalyzeController{AnalyzeService: analyzeService}
}

// @Summary 分析查询并生成自适应响应
// @Description 检索相关内容，按用户级别和偏好格式组装带媒体引用的回答
// @Tags 分析
// @Accept json
// @Produce json
// @Param request body model.QueryRequest true "查询请求"
// @Success 200 {object} model.AnalyzeResponse
// @Failure 400 {object} util.Response
// @Router /api/analyze [post]
func (c *AnalyzeController) Analyze(ctx *gin.Context) {
	var req model.QueryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Campo obrigatório: query")
		return
	}

	resp, err := c.AnalyzeService.Analyze(ctx.Request.Context(), &req)
	if err == util.ErrEmptyResponse {
		util.Error(ctx, http.StatusBadGateway, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// @Summary 提交反馈
// @Description 把用户反馈附加到对应的交互记录
// @Tags 分析
// @Accept json
// @Produce json
// @Param request body model.FeedbackRequest true "反馈"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.Response
// @Router /api/feedback [post]
func (c *AnalyzeController) Feedback(ctx *gin.Context) {
	var req model.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Campos obrigatórios: user_id, query_id e feedback")
		return
	}

	if err := c.AnalyzeService.RecordFeedback(&req); err != nil {
		if err == util.ErrInteractionNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
