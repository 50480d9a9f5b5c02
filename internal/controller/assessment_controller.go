package controller

import (
	"errors"
	"net/http"

	"aeducacao_backend/internal/service"
	"aeducacao_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// StartAssessmentRequest POST /api/assessment/start 的请求体
type StartAssessmentRequest struct {
	UserID string `json:"user_id"`
}

// AnswerRequest POST /api/assessment/:id/answer 的请求体
type AnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// @Summary 开始评估会话
// @Description 创建新的自适应评估会话并返回第一个问题
// @Tags 评估
// @Accept json
// @Produce json
// @Param request body StartAssessmentRequest false "用户标识，缺省时自动生成"
// @Success 200 {object} service.Session
// @Router /api/assessment/start [post]
func (c *AssessmentController) Start(ctx *gin.Context) {
	var req StartAssessmentRequest
	_ = ctx.ShouldBindJSON(&req)

	session, err := c.AssessmentService.Start(ctx.Request.Context(), req.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// @Summary 回答当前问题
// @Description 提交答案并推进评估流程一步
// @Tags 评估
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param request body AnswerRequest true "答案"
// @Success 200 {object} service.Session
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessment/{id}/answer [post]
func (c *AssessmentController) Answer(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Campo obrigatório: answer")
		return
	}

	session, err := c.AssessmentService.Answer(ctx.Request.Context(), ctx.Param("id"), req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionCompleted):
			util.BadRequest(ctx, "Avaliação já concluída")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// @Summary 查询评估会话
// @Description 取回会话的当前状态与结果
// @Tags 评估
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} service.Session
// @Failure 404 {object} util.Response
// @Router /api/assessment/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	session, err := c.AssessmentService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}
