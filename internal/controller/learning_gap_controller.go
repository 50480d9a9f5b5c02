package controller

import (
	"net/http"

	"aeducacao_backend/internal/model"
	"aeducacao_backend/internal/service"
	"aeducacao_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningGapController struct {
	GapService *service.LearningGapService
}

func NewLearningGapController(gapService *service.LearningGapService) *LearningGapController {
	return &LearningGapController{GapService: gapService}
}

// @Summary 知识缺口分析
// @Description 基于交互历史识别用户的知识缺口和参与度指标
// @Tags 学习分析
// @Produce json
// @Param userId path string true "用户ID"
// @Success 200 {object} model.GapAnalysis
// @Router /api/learning/analysis/{userId} [get]
func (c *LearningGapController) Analysis(ctx *gin.Context) {
	userID := ctx.Param("userId")
	if userID == "" {
		util.BadRequest(ctx, "ID de usuário é obrigatório")
		return
	}

	analysis, err := c.GapService.AnalyzeProgress(ctx.Request.Context(), userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, analysis)
}

// @Summary 个性化改进计划
// @Description 取最严重的缺口生成步骤化学习计划
// @Tags 学习分析
// @Produce json
// @Param userId path string true "用户ID"
// @Success 200 {object} model.ImprovementPlan
// @Router /api/learning/improvement-plan/{userId} [get]
func (c *LearningGapController) ImprovementPlan(ctx *gin.Context) {
	userID := ctx.Param("userId")
	if userID == "" {
		util.BadRequest(ctx, "ID de usuário é obrigatório")
		return
	}

	plan, err := c.GapService.GenerateImprovementPlan(ctx.Request.Context(), userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, plan)
}

// @Summary 更新用户画像
// @Description 重新计算强项和弱项并写入档案
// @Tags 学习分析
// @Accept json
// @Produce json
// @Param request body model.UpdateProfileRequest true "用户"
// @Success 200 {object} map[string]string
// @Failure 400 {object} util.Response
// @Router /api/learning/update-profile [post]
func (c *LearningGapController) UpdateProfile(ctx *gin.Context) {
	var req model.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Campo obrigatório: user_id")
		return
	}

	if err := c.GapService.UpdateStrengthsWeaknesses(ctx.Request.Context(), req.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success"})
}
