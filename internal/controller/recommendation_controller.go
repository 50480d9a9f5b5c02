package controller

import (
	"net/http"

	"aeducacao_backend/internal/service"
	"aeducacao_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// @Summary 个性化推荐
// @Description 基于最近查询或兴趣生成内容推荐，无画像时回退通用推荐
// @Tags 推荐
// @Produce json
// @Param userId path string true "用户ID"
// @Success 200 {object} service.Recommendations
// @Router /api/recommendations/{userId} [get]
func (c *RecommendationController) ForUser(ctx *gin.Context) {
	recs, err := c.RecommendationService.ForUser(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, recs)
}
