package controller

import (
	"net/http"

	"aeducacao_backend/internal/service"
	"aeducacao_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
}

func NewExerciseController(exerciseService *service.ExerciseService) *ExerciseController {
	return &ExerciseController{ExerciseService: exerciseService}
}

// @Summary 获取练习题
// @Description 抓取练习页面并解析题目、选项与反馈
// @Tags 练习
// @Produce json
// @Param path query string true "练习文件路径"
// @Success 200 {object} service.ExerciseSet
// @Failure 400 {object} util.Response
// @Router /api/exercises [get]
func (c *ExerciseController) Get(ctx *gin.Context) {
	path := ctx.Query("path")
	if path == "" {
		util.BadRequest(ctx, "Parâmetro obrigatório: path")
		return
	}

	set, rawURL, err := c.ExerciseService.Fetch(ctx.Request.Context(), path)
	if err != nil {
		if service.IsParseFailure(err) {
			// 解析失败时仍返回原始链接，前端可降级为外链
			ctx.JSON(http.StatusOK, gin.H{
				"success": false,
				"error":   "Não foi possível extrair os exercícios",
				"url":     rawURL,
			})
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"source":    set.Source,
		"url":       rawURL,
		"exercises": set.Exercises,
	})
}
