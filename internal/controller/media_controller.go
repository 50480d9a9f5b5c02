package controller

import (
	"net/http"

	"aeducacao_backend/internal/model"
	"aeducacao_backend/internal/service"
	"aeducacao_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MediaController struct {
	MediaService *service.MediaService
}

func NewMediaController(mediaService *service.MediaService) *MediaController {
	return &MediaController{MediaService: mediaService}
}

// @Summary 解析响应中的媒体引用
// @Description 扫描分析响应文本里的媒体标记并生成渲染计划
// @Tags 媒体
// @Accept json
// @Produce json
// @Param request body model.AnalyzeResponse true "待解析的分析响应"
// @Success 200 {object} service.MediaResolution
// @Failure 400 {object} util.Response
// @Router /api/media/resolve [post]
func (c *MediaController) Resolve(ctx *gin.Context) {
	var resp model.AnalyzeResponse
	if err := ctx.ShouldBindJSON(&resp); err != nil {
		util.BadRequest(ctx, "Corpo da requisição inválido")
		return
	}

	resolution := c.MediaService.Resolve(&resp)
	ctx.JSON(http.StatusOK, resolution)
}
