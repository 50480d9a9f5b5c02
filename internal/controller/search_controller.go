package controller

import (
	"net/http"
	"strconv"

	"aeducacao_backend/internal/model"
	"aeducacao_backend/internal/service"
	"aeducacao_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	SearchService *service.SearchService
}

func NewSearchController(searchService *service.SearchService) *SearchController {
	return &SearchController{SearchService: searchService}
}

// @Summary 检索已索引内容
// @Description 关键词检索，可按文档类型过滤
// @Tags 搜索
// @Produce json
// @Param q query string true "查询词"
// @Param limit query int false "结果数上限"
// @Param doc_type query string false "文档类型过滤"
// @Success 200 {object} model.SearchResponse
// @Failure 400 {object} util.Response
// @Router /api/search [get]
func (c *SearchController) Search(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "Parâmetro obrigatório: q")
		return
	}

	limit, _ := strconv.Atoi(ctx.Query("limit"))
	docType := model.DocType(ctx.Query("doc_type"))

	result, err := c.SearchService.Search(ctx.Request.Context(), query, docType, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
