package controller

import (
	"net/http"

	"aeducacao_backend/internal/service"
	"aeducacao_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type IndexController struct {
	Indexer *service.IndexerService
}

func NewIndexController(indexer *service.IndexerService) *IndexController {
	return &IndexController{Indexer: indexer}
}

// @Summary 上传并索引学习资源
// @Description multipart上传，按扩展名分类入库；不支持的类型跳过
// @Tags 索引
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param files formData file true "文件"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.Response
// @Router /api/index [post]
func (c *IndexController) Upload(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, "É necessário enviar ao menos um arquivo")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		util.BadRequest(ctx, "É necessário enviar ao menos um arquivo")
		return
	}

	var uploaded []service.IndexResult
	var errors []string

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			errors = append(errors, "Falha ao ler arquivo: "+fh.Filename)
			continue
		}

		result, err := c.Indexer.IndexUpload(ctx.Request.Context(), fh.Filename, f, fh.Size)
		f.Close()
		if err == util.ErrUnsupportedFileType {
			errors = append(errors, "Tipo de arquivo não suportado: "+fh.Filename)
			continue
		}
		if err != nil {
			errors = append(errors, "Falha ao indexar: "+fh.Filename)
			continue
		}
		uploaded = append(uploaded, *result)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":        len(uploaded) > 0,
		"uploaded_files": uploaded,
		"errors":         errors,
	})
}
