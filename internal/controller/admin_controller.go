package controller

import (
	"net/http"

	"aeducacao_backend/internal/service"
	"aeducacao_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AuthService        *service.AuthService
	PerformanceService *service.PerformanceService
}

func NewAdminController(authService *service.AuthService, performanceService *service.PerformanceService) *AdminController {
	return &AdminController{
		AuthService:        authService,
		PerformanceService: performanceService,
	}
}

// TokenRequest POST /api/admin/token 的请求体。username可省略，
// 默认是配置里的管理员账号。
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

// @Summary 签发管理员令牌
// @Description 校验管理员凭据并返回JWT
// @Tags 管理
// @Accept json
// @Produce json
// @Param request body TokenRequest true "凭据"
// @Success 200 {object} map[string]string
// @Failure 401 {object} util.Response
// @Router /api/admin/token [post]
func (c *AdminController) Token(ctx *gin.Context) {
	var req TokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Campo obrigatório: password")
		return
	}

	token, err := c.AuthService.IssueAdminToken(req.Username, req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary 运行性能测试
// @Description 批量/实时索引压测和API响应时间采样
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PerformanceTestRequest true "测试参数"
// @Success 200 {object} service.PerformanceReport
// @Router /api/admin/performance-test [post]
func (c *AdminController) PerformanceTest(ctx *gin.Context) {
	var req service.PerformanceTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Corpo da requisição inválido")
		return
	}

	report, err := c.PerformanceService.Run(ctx.Request.Context(), &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}
