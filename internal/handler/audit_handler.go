package handler

import (
	"net/http"

	"trasporto-backend/internal/middleware"
	"trasporto-backend/internal/service"
	"trasporto-backend/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
	requireAuth  gin.HandlerFunc
}

func NewAuditHandler(auditService service.AuditService, requireAuth gin.HandlerFunc) *AuditHandler {
	return &AuditHandler{auditService: auditService, requireAuth: requireAuth}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs", h.requireAuth, middleware.RequireAdmin(), h.List)
}

// List returns the paginated audit trail, newest first
// @Summary      List audit logs
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  response.Response{data=[]service.AuditLogResponse}
// @Failure      403  {object}  response.Response
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	params := pagination.Parse(c)
	logs, total, err := h.auditService.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, params.NewPage(http.StatusOK, logs, total))
}
