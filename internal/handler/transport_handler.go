package handler

import (
	"net/http"

	"trasporto-backend/internal/middleware"
	"trasporto-backend/internal/service"
	"trasporto-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type TransportHandler struct {
	transportService service.TransportService
	requireAuth      gin.HandlerFunc
}

func NewTransportHandler(transportService service.TransportService, requireAuth gin.HandlerFunc) *TransportHandler {
	return &TransportHandler{transportService: transportService, requireAuth: requireAuth}
}

func (h *TransportHandler) RegisterRoutes(router *gin.RouterGroup) {
	transports := router.Group("/transports", h.requireAuth)
	{
		transports.GET("", h.List)
		transports.POST("", h.Create)
		transports.PUT("/:id", h.Update)
		transports.DELETE("/:id", h.Delete)
	}
}

// List returns all occurrences ordered by date desc, start time desc
// @Summary      List transports
// @Tags         transports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Transport}
// @Router       /api/transports [get]
func (h *TransportHandler) List(c *gin.Context) {
	transports, err := h.transportService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, transports))
}

// Create persists one occurrence or expands a recurring submission
// @Summary      Create transport(s)
// @Description  A recurring submission fans out into one row per generated date. A single created occurrence is returned unwrapped, a batch as an array.
// @Tags         transports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.TransportInput  true  "Transport"
// @Success      201      {object}  response.Response{data=model.Transport}
// @Failure      400      {object}  response.Response
// @Router       /api/transports [post]
func (h *TransportHandler) Create(c *gin.Context) {
	var in service.TransportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "date, startTime, userId, driverId and destinationId are required"))
		return
	}

	account, _ := middleware.CurrentAccount(c)
	created, err := h.transportService.Create(c.Request.Context(), in, account.ID.String())
	if err != nil {
		writeError(c, err)
		return
	}

	// single occurrence comes back unwrapped, a batch as an array
	if len(created) == 1 {
		c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created[0]))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// Update replaces all mutable fields of one occurrence
// @Summary      Update transport
// @Tags         transports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Transport id"
// @Param        payload  body      service.TransportInput  true  "Transport"
// @Success      200      {object}  response.Response{data=model.Transport}
// @Failure      404      {object}  response.Response
// @Router       /api/transports/{id} [put]
func (h *TransportHandler) Update(c *gin.Context) {
	var in service.TransportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "date, startTime, userId, driverId and destinationId are required"))
		return
	}
	transport, err := h.transportService.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, transport))
}

// Delete hard-deletes one occurrence, never its siblings
// @Summary      Delete transport
// @Tags         transports
// @Security     BearerAuth
// @Param        id  path  string  true  "Transport id"
// @Success      204  "No Content"
// @Failure      404  {object}  response.Response
// @Router       /api/transports/{id} [delete]
func (h *TransportHandler) Delete(c *gin.Context) {
	if err := h.transportService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
