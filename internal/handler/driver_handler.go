package handler

import (
	"net/http"

	"trasporto-backend/internal/service"
	"trasporto-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	driverService service.DriverService
	requireAuth   gin.HandlerFunc
}

func NewDriverHandler(driverService service.DriverService, requireAuth gin.HandlerFunc) *DriverHandler {
	return &DriverHandler{driverService: driverService, requireAuth: requireAuth}
}

func (h *DriverHandler) RegisterRoutes(router *gin.RouterGroup) {
	drivers := router.Group("/drivers", h.requireAuth)
	{
		drivers.GET("", h.List)
		drivers.POST("", h.Create)
		drivers.PUT("/:id", h.Update)
		drivers.DELETE("/:id", h.Delete)
	}
}

// List returns all drivers, newest first
// @Summary      List drivers
// @Tags         drivers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Driver}
// @Router       /api/drivers [get]
func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.driverService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, drivers))
}

// Create adds a driver
// @Summary      Create driver
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.DriverInput  true  "Driver"
// @Success      201      {object}  response.Response{data=model.Driver}
// @Failure      400      {object}  response.Response
// @Router       /api/drivers [post]
func (h *DriverHandler) Create(c *gin.Context) {
	var in service.DriverInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "name is required"))
		return
	}
	driver, err := h.driverService.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, driver))
}

// Update replaces a driver's fields
// @Summary      Update driver
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "Driver id"
// @Param        payload  body      service.DriverInput  true  "Driver"
// @Success      200      {object}  response.Response{data=model.Driver}
// @Failure      404      {object}  response.Response
// @Router       /api/drivers/{id} [put]
func (h *DriverHandler) Update(c *gin.Context) {
	var in service.DriverInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "name is required"))
		return
	}
	driver, err := h.driverService.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, driver))
}

// Delete removes a driver and cascades to their transports
// @Summary      Delete driver
// @Tags         drivers
// @Security     BearerAuth
// @Param        id  path  string  true  "Driver id"
// @Success      204  "No Content"
// @Failure      404  {object}  response.Response
// @Router       /api/drivers/{id} [delete]
func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.driverService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
