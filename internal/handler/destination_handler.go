package handler

import (
	"net/http"

	"trasporto-backend/internal/service"
	"trasporto-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DestinationHandler struct {
	destinationService service.DestinationService
	requireAuth        gin.HandlerFunc
}

func NewDestinationHandler(destinationService service.DestinationService, requireAuth gin.HandlerFunc) *DestinationHandler {
	return &DestinationHandler{destinationService: destinationService, requireAuth: requireAuth}
}

func (h *DestinationHandler) RegisterRoutes(router *gin.RouterGroup) {
	destinations := router.Group("/destinations", h.requireAuth)
	{
		destinations.GET("", h.List)
		destinations.POST("", h.Create)
		destinations.PUT("/:id", h.Update)
		destinations.DELETE("/:id", h.Delete)
	}
}

// List returns all destinations, newest first
// @Summary      List destinations
// @Tags         destinations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Destination}
// @Router       /api/destinations [get]
func (h *DestinationHandler) List(c *gin.Context) {
	destinations, err := h.destinationService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, destinations))
}

// Create adds a destination with its reimbursement cost
// @Summary      Create destination
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.DestinationInput  true  "Destination"
// @Success      201      {object}  response.Response{data=model.Destination}
// @Failure      400      {object}  response.Response
// @Router       /api/destinations [post]
func (h *DestinationHandler) Create(c *gin.Context) {
	var in service.DestinationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "name and address are required"))
		return
	}
	destination, err := h.destinationService.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, destination))
}

// Update replaces a destination's fields
// @Summary      Update destination
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Destination id"
// @Param        payload  body      service.DestinationInput  true  "Destination"
// @Success      200      {object}  response.Response{data=model.Destination}
// @Failure      404      {object}  response.Response
// @Router       /api/destinations/{id} [put]
func (h *DestinationHandler) Update(c *gin.Context) {
	var in service.DestinationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "name and address are required"))
		return
	}
	destination, err := h.destinationService.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, destination))
}

// Delete removes a destination and cascades to referencing transports
// @Summary      Delete destination
// @Tags         destinations
// @Security     BearerAuth
// @Param        id  path  string  true  "Destination id"
// @Success      204  "No Content"
// @Failure      404  {object}  response.Response
// @Router       /api/destinations/{id} [delete]
func (h *DestinationHandler) Delete(c *gin.Context) {
	if err := h.destinationService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
