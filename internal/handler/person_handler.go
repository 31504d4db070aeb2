package handler

import (
	"net/http"

	"trasporto-backend/internal/service"
	"trasporto-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// PersonHandler serves the ride-recipient CRUD. The route segment stays
// "/users" because that is the wire contract the frontend speaks; "persons"
// would collide with the auth accounts naming anyway.
type PersonHandler struct {
	personService service.PersonService
	requireAuth   gin.HandlerFunc
}

func NewPersonHandler(personService service.PersonService, requireAuth gin.HandlerFunc) *PersonHandler {
	return &PersonHandler{personService: personService, requireAuth: requireAuth}
}

func (h *PersonHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users", h.requireAuth)
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}

// List returns all ride recipients, newest first
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Person}
// @Router       /api/users [get]
func (h *PersonHandler) List(c *gin.Context) {
	persons, err := h.personService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, persons))
}

// Create adds a ride recipient
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.PersonInput  true  "User"
// @Success      201      {object}  response.Response{data=model.Person}
// @Failure      400      {object}  response.Response
// @Router       /api/users [post]
func (h *PersonHandler) Create(c *gin.Context) {
	var in service.PersonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "name is required"))
		return
	}
	person, err := h.personService.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, person))
}

// Update replaces a ride recipient's fields
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "User id"
// @Param        payload  body      service.PersonInput  true  "User"
// @Success      200      {object}  response.Response{data=model.Person}
// @Failure      404      {object}  response.Response
// @Router       /api/users/{id} [put]
func (h *PersonHandler) Update(c *gin.Context) {
	var in service.PersonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "name is required"))
		return
	}
	person, err := h.personService.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, person))
}

// Delete removes a ride recipient and cascades to their transports
// @Summary      Delete user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204  "No Content"
// @Failure      404  {object}  response.Response
// @Router       /api/users/{id} [delete]
func (h *PersonHandler) Delete(c *gin.Context) {
	if err := h.personService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
