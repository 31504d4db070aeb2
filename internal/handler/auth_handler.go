package handler

import (
	"net/http"

	"trasporto-backend/internal/middleware"
	"trasporto-backend/internal/service"
	"trasporto-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler covers registration, login, session verification, password
// rotation and the admin-only account/access-request management routes.
type AuthHandler struct {
	authService    service.AuthService
	requestService service.AccessRequestService
	accountService service.AccountService
	requireAuth    gin.HandlerFunc
}

func NewAuthHandler(
	authService service.AuthService,
	requestService service.AccessRequestService,
	accountService service.AccountService,
	requireAuth gin.HandlerFunc,
) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		requestService: requestService,
		accountService: accountService,
		requireAuth:    requireAuth,
	}
}

// RegisterRoutes binds the auth endpoints under /auth.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/verify", h.requireAuth, h.Verify)
		auth.POST("/change-password", h.requireAuth, h.ChangePassword)

		admin := auth.Group("", h.requireAuth, middleware.RequireAdmin())
		{
			admin.GET("/access-requests", h.ListAccessRequests)
			admin.POST("/access-requests/:id/approve", h.ApproveAccessRequest)
			admin.POST("/access-requests/:id/reject", h.RejectAccessRequest)
			admin.GET("/users", h.ListAccounts)
			admin.PUT("/users/:id/role", h.UpdateRole)
			admin.DELETE("/users/:id", h.DeleteAccount)
		}
	}
}

// Register submits a registration as a pending access request
// @Summary      Submit registration
// @Description  Stores a pending access request; an admin must approve it before login works
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterRequest  true  "Registration"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "all fields are required"))
		return
	}
	if err := h.authService.Register(c.Request.Context(), req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{
		"message": "registration request submitted, wait for admin approval",
	}))
}

// Login authenticates an approved account
// @Summary      Login
// @Description  Issues a 24h bearer token for an approved account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Response{data=service.LoginResponse}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "username and password are required"))
		return
	}
	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Verify returns the account bound to the presented token
// @Summary      Verify session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.AccountResponse}
// @Failure      401  {object}  response.Response
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "access token required"))
		return
	}
	res, err := h.authService.GetAccountByID(c.Request.Context(), account.ID.String())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// ChangePassword rotates the caller's own password
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ChangePasswordRequest  true  "Passwords"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "access token required"))
		return
	}
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "current password and new password are required"))
		return
	}
	if err := h.authService.ChangePassword(c.Request.Context(), account.ID.String(), req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "password changed successfully"}))
}

// ListAccessRequests lists registration requests, optionally by status
// @Summary      List access requests
// @Tags         access-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending|approved|rejected"
// @Success      200     {object}  response.Response{data=[]service.AccessRequestResponse}
// @Failure      403     {object}  response.Response
// @Router       /api/auth/access-requests [get]
func (h *AuthHandler) ListAccessRequests(c *gin.Context) {
	res, err := h.requestService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// ApproveAccessRequest promotes a pending request into a user account
// @Summary      Approve access request
// @Tags         access-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  response.Response{data=service.AccountResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/auth/access-requests/{id}/approve [post]
func (h *AuthHandler) ApproveAccessRequest(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)
	res, err := h.requestService.Approve(c.Request.Context(), c.Param("id"), account.ID.String())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// RejectAccessRequest rejects a pending request
// @Summary      Reject access request
// @Tags         access-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/auth/access-requests/{id}/reject [post]
func (h *AuthHandler) RejectAccessRequest(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)
	if err := h.requestService.Reject(c.Request.Context(), c.Param("id"), account.ID.String()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "request rejected successfully"}))
}

// ListAccounts lists approved accounts
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.AccountResponse}
// @Failure      403  {object}  response.Response
// @Router       /api/auth/users [get]
func (h *AuthHandler) ListAccounts(c *gin.Context) {
	res, err := h.accountService.ListApproved(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// UpdateRole changes another account's role
// @Summary      Update account role
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Account id"
// @Param        payload  body      service.UpdateRoleRequest   true  "New role"
// @Success      200      {object}  response.Response{data=service.AccountResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/auth/users/{id}/role [put]
func (h *AuthHandler) UpdateRole(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)
	var req service.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "role is required"))
		return
	}
	res, err := h.accountService.UpdateRole(c.Request.Context(), c.Param("id"), req.Role, account.ID.String())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// DeleteAccount deletes another account
// @Summary      Delete account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Account id"
// @Success      204  "No Content"
// @Failure      400  {object}  response.Response
// @Router       /api/auth/users/{id} [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	account, _ := middleware.CurrentAccount(c)
	if err := h.accountService.Delete(c.Request.Context(), c.Param("id"), account.ID.String()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
