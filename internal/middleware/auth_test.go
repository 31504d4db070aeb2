package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trasporto-backend/internal/database"
	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testSecret = []byte("test_secret")

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, role string, approved bool) *model.Account {
	t.Helper()
	account := &model.Account{
		Username:     role + "-holder",
		Email:        role + "@example.com",
		FullName:     "Token Holder",
		PasswordHash: "x",
		Role:         role,
		IsApproved:   approved,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func signToken(t *testing.T, accountID string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": accountID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	requireAuth := RequireAuth(testSecret, repository.NewAccountRepository(db))

	router.GET("/protected", requireAuth, func(c *gin.Context) {
		account, _ := CurrentAccount(c)
		c.JSON(http.StatusOK, gin.H{"username": account.Username})
	})
	router.GET("/admin-only", requireAuth, RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router := newTestRouter(newTestDB(t))
	rec := doRequest(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	router := newTestRouter(newTestDB(t))
	rec := doRequest(router, "/protected", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	db := newTestDB(t)
	account := seedAccount(t, db, model.RoleUser, true)
	router := newTestRouter(db)

	rec := doRequest(router, "/protected", "Bearer "+signToken(t, account.ID.String(), -time.Hour))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthUnapprovedAccount(t *testing.T) {
	db := newTestDB(t)
	account := seedAccount(t, db, model.RoleUser, false)
	router := newTestRouter(db)

	rec := doRequest(router, "/protected", "Bearer "+signToken(t, account.ID.String(), time.Hour))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthDeletedAccount(t *testing.T) {
	db := newTestDB(t)
	account := seedAccount(t, db, model.RoleUser, true)
	token := signToken(t, account.ID.String(), time.Hour)
	require.NoError(t, db.Delete(account).Error)
	router := newTestRouter(db)

	rec := doRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	db := newTestDB(t)
	account := seedAccount(t, db, model.RoleUser, true)
	router := newTestRouter(db)

	rec := doRequest(router, "/protected", "Bearer "+signToken(t, account.ID.String(), time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), account.Username)
}

func TestRequireAdminForbidsUsers(t *testing.T) {
	db := newTestDB(t)
	account := seedAccount(t, db, model.RoleUser, true)
	router := newTestRouter(db)

	rec := doRequest(router, "/admin-only", "Bearer "+signToken(t, account.ID.String(), time.Hour))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	db := newTestDB(t)
	account := seedAccount(t, db, model.RoleAdmin, true)
	router := newTestRouter(db)

	rec := doRequest(router, "/admin-only", "Bearer "+signToken(t, account.ID.String(), time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)
}
