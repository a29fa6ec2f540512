package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"civiclens-be/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func roleTestRouter(sessionRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin",
		func(c *gin.Context) { c.Set(CtxRole, sessionRole) },
		RequireRole(models.RoleMasterAdmin),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	r := roleTestRouter("masteradmin")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	for _, role := range []string{"user", "authority", ""} {
		r := roleTestRouter(role)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusForbidden, w.Code, role)
	}
}
