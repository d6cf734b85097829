package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/controllers"
	"github.com/lams-capstone/lams-admin/internal/middleware"
	"github.com/lams-capstone/lams-admin/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "faculty_pictures"), 0o755))
	png := append([]byte("\x89PNG\r\n\x1a\n"), "<script>alert(1)</script>"...)
	require.NoError(t, os.WriteFile(filepath.Join(root, "faculty_pictures", "faculty_a.png"), png, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "faculty_pictures", "legacy.html"), []byte("<script>alert(1)</script>"), 0o644))

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test", AccessTokenExp: time.Hour})
	router := gin.New()
	SetupRouter(router, Controllers{
		Student: controllers.NewStudentController(nil),
		Faculty: controllers.NewFacultyController(nil),
		Staff:   controllers.NewStaffController(nil),
		User:    controllers.NewUserController(nil),
		Health:  controllers.NewHealthController(nil),
	}, middleware.NewAuthMiddleware(jwtService), root)
	return router, root
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestUploads_ServedAsPictures(t *testing.T) {
	r, _ := newRouter(t)

	w := get(r, "/uploads/faculty_pictures/faculty_a.png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "sandbox")
}

func TestUploads_RefusesNonPictures(t *testing.T) {
	r, _ := newRouter(t)

	w := get(r, "/uploads/faculty_pictures/legacy.html")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	r, _ := newRouter(t)

	for _, target := range []string{"/api/v1/students", "/api/v1/faculty", "/api/v1/users"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/v1/staff").Code)
}
