package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/controllers"
	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/lams-capstone/lams-admin/internal/app/models/dto"
	"github.com/lams-capstone/lams-admin/internal/middleware"
	"github.com/lams-capstone/lams-admin/internal/pkg/filestorage"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth    *controllers.AuthController
	Student *controllers.StudentController
	Faculty *controllers.FacultyController
	Staff   *controllers.StaffController
	User    *controllers.UserController
	Health  *controllers.HealthController
}

// SetupRouter configures all application routes. Pictures under storagePath
// are served read-only at /uploads so stored paths resolve as URLs; they stay
// public because the admin pages load them through plain <img> tags.
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	storagePath string,
) {
	router.GET("/health", ctrl.Health.Health)

	// --- Uploaded pictures ---
	uploads := router.Group("/"+filestorage.PublicPrefix, middleware.UploadHeaders())
	uploads.Static("", storagePath)

	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.ValidateJSON[dto.LoginRequest](), ctrl.Auth.Login)
	}

	// --- Admin routes ---
	admin := v1.Group("")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		admin.POST("/students", ctrl.Student.Handle)
		admin.POST("/faculty", ctrl.Faculty.Handle)
		admin.Any("/staff", ctrl.Staff.Handle)
		admin.POST("/users", ctrl.User.Handle)
	}
}
