package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/models/dto"
	"github.com/lams-capstone/lams-admin/internal/app/services"
	"github.com/lams-capstone/lams-admin/internal/middleware"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login issues an access token for an admin. The body is bound and
// validated by middleware.ValidateJSON[dto.LoginRequest].
func (c *AuthController) Login(ctx *gin.Context) {
	req, ok := middleware.ValidatedBody[dto.LoginRequest](ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request format"))
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("Login successful").WithData(dto.TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   result.ExpiresIn,
		User:        result.User,
	}))
}
