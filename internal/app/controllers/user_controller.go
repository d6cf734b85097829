package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/models/dto"
	"github.com/lams-capstone/lams-admin/internal/app/services"
	"github.com/lams-capstone/lams-admin/internal/middleware"
)

// UserController serves the action-dispatched admin users endpoint
type UserController struct {
	userService services.UserService
	actions     map[string]ActionHandler
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	c := &UserController{userService: userService}
	c.actions = map[string]ActionHandler{
		"add":      c.add,
		"edit":     c.edit,
		"delete":   c.delete,
		"getUsers": c.getUsers,
		"getUser":  c.getUser,
	}
	return c
}

// Handle dispatches on the "action" form field
func (c *UserController) Handle(ctx *gin.Context) {
	dispatchAction(ctx, c.actions)
}

func userInput(ctx *gin.Context) services.UserInput {
	return services.UserInput{
		Name:     ctx.PostForm("name"),
		Username: ctx.PostForm("username"),
		Password: ctx.PostForm("password"),
		Pincode:  ctx.PostForm("pincode"),
	}
}

func (c *UserController) add(ctx *gin.Context) {
	user, err := c.userService.Create(ctx.Request.Context(), userInput(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.Success("User added successfully").With("user", user))
}

func (c *UserController) edit(ctx *gin.Context) {
	id, err := parseID(ctx.PostForm("id"), missingUserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), id, userInput(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("User updated successfully").With("user", user))
}

func (c *UserController) delete(ctx *gin.Context) {
	id, err := parseID(ctx.PostForm("id"), missingUserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), id, middleware.CallerID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("User deleted successfully"))
}

func (c *UserController) getUsers(ctx *gin.Context) {
	users, err := c.userService.List(ctx.Request.Context(), ctx.PostForm("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("").With("users", users))
}

func (c *UserController) getUser(ctx *gin.Context) {
	id, err := parseID(ctx.PostForm("id"), missingUserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.userService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("").With("user", user))
}
