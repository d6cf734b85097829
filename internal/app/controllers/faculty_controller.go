package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/lams-capstone/lams-admin/internal/app/models/dto"
	"github.com/lams-capstone/lams-admin/internal/app/services"
	"github.com/lams-capstone/lams-admin/internal/middleware"
)

var facultyColumns = []string{
	"faculty_number", "name", "department", "program", "pincode", "registration_status",
}

// FacultyController serves the action-dispatched faculty endpoint
type FacultyController struct {
	facultyService services.PersonService
	actions        map[string]ActionHandler
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.PersonService) *FacultyController {
	c := &FacultyController{facultyService: facultyService}
	c.actions = map[string]ActionHandler{
		"add_faculty":        c.addFaculty,
		"get_faculty":        c.getFaculty,
		"get_single_faculty": c.getSingleFaculty,
		"update_faculty":     c.updateFaculty,
	}
	return c
}

// Handle dispatches on the "action" form field
func (c *FacultyController) Handle(ctx *gin.Context) {
	dispatchAction(ctx, c.actions)
}

func (c *FacultyController) input(ctx *gin.Context) (services.PersonInput, error) {
	file, err := formFile(ctx, "picture")
	if err != nil {
		return services.PersonInput{}, err
	}
	return services.PersonInput{Fields: formFields(ctx, facultyColumns, nil), Picture: file}, nil
}

// facultyID reads faculty_id, falling back to id
func facultyID(ctx *gin.Context) (int64, error) {
	value, ok := ctx.GetPostForm("faculty_id")
	if !ok {
		value = ctx.PostForm("id")
	}
	return parseID(value, missingFacultyID)
}

func (c *FacultyController) addFaculty(ctx *gin.Context) {
	in, err := c.input(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	faculty, err := c.facultyService.Create(ctx.Request.Context(), in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success("Faculty added successfully").With("faculty_id", faculty.GetID()))
}

func (c *FacultyController) getFaculty(ctx *gin.Context) {
	filter := listFilter(c.facultyService.Entity(), ctx.PostForm, nil, "search")

	faculty, err := c.facultyService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("").WithData(faculty))
}

func (c *FacultyController) getSingleFaculty(ctx *gin.Context) {
	id, err := facultyID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	faculty, err := c.facultyService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("").WithData(faculty))
}

func (c *FacultyController) updateFaculty(ctx *gin.Context) {
	id, err := facultyID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	in, err := c.input(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	person, err := c.facultyService.Update(ctx.Request.Context(), id, in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	faculty := person.(*models.Faculty)
	ctx.JSON(http.StatusOK, dto.Success("Faculty updated successfully").
		With("picture", faculty.Picture).
		WithData(faculty))
}
