package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/lams-capstone/lams-admin/internal/app/models/dto"
	"github.com/lams-capstone/lams-admin/internal/app/services"
	"github.com/lams-capstone/lams-admin/internal/middleware"
)

var studentColumns = []string{
	"student_number", "name", "department", "program", "year_level", "block", "pin_code", "registration_status",
}

// older admin forms post these names
var studentAliases = map[string]string{
	"student_name": "name",
	"year":         "year_level",
}

// StudentController serves the action-dispatched students endpoint
type StudentController struct {
	studentService services.PersonService
	actions        map[string]ActionHandler
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.PersonService) *StudentController {
	c := &StudentController{studentService: studentService}
	c.actions = map[string]ActionHandler{
		"add":             c.add,
		"edit":            c.edit,
		"get_all":         c.getAll,
		"get_departments": c.getDepartments,
		"get_programs":    c.getPrograms,
		"get_student":     c.getStudent,
		"search":          c.search,
	}
	return c
}

// Handle dispatches on the "action" form field
func (c *StudentController) Handle(ctx *gin.Context) {
	dispatchAction(ctx, c.actions)
}

func (c *StudentController) input(ctx *gin.Context) (services.PersonInput, error) {
	file, err := formFile(ctx, "picture_file")
	if err != nil {
		return services.PersonInput{}, err
	}
	return services.PersonInput{
		Fields:  formFields(ctx, studentColumns, studentAliases),
		Picture: file,
	}, nil
}

func (c *StudentController) add(ctx *gin.Context) {
	in, err := c.input(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success("Student added successfully").With("id", student.GetID()))
}

func (c *StudentController) edit(ctx *gin.Context) {
	id, err := parseID(ctx.PostForm("id"), missingStudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	in, err := c.input(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), id, in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success("Student updated successfully").WithData(student))
}

func (c *StudentController) getAll(ctx *gin.Context) {
	students, err := c.studentService.List(ctx.Request.Context(), models.ListFilter{})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("").WithData(students))
}

func (c *StudentController) getDepartments(ctx *gin.Context) {
	departments, err := c.studentService.Distinct(ctx.Request.Context(), "department", nil)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("").WithData(departments))
}

// getPrograms lists programs, narrowed to one department when given
func (c *StudentController) getPrograms(ctx *gin.Context) {
	equals := map[string]string{"department": ctx.PostForm("department")}
	programs, err := c.studentService.Distinct(ctx.Request.Context(), "program", equals)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("").WithData(programs))
}

func (c *StudentController) getStudent(ctx *gin.Context) {
	id, err := parseID(ctx.PostForm("id"), missingStudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("").WithData(student))
}

func (c *StudentController) search(ctx *gin.Context) {
	filter := listFilter(c.studentService.Entity(), ctx.PostForm, studentAliases, "search_term")

	students, err := c.studentService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("").WithData(students))
}
