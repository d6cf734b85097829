package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/lams-capstone/lams-admin/internal/app/models/dto"
	"github.com/lams-capstone/lams-admin/internal/app/services"
	"github.com/lams-capstone/lams-admin/internal/middleware"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
)

var staffColumns = []string{
	"staff_number", "name", "department", "role", "picture", "pincode", "registration_status",
}

// StaffController serves the method-dispatched staff endpoint
type StaffController struct {
	staffService services.PersonService
}

// NewStaffController creates a new StaffController
func NewStaffController(staffService services.PersonService) *StaffController {
	return &StaffController{staffService: staffService}
}

// Handle dispatches on the HTTP method
func (c *StaffController) Handle(ctx *gin.Context) {
	switch ctx.Request.Method {
	case http.MethodGet:
		c.get(ctx)
	case http.MethodPost:
		c.create(ctx)
	case http.MethodPut, http.MethodPatch:
		c.update(ctx)
	default:
		ctx.JSON(http.StatusMethodNotAllowed, dto.Error("Unsupported request method"))
	}
}

func isJSON(ctx *gin.Context) bool {
	return strings.HasPrefix(ctx.ContentType(), "application/json")
}

// onlyColumns keeps the staff columns of fields
func onlyColumns(fields models.Fields) models.Fields {
	out := models.Fields{}
	for _, column := range staffColumns {
		if value, ok := fields[column]; ok {
			out[column] = value
		}
	}
	return out
}

func readJSONFields(ctx *gin.Context) (models.Fields, error) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return nil, err
	}
	return jsonFields(body)
}

// get returns one record when a non-empty ?id is given, otherwise the
// filtered list
func (c *StaffController) get(ctx *gin.Context) {
	if raw := strings.TrimSpace(ctx.Query("id")); raw != "" {
		id, err := parseID(raw, missingStaffID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		staff, err := c.staffService.Get(ctx.Request.Context(), id)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.Success("").WithData(staff))
		return
	}

	filter := listFilter(c.staffService.Entity(), ctx.Query, nil, "search")
	staff, err := c.staffService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("").WithData(staff))
}

// create accepts a JSON body or a form
func (c *StaffController) create(ctx *gin.Context) {
	var fields models.Fields
	if isJSON(ctx) {
		var err error
		if fields, err = readJSONFields(ctx); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		fields = onlyColumns(fields)
	} else {
		fields = formFields(ctx, staffColumns, nil)
	}

	staff, err := c.staffService.Create(ctx.Request.Context(), services.PersonInput{Fields: fields})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.Success("Staff member created successfully").WithData(staff))
}

// update takes a JSON body carrying the record id
func (c *StaffController) update(ctx *gin.Context) {
	if !isJSON(ctx) {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Request body must be JSON"))
		return
	}

	fields, err := readJSONFields(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	id, err := parseID(fields["id"], missingStaffID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	staff, err := c.staffService.Update(ctx.Request.Context(), id, services.PersonInput{Fields: onlyColumns(fields)})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("Staff member updated successfully").WithData(staff))
}
