// Package controllers handles HTTP request handling
package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/lams-capstone/lams-admin/internal/app/models/dto"
	"github.com/lams-capstone/lams-admin/internal/middleware"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
)

// ActionHandler handles one value of the "action" form field
type ActionHandler func(ctx *gin.Context)

// dispatchAction parses the form and runs the handler registered for its action
func dispatchAction(ctx *gin.Context, actions map[string]ActionHandler) {
	if _, err := ctx.MultipartForm(); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		middleware.HandleAPIError(ctx, err)
		return
	}

	action := strings.TrimSpace(ctx.PostForm("action"))
	if action == "" {
		action = strings.TrimSpace(ctx.Query("action"))
	}
	if action == "" {
		ctx.JSON(http.StatusBadRequest, dto.Error("No action specified"))
		return
	}

	handler, ok := actions[action]
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.Error("Invalid action specified"))
		return
	}
	handler(ctx)
}

// formFields collects the supplied form values for columns. aliases maps
// alternative form keys onto columns; the column's own key wins.
func formFields(ctx *gin.Context, columns []string, aliases map[string]string) models.Fields {
	fields := models.Fields{}
	for alias, column := range aliases {
		if value, ok := ctx.GetPostForm(alias); ok {
			fields[column] = value
		}
	}
	for _, column := range columns {
		if value, ok := ctx.GetPostForm(column); ok {
			fields[column] = value
		}
	}
	return fields
}

// formFile returns the uploaded file in field name, or nil when none was sent
func formFile(ctx *gin.Context, name string) (*multipart.FileHeader, error) {
	fh, err := ctx.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if fh.Filename == "" && fh.Size == 0 {
		return nil, nil
	}
	return fh, nil
}

// Messages for a missing record id, per endpoint
const (
	missingStudentID = "ID parameter missing"
	missingFacultyID = "Faculty ID is required"
	missingStaffID   = "Staff ID is required"
	missingUserID    = "User ID is required"
)

// parseID parses a record id supplied as a string. missing is the message
// reported when value is blank.
func parseID(value, missing string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, apperrors.NewValidationError([]string{missing})
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError([]string{"Invalid ID"})
	}
	return id, nil
}

// listFilter builds a filter from the entity's filterable columns using get,
// which reads a request parameter. aliases maps parameter names to columns.
func listFilter(entity models.Entity, get func(string) string, aliases map[string]string, searchKey string) models.ListFilter {
	filter := models.ListFilter{Equals: map[string]string{}, Search: strings.TrimSpace(get(searchKey))}
	for alias, column := range aliases {
		if value := strings.TrimSpace(get(alias)); value != "" {
			filter.Equals[column] = value
		}
	}
	for _, column := range entity.FilterColumns {
		if value := strings.TrimSpace(get(column)); value != "" {
			filter.Equals[column] = value
		}
	}
	return filter
}

// jsonFields decodes a flat JSON object into string fields. Numbers and
// booleans are formatted; null becomes an empty value.
func jsonFields(body []byte) (models.Fields, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var raw map[string]interface{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, apperrors.NewBadRequestError("Invalid JSON body")
	}

	fields := make(models.Fields, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			fields[key] = ""
		case string:
			fields[key] = v
		case json.Number:
			fields[key] = v.String()
		case bool:
			fields[key] = strconv.FormatBool(v)
		default:
			return nil, apperrors.NewValidationError([]string{fmt.Sprintf("Field %s must be a scalar value", key)})
		}
	}
	return fields, nil
}
