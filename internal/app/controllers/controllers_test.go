package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/lams-capstone/lams-admin/internal/app/services"
	"github.com/lams-capstone/lams-admin/internal/middleware"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakePersonService records the last input it was handed
type fakePersonService struct {
	entity   models.Entity
	created  services.PersonInput
	updated  services.PersonInput
	updateID int64
	filter   models.ListFilter
	err      error
}

func (f *fakePersonService) Entity() models.Entity { return f.entity }

func (f *fakePersonService) Create(_ context.Context, in services.PersonInput) (models.Person, error) {
	f.created = in
	if f.err != nil {
		return nil, f.err
	}
	p := f.entity.New()
	p.Apply(in.Fields)
	p.SetID(42)
	return p, nil
}

func (f *fakePersonService) Update(_ context.Context, id int64, in services.PersonInput) (models.Person, error) {
	f.updateID, f.updated = id, in
	if f.err != nil {
		return nil, f.err
	}
	p := f.entity.New()
	p.SetID(id)
	p.Apply(in.Fields)
	return p, nil
}

func (f *fakePersonService) Get(_ context.Context, id int64) (models.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := f.entity.New()
	p.SetID(id)
	return p, nil
}

func (f *fakePersonService) List(_ context.Context, filter models.ListFilter) ([]models.Person, error) {
	f.filter = filter
	return []models.Person{}, f.err
}

func (f *fakePersonService) Distinct(_ context.Context, column string, equals map[string]string) ([]string, error) {
	return []string{column}, f.err
}

type fakeUserService struct {
	deleted  int64
	callerID int64
}

func (f *fakeUserService) Create(_ context.Context, in services.UserInput) (*models.User, error) {
	return &models.User{ID: 1, Name: in.Name, Username: in.Username}, nil
}

func (f *fakeUserService) Update(_ context.Context, id int64, in services.UserInput) (*models.User, error) {
	return &models.User{ID: id, Name: in.Name, Username: in.Username}, nil
}

func (f *fakeUserService) Delete(_ context.Context, id, callerID int64) error {
	f.deleted, f.callerID = id, callerID
	if id == callerID {
		return apperrors.ErrSelfDeletion
	}
	return nil
}

func (f *fakeUserService) Get(_ context.Context, id int64) (*models.User, error) {
	return nil, apperrors.NewResourceNotFoundError("User not found")
}

func (f *fakeUserService) List(_ context.Context, search string) ([]*models.User, error) {
	return []*models.User{{ID: 1, Username: "root"}}, nil
}

func (f *fakeUserService) EnsureDefaultAdmin(context.Context, services.UserInput) (bool, error) {
	return false, nil
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func studentRouter(svc *fakePersonService) *gin.Engine {
	r := gin.New()
	r.POST("/students", NewStudentController(svc).Handle)
	return r
}

func TestDispatch_MissingAndUnknownAction(t *testing.T) {
	r := studentRouter(&fakePersonService{entity: models.StudentEntity})

	w := postForm(r, "/students", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No action specified", decode(t, w)["message"])

	w = postForm(r, "/students", url.Values{"action": {"drop_table"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid action specified", decode(t, w)["message"])
}

func TestStudentAdd_ReturnsID(t *testing.T) {
	svc := &fakePersonService{entity: models.StudentEntity}
	r := studentRouter(svc)

	w := postForm(r, "/students", url.Values{
		"action":         {"add"},
		"student_number": {"2024-001"},
		"student_name":   {"Ada"},
		"year":           {"2"},
		"ignored":        {"x"},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(42), body["id"])
	assert.Equal(t, models.Fields{"student_number": "2024-001", "name": "Ada", "year_level": "2"}, svc.created.Fields)
	assert.Nil(t, svc.created.Picture)
}

func TestStudentAdd_ValidationEnvelope(t *testing.T) {
	svc := &fakePersonService{
		entity: models.StudentEntity,
		err:    apperrors.NewValidationError([]string{"Name is required", "Program is required"}),
	}
	w := postForm(studentRouter(svc), "/students", url.Values{"action": {"add"}})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, []interface{}{"Name is required", "Program is required"}, body["errors"])
}

func TestStudentSearch_BuildsFilter(t *testing.T) {
	svc := &fakePersonService{entity: models.StudentEntity}
	w := postForm(studentRouter(svc), "/students", url.Values{
		"action":      {"search"},
		"search_term": {" ada "},
		"department":  {"CS"},
		"year":        {"3"},
		"picture":     {"not-a-filter"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ada", svc.filter.Search)
	assert.Equal(t, map[string]string{"department": "CS", "year_level": "3"}, svc.filter.Equals)
}

func TestStudentGet_InvalidID(t *testing.T) {
	w := postForm(studentRouter(&fakePersonService{entity: models.StudentEntity}), "/students",
		url.Values{"action": {"get_student"}, "id": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid ID", decode(t, w)["message"])
}

func TestFacultyUpdate_UsesFacultyID(t *testing.T) {
	svc := &fakePersonService{entity: models.FacultyEntity}
	r := gin.New()
	r.POST("/faculty", NewFacultyController(svc).Handle)

	w := postForm(r, "/faculty", url.Values{
		"action":     {"update_faculty"},
		"faculty_id": {"9"},
		"name":       {"Grace"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(9), svc.updateID)
	assert.Contains(t, decode(t, w), "picture")
}

func TestFacultyGetSingle_NotFound(t *testing.T) {
	svc := &fakePersonService{entity: models.FacultyEntity, err: apperrors.NewResourceNotFoundError("Faculty not found")}
	r := gin.New()
	r.POST("/faculty", NewFacultyController(svc).Handle)

	w := postForm(r, "/faculty", url.Values{"action": {"get_single_faculty"}, "id": {"5"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Faculty not found", decode(t, w)["message"])
}

func staffRouter(svc *fakePersonService) *gin.Engine {
	r := gin.New()
	r.Any("/staff", NewStaffController(svc).Handle)
	return r
}

func TestStaff_UnsupportedMethod(t *testing.T) {
	w := httptest.NewRecorder()
	staffRouter(&fakePersonService{entity: models.StaffEntity}).
		ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/staff?id=1", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Unsupported request method", decode(t, w)["message"])
}

func TestStaff_CreateFromJSON(t *testing.T) {
	svc := &fakePersonService{entity: models.StaffEntity}
	req := httptest.NewRequest(http.MethodPost, "/staff",
		strings.NewReader(`{"staff_number":"S-1","name":"Lin","department":"IT","role":"Tech","pincode":123456,"extra":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	staffRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.Fields{
		"staff_number": "S-1", "name": "Lin", "department": "IT", "role": "Tech", "pincode": "123456",
	}, svc.created.Fields)
}

func TestStaff_UpdateRequiresID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/staff", strings.NewReader(`{"name":"Lin"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	staffRouter(&fakePersonService{entity: models.StaffEntity}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Staff ID is required", decode(t, w)["message"])
}

func TestStaff_GetListUsesQuery(t *testing.T) {
	svc := &fakePersonService{entity: models.StaffEntity}
	w := httptest.NewRecorder()
	staffRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff?role=Tech&search=li", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ListFilter{Equals: map[string]string{"role": "Tech"}, Search: "li"}, svc.filter)
}

func TestStaff_EmptyQueryIDListsAll(t *testing.T) {
	svc := &fakePersonService{entity: models.StaffEntity}
	w := httptest.NewRecorder()
	staffRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff?id=&department=IT", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ListFilter{Equals: map[string]string{"department": "IT"}}, svc.filter)
}

func TestMissingIDMessages(t *testing.T) {
	student := studentRouter(&fakePersonService{entity: models.StudentEntity})
	faculty := gin.New()
	faculty.POST("/faculty", NewFacultyController(&fakePersonService{entity: models.FacultyEntity}).Handle)
	users := userRouter(&fakeUserService{}, 1)

	tests := []struct {
		name    string
		router  http.Handler
		path    string
		action  string
		message string
	}{
		{"student", student, "/students", "get_student", "ID parameter missing"},
		{"faculty", faculty, "/faculty", "get_single_faculty", "Faculty ID is required"},
		{"user", users, "/users", "getUser", "User ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(tt.router, tt.path, url.Values{"action": {tt.action}})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decode(t, w)["message"])
		})
	}
}

func userRouter(svc *fakeUserService, callerID int64) *gin.Engine {
	r := gin.New()
	r.POST("/users", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, callerID)
		c.Next()
	}, NewUserController(svc).Handle)
	return r
}

func TestUserDelete_Self(t *testing.T) {
	svc := &fakeUserService{}
	w := postForm(userRouter(svc, 3), "/users", url.Values{"action": {"delete"}, "id": {"3"}})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Cannot delete your own account", decode(t, w)["message"])
	assert.Equal(t, int64(3), svc.callerID)
}

func TestUserDelete_Other(t *testing.T) {
	svc := &fakeUserService{}
	w := postForm(userRouter(svc, 3), "/users", url.Values{"action": {"delete"}, "id": {"8"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(8), svc.deleted)
}

func TestUserGetUsers_Key(t *testing.T) {
	w := postForm(userRouter(&fakeUserService{}, 1), "/users", url.Values{"action": {"getUsers"}})

	require.Equal(t, http.StatusOK, w.Code)
	users, ok := decode(t, w)["users"].([]interface{})
	require.True(t, ok)
	assert.Len(t, users, 1)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	for _, tt := range []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{errors.New("down"), http.StatusServiceUnavailable},
	} {
		r := gin.New()
		r.GET("/health", NewHealthController(fakePinger{tt.err}).Health)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, tt.status, w.Code)
	}
}

func TestJSONFields(t *testing.T) {
	fields, err := jsonFields([]byte(`{"a":"x","b":12,"c":null,"d":false}`))
	require.NoError(t, err)
	assert.Equal(t, models.Fields{"a": "x", "b": "12", "c": "", "d": "false"}, fields)

	_, err = jsonFields([]byte(`{"a":{"nested":1}}`))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = jsonFields([]byte(`[`))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
