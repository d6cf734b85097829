package services

import (
	"context"
	"strings"

	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
	"github.com/lams-capstone/lams-admin/internal/pkg/auth"
	"github.com/lams-capstone/lams-admin/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// UserStore is the persistence UserService needs; repositories.UserRepository implements it.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, search string) ([]*models.User, error)
	UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// UserInput carries admin account fields. On update, an empty Password or
// Pincode leaves the stored value unchanged.
type UserInput struct {
	Name     string
	Username string
	Password string
	Pincode  string
}

func (in UserInput) fields() map[string]string {
	return map[string]string{
		"name":     strings.TrimSpace(in.Name),
		"username": strings.TrimSpace(in.Username),
		"password": in.Password,
		"pincode":  strings.TrimSpace(in.Pincode),
	}
}

var (
	createUserRules = validation.Rules{
		Required: []validation.Field{
			{Column: "name", Label: "Name"},
			{Column: "username", Label: "Username"},
			{Column: "password", Label: "Password"},
			{Column: "pincode", Label: "Pincode"},
		},
		Pincode:         validation.Field{Column: "pincode", Label: "Pincode"},
		PincodeRequired: true,
		PincodeMessage:  "Pincode must be 6 digits",
	}
	updateUserRules = validation.Rules{
		Required: []validation.Field{
			{Column: "name", Label: "Name"},
			{Column: "username", Label: "Username"},
		},
		Pincode:        validation.Field{Column: "pincode", Label: "Pincode"},
		PincodeMessage: "Pincode must be 6 digits",
	}
)

// UserService manages admin accounts
type UserService interface {
	Create(ctx context.Context, in UserInput) (*models.User, error)
	Update(ctx context.Context, id int64, in UserInput) (*models.User, error)
	// Delete removes the account id; callerID is the authenticated admin.
	Delete(ctx context.Context, id, callerID int64) error
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, search string) ([]*models.User, error)
	// EnsureDefaultAdmin creates in when no account exists yet.
	EnsureDefaultAdmin(ctx context.Context, in UserInput) (bool, error)
}

type userServiceImpl struct {
	store  UserStore
	logger zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(store UserStore, logger zerolog.Logger) UserService {
	return &userServiceImpl{store: store, logger: logger}
}

func (s *userServiceImpl) ensureUsernameFree(ctx context.Context, username string, excludeID int64) error {
	exists, err := s.store.UsernameExists(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return &apperrors.CustomError{Err: apperrors.ErrUsernameExists, Message: "Username already exists"}
	}
	return nil
}

func (s *userServiceImpl) Create(ctx context.Context, in UserInput) (*models.User, error) {
	fields := in.fields()
	if errs := validation.Validate(fields, createUserRules); len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs)
	}

	if err := s.ensureUsernameFree(ctx, fields["username"], 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     fields["name"],
		Role:     models.RoleAdmin,
		Username: fields["username"],
		Password: hash,
		Pincode:  fields["pincode"],
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("Admin user created")
	return user, nil
}

func (s *userServiceImpl) Update(ctx context.Context, id int64, in UserInput) (*models.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := in.fields()
	if errs := validation.Validate(fields, updateUserRules); len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs)
	}

	if fields["username"] != user.Username {
		if err := s.ensureUsernameFree(ctx, fields["username"], id); err != nil {
			return nil, err
		}
	}

	user.Name = fields["name"]
	user.Username = fields["username"]
	user.Role = models.RoleAdmin
	user.Pincode = fields["pincode"]
	user.Password = ""
	if in.Password != "" {
		if user.Password, err = auth.HashPassword(in.Password); err != nil {
			return nil, err
		}
	}

	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *userServiceImpl) Delete(ctx context.Context, id, callerID int64) error {
	if id <= 0 {
		return apperrors.NewResourceNotFoundError("User not found")
	}
	if id == callerID {
		return &apperrors.CustomError{Err: apperrors.ErrSelfDeletion, Message: "Cannot delete your own account"}
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", id).Int64("deletedBy", callerID).Msg("Admin user deleted")
	return nil
}

func (s *userServiceImpl) Get(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, apperrors.NewResourceNotFoundError("User not found")
	}
	return s.store.GetByID(ctx, id)
}

func (s *userServiceImpl) List(ctx context.Context, search string) ([]*models.User, error) {
	return s.store.List(ctx, search)
}

func (s *userServiceImpl) EnsureDefaultAdmin(ctx context.Context, in UserInput) (bool, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if _, err := s.Create(ctx, in); err != nil {
		return false, err
	}
	return true, nil
}
