package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
	"github.com/lams-capstone/lams-admin/internal/pkg/filestorage"
	"github.com/lams-capstone/lams-admin/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// PersonStore is the persistence PersonService needs; repositories.PersonRepository implements it.
type PersonStore interface {
	Entity() models.Entity
	Create(ctx context.Context, p models.Person) error
	GetByID(ctx context.Context, id int64) (models.Person, error)
	Update(ctx context.Context, p models.Person) error
	List(ctx context.Context, filter models.ListFilter) ([]models.Person, error)
	Distinct(ctx context.Context, column string, equals map[string]string) ([]string, error)
}

// PersonInput is one create or update request. Picture is nil when no file was attached.
type PersonInput struct {
	Fields  models.Fields
	Picture *multipart.FileHeader
}

// PersonOptions configures the per-entity behaviour of a PersonService.
type PersonOptions struct {
	Rules validation.Rules
	// Upload is the picture policy; nil means attached files are ignored.
	Upload *filestorage.UploadPolicy
	// GeneratePincode fills an absent pin code on create when set.
	GeneratePincode func() (string, error)
}

// PersonService manages the records of one person table.
type PersonService interface {
	Entity() models.Entity
	Create(ctx context.Context, in PersonInput) (models.Person, error)
	Update(ctx context.Context, id int64, in PersonInput) (models.Person, error)
	Get(ctx context.Context, id int64) (models.Person, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Person, error)
	Distinct(ctx context.Context, column string, equals map[string]string) ([]string, error)
}

type personServiceImpl struct {
	store    PersonStore
	registry IdentifierRegistry
	files    filestorage.FileStorage
	opts     PersonOptions
	logger   zerolog.Logger
}

// NewPersonService creates a PersonService for the table behind store
func NewPersonService(
	store PersonStore,
	registry IdentifierRegistry,
	files filestorage.FileStorage,
	opts PersonOptions,
	logger zerolog.Logger,
) PersonService {
	return &personServiceImpl{
		store:    store,
		registry: registry,
		files:    files,
		opts:     opts,
		logger:   logger.With().Str("entity", string(store.Entity().Namespace)).Logger(),
	}
}

func (s *personServiceImpl) Entity() models.Entity {
	return s.store.Entity()
}

func trimFields(in models.Fields) models.Fields {
	out := make(models.Fields, len(in))
	for k, v := range in {
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// Create validates, stores the picture, checks the identifier and inserts.
// A stored picture is discarded if any later step fails.
func (s *personServiceImpl) Create(ctx context.Context, in PersonInput) (models.Person, error) {
	entity := s.Entity()
	fields := trimFields(in.Fields)

	if fields["registration_status"] == "" {
		fields["registration_status"] = models.RegistrationUnregistered
	}
	if s.opts.GeneratePincode != nil && entity.PincodeColumn != "" && fields[entity.PincodeColumn] == "" {
		pin, err := s.opts.GeneratePincode()
		if err != nil {
			return nil, err
		}
		fields[entity.PincodeColumn] = pin
	}

	person := entity.New()
	person.Apply(fields)

	if errs := validation.Validate(person.Fields(), s.opts.Rules); len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs)
	}

	stored, err := s.storePicture(in.Picture)
	if err != nil {
		return nil, err
	}
	if stored != "" {
		person.SetPicture(stored)
	}

	if err := s.ensureUnique(ctx, person.Identifier(), 0); err != nil {
		s.discard(stored)
		return nil, err
	}

	if err := s.store.Create(ctx, person); err != nil {
		s.discard(stored)
		return nil, err
	}

	s.logger.Info().Int64("id", person.GetID()).Str("identifier", person.Identifier()).Msg("Record created")
	return person, nil
}

// Update merges the supplied fields into the stored record. On success a
// superseded uploaded picture is removed; on failure the new upload is.
func (s *personServiceImpl) Update(ctx context.Context, id int64, in PersonInput) (models.Person, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError([]string{"ID is required"})
	}

	person, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousIdentifier := person.Identifier()
	previousPicture := person.PicturePath()

	person.Apply(trimFields(in.Fields))
	if person.Fields()["registration_status"] == "" {
		person.Apply(models.Fields{"registration_status": models.RegistrationUnregistered})
	}

	if errs := validation.Validate(person.Fields(), s.opts.Rules); len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs)
	}

	stored, err := s.storePicture(in.Picture)
	if err != nil {
		return nil, err
	}
	if stored != "" {
		person.SetPicture(stored)
	}

	if person.Identifier() != previousIdentifier {
		if err := s.ensureUnique(ctx, person.Identifier(), id); err != nil {
			s.discard(stored)
			return nil, err
		}
	}

	if err := s.store.Update(ctx, person); err != nil {
		s.discard(stored)
		return nil, err
	}

	if stored != "" && previousPicture != "" && previousPicture != stored {
		s.discard(previousPicture)
	}

	s.logger.Info().Int64("id", id).Msg("Record updated")
	return person, nil
}

func (s *personServiceImpl) Get(ctx context.Context, id int64) (models.Person, error) {
	if id <= 0 {
		return nil, apperrors.NewResourceNotFoundError(s.Entity().NotFoundMessage())
	}
	return s.store.GetByID(ctx, id)
}

func (s *personServiceImpl) List(ctx context.Context, filter models.ListFilter) ([]models.Person, error) {
	return s.store.List(ctx, filter)
}

func (s *personServiceImpl) Distinct(ctx context.Context, column string, equals map[string]string) ([]string, error) {
	return s.store.Distinct(ctx, column, equals)
}

func (s *personServiceImpl) ensureUnique(ctx context.Context, identifier string, excludeID int64) error {
	entity := s.Entity()
	result, err := s.registry.CheckUnique(ctx, identifier, entity.Namespace, excludeID)
	if err != nil {
		return err
	}
	if !result.Unique {
		s.logger.Warn().Str("identifier", identifier).Str("conflict", string(result.Conflict)).
			Msg("Identifier already in use")
		return apperrors.NewIdentifierConflictError(entity.ConflictMessage(result.Conflict), string(result.Conflict))
	}
	return nil
}

func (s *personServiceImpl) storePicture(fh *multipart.FileHeader) (string, error) {
	if fh == nil || s.opts.Upload == nil {
		return "", nil
	}
	stored, err := s.files.Store(fh, *s.opts.Upload)
	if err != nil {
		if errors.Is(err, apperrors.ErrUploadRejected) {
			return "", err
		}
		s.logger.Error().Err(err).Str("filename", fh.Filename).Msg("Failed to store picture")
		return "", fmt.Errorf("failed to store picture: %w", err)
	}
	return stored, nil
}

func (s *personServiceImpl) discard(storedPath string) {
	if storedPath == "" {
		return
	}
	if err := s.files.Discard(storedPath); err != nil {
		s.logger.Warn().Err(err).Str("path", storedPath).Msg("Failed to discard picture")
	}
}
