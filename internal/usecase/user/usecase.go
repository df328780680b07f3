package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "usertables-generator/internal/domain/user"
	"usertables-generator/internal/usecase/generator"
	pkgerrors "usertables-generator/pkg/errors"
)

// Lister defines read access to stored users.
type Lister interface {
	ListUsers(ctx context.Context, page, limit int64) ([]domain.User, int64, error) // List one page and the total count
}

// UsecaseImpl implements Usecase: user generation and listing on top of a generator and
// an optional store.
type UsecaseImpl struct {
	gen      generator.Generator // Generator producing users
	lister   Lister              // Store for listing; nil when persistence is disabled
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new instance of UsecaseImpl. If lister is nil, listing reports
// that persistence is disabled and generated users are not marked persisted.
func New(gen generator.Generator, lister Lister, log *zap.Logger) *UsecaseImpl {
	return &UsecaseImpl{gen: gen, lister: lister, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// GenerateUsers generates in.Count users one after another. The first
// failure aborts the request.
func (uc *UsecaseImpl) GenerateUsers(ctx context.Context, in GenerateUsersRequest) (*GenerateUsersResponse, error) {
	uc.log.Info("generating users", zap.Int("count", in.Count))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	generated, err := generator.GenerateBatch(ctx, uc.gen, in.Count)
	if err != nil {
		uc.log.Error("failed to generate users",
			zap.Int("count", in.Count),
			zap.Int("generated", len(generated)),
			zap.Error(err),
		)
		return nil, err
	}

	users := make([]User, len(generated))
	for i, u := range generated {
		users[i] = toDTO(*u)
	}

	return &GenerateUsersResponse{Users: users, Persisted: uc.lister != nil}, nil
}

// ListUsers retrieves a page of stored users.
func (uc *UsecaseImpl) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	if uc.lister == nil {
		return nil, pkgerrors.ErrPersistenceDisabled
	}

	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 {
		in.Limit = 10
	}
	if in.Limit > 100 {
		in.Limit = 100
	}

	uc.log.Info("listing users", zap.Int64("page", in.Page), zap.Int64("limit", in.Limit))

	domainUsers, total, err := uc.lister.ListUsers(ctx, in.Page, in.Limit)
	if err != nil {
		uc.log.Error("failed to list users", zap.Int64("page", in.Page), zap.Int64("limit", in.Limit), zap.Error(err))
		return nil, pkgerrors.NewPersistenceError("list users", err)
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = toDTO(du)
	}

	p := domain.NewPagination(total, in.Page, in.Limit)
	return &ListUsersResponse{
		Users: users,
		Pagination: &Pagination{
			Total:      p.Total,
			Page:       p.Page,
			Limit:      p.Limit,
			TotalPages: p.TotalPages,
		},
	}, nil
}

func toDTO(u domain.User) User {
	return User{
		ID:          u.ID,
		Name:        u.Name,
		Surname:     u.Surname,
		Patronymic:  u.Patronymic,
		Gender:      string(u.Gender),
		DateOfBirth: u.DateOfBirth,
		Age:         u.Age,
		PostalCode:  u.PostalCode,
		Country:     u.Country,
		Region:      u.Region,
		City:        u.City,
		Street:      u.Street,
		House:       u.House,
		Apartment:   u.Apartment,
		TaxID:       u.TaxID,
	}
}
