package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"usertables-generator/internal/usecase/user"
	"usertables-generator/pkg/date"
	pkgerrors "usertables-generator/pkg/errors"
	"usertables-generator/pkg/logger"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	Patronymic  string    `json:"patronymic,omitempty"`
	Gender      string    `json:"gender"`
	DateOfBirth date.Date `json:"date_of_birth"` // DD-MM-YYYY
	Age         int       `json:"age"`
	PostalCode  int       `json:"postal_code"`
	Country     string    `json:"country"`
	Region      string    `json:"region,omitempty"`
	City        string    `json:"city,omitempty"`
	Street      string    `json:"street,omitempty"`
	House       int       `json:"house,omitempty"`
	Apartment   int       `json:"apartment"`
	TaxID       string    `json:"tax_id"`
}

// GenerateUsersResponse represents the HTTP response for generated users
type GenerateUsersResponse struct {
	Users     []UserResponse `json:"users"`
	Persisted bool           `json:"persisted"`
}

// ListUsersResponse represents the HTTP response for listing users
type ListUsersResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination *Pagination    `json:"pagination,omitempty"`
}

// Pagination represents pagination information
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// GenerateUsers handles POST /v1/users/generate
func (h *UserHandler) GenerateUsers(c *gin.Context) {
	countStr := c.DefaultQuery("count", "1")
	count, err := strconv.Atoi(countStr)
	if err != nil {
		h.log.Warn("Invalid count", zap.String("count", countStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_count",
			Message: "count must be a valid number",
		})
		return
	}

	log := logger.WithContext(c.Request.Context(), h.log)
	log.Info("Gin GenerateUsers request", zap.Int("count", count))

	resp, err := h.uc.GenerateUsers(c.Request.Context(), user.GenerateUsersRequest{Count: count})
	if err != nil {
		log.Error("Gin GenerateUsers failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateUsersResponse{
		Users:     toResponses(resp.Users),
		Persisted: resp.Persisted,
	})
}

// ListUsers handles GET /v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")

	page, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	log := logger.WithContext(c.Request.Context(), h.log)
	log.Info("Gin ListUsers request", zap.Int64("page", page), zap.Int64("limit", limit))

	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{Page: page, Limit: limit})
	if err != nil {
		log.Error("Gin ListUsers failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	var pagination *Pagination
	if resp.Pagination != nil {
		pagination = &Pagination{
			Total:      resp.Pagination.Total,
			Page:       resp.Pagination.Page,
			Limit:      resp.Pagination.Limit,
			TotalPages: resp.Pagination.TotalPages,
		}
	}

	c.JSON(http.StatusOK, ListUsersResponse{
		Users:      toResponses(resp.Users),
		Pagination: pagination,
	})
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var statuser pkgerrors.HTTPStatuser
	if !errors.As(err, &statuser) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return
	}

	status := statuser.HTTPStatus()
	c.JSON(status, ErrorResponse{
		Error:   errorCode(err, status),
		Message: err.Error(),
	})
}

// errorCode names the failing stage for the response body.
func errorCode(err error, status int) string {
	var (
		validationErr   *pkgerrors.ValidationError
		transportErr    *pkgerrors.TransportError
		parseErr        *pkgerrors.ParseError
		persistenceErr  *pkgerrors.PersistenceError
		constructionErr *pkgerrors.ConstructionError
		unavailableErr  *pkgerrors.UnavailableError
	)

	switch {
	case errors.As(err, &validationErr):
		return "validation_error"
	case errors.As(err, &transportErr):
		return "upstream_unavailable"
	case errors.As(err, &parseErr):
		return "upstream_malformed"
	case errors.As(err, &persistenceErr):
		return "persistence_error"
	case errors.As(err, &constructionErr):
		return "construction_error"
	case errors.As(err, &unavailableErr):
		return "unavailable"
	default:
		return http.StatusText(status)
	}
}

func toResponses(users []user.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = UserResponse{
			ID:          u.ID,
			Name:        u.Name,
			Surname:     u.Surname,
			Patronymic:  u.Patronymic,
			Gender:      u.Gender,
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
	return out
}
