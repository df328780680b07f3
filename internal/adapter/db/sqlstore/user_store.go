package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"usertables-generator/internal/domain/user"
	"usertables-generator/pkg/date"
)

// UserStore persists generated users with GORM. It works with any GORM
// dialector; the application uses PostgreSQL or SQLite.
type UserStore struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserStore creates a new instance of UserStore.
func NewUserStore(db *gorm.DB, log *zap.Logger) *UserStore {
	return &UserStore{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Name        string    `gorm:"size:100;not null"`
	Surname     string    `gorm:"size:100;not null"`
	Patronymic  string    `gorm:"size:100"`
	Gender      string    `gorm:"size:10;not null"`
	DateOfBirth date.Date `gorm:"not null"`
	Age         int       `gorm:"not null"`
	PostalCode  int       `gorm:"not null"`
	Country     string    `gorm:"size:100;not null"`
	Region      string    `gorm:"size:100"`
	City        string    `gorm:"size:100"`
	Street      string    `gorm:"size:100"`
	House       int
	Apartment   int       `gorm:"not null"`
	TaxID       string    `gorm:"size:12;not null;index"`
	CreatedAt   time.Time // Insert time, set by GORM
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// EnsureTable creates the users table if it does not exist.
func (s *UserStore) EnsureTable(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&UserSchema{}); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// InsertUser writes u to the users table and sets u.ID on success.
func (s *UserStore) InsertUser(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	model := toSchema(u)
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		s.log.Error("failed to insert user in db", zap.Error(err), zap.String("tax_id", u.TaxID))
		return fmt.Errorf("failed to insert user: %w", err)
	}

	u.ID = model.ID
	s.log.Info("user inserted in db", zap.Int64("id", model.ID))
	return nil
}

// ListUsers returns one page of stored users ordered by ID together with
// the total number of rows.
func (s *UserStore) ListUsers(ctx context.Context, page, limit int64) ([]user.User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&UserSchema{}).Count(&total).Error; err != nil {
		s.log.Error("failed to count users in db", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var models []UserSchema
	if err := s.db.WithContext(ctx).Order("id").Offset(int((page - 1) * limit)).Limit(int(limit)).Find(&models).Error; err != nil {
		s.log.Error("failed to list users from db", zap.Error(err), zap.Int64("page", page), zap.Int64("limit", limit))
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = fromSchema(model)
	}

	return users, total, nil
}

func toSchema(u *user.User) UserSchema {
	return UserSchema{
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

func fromSchema(m UserSchema) user.User {
	return user.User{
		ID:          m.ID,
		Name:        m.Name,
		Surname:     m.Surname,
		Patronymic:  m.Patronymic,
		Gender:      user.Gender(m.Gender),
		DateOfBirth: m.DateOfBirth,
		Age:         m.Age,
		PostalCode:  m.PostalCode,
		Country:     m.Country,
		Region:      m.Region,
		City:        m.City,
		Street:      m.Street,
		House:       m.House,
		Apartment:   m.Apartment,
		TaxID:       m.TaxID,
	}
}
