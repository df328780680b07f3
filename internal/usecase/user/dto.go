package user

import "usertables-generator/pkg/date"

// GenerateUsersRequest represents the request payload for generating users.
type GenerateUsersRequest struct {
	Count int `validate:"required,min=1,max=100"`
}

// GenerateUsersResponse represents the response payload after generating users.
type GenerateUsersResponse struct {
	Users     []User
	Persisted bool // Persisted reports whether the users were written to the store
}

// ListUsersRequest represents the request payload for listing stored users.
type ListUsersRequest struct {
	Page  int64
	Limit int64
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users      []User
	Pagination *Pagination
}

// Pagination represents pagination information for list responses.
type Pagination struct {
	Total      int64
	Page       int64
	Limit      int64
	TotalPages int64
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID          int64
	Name        string
	Surname     string
	Patronymic  string
	Gender      string
	DateOfBirth date.Date
	Age         int
	PostalCode  int
	Country     string
	Region      string
	City        string
	Street      string
	House       int
	Apartment   int
	TaxID       string
}
