package user

import "context"

// Usecase defines the interface for user generation and listing operations.
type Usecase interface {
	GenerateUsers(ctx context.Context, in GenerateUsersRequest) (*GenerateUsersResponse, error)
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
}
