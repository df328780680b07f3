package generator

import (
	"context"
	"fmt"

	domain "usertables-generator/internal/domain/user"
)

// GenerateBatch calls g.GenerateUser n times in sequence. It stops at the
// first failure and returns the users generated before it together with an
// error naming the 0-based index that failed.
func GenerateBatch(ctx context.Context, g Generator, n int) ([]*domain.User, error) {
	users := make([]*domain.User, 0, max(n, 0))
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return users, fmt.Errorf("batch interrupted at index %d: %w", i, err)
		}

		u, err := g.GenerateUser(ctx)
		if err != nil {
			return users, fmt.Errorf("failed to generate user at index %d: %w", i, err)
		}
		users = append(users, u)
	}
	return users, nil
}
