package generator

import (
	"context"

	"go.uber.org/zap"

	domain "usertables-generator/internal/domain/user"
	pkgerrors "usertables-generator/pkg/errors"
)

// persist inserts u when a sink is configured.
func persist(ctx context.Context, sink Sink, u *domain.User, log *zap.Logger) error {
	if sink == nil {
		return nil
	}
	if err := sink.InsertUser(ctx, u); err != nil {
		log.Error("failed to persist generated user", zap.String("op", "insert"), zap.String("tax_id", u.TaxID), zap.Error(err))
		return pkgerrors.NewPersistenceError("insert user", err)
	}
	return nil
}
