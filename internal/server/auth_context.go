package server

import (
	"context"

	"reportvault/internal/models"
)

type accountContextKey struct{}

func contextWithAccount(ctx context.Context, account *models.Account) context.Context {
	return context.WithValue(ctx, accountContextKey{}, account)
}

func accountFromContext(ctx context.Context) (*models.Account, bool) {
	if ctx == nil {
		return nil, false
	}
	account, ok := ctx.Value(accountContextKey{}).(*models.Account)
	return account, ok && account != nil
}
