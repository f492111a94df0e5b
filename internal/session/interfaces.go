package session

import "context"

const pkg = "sessionManager/"

type TokenStore interface {
	Load(ctx context.Context) (token string, found bool, err error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
