package ports

import "context"

// AuthService implements registration and login. Both return a freshly
// issued token on success.
type AuthService interface {
	Register(ctx context.Context, username, password, email string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}
