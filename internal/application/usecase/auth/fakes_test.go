// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

// fakeUserRepo serves reads from a map and records writes.
type fakeUserRepo struct {
	users   map[uuid.UUID]*entity.User
	created []*entity.User
	deleted []uuid.UUID
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) FindDigestRecipients(ctx context.Context) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// fakePasswordService mirrors the bcrypt service's contract without the cost:
// hashing is reversible prefixing so verification stays honest.
type fakePasswordService struct{}

func (f *fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (f *fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

func (f *fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

// fakeTokenService issues fixed tokens and records invalidations.
type fakeTokenService struct {
	lastRememberMe   bool
	pairsIssued      int
	invalidatedUsers []uuid.UUID
}

func (f *fakeTokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	f.lastRememberMe = rememberMe
	f.pairsIssued++
	return &adapter.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil
}

func (f *fakeTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (f *fakeTokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (f *fakeTokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	return nil
}

func (f *fakeTokenService) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	f.invalidatedUsers = append(f.invalidatedUsers, userID)
	return nil
}

func (f *fakeTokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return false, nil
}

func registeredUser(email, name, password string) *entity.User {
	return entity.NewUser(email, name, "hashed:"+password, time.Now().UTC())
}

func authCode(t *testing.T, err error) domainerror.AuthErrorCode {
	t.Helper()
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected an auth error, got %v", err)
	}
	return authErr.Code
}
