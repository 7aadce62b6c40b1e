package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"profilehub/internal/auth"
)

func newTestUserService(repo *fakeUserRepo) (UserService, *auth.TokenIssuer) {
	tokens := auth.NewTokenIssuer("test-secret")
	return NewUserService(repo, tokens, bcrypt.MinCost), tokens
}

func TestRegisterHashesPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc, tokens := newTestUserService(repo)

	token, err := svc.Register(context.Background(), RegisterInput{
		Email:    "a@x.com",
		Password: "pw1",
		Name:     "A",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	stored, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "pw1", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")))

	identity, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", identity.Email)
	require.Equal(t, stored.ID, identity.UserID)
}

func TestRegisterMissingFields(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Password: "pw"})
	require.True(t, IsKind(err, KindValidation))

	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@x.com"})
	require.True(t, IsKind(err, KindValidation))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc, _ := newTestUserService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "pw2"})
	require.True(t, IsKind(err, KindConflict))
	require.Equal(t, 1, repo.countByEmail("a@x.com"))
}

func TestLoginSuccessMatchesRegisteredIdentity(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc, tokens := newTestUserService(repo)
	ctx := context.Background()

	registerToken, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw1", Name: "A"})
	require.NoError(t, err)

	loginToken, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	first, err := tokens.Verify(registerToken)
	require.NoError(t, err)
	second, err := tokens.Verify(loginToken)
	require.NoError(t, err)
	require.Equal(t, first.UserID, second.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	token, err := svc.Login(ctx, "a@x.com", "wrong")
	require.True(t, IsKind(err, KindAuth))
	require.Contains(t, err.Error(), "a@x.com")
	require.NotContains(t, err.Error(), "wrong")
	require.Empty(t, token)
}

func TestLoginUnknownAccount(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), "missing@x.com", "pw")
	require.True(t, IsKind(err, KindNotFound))
	require.Contains(t, err.Error(), "account not found")
}

func TestLoginDoesNotMutateRecord(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc, _ := newTestUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	before, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	after, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, before, after)
}
