package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beviryon/BeCandidature-sub000/internal/config"
	"github.com/Beviryon/BeCandidature-sub000/internal/db"
	"github.com/Beviryon/BeCandidature-sub000/internal/types"
)

// fakeUserDB is an in-memory DBClient for service tests.
type fakeUserDB struct {
	users map[uuid.UUID]*db.User
}

func newFakeUserDB() *fakeUserDB {
	return &fakeUserDB{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeUserDB) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash}
	return id, nil
}

func (f *fakeUserDB) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	return f.users[userID], nil
}

func (f *fakeUserDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserDB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := f.GetUserByEmail(ctx, email)
	return u != nil, nil
}

func (f *fakeUserDB) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	if u, ok := f.users[userID]; ok {
		u.PasswordHash = passwordHash
		return nil
	}
	return &ErrUserNotFound{UserID: userID}
}

func (f *fakeUserDB) ApproveUser(_ context.Context, userID uuid.UUID) error {
	if u, ok := f.users[userID]; ok {
		u.Approved = true
		return nil
	}
	return &ErrUserNotFound{UserID: userID}
}

func (f *fakeUserDB) ListPendingUsers(_ context.Context) ([]db.User, error) {
	var pending []db.User
	for _, u := range f.users {
		if !u.Approved {
			pending = append(pending, *u)
		}
	}
	return pending, nil
}

func newTestUserService(t *testing.T) (*UserService, *fakeUserDB) {
	t.Helper()
	t.Setenv("BCRYPT_COST", "10")
	passwordConfig, err := config.NewPasswordConfig()
	require.NoError(t, err)
	fake := newFakeUserDB()
	return NewUserService(fake, passwordConfig), fake
}

func TestRegister_CreatesUnapprovedAccount(t *testing.T) {
	service, fake := newTestUserService(t)

	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Marie Dupont",
		Email:    "marie@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.False(t, user.Approved)
	assert.False(t, user.Admin)

	stored := fake.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash, "password is stored hashed")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service, _ := newTestUserService(t)
	req := &types.CreateUserRequest{Name: "A", Email: "a@example.com", Password: "longenough"}

	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	require.Error(t, err)
	assert.IsType(t, &ErrEmailAlreadyExists{}, err)
}

func TestLogin_UnapprovedAccountRefused(t *testing.T) {
	service, fake := newTestUserService(t)
	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "A", Email: "a@example.com", Password: "longenough",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &types.LoginRequest{Email: "a@example.com", Password: "longenough"})
	require.Error(t, err)
	assert.IsType(t, &ErrAccountNotApproved{}, err)
	assert.Equal(t, 403, HTTPStatus(err))

	// After approval the same credentials work.
	require.NoError(t, fake.ApproveUser(context.Background(), user.ID))
	logged, err := service.Login(context.Background(), &types.LoginRequest{Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	service, fake := newTestUserService(t)
	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "A", Email: "a@example.com", Password: "longenough",
	})
	require.NoError(t, err)
	require.NoError(t, fake.ApproveUser(context.Background(), user.ID))

	_, err = service.Login(context.Background(), &types.LoginRequest{Email: "a@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestLogin_UnknownEmailGenericError(t *testing.T) {
	service, _ := newTestUserService(t)

	_, err := service.Login(context.Background(), &types.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err, "unknown email must not be distinguishable from a bad password")
}

func TestApprove_Idempotent(t *testing.T) {
	service, _ := newTestUserService(t)
	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "A", Email: "a@example.com", Password: "longenough",
	})
	require.NoError(t, err)

	approved, err := service.Approve(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	again, err := service.Approve(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, again.Approved)
}

func TestUpdatePassword(t *testing.T) {
	service, _ := newTestUserService(t)
	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "A", Email: "a@example.com", Password: "oldpassword",
	})
	require.NoError(t, err)

	err = service.UpdatePassword(context.Background(), user.ID, "wrong", "newpassword1")
	assert.IsType(t, &ErrPasswordMismatch{}, err)

	require.NoError(t, service.UpdatePassword(context.Background(), user.ID, "oldpassword", "newpassword1"))
}
