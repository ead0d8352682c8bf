package authController

import (
	"context"
	"errors"
	"testing"

	"linkfolio/internal/models"
	"linkfolio/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	usersByEmail map[string]*models.User
	deleteErr    error
	deleted      []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{usersByEmail: make(map[string]*models.User)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range f.usersByEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := f.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = uuid.New()
	f.usersByEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ *models.User) error { return nil }

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestController(userRepo *fakeUserRepo) AuthControllerInterface {
	return New(userRepo, nil, nil, services.NewPasswordService(bcrypt.MinCost))
}

func TestRegister_Validation(t *testing.T) {
	controller := newTestController(newFakeUserRepo())

	testCases := []struct {
		name string
		req  models.RegisterRequest
	}{
		{
			name: "missing email",
			req:  models.RegisterRequest{Username: "ada", Password: "longenough"},
		},
		{
			name: "missing username",
			req:  models.RegisterRequest{Email: "ada@example.com", Password: "longenough"},
		},
		{
			name: "short password",
			req:  models.RegisterRequest{Email: "ada@example.com", Username: "ada", Password: "short"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := controller.Register(context.Background(), tc.req)
			require.Error(t, err)

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, 400, authErr.Code)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()

	passwords := services.NewPasswordService(bcrypt.MinCost)
	hash, err := passwords.Hash("right-password")
	require.NoError(t, err)
	repo.usersByEmail["ada@example.com"] = &models.User{
		BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
		Email:         "ada@example.com",
		Username:      "ada",
		PasswordHash:  hash,
	}

	controller := newTestController(repo)

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := controller.Login(context.Background(), models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, 401, authErr.Code)
		assert.Equal(t, "Invalid credentials", authErr.Message)
	})

	t.Run("wrong password has the same message", func(t *testing.T) {
		_, _, err := controller.Login(context.Background(), models.LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong-password",
		})
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, 401, authErr.Code)
		assert.Equal(t, "Invalid credentials", authErr.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := controller.Login(context.Background(), models.LoginRequest{})
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, 400, authErr.Code)
	})
}

func TestDeleteAccount_PasswordStepUp(t *testing.T) {
	passwords := services.NewPasswordService(bcrypt.MinCost)
	hash, err := passwords.Hash("right-password")
	require.NoError(t, err)

	user := &models.User{
		BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
		Email:         "ada@example.com",
		PasswordHash:  hash,
	}

	t.Run("missing password", func(t *testing.T) {
		repo := newFakeUserRepo()
		controller := newTestController(repo)

		err := controller.DeleteAccount(context.Background(), user, "token", "")
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, 400, authErr.Code)
		assert.Empty(t, repo.deleted)
	})

	t.Run("wrong password leaves the account untouched", func(t *testing.T) {
		repo := newFakeUserRepo()
		controller := newTestController(repo)

		err := controller.DeleteAccount(context.Background(), user, "token", "wrong")
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, 401, authErr.Code)
		assert.Empty(t, repo.deleted)
	})

	t.Run("deletion failure aborts before sign-out", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.deleteErr = errors.New("constraint violation")
		controller := newTestController(repo)

		err := controller.DeleteAccount(context.Background(), user, "token", "right-password")
		require.Error(t, err)

		var authErr *AuthError
		assert.False(t, errors.As(err, &authErr), "infrastructure errors are not auth errors")
		assert.Empty(t, repo.deleted)
	})
}
