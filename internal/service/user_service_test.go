package service

import (
	"GrandLine/internal/model"
	"GrandLine/internal/repo"
	"GrandLine/internal/storage"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m)

	t.Run("ok when email free", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "john@x.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		created := &model.User{ID: 10, Email: "john@x.com", Username: "john"}
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			// пароль хеширован, плейнтекста в модели нет
			return u.Email == "john@x.com" && u.PasswordHash != "" && u.PasswordHash != "p@ss"
		})).Return(created, nil).Once()

		user, err := svc.Register(ctx, RegisterInput{Email: "john@x.com", Username: "john", Password: "p@ss"})
		assert.NoError(t, err)
		assert.Equal(t, int64(10), user.ID)
		m.AssertExpectations(t)
	})

	t.Run("conflict when email taken", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "john@x.com").Return(&model.User{ID: 1, Email: "john@x.com"}, nil).Once()

		user, err := svc.Register(ctx, RegisterInput{Email: "john@x.com", Username: "other", Password: "different"})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrEmailTaken)
		m.AssertExpectations(t)
	})

	t.Run("picture metadata is carried into the model", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "pic@x.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.ProfilePicture.Path == "uploads/profiles/abc_face.png" &&
				u.ProfilePicture.Mimetype == "image/png" &&
				string(u.ProfilePicture.Data) == "blob"
		})).Return(&model.User{ID: 2}, nil).Once()

		_, err := svc.Register(ctx, RegisterInput{
			Email:    "pic@x.com",
			Username: "pic",
			Password: "p",
			Picture: &storage.SavedFile{
				Path:     "uploads/profiles/abc_face.png",
				Filename: "abc_face.png",
				Mimetype: "image/png",
				Data:     []byte("blob"),
			},
		})
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
}

func TestUserService_EmailAvailable(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m)

	m.On("GetUserByEmail", mock.Anything, "free@x.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
	assert.NoError(t, svc.EmailAvailable(ctx, "free@x.com"))

	m.On("GetUserByEmail", mock.Anything, "taken@x.com").Return(&model.User{ID: 1, Email: "taken@x.com"}, nil).Once()
	assert.ErrorIs(t, svc.EmailAvailable(ctx, "taken@x.com"), ErrEmailTaken)
	m.AssertExpectations(t)
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m)

	// готовим хеш для пароля "secret"
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)

	t.Run("ok with valid credentials", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@x.com").Return(&model.User{ID: 2, Email: "alice@x.com", PasswordHash: string(hash)}, nil).Once()

		user, err := svc.Login(ctx, "alice@x.com", "secret")
		assert.NoError(t, err)
		assert.Equal(t, int64(2), user.ID)
		m.AssertExpectations(t)
	})

	t.Run("invalid password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "alice@x.com").Return(&model.User{ID: 2, Email: "alice@x.com", PasswordHash: string(hash)}, nil).Once()

		user, err := svc.Login(ctx, "alice@x.com", "wrong")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByEmail", mock.Anything, "nobody@x.com").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()

		user, err := svc.Login(ctx, "nobody@x.com", "whatever")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.AssertExpectations(t)
	})
}

func TestUserService_Get(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m)

	m.On("GetUserByID", mock.Anything, int64(5)).Return(&model.User{ID: 5}, nil).Once()
	u, err := svc.Get(ctx, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)

	m.On("GetUserByID", mock.Anything, int64(6)).Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
	u, err = svc.Get(ctx, 6)
	assert.Nil(t, u)
	assert.ErrorIs(t, err, ErrUserNotFound)
	m.AssertExpectations(t)
}
