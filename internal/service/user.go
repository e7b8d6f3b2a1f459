package service

import (
	"GrandLine/internal/model"
	"GrandLine/internal/repo"
	"GrandLine/internal/storage"
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService инкапсулирует регистрацию, логин и выборку пользователей.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// RegisterInput — вход регистрации. Picture уже сохранена на диск
// хелпером storage (или nil, если картинки нет/она отброшена).
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Picture  *storage.SavedFile
}

// EmailAvailable возвращает ErrEmailTaken, если email уже занят.
// Вызывается хендлером ДО записи картинки на диск, чтобы не плодить сирот.
func (s *UserService) EmailAvailable(ctx context.Context, email string) error {
	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Register проверяет занятость email ДО вставки, хеширует пароль
// и создаёт пользователя. Плейнтекст пароля никогда не сохраняется.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := s.EmailAvailable(ctx, in.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
	}
	if in.Picture != nil {
		u.ProfilePicture = model.Attachment{
			Path:     in.Picture.Path,
			Filename: in.Picture.Filename,
			Mimetype: in.Picture.Mimetype,
			Data:     in.Picture.Data,
		}
	}

	return s.repo.CreateUser(ctx, u)
}

// Login сверяет пароль с bcrypt-хешем. Неизвестный email и неверный пароль
// неразличимы для вызывающего.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// List возвращает всех пользователей без пагинации.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

// Get возвращает пользователя по ID.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
