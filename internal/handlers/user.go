package handlers

import (
	"GrandLine/internal/config"
	"GrandLine/internal/service"
	"GrandLine/internal/storage"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию, логин и выборку пользователей.
type UserHandler struct {
	Users    *service.UserService
	Files    *storage.FileStore
	Logger   *zap.SugaredLogger
	Config   *config.Config
	validate *validator.Validate
}

func NewUserHandler(users *service.UserService, files *storage.FileStore, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{Users: users, Files: files, Logger: logger, Config: cfg, validate: validator.New()}
}

type registerForm struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Register регистрирует пользователя. multipart/form-data:
// email, username, password обязательны, profile_picture опционален.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.Logger.Warnw("Register: invalid form", "error", err)
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	form := registerForm{
		Email:    r.FormValue("email"),
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	if err := h.validate.Struct(form); err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid fields (email, username, password)")
		return
	}

	// Занятость email проверяется ДО записи картинки на диск:
	// 409 не должен оставлять сирот в uploads/profiles.
	if err := h.Users.EmailAvailable(r.Context(), form.Email); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email is already registered")
			return
		}
		h.Logger.Errorw("Register: email check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Картинка профиля опциональна; неподходящий файл молча игнорируется,
	// регистрация проходит без картинки.
	var picture *storage.SavedFile
	if file, fh, err := r.FormFile("profile_picture"); err == nil {
		defer file.Close()
		if fh.Filename != "" && storage.AllowedFile(fh.Filename) {
			saved, saveErr := h.Files.SaveUpload(file, fh, storage.SubfolderProfiles)
			if saveErr != nil {
				h.Logger.Errorw("Register: failed to store profile picture", "error", saveErr)
				writeError(w, http.StatusInternalServerError, "failed to store profile picture")
				return
			}
			picture = saved
		} else {
			h.Logger.Debugw("Register: profile picture ignored", "filename", fh.Filename)
		}
	}

	user, err := h.Users.Register(r.Context(), service.RegisterInput{
		Email:    form.Email,
		Username: form.Username,
		Password: form.Password,
		Picture:  picture,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email is already registered")
			return
		}
		h.Logger.Errorw("Register: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "user registered successfully",
		"user":    userToDTO(user, h.Config.ServerURL),
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login — проверка пароля. JSON body: {"email": "...", "password": "..."}.
// Сессия/токен не выдаются: клиент переиспользует id из ответа.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request, JSON body expected")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "missing fields (email, password)")
		return
	}

	user, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.Logger.Errorw("Login: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"user":    userToDTO(user, h.Config.ServerURL),
	})
}

// List возвращает всех пользователей.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		h.Logger.Errorw("List users: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, userToDTO(&users[i], h.Config.ServerURL))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Get возвращает пользователя по id.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	user, err := h.Users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Errorw("Get user: service error", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, userToDTO(user, h.Config.ServerURL))
}
