package handlers_test

import (
	"GrandLine/internal/config"
	"GrandLine/internal/handlers"
	"GrandLine/internal/model"
	"GrandLine/internal/repo"
	"GrandLine/internal/service"
	"GrandLine/internal/storage"
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Minimal mocks
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

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) Create(ctx context.Context, msg *model.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Message); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageRepo) GetConversation(ctx context.Context, a, b int64) ([]model.Message, error) {
	args := m.Called(ctx, a, b)
	if v, ok := args.Get(0).([]model.Message); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMessageRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.MessageRepository = (*mockMessageRepo)(nil)

// --- Helpers ---

// newTestRouter собирает реальный роутер поверх мок-репозиториев.
// storeInDB влияет и на FileStore, и на порядок отдачи вложений.
func newTestRouter(t *testing.T, ur repo.UserRepository, mr repo.MessageRepository, storeInDB bool) (http.Handler, *storage.FileStore) {
	t.Helper()
	cfg := &config.Config{
		BaseURL:        "localhost:8080",
		ServerURL:      "http://localhost:8080",
		StoreFilesInDB: storeInDB,
	}
	logger := zap.NewNop().Sugar()

	files := storage.NewFileStore(t.TempDir(), storeInDB, logger)
	userSvc := service.NewUserService(ur)
	msgSvc := service.NewMessageService(mr, ur, files, storeInDB, logger)

	h := handlers.NewHandler(userSvc, msgSvc, files, logger, cfg)
	return h.Router, files
}

// filePart — файл для multipart-формы.
type filePart struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

// multipartBody строит multipart/form-data тело из полей и файлов.
func multipartBody(t *testing.T, fields map[string]string, files ...filePart) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}
