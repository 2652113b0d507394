package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"irrigation_backend/internal/app"
	"irrigation_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "password123"
	// MaxUploadSize - лимит загрузки в тестовом конфиге
	MaxUploadSize = 1 << 20
)

type TestServer struct {
	Server    *httptest.Server
	DB        *gorm.DB
	App       *app.App
	Config    *config.Config
	UploadDir string
}

// NewTestConfig - конфиг для тестов: sqlite, загрузки во временный каталог
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Server.PublicOrigin = "http://api.test"
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = ":memory:"
	cfg.JWT.Secret = "test-secret"
	cfg.Admin.Email = AdminEmail
	cfg.Admin.Password = AdminPassword
	cfg.Storage.BasePath = t.TempDir()
	cfg.Upload.MaxSize = MaxUploadSize
	return cfg
}

// NewTestServer поднимает полный роутер поверх sqlite в памяти.
// mutate позволяет поменять конфиг до сборки приложения.
func NewTestServer(t *testing.T, mutate ...func(*config.Config)) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := NewTestConfig(t)
	for _, m := range mutate {
		m(cfg)
	}

	db := NewTestDB(t)
	application, err := app.New(cfg, db, app.Deps{})
	require.NoError(t, err, "Не удалось собрать приложение")
	require.NoError(t, application.SeedFirstAdmin(context.Background()), "Не удалось создать администратора")

	server := httptest.NewServer(application.Router())
	t.Cleanup(server.Close)

	return &TestServer{
		Server:    server,
		DB:        db,
		App:       application,
		Config:    cfg,
		UploadDir: cfg.Storage.BasePath,
	}
}

// API - путь с учетом base path
func (ts *TestServer) API(path string) string {
	return ts.Config.Server.BasePath + path
}

// SendRequest отправляет JSON-запрос и возвращает ответ с телом
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return ts.do(t, req)
}

// SendRaw отправляет тело как есть
func (ts *TestServer) SendRaw(t *testing.T, method, path, token, contentType string, body []byte) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, ts.Server.URL+path, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return ts.do(t, req)
}

// Upload отправляет multipart с одним файлом в поле field
func (ts *TestServer) Upload(t *testing.T, path, token, field, fileName string, content []byte) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, w.WriteField("note", "no file"))
	}
	require.NoError(t, w.Close())

	return ts.SendRaw(t, http.MethodPost, path, token, w.FormDataContentType(), buf.Bytes())
}

// Login получает токен администратора из конфига
func (ts *TestServer) Login(t *testing.T) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, ts.API("/auth/login"), "", map[string]string{
		"email":    AdminEmail,
		"password": AdminPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+body)

	var loginResponse struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &loginResponse))
	require.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")
	return loginResponse.Token
}

func (ts *TestServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	return res, string(resBodyBytes)
}

// DecodeJSON разбирает тело ответа в T
func DecodeJSON[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v), "Не удалось распарсить JSON: "+body)
	return v
}
