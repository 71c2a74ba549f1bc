// Package tests holds shared fixtures for store-backed and HTTP tests:
// an in-memory sqlite database, user factory, token minting and a request helper.
package tests

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quizcourse_backend/internals/configs"
	database "quizcourse_backend/internals/databases"
	authHelper "quizcourse_backend/internals/features/users/auth/helper"
	authService "quizcourse_backend/internals/features/users/auth/service"
	userModel "quizcourse_backend/internals/features/users/user/model"
	helper "quizcourse_backend/internals/helpers"
	routes "quizcourse_backend/internals/route"
)

const (
	Secret   = "test-secret-0123456789"
	Password = "senha-segura-123"
)

// OpenDB returns a fresh migrated in-memory database for one test.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	configs.JWTSecret = Secret
	configs.JWTAccessTTL = time.Hour
	configs.UploadDir = t.TempDir()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// NewApp builds the full router on db, without the global rate limiter.
func NewApp(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: helper.ErrorHandler,
	})
	routes.SetupRoutes(app, db)
	return app
}

// CreateUser stores an active user with the given role and Password.
func CreateUser(t *testing.T, db *gorm.DB, role string) *userModel.UserModel {
	t.Helper()
	hash, err := authHelper.HashPassword(Password)
	require.NoError(t, err)
	id := uuid.New()
	u := &userModel.UserModel{
		ID:       id,
		UserName: "user-" + id.String()[:8],
		Email:    id.String()[:8] + "@example.com",
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// Token signs an access token for u with the test secret.
func Token(t *testing.T, u *userModel.UserModel) string {
	t.Helper()
	tok, _, err := authService.IssueAccessToken(*u, Secret, time.Hour)
	require.NoError(t, err)
	return tok
}

// Response is a decoded HTTP result.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the body into dst.
func (r Response) Decode(t *testing.T, dst any) {
	t.Helper()
	require.NoError(t, sonic.Unmarshal(r.Body, dst), string(r.Body))
}

// Map decodes the body as a JSON object.
func (r Response) Map(t *testing.T) map[string]any {
	t.Helper()
	out := map[string]any{}
	r.Decode(t, &out)
	return out
}

// List decodes the body as a JSON array of objects.
func (r Response) List(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	r.Decode(t, &out)
	return out
}

// Do sends a JSON request (body may be nil) with an optional bearer token.
func Do(t *testing.T, app *fiber.App, method, path, token string, body any) Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return send(t, app, req, token)
}

// DoRaw sends a request with a prepared body and content type (multipart uploads).
func DoRaw(t *testing.T, app *fiber.App, method, path, token, contentType string, body io.Reader) Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	return send(t, app, req, token)
}

func send(t *testing.T, app *fiber.App, req *http.Request, token string) Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return Response{Status: res.StatusCode, Header: res.Header, Body: raw}
}

// ID extracts a string id field from a decoded object.
func ID(t *testing.T, obj map[string]any, key string) string {
	t.Helper()
	v, ok := obj[key].(string)
	require.True(t, ok, "missing %s in %v", key, obj)
	return v
}

// PNG renders a small solid image for upload tests.
func PNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// Multipart builds a form with one file field; returns the content type and body.
func Multipart(t *testing.T, field, filename string, data []byte) (string, io.Reader) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return w.FormDataContentType(), &buf
}
