package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/MonksterFX/fermentation-station/internal/blob"
	"github.com/MonksterFX/fermentation-station/internal/config"
	"github.com/MonksterFX/fermentation-station/internal/domain/schedule"
	"github.com/MonksterFX/fermentation-station/internal/service"
	"github.com/MonksterFX/fermentation-station/internal/service/auth"
	"github.com/MonksterFX/fermentation-station/internal/store/memory"
)

const testJWTSecret = "api-test-secret-0123456789abcdef!!"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv bundles a router over real in-memory dependencies.
type testEnv struct {
	router   chi.Router
	ferments service.FermentService
	images   *blob.Memory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := testLogger()
	ferments := memory.NewFermentStore()
	svc := service.NewFermentService(ferments, schedule.NewService(), log)
	images := blob.NewMemory()

	fermentHandler := NewFermentHandler(svc, images, log)
	queryHandler := NewQueryHandler(svc, log)

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   testJWTSecret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)

	users := memory.NewUserStore(4)
	userService := service.NewUserService(users, jwtService, auth.NewBcryptVerifier(4), log)
	authHandler := NewAuthHandler(userService, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
		})
		r.Route("/ferments", func(r chi.Router) {
			r.Get("/", fermentHandler.List)
			r.Post("/", fermentHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", fermentHandler.Get)
				r.Patch("/", fermentHandler.Update)
				r.Delete("/", fermentHandler.Delete)
				r.Post("/reminders", fermentHandler.AddReminder)
				r.Post("/reminders/{reminderID}/toggle", fermentHandler.ToggleReminder)
				r.Post("/logs", fermentHandler.AddLogEntry)
				r.Post("/images", fermentHandler.UploadImage)
				r.Get("/images/{imageID}", fermentHandler.GetImage)
			})
		})
		r.Get("/reminders", queryHandler.Reminders)
		r.Get("/stats", queryHandler.Stats)
	})

	return &testEnv{router: r, ferments: svc, images: images}
}

// doJSON issues a request with an optional JSON body and returns the recorder.
func (e *testEnv) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// doMultipart uploads content as the "image" part of a multipart form.
func (e *testEnv) doMultipart(t *testing.T, path, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
