package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonksterFX/fermentation-station/internal/domain"
)

func createTestFerment(t *testing.T, env *testEnv, name, fermentType, status string) domain.Ferment {
	t.Helper()
	rec := env.doJSON(t, http.MethodPost, "/api/ferments", CreateFermentRequest{
		Name:      name,
		Type:      fermentType,
		StartDate: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Status:    status,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[domain.Ferment](t, rec)
}

func TestCreateAndGetFerment(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	created := createTestFerment(t, env, "Ginger Kombucha", "Kombucha", "")
	assert.Equal(t, domain.StatusPlanned, created.Status)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", created.ID.String())

	rec := env.doJSON(t, http.MethodGet, "/api/ferments/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[domain.Ferment](t, rec)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ginger Kombucha", got.Name)
}

func TestCreateFermentValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/ferments", CreateFermentRequest{
		Type:      "Kombucha",
		StartDate: time.Now(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation error")
}

func TestCreateFermentRejectsMalformedBody(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/ferments", map[string]any{
		"name":       "Kimchi Batch",
		"start_date": "definitely not a date",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request format")
}

func TestGetFermentNotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/ferments/6f1b0d2e-6e5d-4f60-9a3a-0d1cba1e9f00", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/api/ferments/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListFermentsStatusFilter(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	createTestFerment(t, env, "Planned Kraut", "Sauerkraut", "")
	createTestFerment(t, env, "Active Kraut", "Sauerkraut", "Stable")

	rec := env.doJSON(t, http.MethodGet, "/api/ferments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeBody[[]domain.Ferment](t, rec)
	assert.Len(t, all, 2)

	rec = env.doJSON(t, http.MethodGet, "/api/ferments?status=Stable", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stable := decodeBody[[]domain.Ferment](t, rec)
	require.Len(t, stable, 1)
	assert.Equal(t, "Active Kraut", stable[0].Name)

	rec = env.doJSON(t, http.MethodGet, "/api/ferments?status=Moldy", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateFerment(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	created := createTestFerment(t, env, "Sourdough Starter", "Sourdough", "")

	newName := "Rye Sourdough Starter"
	newStatus := "Unstable"
	rec := env.doJSON(t, http.MethodPatch, "/api/ferments/"+created.ID.String(), UpdateFermentRequest{
		Name:   &newName,
		Status: &newStatus,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[domain.Ferment](t, rec)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, domain.StatusUnstable, updated.Status)

	// Planned to active generates the schedule for the type.
	assert.NotEmpty(t, updated.Reminders)

	rec = env.doJSON(t, http.MethodPatch, "/api/ferments/0b7e9d52-91a5-4a87-90cf-93a5c1a7e001", UpdateFermentRequest{Name: &newName})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteFerment(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	created := createTestFerment(t, env, "Dill Pickles", "Pickles", "")

	rec := env.doJSON(t, http.MethodDelete, "/api/ferments/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doJSON(t, http.MethodDelete, "/api/ferments/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddAndToggleReminder(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	created := createTestFerment(t, env, "Milk Kefir", "Kefir", "")
	base := "/api/ferments/" + created.ID.String()

	rec := env.doJSON(t, http.MethodPost, base+"/reminders", CreateReminderRequest{
		Title: "Strain grains",
		Text:  "Strain the kefir grains and restart",
		Date:  time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reminder := decodeBody[domain.Reminder](t, rec)
	assert.False(t, reminder.Completed)

	rec = env.doJSON(t, http.MethodPost, base+"/reminders/"+reminder.ID.String()+"/toggle", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doJSON(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[domain.Ferment](t, rec)
	require.Len(t, got.Reminders, 1)
	assert.True(t, got.Reminders[0].Completed)

	rec = env.doJSON(t, http.MethodPost, base+"/reminders/06a0dfd5-3f6e-4b7a-b9f8-914f3e2a0c11/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddLogEntry(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	created := createTestFerment(t, env, "White Miso", "Miso", "")

	temp := 21.5
	rec := env.doJSON(t, http.MethodPost, "/api/ferments/"+created.ID.String()+"/logs", CreateLogEntryRequest{
		Note:        "Koji smells sweet, no off odors",
		Temperature: &temp,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	entry := decodeBody[domain.LogEntry](t, rec)
	assert.Equal(t, "Koji smells sweet, no off odors", entry.Note)
	require.NotNil(t, entry.Temperature)
	assert.InDelta(t, 21.5, *entry.Temperature, 0.001)
	assert.False(t, entry.Date.IsZero())
}

func TestImageUploadAndDownload(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	created := createTestFerment(t, env, "Napa Kimchi", "Kimchi", "")
	base := "/api/ferments/" + created.ID.String()
	content := []byte("fake-jpeg-bytes")

	rec := env.doMultipart(t, base+"/images", "day3.jpg", "image/jpeg", content)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	uploaded := decodeBody[ImageResponse](t, rec)
	assert.Equal(t, "image/jpeg", uploaded.ContentType)
	assert.Equal(t, int64(len(content)), uploaded.Size)
	require.True(t, strings.HasPrefix(uploaded.Key, "ferments/"+created.ID.String()+"/"))

	// Attached the key to the ferment.
	rec = env.doJSON(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[domain.Ferment](t, rec)
	require.Len(t, got.Images, 1)
	assert.Equal(t, uploaded.Key, got.Images[0])

	imageID := uploaded.Key[strings.LastIndex(uploaded.Key, "/")+1:]
	rec = env.doJSON(t, http.MethodGet, base+"/images/"+imageID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, content, rec.Body.Bytes())

	rec = env.doJSON(t, http.MethodGet, base+"/images/0a6e8a3a-52dd-4601-a9e2-5a8f8f8b1b2b", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImageUploadUnknownFerment(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.doMultipart(t, "/api/ferments/3e0928aa-9128-4a34-a3c8-3a27c6c1f001/images", "x.png", "image/png", []byte("png"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
