package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MonksterFX/fermentation-station/internal/api/shared"
	"github.com/MonksterFX/fermentation-station/internal/blob"
	"github.com/MonksterFX/fermentation-station/internal/platform/logger"
	"github.com/MonksterFX/fermentation-station/internal/query"
	"github.com/MonksterFX/fermentation-station/internal/service"
)

// maxImageSize bounds uploaded ferment images at 8 MiB.
const maxImageSize = 8 << 20

// FermentHandler handles ferment lifecycle API requests.
type FermentHandler struct {
	ferments  service.FermentService
	images    blob.Store
	validator *validator.Validate
	logger    *slog.Logger
}

// NewFermentHandler creates a new FermentHandler with the given dependencies.
func NewFermentHandler(
	ferments service.FermentService,
	images blob.Store,
	logger *slog.Logger,
) *FermentHandler {
	return &FermentHandler{
		ferments:  ferments,
		images:    images,
		validator: validator.New(),
		logger:    logger.With("component", "ferment_handler"),
	}
}

// List handles GET /api/ferments. An optional ?status= parameter restricts
// the result to ferments in that status.
func (h *FermentHandler) List(w http.ResponseWriter, r *http.Request) {
	status, err := parseStatusFilter(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	ferments := query.FilterByStatus(h.ferments.ListFerments(r.Context()), status)
	shared.RespondWithJSON(w, r, http.StatusOK, ferments)
}

// Get handles GET /api/ferments/{id}.
func (h *FermentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	ferment, err := h.ferments.GetFerment(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ferment)
}

// Create handles POST /api/ferments.
func (h *FermentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFermentRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ferment, err := h.ferments.CreateFerment(r.Context(), req.Draft())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ferment)
}

// Update handles PATCH /api/ferments/{id}.
func (h *FermentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateFermentRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ferment, err := h.ferments.UpdateFerment(r.Context(), id, req.Update())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ferment)
}

// Delete handles DELETE /api/ferments/{id}.
func (h *FermentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.ferments.DeleteFerment(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddReminder handles POST /api/ferments/{id}/reminders.
func (h *FermentHandler) AddReminder(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req CreateReminderRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	reminder, err := h.ferments.AddReminder(r.Context(), id, req.Draft())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, reminder)
}

// ToggleReminder handles POST /api/ferments/{id}/reminders/{reminderID}/toggle.
func (h *FermentHandler) ToggleReminder(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	reminderID, err := getPathUUID(r, "reminderID")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.ferments.ToggleReminder(r.Context(), id, reminderID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddLogEntry handles POST /api/ferments/{id}/logs.
func (h *FermentHandler) AddLogEntry(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req CreateLogEntryRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	entry, err := h.ferments.AddLogEntry(r.Context(), id, req.Draft())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, entry)
}

// UploadImage handles POST /api/ferments/{id}/images. The image arrives as
// the "image" part of a multipart form.
func (h *FermentHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	// Make sure the ferment exists before touching blob storage.
	if _, err := h.ferments.GetFerment(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Image file required")
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	key := fmt.Sprintf("ferments/%s/%s", id, uuid.New())

	info, err := h.images.Put(r.Context(), key, file, blob.PutOptions{ContentType: contentType})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.ferments.AttachImage(r.Context(), id, key); err != nil {
		// The blob is orphaned if the attach fails; remove it again.
		if _, delErr := h.images.Delete(r.Context(), key); delErr != nil {
			log := logger.FromContext(r.Context())
			log.Error("failed to remove orphaned image", "error", delErr, "key", key)
		}
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ImageResponse{
		Key:         info.Key,
		ContentType: info.ContentType,
		Size:        info.Size,
	})
}

// GetImage handles GET /api/ferments/{id}/images/{imageID}, streaming the
// stored blob back to the client.
func (h *FermentHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	imageID, err := getPathUUID(r, "imageID")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	key := fmt.Sprintf("ferments/%s/%s", id, imageID)
	info, rc, err := h.images.Get(r.Context(), key)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	defer func() { _ = rc.Close() }()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to stream image", "error", err, "key", key)
	}
}
