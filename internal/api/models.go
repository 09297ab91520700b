package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/MonksterFX/fermentation-station/internal/domain"
	"github.com/MonksterFX/fermentation-station/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id,omitempty"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// CreateFermentRequest defines the payload for creating a ferment.
type CreateFermentRequest struct {
	Name        string     `json:"name"       validate:"required,max=200"`
	Type        string     `json:"type"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Ingredients []string   `json:"ingredients,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Status      string     `json:"status,omitempty"`
	Temperature *float64   `json:"temperature,omitempty"`
	PH          *float64   `json:"ph,omitempty"`
	Images      []string   `json:"images,omitempty"`
}

// Draft converts the request into a store draft.
func (r CreateFermentRequest) Draft() store.FermentDraft {
	return store.FermentDraft{
		Name:        r.Name,
		Type:        domain.FermentType(r.Type),
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Ingredients: r.Ingredients,
		Notes:       r.Notes,
		Status:      domain.FermentStatus(r.Status),
		Temperature: r.Temperature,
		PH:          r.PH,
		Images:      r.Images,
	}
}

// UpdateFermentRequest defines the payload for a partial ferment update.
// Absent fields leave the stored value untouched.
type UpdateFermentRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	Type        *string    `json:"type,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Ingredients *[]string  `json:"ingredients,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Temperature *float64   `json:"temperature,omitempty"`
	PH          *float64   `json:"ph,omitempty"`
	Images      *[]string  `json:"images,omitempty"`
}

// Update converts the request into a store update.
func (r UpdateFermentRequest) Update() store.FermentUpdate {
	u := store.FermentUpdate{
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Ingredients: r.Ingredients,
		Notes:       r.Notes,
		Temperature: r.Temperature,
		PH:          r.PH,
		Images:      r.Images,
	}
	u.Name = r.Name
	if r.Type != nil {
		t := domain.FermentType(*r.Type)
		u.Type = &t
	}
	if r.Status != nil {
		s := domain.FermentStatus(*r.Status)
		u.Status = &s
	}
	return u
}

// CreateReminderRequest defines the payload for adding a manual reminder.
type CreateReminderRequest struct {
	Title string    `json:"title"`
	Text  string    `json:"text" validate:"required,max=500"`
	Date  time.Time `json:"date" validate:"required"`
}

// Draft converts the request into a reminder draft.
func (r CreateReminderRequest) Draft() domain.ReminderDraft {
	return domain.ReminderDraft{Title: r.Title, Text: r.Text, Date: r.Date}
}

// CreateLogEntryRequest defines the payload for adding a log entry.
type CreateLogEntryRequest struct {
	Date        *time.Time `json:"date,omitempty"`
	Note        string     `json:"note" validate:"required,max=2000"`
	Temperature *float64   `json:"temperature,omitempty"`
	PH          *float64   `json:"ph,omitempty"`
	Image       string     `json:"image,omitempty"`
}

// Draft converts the request into a log entry draft.
func (r CreateLogEntryRequest) Draft() domain.LogEntryDraft {
	d := domain.LogEntryDraft{
		Note:        r.Note,
		Temperature: r.Temperature,
		PH:          r.PH,
		Image:       r.Image,
	}
	if r.Date != nil {
		d.Date = *r.Date
	}
	return d
}

// ImageResponse describes an uploaded ferment image.
type ImageResponse struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size_bytes"`
}
