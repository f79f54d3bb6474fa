package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// maxUploadBytes bounds the multipart form, image file included.
const maxUploadBytes = 10 << 20

// CreateEventRequest is the JSON carried in the multipart "data" field of
// POST /events. All fields except registrationLink are required.
type CreateEventRequest struct {
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	EventType        string             `json:"type"`
	Date             string             `json:"date"`
	StartTime        string             `json:"startTime"`
	EndTime          string             `json:"endTime"`
	Venue            string             `json:"venue"`
	Mode             string             `json:"mode"`
	Eligibility      string             `json:"eligibility"`
	Fee              string             `json:"fee"`
	RegistrationLink string             `json:"registrationLink"`
	Organizers       []domain.Organizer `json:"organizers"`
	Contacts         []domain.Contact   `json:"contacts"`
}

// Validate implements Validator. Date and times must be valid civil strings;
// they are not cross-checked against each other.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	required := []struct {
		name, value string
	}{
		{"title", c.Title},
		{"description", c.Description},
		{"type", c.EventType},
		{"date", c.Date},
		{"startTime", c.StartTime},
		{"endTime", c.EndTime},
		{"venue", c.Venue},
		{"mode", c.Mode},
		{"eligibility", c.Eligibility},
		{"fee", c.Fee},
	}
	for _, f := range required {
		if f.value == "" {
			errs = append(errs, f.name+" is required")
		}
	}
	if c.Date != "" {
		if _, err := time.Parse("2006-01-02", c.Date); err != nil {
			errs = append(errs, "date must be YYYY-MM-DD")
		}
	}
	if c.StartTime != "" {
		if _, err := time.Parse("15:04:05", c.StartTime); err != nil {
			errs = append(errs, "startTime must be HH:MM:SS")
		}
	}
	if c.EndTime != "" {
		if _, err := time.Parse("15:04:05", c.EndTime); err != nil {
			errs = append(errs, "endTime must be HH:MM:SS")
		}
	}
	if len(c.Organizers) == 0 {
		errs = append(errs, "organizers is required")
	}
	if len(c.Contacts) == 0 {
		errs = append(errs, "contacts is required")
	}
	return errs
}

// UpdateEventRequest is the JSON carried in the multipart "data" field of
// PUT /events/{eventID}. All fields are optional; a field is applied iff
// present, so explicit clears are representable.
type UpdateEventRequest struct {
	Title            *string             `json:"title"`
	Description      *string             `json:"description"`
	EventType        *string             `json:"type"`
	Date             *string             `json:"date"`
	StartTime        *string             `json:"startTime"`
	EndTime          *string             `json:"endTime"`
	Venue            *string             `json:"venue"`
	Mode             *string             `json:"mode"`
	Eligibility      *string             `json:"eligibility"`
	Fee              *string             `json:"fee"`
	RegistrationLink *string             `json:"registrationLink"`
	Organizers       *[]domain.Organizer `json:"organizers"`
	Contacts         *[]domain.Contact   `json:"contacts"`
}

// Validate implements Validator. Temporal fields, when present, must remain
// valid civil strings.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Date != nil {
		if _, err := time.Parse("2006-01-02", *u.Date); err != nil {
			errs = append(errs, "date must be YYYY-MM-DD")
		}
	}
	if u.StartTime != nil {
		if _, err := time.Parse("15:04:05", *u.StartTime); err != nil {
			errs = append(errs, "startTime must be HH:MM:SS")
		}
	}
	if u.EndTime != nil {
		if _, err := time.Parse("15:04:05", *u.EndTime); err != nil {
			errs = append(errs, "endTime must be HH:MM:SS")
		}
	}
	return errs
}

func (u UpdateEventRequest) toDomain() domain.EventUpdate {
	return domain.EventUpdate{
		Title:            u.Title,
		Description:      u.Description,
		EventType:        u.EventType,
		Date:             u.Date,
		StartTime:        u.StartTime,
		EndTime:          u.EndTime,
		Venue:            u.Venue,
		Mode:             u.Mode,
		Eligibility:      u.Eligibility,
		Fee:              u.Fee,
		RegistrationLink: u.RegistrationLink,
		Organizers:       u.Organizers,
		Contacts:         u.Contacts,
	}
}

// CreateEventResponse is the response body for POST /events.
type CreateEventResponse struct {
	ID string `json:"id"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List upcoming events
// @Description Returns all events that have not yet ended, filtered by optional department (exact match on the publisher's department), type (exact match), and name (case-insensitive substring of the title). Ordered by date, start time, then creation time.
// @Tags events
// @Produce json
// @Param dept query string false "Publisher department (exact match)"
// @Param type query string false "Event type (exact match)"
// @Param name query string false "Title substring (case-insensitive)"
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 500 {object} helpers.APIResponse "error.code: UNEXPECTED_ERROR"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ListFilter{
		Department: q.Get("dept"),
		EventType:  q.Get("type"),
		Name:       q.Get("name"),
	}
	items, err := c.Service.ListUpcoming(r.Context(), filter)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeUnexpected, "Failed to get events")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, items)
}

// GetByID godoc
// @Summary Get an event by ID
// @Description Returns the full event detail, including venue, mode, eligibility, fee, registration link, organizers, and contacts. Times are in 12-hour display form.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event detail"
// @Failure 400 {object} helpers.APIResponse "error.code: INVALID_INPUT"
// @Failure 404 {object} helpers.APIResponse "error.code: NOT_FOUND"
// @Failure 500 {object} helpers.APIResponse "error.code: UNEXPECTED_ERROR"
// @Router /events/{eventID} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !h.ValidUUID(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeInvalidInput, "invalid event id")
		return
	}
	detail, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeUnexpected, "Failed to get event")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, detail)
}

// readImage extracts the optional "image" multipart file. A missing file is
// not an error.
func readImage(r *http.Request) (*domain.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &domain.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// Create godoc
// @Summary Create an event
// @Description Create an event from a multipart form: a "data" field holding the event JSON and an optional "image" file. The authenticated publisher becomes the owner. The image is uploaded before the row is written; an upload failure aborts the create.
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param data formData string true "Event JSON"
// @Param image formData file false "Event image"
// @Success 201 {object} helpers.APIResponse "data contains the new event id"
// @Failure 400 {object} helpers.APIResponse "error.code: INVALID_INPUT"
// @Failure 401 {object} helpers.APIResponse "error.code: UNAUTHORIZED"
// @Failure 500 {object} helpers.APIResponse "error.code: UNEXPECTED_ERROR"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeInvalidInput, "invalid multipart form")
		return
	}
	var req CreateEventRequest
	if !h.UnmarshalAndValidate(w, r.FormValue("data"), &req) {
		return
	}
	image, err := readImage(r)
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeInvalidInput, "invalid image upload")
		return
	}

	id, err := c.Service.Create(r.Context(), claims.Username, domain.CreateEventInput{
		Title:            req.Title,
		Description:      req.Description,
		EventType:        req.EventType,
		Date:             req.Date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Venue:            req.Venue,
		Mode:             req.Mode,
		Eligibility:      req.Eligibility,
		Fee:              req.Fee,
		RegistrationLink: req.RegistrationLink,
		Organizers:       req.Organizers,
		Contacts:         req.Contacts,
		Image:            image,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeUserNotFound, "publisher not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeUnexpected, "Failed to create event")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{ID: id})
}

// Update godoc
// @Summary Update an event
// @Description Partially update an owned event from a multipart form: a "data" field holding a partial event JSON and an optional replacement "image" file. Present fields overwrite, including explicit clears. An empty update with no image fails.
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param data formData string false "Partial event JSON"
// @Param image formData file false "Replacement image"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: INVALID_INPUT"
// @Failure 403 {object} helpers.APIResponse "error.code: FORBIDDEN"
// @Failure 404 {object} helpers.APIResponse "error.code: NOT_FOUND"
// @Failure 500 {object} helpers.APIResponse "error.code: UNEXPECTED_ERROR"
// @Router /events/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !h.ValidUUID(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeInvalidInput, "invalid event id")
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeInvalidInput, "invalid multipart form")
		return
	}
	var req UpdateEventRequest
	if data := r.FormValue("data"); data != "" {
		if !h.UnmarshalAndValidate(w, data, &req) {
			return
		}
	}
	image, err := readImage(r)
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeInvalidInput, "invalid image upload")
		return
	}

	if err := c.Service.Update(r.Context(), eventID, claims.UserID, req.toDomain(), image); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoUpdateFields):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeInvalidInput, "No data to update")
		case errors.Is(err, domain.ErrForbidden):
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "not the event owner")
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeUnexpected, "Failed to update event")
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nil)
}

// Delete godoc
// @Summary Delete an event
// @Description Delete an owned event. The stored image, if any, is deleted best-effort first; its failure never blocks the row delete.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: INVALID_INPUT"
// @Failure 403 {object} helpers.APIResponse "error.code: FORBIDDEN"
// @Failure 404 {object} helpers.APIResponse "error.code: NOT_FOUND"
// @Failure 500 {object} helpers.APIResponse "error.code: UNEXPECTED_ERROR"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !h.ValidUUID(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeInvalidInput, "invalid event id")
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), eventID, claims.UserID); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "not the event owner")
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeUnexpected, "Failed to delete event")
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nil)
}
