package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// CreateNotificationRequest is the request body for POST /notifications.
// The route is admin-only; UserID names the recipient, not the caller.
type CreateNotificationRequest struct {
	UserID  string         `json:"user_id"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Type    string         `json:"type"`
	EventID string         `json:"event_id"`
	Data    map[string]any `json:"data"`
}

// Validate implements Validator.
func (c CreateNotificationRequest) Validate() []string {
	var errs []string
	if c.UserID == "" {
		errs = append(errs, "user_id is required")
	}
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.Message == "" {
		errs = append(errs, "message is required")
	}
	if !domain.ValidNotificationType(c.Type) {
		errs = append(errs, "type must be one of event_reminder, event_update, system, other")
	}
	return errs
}

// NotificationListResponse is the response body for GET /notifications.
type NotificationListResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
	Pagination    h.PaginationMeta       `json:"pagination"`
}

// MarkAllReadResponse is the response body for PATCH /notifications/read-all.
type MarkAllReadResponse struct {
	Modified int64 `json:"modified"`
}

type NotificationController struct {
	Logger  *slog.Logger
	Service domain.NotificationService
}

func NewNotificationController(logger *slog.Logger, svc domain.NotificationService) *NotificationController {
	return &NotificationController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List my notifications
// @Description Returns the authenticated user's notifications newest first, paginated, with a total count.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} helpers.APIResponse "data contains notifications and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: UNAUTHORIZED"
// @Failure 500 {object} helpers.APIResponse "error.code: UNEXPECTED_ERROR"
// @Router /notifications [get]
func (c *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := h.ParsePagination(r)
	items, total, err := c.Service.List(r.Context(), claims.UserID, params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeUnexpected, "Failed to get notifications")
		return
	}
	if items == nil {
		items = []*domain.Notification{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, NotificationListResponse{
		Notifications: items,
		Pagination:    h.NewPaginationMeta(params, total),
	})
}

// MarkRead godoc
// @Summary Mark a notification read
// @Description Marks one of the authenticated user's notifications as read. Another user's notification behaves as not found.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param notificationID path string true "Notification ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: INVALID_INPUT"
// @Failure 401 {object} helpers.APIResponse "error.code: UNAUTHORIZED"
// @Failure 404 {object} helpers.APIResponse "error.code: NOT_FOUND"
// @Failure 500 {object} helpers.APIResponse "error.code: UNEXPECTED_ERROR"
// @Router /notifications/{notificationID}/read [patch]
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	id := r.PathValue("notificationID")
	if err := c.Service.MarkRead(r.Context(), id, claims.UserID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeInvalidInput, "invalid notification id")
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "notification not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeUnexpected, "Failed to mark notification read")
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nil)
}

// MarkAllRead godoc
// @Summary Mark all my notifications read
// @Description Marks every unread notification of the authenticated user as read and returns how many were modified.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the modified count"
// @Failure 401 {object} helpers.APIResponse "error.code: UNAUTHORIZED"
// @Failure 500 {object} helpers.APIResponse "error.code: UNEXPECTED_ERROR"
// @Router /notifications/read-all [patch]
func (c *NotificationController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	modified, err := c.Service.MarkAllRead(r.Context(), claims.UserID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeUnexpected, "Failed to mark notifications read")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, MarkAllReadResponse{Modified: modified})
}

// Delete godoc
// @Summary Delete a notification
// @Description Deletes one of the authenticated user's notifications. Another user's notification behaves as not found.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param notificationID path string true "Notification ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: INVALID_INPUT"
// @Failure 401 {object} helpers.APIResponse "error.code: UNAUTHORIZED"
// @Failure 404 {object} helpers.APIResponse "error.code: NOT_FOUND"
// @Failure 500 {object} helpers.APIResponse "error.code: UNEXPECTED_ERROR"
// @Router /notifications/{notificationID} [delete]
func (c *NotificationController) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	id := r.PathValue("notificationID")
	if err := c.Service.Delete(r.Context(), id, claims.UserID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeInvalidInput, "invalid notification id")
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "notification not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeUnexpected, "Failed to delete notification")
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nil)
}

// Create godoc
// @Summary Create a notification (admin)
// @Description Creates a notification for the named recipient. Admin-only.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateNotificationRequest true "Notification"
// @Success 201 {object} helpers.APIResponse "data contains the created notification"
// @Failure 400 {object} helpers.APIResponse "error.code: INVALID_INPUT"
// @Failure 401 {object} helpers.APIResponse "error.code: UNAUTHORIZED"
// @Failure 403 {object} helpers.APIResponse "error.code: FORBIDDEN"
// @Failure 500 {object} helpers.APIResponse "error.code: UNEXPECTED_ERROR"
// @Router /notifications [post]
func (c *NotificationController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNotificationRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	n := &domain.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		EventID: req.EventID,
		Data:    req.Data,
	}
	if err := c.Service.Create(r.Context(), n); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeInvalidInput, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeUnexpected, "Failed to create notification")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, n)
}
