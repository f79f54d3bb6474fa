package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// testLogger is a no-op logger so tests don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testEventID = "2b1f0a4e-9d3c-4c5a-8f6e-1a2b3c4d5e6f"

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	listResult []*domain.EventListItem
	listErr    error
	lastFilter domain.ListFilter

	detail    *domain.EventDetail
	getErr    error
	lastGetID string

	createID       string
	createErr      error
	lastCreator    string
	lastCreateIn   domain.CreateEventInput
	createCalled   bool
	updateErr      error
	lastUpdate     domain.EventUpdate
	lastUpdateID   string
	lastUpdateUser string
	lastImage      *domain.ImageUpload
	updateCalled   bool
	deleteErr      error
	lastDeleteID   string
	deleteCalled   bool
}

func (f *fakeEventService) ListUpcoming(ctx context.Context, filter domain.ListFilter) ([]*domain.EventListItem, error) {
	f.lastFilter = filter
	return f.listResult, f.listErr
}

func (f *fakeEventService) GetByID(ctx context.Context, id string) (*domain.EventDetail, error) {
	f.lastGetID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.detail, nil
}

func (f *fakeEventService) Create(ctx context.Context, username string, in domain.CreateEventInput) (string, error) {
	f.createCalled = true
	f.lastCreator = username
	f.lastCreateIn = in
	return f.createID, f.createErr
}

func (f *fakeEventService) Update(ctx context.Context, id, ownerID string, upd domain.EventUpdate, image *domain.ImageUpload) error {
	f.updateCalled = true
	f.lastUpdateID = id
	f.lastUpdateUser = ownerID
	f.lastUpdate = upd
	f.lastImage = image
	return f.updateErr
}

func (f *fakeEventService) Delete(ctx context.Context, id, ownerID string) error {
	f.deleteCalled = true
	f.lastDeleteID = id
	return f.deleteErr
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func withClaims(req *http.Request, claims *domain.TokenClaims) *http.Request {
	return req.WithContext(middleware.SetClaims(req.Context(), claims))
}

// multipartBody builds a multipart form with an optional data field and an
// optional image file.
func multipartBody(t *testing.T, data string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != "" {
		require.NoError(t, mw.WriteField("data", data))
	}
	if withImage {
		fw, err := mw.CreateFormFile("image", "poster.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func validCreateJSON() string {
	return `{
		"title": "Tech Talk",
		"description": "An evening talk",
		"type": "talk",
		"date": "2026-09-10",
		"startTime": "18:00:00",
		"endTime": "20:00:00",
		"venue": "Auditorium",
		"mode": "offline",
		"eligibility": "All students",
		"fee": "Free",
		"organizers": [{"organization": "CS Dept", "name": "Club"}],
		"contacts": [{"name": "Asha", "role": "Lead", "phone": "12345"}]
	}`
}

func TestEventController_List(t *testing.T) {
	svc := &fakeEventService{listResult: []*domain.EventListItem{{ID: testEventID, Title: "Tech Talk"}}}
	ctrl := NewEventController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/events?dept=CSE&type=talk&name=tech", nil)
	rec := httptest.NewRecorder()
	ctrl.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, domain.ListFilter{Department: "CSE", EventType: "talk", Name: "tech"}, svc.lastFilter)
}

func TestEventController_List_ServiceError(t *testing.T) {
	svc := &fakeEventService{listErr: assert.AnError}
	ctrl := NewEventController(testLogger, svc)

	rec := httptest.NewRecorder()
	ctrl.List(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to get events", resp.Error.Message)
}

func TestEventController_GetByID(t *testing.T) {
	t.Run("invalid id rejected before the service", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc)

		req := httptest.NewRequest(http.MethodGet, "/events/not-a-uuid", nil)
		req.SetPathValue("eventID", "not-a-uuid")
		rec := httptest.NewRecorder()
		ctrl.GetByID(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, helpers.ErrCodeInvalidInput, resp.Error.Code)
		assert.Empty(t, svc.lastGetID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEventService{getErr: domain.ErrNotFound}
		ctrl := NewEventController(testLogger, svc)

		req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID, nil)
		req.SetPathValue("eventID", testEventID)
		rec := httptest.NewRecorder()
		ctrl.GetByID(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("found", func(t *testing.T) {
		svc := &fakeEventService{detail: &domain.EventDetail{ID: testEventID, Title: "Tech Talk"}}
		ctrl := NewEventController(testLogger, svc)

		req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID, nil)
		req.SetPathValue("eventID", testEventID)
		rec := httptest.NewRecorder()
		ctrl.GetByID(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
		assert.Equal(t, testEventID, svc.lastGetID)
	})
}

func TestEventController_Create(t *testing.T) {
	claims := &domain.TokenClaims{UserID: "pub-1", Username: "csea", Role: "publisher"}

	t.Run("without claims unauthorized", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{})
		body, contentType := multipartBody(t, validCreateJSON(), false)
		req := httptest.NewRequest(http.MethodPost, "/events", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		ctrl.Create(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid form with image", func(t *testing.T) {
		svc := &fakeEventService{createID: testEventID}
		ctrl := NewEventController(testLogger, svc)

		body, contentType := multipartBody(t, validCreateJSON(), true)
		req := withClaims(httptest.NewRequest(http.MethodPost, "/events", body), claims)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		ctrl.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "csea", svc.lastCreator)
		assert.Equal(t, "Tech Talk", svc.lastCreateIn.Title)
		require.NotNil(t, svc.lastCreateIn.Image)
		assert.Equal(t, "poster.png", svc.lastCreateIn.Image.Filename)
		assert.Equal(t, []byte("png-bytes"), svc.lastCreateIn.Image.Body)
	})

	t.Run("missing required fields rejected", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc)

		body, contentType := multipartBody(t, `{"title": "only a title"}`, false)
		req := withClaims(httptest.NewRequest(http.MethodPost, "/events", body), claims)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		ctrl.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, svc.createCalled)
	})

	t.Run("bad date format rejected", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc)

		data := `{
			"title": "T", "description": "d", "type": "talk",
			"date": "10-09-2026", "startTime": "18:00:00", "endTime": "20:00:00",
			"venue": "v", "mode": "offline", "eligibility": "all", "fee": "Free",
			"organizers": [{"organization": "o", "name": "n"}],
			"contacts": [{"name": "n", "role": "r", "phone": "p"}]
		}`
		body, contentType := multipartBody(t, data, false)
		req := withClaims(httptest.NewRequest(http.MethodPost, "/events", body), claims)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		ctrl.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, svc.createCalled)
	})
}

func TestEventController_Update(t *testing.T) {
	claims := &domain.TokenClaims{UserID: "pub-1", Username: "csea", Role: "publisher"}

	newUpdateRequest := func(t *testing.T, data string, withImage bool) *http.Request {
		body, contentType := multipartBody(t, data, withImage)
		req := withClaims(httptest.NewRequest(http.MethodPut, "/events/"+testEventID, body), claims)
		req.Header.Set("Content-Type", contentType)
		req.SetPathValue("eventID", testEventID)
		return req
	}

	t.Run("partial update", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc)

		rec := httptest.NewRecorder()
		ctrl.Update(rec, newUpdateRequest(t, `{"title": "Renamed"}`, false))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testEventID, svc.lastUpdateID)
		assert.Equal(t, "pub-1", svc.lastUpdateUser)
		require.NotNil(t, svc.lastUpdate.Title)
		assert.Equal(t, "Renamed", *svc.lastUpdate.Title)
		assert.Nil(t, svc.lastUpdate.Description)
	})

	t.Run("no data maps to 400", func(t *testing.T) {
		svc := &fakeEventService{updateErr: domain.ErrNoUpdateFields}
		ctrl := NewEventController(testLogger, svc)

		rec := httptest.NewRecorder()
		ctrl.Update(rec, newUpdateRequest(t, "", false))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "No data to update", resp.Error.Message)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc := &fakeEventService{updateErr: domain.ErrForbidden}
		ctrl := NewEventController(testLogger, svc)

		rec := httptest.NewRecorder()
		ctrl.Update(rec, newUpdateRequest(t, `{"title": "x"}`, false))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("image only", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc)

		rec := httptest.NewRecorder()
		ctrl.Update(rec, newUpdateRequest(t, "", true))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.lastImage)
		assert.Equal(t, "poster.png", svc.lastImage.Filename)
	})

	t.Run("invalid id rejected before the service", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc)

		req := withClaims(httptest.NewRequest(http.MethodPut, "/events/nope", nil), claims)
		req.SetPathValue("eventID", "nope")
		rec := httptest.NewRecorder()
		ctrl.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, svc.updateCalled)
	})
}

func TestEventController_Delete(t *testing.T) {
	claims := &domain.TokenClaims{UserID: "pub-1", Username: "csea", Role: "publisher"}

	tests := []struct {
		name       string
		deleteErr  error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusOK},
		{name: "forbidden", deleteErr: domain.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "not found", deleteErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeEventService{deleteErr: tc.deleteErr}
			ctrl := NewEventController(testLogger, svc)

			req := withClaims(httptest.NewRequest(http.MethodDelete, "/events/"+testEventID, nil), claims)
			req.SetPathValue("eventID", testEventID)
			rec := httptest.NewRecorder()
			ctrl.Delete(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, testEventID, svc.lastDeleteID)
		})
	}
}
