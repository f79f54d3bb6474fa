package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"campusevents/internal/domain"
)

func TestNotificationDoc_ToDomain(t *testing.T) {
	oid := bson.NewObjectID()
	created := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	doc := &notificationDoc{
		ID:        oid,
		UserID:    "pub-1",
		Title:     "Heads up",
		Message:   "Venue changed",
		Type:      domain.NotificationTypeEventUpdate,
		IsRead:    true,
		EventID:   "ev-1",
		Data:      map[string]any{"venue": "Auditorium"},
		CreatedAt: created,
		UpdatedAt: created,
	}

	n := doc.toDomain()
	assert.Equal(t, oid.Hex(), n.ID)
	assert.Equal(t, "pub-1", n.UserID)
	assert.Equal(t, domain.NotificationTypeEventUpdate, n.Type)
	assert.True(t, n.IsRead)
	assert.Equal(t, "ev-1", n.EventID)
	assert.Equal(t, "Auditorium", n.Data["venue"])
	assert.Equal(t, created, n.CreatedAt)
}

// Malformed ids are rejected before any query runs, so a nil collection is
// never touched.
func TestNotificationRepository_InvalidID(t *testing.T) {
	ctx := context.Background()
	repo := &notificationRepository{}

	require.ErrorIs(t, repo.MarkRead(ctx, "not-hex", "pub-1"), domain.ErrInvalidInput)
	require.ErrorIs(t, repo.Delete(ctx, "not-hex", "pub-1"), domain.ErrInvalidInput)
}
