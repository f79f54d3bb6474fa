package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

func TestProfileService_Profile(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, testZone)

	pubs := newFakePublisherRepo()
	require.NoError(t, pubs.Create(ctx, &domain.Publisher{
		Username:     "csea",
		PasswordHash: "hash",
		Department:   "CSE",
	}))

	repo := newFakeEventRepo()
	repo.add(&domain.Event{OwnerID: "pub-1", Title: "started earlier today", Date: "2026-09-01", StartTime: "10:00:00", EndTime: "18:00:00"})
	repo.add(&domain.Event{OwnerID: "pub-1", Title: "later today", Date: "2026-09-01", StartTime: "15:00:00", EndTime: "18:00:00", ImageKey: "events/x.png"})
	repo.add(&domain.Event{OwnerID: "pub-1", Title: "broken date", Date: "soon", StartTime: "10:00:00"})
	repo.add(&domain.Event{OwnerID: "pub-2", Title: "someone else's", Date: "2026-09-02", StartTime: "10:00:00"})

	svc := &profileService{
		publisherRepo:  pubs,
		eventRepo:      repo,
		signer:         &fakeSigner{},
		loc:            testZone,
		contextTimeout: time.Second,
		now:            func() time.Time { return now },
	}

	profile, err := svc.Profile(ctx, "pub-1")
	require.NoError(t, err)
	assert.Equal(t, "csea", profile.Publisher.Username)
	assert.Empty(t, profile.Publisher.PasswordHash)

	require.Len(t, profile.Upcoming, 1)
	assert.Equal(t, "later today", profile.Upcoming[0].Title)
	assert.Equal(t, "https://cdn.test/events/x.png", profile.Upcoming[0].Image)

	require.Len(t, profile.Past, 1)
	assert.Equal(t, "started earlier today", profile.Past[0].Title)
}

func TestProfileService_Profile_UnknownPublisher(t *testing.T) {
	ctx := context.Background()
	svc := &profileService{
		publisherRepo:  newFakePublisherRepo(),
		eventRepo:      newFakeEventRepo(),
		signer:         &fakeSigner{},
		loc:            testZone,
		contextTimeout: time.Second,
		now:            time.Now,
	}
	_, err := svc.Profile(ctx, "pub-404")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestProfileService_Profile_NoEvents(t *testing.T) {
	ctx := context.Background()
	pubs := newFakePublisherRepo()
	require.NoError(t, pubs.Create(ctx, &domain.Publisher{Username: "csea"}))
	svc := &profileService{
		publisherRepo:  pubs,
		eventRepo:      newFakeEventRepo(),
		signer:         &fakeSigner{},
		loc:            testZone,
		contextTimeout: time.Second,
		now:            time.Now,
	}
	profile, err := svc.Profile(ctx, "pub-1")
	require.NoError(t, err)
	assert.NotNil(t, profile.Upcoming)
	assert.NotNil(t, profile.Past)
	assert.Empty(t, profile.Upcoming)
	assert.Empty(t, profile.Past)
}
