package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

type profileService struct {
	publisherRepo  domain.PublisherRepository
	eventRepo      domain.EventRepository
	signer         domain.URLSigner
	loc            *time.Location
	contextTimeout time.Duration
	now            func() time.Time
}

func NewProfileService(publisherRepo domain.PublisherRepository,
	eventRepo domain.EventRepository,
	signer domain.URLSigner,
	loc *time.Location,
	timeout time.Duration,
) domain.ProfileService {
	return &profileService{
		publisherRepo:  publisherRepo,
		eventRepo:      eventRepo,
		signer:         signer,
		loc:            loc,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// Profile returns the publisher's own record plus past/upcoming summaries of
// its events, split by comparing each event's start instant to now in the
// same fixed civil timezone the listing uses.
func (s *profileService) Profile(ctx context.Context, publisherID string) (*domain.PublisherProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	publisher, err := s.publisherRepo.GetByID(ctx, publisherID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get publisher: %w", err)
	}

	events, err := s.eventRepo.ListByOwnerID(ctx, publisherID)
	if err != nil {
		return nil, fmt.Errorf("list events by owner: %w", err)
	}

	now := s.now().In(s.loc)
	profile := &domain.PublisherProfile{
		Publisher: publisher.Public(),
		Upcoming:  []*domain.EventSummary{},
		Past:      []*domain.EventSummary{},
	}
	for _, e := range events {
		start, err := civilDateTime(e.Date, e.StartTime, s.loc)
		if err != nil {
			// Unplaceable on the timeline; same exclusion rule as listing.
			continue
		}
		summary := &domain.EventSummary{
			ID:        e.ID,
			Title:     e.Title,
			Date:      e.Date,
			StartTime: e.StartTime,
			Venue:     e.Venue,
		}
		if e.ImageKey != "" {
			url, err := s.signer.SignedURL(e.ImageKey)
			if err != nil {
				return nil, fmt.Errorf("sign image url: %w", err)
			}
			summary.Image = url
		}
		if start.After(now) {
			profile.Upcoming = append(profile.Upcoming, summary)
		} else {
			profile.Past = append(profile.Past, summary)
		}
	}
	return profile, nil
}
