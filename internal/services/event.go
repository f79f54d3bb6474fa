package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusevents/internal/domain"
)

// Civil date/time layouts. Events store calendar dates and wall-clock times
// as separate timezone-naive fields; all comparisons interpret them in the
// service's fixed civil timezone.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// civilDateTime interprets a stored (date, clock) pair as a civil datetime in loc.
func civilDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+clock, loc)
}

// displayTime reformats a stored HH:MM:SS clock to 12-hour display form.
// Malformed values are returned unchanged.
func displayTime(clock string) string {
	t, err := time.Parse(timeLayout, clock)
	if err != nil {
		return clock
	}
	return t.Format("3:04 PM")
}

func imageObjectKey(filename string) string {
	return "events/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}

type eventService struct {
	eventRepo      domain.EventRepository
	publisherRepo  domain.PublisherRepository
	store          domain.ObjectStore
	signer         domain.URLSigner
	loc            *time.Location
	contextTimeout time.Duration
	logger         *slog.Logger
	now            func() time.Time
}

func NewEventService(eventRepo domain.EventRepository,
	publisherRepo domain.PublisherRepository,
	store domain.ObjectStore,
	signer domain.URLSigner,
	loc *time.Location,
	timeout time.Duration,
	logger *slog.Logger,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		publisherRepo:  publisherRepo,
		store:          store,
		signer:         signer,
		loc:            loc,
		contextTimeout: timeout,
		logger:         logger,
		now:            time.Now,
	}
}

// ListUpcoming is the shared listing query behind both the public and
// publisher-facing event lists. The store applies the type, name, department,
// and date lower-bound predicates and the (date, start_time, created_at)
// ascending sort; the end-instant cutoff is evaluated here because it depends
// on interpreting the stored civil fields in the fixed timezone.
func (s *eventService) ListUpcoming(ctx context.Context, filter domain.ListFilter) ([]*domain.EventListItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now().In(s.loc)
	events, err := s.eventRepo.List(ctx, domain.EventFilter{
		Department:   filter.Department,
		EventType:    filter.EventType,
		NameContains: filter.Name,
		DateFrom:     now.Format(dateLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	items := make([]*domain.EventListItem, 0, len(events))
	for _, e := range events {
		end, err := civilDateTime(e.Date, e.EndTime, s.loc)
		if err != nil {
			// Malformed temporal fields never count as upcoming.
			continue
		}
		if !end.After(now) {
			continue
		}
		item := &domain.EventListItem{
			ID:         e.ID,
			Title:      e.Title,
			EventType:  e.EventType,
			Date:       e.Date,
			StartTime:  e.StartTime,
			EndTime:    e.EndTime,
			Venue:      e.Venue,
			Department: e.Department,
		}
		if e.ImageKey != "" {
			url, err := s.signer.SignedURL(e.ImageKey)
			if err != nil {
				return nil, fmt.Errorf("sign image url: %w", err)
			}
			item.Image = url
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.EventDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	detail := &domain.EventDetail{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		EventType:        e.EventType,
		Date:             e.Date,
		StartTime:        displayTime(e.StartTime),
		EndTime:          displayTime(e.EndTime),
		Venue:            e.Venue,
		Mode:             e.Mode,
		Eligibility:      e.Eligibility,
		Fee:              e.Fee,
		RegistrationLink: e.RegistrationLink,
		Organizers:       e.Organizers,
		Contacts:         e.Contacts,
		Department:       e.Department,
		CreatedAt:        e.CreatedAt,
	}
	if e.ImageKey != "" {
		url, err := s.signer.SignedURL(e.ImageKey)
		if err != nil {
			return nil, fmt.Errorf("sign image url: %w", err)
		}
		detail.Image = url
	}
	return detail, nil
}

// Create uploads the image first when present, then inserts the row. An
// upload failure aborts the create; an insert failure after a successful
// upload triggers a compensating delete of the uploaded object.
func (s *eventService) Create(ctx context.Context, username string, in domain.CreateEventInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	publisher, err := s.publisherRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("get publisher: %w", err)
	}

	e := &domain.Event{
		OwnerID:          publisher.ID,
		Title:            in.Title,
		Description:      in.Description,
		EventType:        in.EventType,
		Date:             in.Date,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		Venue:            in.Venue,
		Mode:             in.Mode,
		Eligibility:      in.Eligibility,
		Fee:              in.Fee,
		RegistrationLink: in.RegistrationLink,
		Organizers:       in.Organizers,
		Contacts:         in.Contacts,
	}

	if in.Image != nil {
		key := imageObjectKey(in.Image.Filename)
		if err := s.store.Upload(ctx, key, in.Image.ContentType, bytes.NewReader(in.Image.Body)); err != nil {
			return "", fmt.Errorf("upload image: %w", err)
		}
		e.ImageKey = key
	}

	if err := s.eventRepo.Create(ctx, e); err != nil {
		if e.ImageKey != "" {
			if derr := s.store.Delete(ctx, e.ImageKey); derr != nil {
				s.logger.Warn("orphaned image object left after failed insert", "key", e.ImageKey, "err", derr)
			}
		}
		return "", fmt.Errorf("create event: %w", err)
	}
	return e.ID, nil
}

// Update applies a partial field set. A field is applied iff present in the
// request; present-but-empty clears. An empty update with no image fails with
// ErrNoUpdateFields. A new image replaces the old object (old delete is
// best-effort, logged and swallowed); a row-update failure after the new
// upload compensates by deleting the new object.
func (s *eventService) Update(ctx context.Context, id, ownerID string, upd domain.EventUpdate, image *domain.ImageUpload) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	if upd.Empty() && image == nil {
		return domain.ErrNoUpdateFields
	}

	uploadedKey := ""
	if image != nil {
		if event.ImageKey != "" {
			if derr := s.store.Delete(ctx, event.ImageKey); derr != nil {
				s.logger.Warn("failed to delete replaced image object", "key", event.ImageKey, "err", derr)
			}
		}
		key := imageObjectKey(image.Filename)
		if err := s.store.Upload(ctx, key, image.ContentType, bytes.NewReader(image.Body)); err != nil {
			return fmt.Errorf("upload image: %w", err)
		}
		uploadedKey = key
		upd.ImageKey = &key
	}

	if err := s.eventRepo.Update(ctx, id, upd); err != nil {
		if uploadedKey != "" {
			if derr := s.store.Delete(ctx, uploadedKey); derr != nil {
				s.logger.Warn("orphaned image object left after failed update", "key", uploadedKey, "err", derr)
			}
		}
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes the stored image best-effort, then deletes the row. The
// outcome is reported solely from the row delete.
func (s *eventService) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get event: %w", err)
	}
	if err == nil {
		if event.OwnerID != ownerID {
			return domain.ErrForbidden
		}
		if event.ImageKey != "" {
			if derr := s.store.Delete(ctx, event.ImageKey); derr != nil {
				s.logger.Warn("failed to delete image object", "key", event.ImageKey, "err", derr)
			}
		}
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
