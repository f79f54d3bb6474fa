package domain

import (
	"context"
	"time"
)

// Organizer is one entry of an event's ordered organizer list.
type Organizer struct {
	Organization string `json:"organization"`
	Name         string `json:"name"`
}

// Contact is one entry of an event's ordered contact list.
type Contact struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
}

// Event is a campus event as stored. Date is a civil calendar date
// (YYYY-MM-DD); StartTime and EndTime are civil times (HH:MM:SS) with no
// timezone attached and no cross-field validation (end may precede start).
// Fee is free-form text and never empty-by-null; it may be non-numeric.
type Event struct {
	ID               string      `json:"id"`
	OwnerID          string      `json:"owner_id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	EventType        string      `json:"event_type"`
	Date             string      `json:"date"`
	StartTime        string      `json:"start_time"`
	EndTime          string      `json:"end_time"`
	Venue            string      `json:"venue"`
	Mode             string      `json:"mode"`
	Eligibility      string      `json:"eligibility"`
	Fee              string      `json:"fee"`
	RegistrationLink string      `json:"registration_link"`
	Organizers       []Organizer `json:"organizers"`
	Contacts         []Contact   `json:"contacts"`
	ImageKey         string      `json:"image_key,omitempty"`
	// Department is the owning publisher's department, populated by listing
	// queries that join publishers. Empty on single-row fetches by owner.
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// EventFilter holds the optional listing predicates. EventType is matched by
// exact equality, NameContains by case-insensitive substring against the
// title, Department by exact equality against the joined publisher's
// department. DateFrom ("YYYY-MM-DD") is a lower bound on the event date.
type EventFilter struct {
	Department   string
	EventType    string
	NameContains string
	DateFrom     string
}

// EventUpdate is a partial field set for updates. A nil pointer means the
// field is absent from the request; a pointer to the zero value is an
// explicit clear and is applied.
type EventUpdate struct {
	Title            *string
	Description      *string
	EventType        *string
	Date             *string
	StartTime        *string
	EndTime          *string
	Venue            *string
	Mode             *string
	Eligibility      *string
	Fee              *string
	RegistrationLink *string
	Organizers       *[]Organizer
	Contacts         *[]Contact
	ImageKey         *string
}

// Empty reports whether no field is present.
func (u EventUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.EventType == nil &&
		u.Date == nil && u.StartTime == nil && u.EndTime == nil &&
		u.Venue == nil && u.Mode == nil && u.Eligibility == nil &&
		u.Fee == nil && u.RegistrationLink == nil &&
		u.Organizers == nil && u.Contacts == nil && u.ImageKey == nil
}

// EventRepository defines the interface for event storage.
// List returns rows ordered by (date asc, start_time asc, created_at asc).
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) error
	Delete(ctx context.Context, id string) error
}

// ImageUpload is an image file received with a create or update request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        []byte
}

// EventListItem is the client-facing shape of a listed event. Image is a
// signed, expiring URL when the event has a stored image.
type EventListItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	EventType  string `json:"type"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Venue      string `json:"venue"`
	Department string `json:"department"`
	Image      string `json:"image,omitempty"`
}

// EventDetail is the client-facing detail shape. StartTime and EndTime are
// reformatted to 12-hour display form.
type EventDetail struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	EventType        string      `json:"type"`
	Date             string      `json:"date"`
	StartTime        string      `json:"startTime"`
	EndTime          string      `json:"endTime"`
	Venue            string      `json:"venue"`
	Mode             string      `json:"mode"`
	Eligibility      string      `json:"eligibility"`
	Fee              string      `json:"fee"`
	RegistrationLink string      `json:"registrationLink"`
	Organizers       []Organizer `json:"organizers"`
	Contacts         []Contact   `json:"contacts"`
	Department       string      `json:"department,omitempty"`
	Image            string      `json:"image,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// EventSummary is the compact shape used in profile past/upcoming lists.
type EventSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Venue     string `json:"venue"`
	Image     string `json:"image,omitempty"`
}

// ListFilter holds the optional caller-supplied listing filters.
type ListFilter struct {
	Department string
	EventType  string
	Name       string
}

// CreateEventInput carries a validated create request. All descriptive and
// temporal fields are required by the controller; Image is optional.
type CreateEventInput struct {
	Title            string
	Description      string
	EventType        string
	Date             string
	StartTime        string
	EndTime          string
	Venue            string
	Mode             string
	Eligibility      string
	Fee              string
	RegistrationLink string
	Organizers       []Organizer
	Contacts         []Contact
	Image            *ImageUpload
}

// EventService defines the business logic for event listing and mutation.
type EventService interface {
	// ListUpcoming returns all events whose computed end instant, in the
	// service's fixed civil timezone, is strictly after now, filtered and
	// shaped for the client.
	ListUpcoming(ctx context.Context, filter ListFilter) ([]*EventListItem, error)
	GetByID(ctx context.Context, id string) (*EventDetail, error)
	// Create resolves the acting publisher by username, uploads the image
	// first when present, and returns the new event id.
	Create(ctx context.Context, username string, in CreateEventInput) (string, error)
	Update(ctx context.Context, id, ownerID string, upd EventUpdate, image *ImageUpload) error
	Delete(ctx context.Context, id, ownerID string) error
}
