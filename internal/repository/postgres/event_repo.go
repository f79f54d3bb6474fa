package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"campusevents/internal/domain"
)

const eventColumns = `e.id, e.owner_id, e.title, e.description, e.event_type,
		e.date::text, e.start_time::text, e.end_time::text,
		e.venue, e.mode, e.eligibility, e.fee, e.registration_link,
		e.organizers, e.contacts, e.image_key, e.created_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	organizers, err := json.Marshal(e.Organizers)
	if err != nil {
		return fmt.Errorf("marshal organizers: %w", err)
	}
	contacts, err := json.Marshal(e.Contacts)
	if err != nil {
		return fmt.Errorf("marshal contacts: %w", err)
	}
	var imageKey sql.NullString
	if e.ImageKey != "" {
		imageKey = sql.NullString{String: e.ImageKey, Valid: true}
	}
	query := `
		INSERT INTO events (owner_id, title, description, event_type, date, start_time, end_time,
			venue, mode, eligibility, fee, registration_link, organizers, contacts, image_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		e.OwnerID, e.Title, e.Description, e.EventType, e.Date, e.StartTime, e.EndTime,
		e.Venue, e.Mode, e.Eligibility, e.Fee, e.RegistrationLink, organizers, contacts, imageKey,
	).Scan(&e.ID, &e.CreatedAt)
}

// scanEvent scans one joined row (event columns plus publisher department)
// into a domain.Event.
func scanEvent(s interface{ Scan(...any) error }, withDepartment bool) (*domain.Event, error) {
	e := &domain.Event{}
	var organizers, contacts []byte
	var imageKey sql.NullString
	dest := []any{
		&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.EventType,
		&e.Date, &e.StartTime, &e.EndTime,
		&e.Venue, &e.Mode, &e.Eligibility, &e.Fee, &e.RegistrationLink,
		&organizers, &contacts, &imageKey, &e.CreatedAt,
	}
	if withDepartment {
		dest = append(dest, &e.Department)
	}
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	if len(organizers) > 0 {
		if err := json.Unmarshal(organizers, &e.Organizers); err != nil {
			return nil, fmt.Errorf("unmarshal organizers: %w", err)
		}
	}
	if len(contacts) > 0 {
		if err := json.Unmarshal(contacts, &e.Contacts); err != nil {
			return nil, fmt.Errorf("unmarshal contacts: %w", err)
		}
	}
	if imageKey.Valid {
		e.ImageKey = imageKey.String
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `, p.department
		FROM events e
		JOIN publishers p ON p.id = e.owner_id
		WHERE e.id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns events matching the filter, ordered by
// (date asc, start_time asc, created_at asc). The department predicate is
// evaluated in the join, not in memory.
func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	conditions := []string{}
	args := []any{}
	n := 1
	if filter.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("e.date >= $%d", n))
		args = append(args, filter.DateFrom)
		n++
	}
	if filter.EventType != "" {
		conditions = append(conditions, fmt.Sprintf("e.event_type = $%d", n))
		args = append(args, filter.EventType)
		n++
	}
	if filter.NameContains != "" {
		conditions = append(conditions, fmt.Sprintf("e.title ILIKE '%%' || $%d || '%%'", n))
		args = append(args, filter.NameContains)
		n++
	}
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("p.department = $%d", n))
		args = append(args, filter.Department)
		n++
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	query := fmt.Sprintf(`
		SELECT `+eventColumns+`, p.department
		FROM events e
		JOIN publishers p ON p.id = e.owner_id
		%s
		ORDER BY e.date ASC, e.start_time ASC, e.created_at ASC
	`, where)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows, true)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		WHERE e.owner_id = $1
		ORDER BY e.date ASC, e.start_time ASC, e.created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows, false)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) error {
	setClauses := []string{}
	args := []any{}
	n := 1
	addString := func(column string, v *string) {
		if v == nil {
			return
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, *v)
		n++
	}
	addString("title", upd.Title)
	addString("description", upd.Description)
	addString("event_type", upd.EventType)
	addString("date", upd.Date)
	addString("start_time", upd.StartTime)
	addString("end_time", upd.EndTime)
	addString("venue", upd.Venue)
	addString("mode", upd.Mode)
	addString("eligibility", upd.Eligibility)
	addString("fee", upd.Fee)
	addString("registration_link", upd.RegistrationLink)
	if upd.Organizers != nil {
		organizers, err := json.Marshal(*upd.Organizers)
		if err != nil {
			return fmt.Errorf("marshal organizers: %w", err)
		}
		setClauses = append(setClauses, fmt.Sprintf("organizers = $%d", n))
		args = append(args, organizers)
		n++
	}
	if upd.Contacts != nil {
		contacts, err := json.Marshal(*upd.Contacts)
		if err != nil {
			return fmt.Errorf("marshal contacts: %w", err)
		}
		setClauses = append(setClauses, fmt.Sprintf("contacts = $%d", n))
		args = append(args, contacts)
		n++
	}
	if upd.ImageKey != nil {
		// Present-but-empty clears the stored reference.
		var imageKey sql.NullString
		if *upd.ImageKey != "" {
			imageKey = sql.NullString{String: *upd.ImageKey, Valid: true}
		}
		setClauses = append(setClauses, fmt.Sprintf("image_key = $%d", n))
		args = append(args, imageKey)
		n++
	}
	if len(setClauses) == 0 {
		return domain.ErrNoUpdateFields
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), n)
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
