package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"campusevents/internal/domain"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type publisherRepository struct {
	DB *sql.DB
}

func NewPublisherRepository(db *sql.DB) domain.PublisherRepository {
	return &publisherRepository{
		DB: db,
	}
}

func (r *publisherRepository) Create(ctx context.Context, p *domain.Publisher) error {
	query := `
		INSERT INTO publishers (username, password_hash, role, department, fullname, mailid)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.Username, p.PasswordHash, p.Role, p.Department, p.FullName, p.MailID,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *publisherRepository) GetByUsername(ctx context.Context, username string) (*domain.Publisher, error) {
	query := `
		SELECT id, username, password_hash, role, department, fullname, mailid, created_at
		FROM publishers
		WHERE username = $1
	`
	p := &domain.Publisher{}
	err := r.DB.QueryRowContext(ctx, query, username).Scan(
		&p.ID, &p.Username, &p.PasswordHash, &p.Role, &p.Department, &p.FullName, &p.MailID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *publisherRepository) GetByID(ctx context.Context, id string) (*domain.Publisher, error) {
	query := `
		SELECT id, username, password_hash, role, department, fullname, mailid, created_at
		FROM publishers
		WHERE id = $1
	`
	p := &domain.Publisher{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Username, &p.PasswordHash, &p.Role, &p.Department, &p.FullName, &p.MailID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return p, nil
}
