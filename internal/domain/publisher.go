package domain

import (
	"context"
	"time"
)

// Publisher is an identity record for an event-publishing account. Created at
// registration, read for login and ownership joins, never updated here.
type Publisher struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"user_role"`
	Department   string    `json:"department"`
	FullName     string    `json:"fullname"`
	MailID       string    `json:"mailid"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns the public-safe subset of fields (no password hash).
func (p *Publisher) Public() *Publisher {
	out := *p
	out.PasswordHash = ""
	return &out
}

// PublisherRepository defines the interface for publisher storage.
type PublisherRepository interface {
	Create(ctx context.Context, p *Publisher) error
	GetByUsername(ctx context.Context, username string) (*Publisher, error)
	GetByID(ctx context.Context, id string) (*Publisher, error)
}

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Username   string
	Password   string
	Role       string
	Department string
	FullName   string
	MailID     string
}

// AuthService defines login and registration.
type AuthService interface {
	// Login returns a signed session token and the publisher's role tag.
	// Returns ErrUserNotFound if the username does not exist and
	// ErrWrongPassword if the hash does not match.
	Login(ctx context.Context, username, password string) (token, role string, err error)
	// Register returns the created record with public-safe fields only.
	Register(ctx context.Context, in RegisterInput) (*Publisher, error)
}

// PublisherProfile is a publisher's own record plus past/upcoming event
// summaries, split by comparing each event's start instant to now.
type PublisherProfile struct {
	Publisher *Publisher      `json:"publisher"`
	Upcoming  []*EventSummary `json:"upcoming"`
	Past      []*EventSummary `json:"past"`
}

// ProfileService defines the publisher profile view.
type ProfileService interface {
	Profile(ctx context.Context, publisherID string) (*PublisherProfile, error)
}

// TokenClaims is the identity encoded in a session token.
type TokenClaims struct {
	UserID   string
	Username string
	Role     string
}

// TokenIssuer issues signed session tokens.
type TokenIssuer interface {
	Issue(userID, username, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the claims it encodes.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// PasswordHasher handles password hashing and verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
