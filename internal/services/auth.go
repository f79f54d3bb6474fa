package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusevents/internal/domain"
)

// Session tokens are long-lived; mobile clients stay signed in.
const tokenExpiry = 90 * 24 * time.Hour

type authService struct {
	publisherRepo  domain.PublisherRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	mailer         domain.Mailer
	contextTimeout time.Duration
	logger         *slog.Logger
}

func NewAuthService(publisherRepo domain.PublisherRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	mailer domain.Mailer,
	timeout time.Duration,
	logger *slog.Logger,
) domain.AuthService {
	return &authService{
		publisherRepo:  publisherRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		mailer:         mailer,
		contextTimeout: timeout,
		logger:         logger,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	publisher, err := s.publisherRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", "", domain.ErrUserNotFound
		}
		return "", "", fmt.Errorf("get publisher: %w", err)
	}
	if err := s.hasher.Compare(publisher.PasswordHash, password); err != nil {
		return "", "", domain.ErrWrongPassword
	}
	token, err := s.tokenIssuer.Issue(publisher.ID, publisher.Username, publisher.Role, tokenExpiry)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrTokenSign, err)
	}
	return token, publisher.Role, nil
}

func (s *authService) Register(ctx context.Context, in domain.RegisterInput) (*domain.Publisher, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	publisher := &domain.Publisher{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		Department:   in.Department,
		FullName:     in.FullName,
		MailID:       in.MailID,
	}
	if err := s.publisherRepo.Create(ctx, publisher); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create publisher: %w", err)
	}

	// Welcome mail is housekeeping; a failure never fails registration.
	if s.mailer != nil && publisher.MailID != "" {
		subject := "Welcome to Campus Events"
		text := fmt.Sprintf("Hi %s, your publisher account %q is ready. You can now post events for %s.",
			publisher.FullName, publisher.Username, publisher.Department)
		if err := s.mailer.Send(publisher.MailID, subject, "", text); err != nil {
			s.logger.Warn("failed to send welcome mail", "username", publisher.Username, "err", err)
		}
	}

	return publisher.Public(), nil
}
