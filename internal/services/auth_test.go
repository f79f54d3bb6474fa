package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

// fakeHasher treats the hash as "hashed:" + password.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeIssuer struct {
	err error
}

func (f fakeIssuer) Issue(userID, username, role string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + username, nil
}

type sentMail struct {
	to, subject, text string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, htmlBody, textBody string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, text: textBody})
	return nil
}

func newTestAuthService(pubs *fakePublisherRepo, issuer fakeIssuer, mailer *fakeMailer) domain.AuthService {
	return NewAuthService(pubs, fakeHasher{}, issuer, mailer, time.Second, testLogger())
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	seed := func() *fakePublisherRepo {
		pubs := newFakePublisherRepo()
		require.NoError(t, pubs.Create(ctx, &domain.Publisher{
			Username:     "csea",
			PasswordHash: "hashed:secret123",
			Role:         "publisher",
		}))
		return pubs
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc := newTestAuthService(seed(), fakeIssuer{}, &fakeMailer{})
		token, role, err := svc.Login(ctx, "csea", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "token-for-csea", token)
		assert.Equal(t, "publisher", role)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newTestAuthService(newFakePublisherRepo(), fakeIssuer{}, &fakeMailer{})
		_, _, err := svc.Login(ctx, "ghost", "whatever")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newTestAuthService(seed(), fakeIssuer{}, &fakeMailer{})
		_, _, err := svc.Login(ctx, "csea", "nope")
		require.ErrorIs(t, err, domain.ErrWrongPassword)
	})

	t.Run("signing failure", func(t *testing.T) {
		svc := newTestAuthService(seed(), fakeIssuer{err: errors.New("bad key")}, &fakeMailer{})
		_, _, err := svc.Login(ctx, "csea", "secret123")
		require.ErrorIs(t, err, domain.ErrTokenSign)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	input := domain.RegisterInput{
		Username:   "csea",
		Password:   "secret123",
		Role:       "publisher",
		Department: "CSE",
		FullName:   "CSE Association",
		MailID:     "csea@campus.edu",
	}

	t.Run("creates account and sends welcome mail", func(t *testing.T) {
		pubs := newFakePublisherRepo()
		mailer := &fakeMailer{}
		svc := newTestAuthService(pubs, fakeIssuer{}, mailer)

		p, err := svc.Register(ctx, input)
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Empty(t, p.PasswordHash)
		assert.Equal(t, "hashed:secret123", pubs.byUsername["csea"].PasswordHash)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "csea@campus.edu", mailer.sent[0].to)
	})

	t.Run("duplicate username", func(t *testing.T) {
		pubs := newFakePublisherRepo()
		svc := newTestAuthService(pubs, fakeIssuer{}, &fakeMailer{})
		_, err := svc.Register(ctx, input)
		require.NoError(t, err)
		_, err = svc.Register(ctx, input)
		require.ErrorIs(t, err, domain.ErrDuplicateUsername)
	})

	t.Run("mail failure does not fail registration", func(t *testing.T) {
		pubs := newFakePublisherRepo()
		svc := newTestAuthService(pubs, fakeIssuer{}, &fakeMailer{err: errors.New("ses down")})
		p, err := svc.Register(ctx, input)
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
	})
}
