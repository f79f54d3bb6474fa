package storage

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/cloudfront/sign"

	"campusevents/internal/domain"
)

// SignerConfig holds configuration for CDN URL signing.
type SignerConfig struct {
	Domain        string // CDN domain, e.g. dxxxx.cloudfront.net
	KeyPairID     string
	PrivateKeyPEM string
	Expiry        time.Duration
}

// NewURLSigner creates a CloudFront URL signer from config. Signed URLs are
// cached for half their lifetime so repeated listings reuse signatures.
// Missing key material yields a passthrough signer that returns plain CDN
// URLs, for local development.
func NewURLSigner(config SignerConfig) (domain.URLSigner, error) {
	if config.Expiry <= 0 {
		config.Expiry = time.Hour
	}
	if config.KeyPairID == "" || config.PrivateKeyPEM == "" {
		log.Printf("[SIGNER] No CDN key configured, using passthrough URL signer")
		return &passthroughSigner{domain: config.Domain}, nil
	}
	privKey, err := sign.LoadPEMPrivKey(strings.NewReader(config.PrivateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("failed to load CDN private key: %w", err)
	}
	return &cloudfrontSigner{
		signer: sign.NewURLSigner(config.KeyPairID, privKey),
		domain: config.Domain,
		expiry: config.Expiry,
		cache:  newTTLCache(config.Expiry / 2),
	}, nil
}

type cloudfrontSigner struct {
	signer *sign.URLSigner
	domain string
	expiry time.Duration
	cache  *ttlCache
}

func (s *cloudfrontSigner) SignedURL(key string) (string, error) {
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}
	rawURL := fmt.Sprintf("https://%s/%s", s.domain, key)
	signedURL, err := s.signer.Sign(rawURL, time.Now().Add(s.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to sign url for %s: %w", key, err)
	}
	s.cache.Set(key, signedURL)
	return signedURL, nil
}

type passthroughSigner struct {
	domain string
}

func (s *passthroughSigner) SignedURL(key string) (string, error) {
	return fmt.Sprintf("https://%s/%s", s.domain, key), nil
}
