package firebase

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/restaurant-locator/internal/config"
	"github.com/restaurant-locator/internal/domain"
	"github.com/restaurant-locator/internal/domain/repository"
	"github.com/restaurant-locator/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	issuerPrefix       = "https://securetoken.google.com/"
	maxSubjectLength   = 128
	defaultKeysTTL     = time.Hour
	minRefreshInterval = time.Minute
	certsFetchTimeout  = 10 * time.Second
)

type claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type verifier struct {
	httpClient *http.Client
	certsURL   string
	projectID  string
	logger     *zap.Logger
	now        func() time.Time

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
	expiresAt time.Time
}

// NewVerifier создает проверку Firebase ID токенов по публичным сертификатам Google
func NewVerifier(cfg *config.AuthConfig, logger *zap.Logger) repository.IdentityVerifier {
	return newVerifier(cfg, logger, time.Now)
}

func newVerifier(cfg *config.AuthConfig, logger *zap.Logger, now func() time.Time) *verifier {
	return &verifier{
		httpClient: &http.Client{Timeout: certsFetchTimeout},
		certsURL:   cfg.CertsURL,
		projectID:  cfg.FirebaseProjectID,
		logger:     logger,
		now:        now,
		keys:       make(map[string]*rsa.PublicKey),
	}
}

// Verify проверяет подпись и claims токена и возвращает UID пользователя
func (v *verifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, errors.ErrMissingToken
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c,
		func(t *jwt.Token) (interface{}, error) {
			kid, _ := t.Header["kid"].(string)
			if kid == "" {
				return nil, fmt.Errorf("token has no kid header")
			}
			return v.publicKey(ctx, kid)
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(issuerPrefix+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !parsed.Valid {
		v.logger.Debug("Token verification failed", zap.Error(err))
		return nil, errors.ErrUnauthorized.WithCause(err)
	}

	if c.Subject == "" || len(c.Subject) > maxSubjectLength {
		return nil, errors.ErrUnauthorized.WithCause(fmt.Errorf("invalid sub claim"))
	}

	identity := &domain.Identity{SubjectID: c.Subject}
	if c.Email != "" {
		email := c.Email
		identity.Email = &email
	}
	return identity, nil
}

// publicKey возвращает ключ по kid, при необходимости обновляя набор сертификатов
func (v *verifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	now := v.now()

	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := now.Before(v.expiresAt)
	recentlyFetched := now.Sub(v.fetchedAt) < minRefreshInterval
	v.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}
	if !ok && fresh && recentlyFetched {
		return nil, fmt.Errorf("unknown kid %q", kid)
	}

	if err := v.refresh(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown kid %q", kid)
	}
	return key, nil
}

func (v *verifier) refresh(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	// другой запрос мог уже обновить ключи
	if now.Before(v.expiresAt) && now.Sub(v.fetchedAt) < minRefreshInterval {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create certs request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Error("Failed to fetch Firebase certificates", zap.Error(err))
		return fmt.Errorf("failed to fetch certificates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		v.logger.Error("Firebase certificates endpoint returned error",
			zap.Int("status_code", resp.StatusCode))
		return fmt.Errorf("certificates endpoint status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("failed to decode certificates: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemData := range certs {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemData))
		if err != nil {
			v.logger.Warn("Skipping unparseable certificate",
				zap.String("kid", kid),
				zap.Error(err))
			continue
		}
		keys[kid] = key
	}

	v.keys = keys
	v.fetchedAt = now
	v.expiresAt = now.Add(maxAge(resp.Header.Get("Cache-Control")))

	v.logger.Debug("Firebase certificates refreshed",
		zap.Int("keys", len(keys)),
		zap.Time("expires_at", v.expiresAt))
	return nil
}

// maxAge извлекает max-age из Cache-Control
func maxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		value, ok := strings.CutPrefix(directive, "max-age=")
		if !ok {
			continue
		}
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds <= 0 {
			break
		}
		return time.Duration(seconds) * time.Second
	}
	return defaultKeysTTL
}
