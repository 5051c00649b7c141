package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hemolink/donation-service/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const tokenTTL = 24 * time.Hour

// GoogleOAuthService glues the Google identity provider to the platform:
// it exchanges the callback code, verifies the ID token, and issues a
// system JWT for a registered donor or staff member.
type GoogleOAuthService struct {
	clientID     string
	clientSecret string
	redirectURL  string
	donorRepo    ports.DonorRepository
	privateKey   *rsa.PrivateKey
	redisClient  *redis.Client
}

var _ ports.AuthService = (*GoogleOAuthService)(nil)

type googleTokenResponse struct {
	IDToken string `json:"id_token"`
}

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

type googleJWKS struct {
	Keys []struct {
		Kid string `json:"kid"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func NewGoogleOAuthService(
	clientID, clientSecret, redirectURL string,
	donorRepo ports.DonorRepository,
	privateKey *rsa.PrivateKey,
	redisClient *redis.Client,
) *GoogleOAuthService {
	return &GoogleOAuthService{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		donorRepo:    donorRepo,
		privateKey:   privateKey,
		redisClient:  redisClient,
	}
}

// GenerateState creates a random state for CSRF protection
func (s *GoogleOAuthService) GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// GetAuthURL returns the Google authorization URL
func (s *GoogleOAuthService) GetAuthURL(state string) string {
	params := url.Values{
		"client_id":     {s.clientID},
		"redirect_uri":  {s.redirectURL},
		"response_type": {"code"},
		"scope":         {"openid email"},
		"state":         {state},
	}
	return "https://accounts.google.com/o/oauth2/v2/auth?" + params.Encode()
}

// Authenticate exchanges code for tokens, verifies, and returns a system JWT
func (s *GoogleOAuthService) Authenticate(ctx context.Context, code string) (string, error) {
	idToken, err := s.exchangeCode(ctx, code)
	if err != nil {
		return "", err
	}

	email, err := s.verifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}

	user, err := s.donorRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", errors.New("user not registered")
	}

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}

// Logout denylists the token hash in Redis until the token would have
// expired anyway. The auth middleware checks the same key.
func (s *GoogleOAuthService) Logout(ctx context.Context, token string) error {
	if s.redisClient == nil {
		return errors.New("redis not configured")
	}
	return s.redisClient.Set(ctx, denylistKey(token), "1", tokenTTL).Err()
}

// DenylistKey exposes the denylist key derivation for the middleware.
func DenylistKey(token string) string {
	return denylistKey(token)
}

func denylistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:denylist:" + hex.EncodeToString(sum[:])
}

func (s *GoogleOAuthService) exchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {s.redirectURL},
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", "https://oauth2.googleapis.com/token", strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result googleTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if result.IDToken == "" {
		return "", errors.New("no id_token in response")
	}

	return result.IDToken, nil
}

func (s *GoogleOAuthService) verifyIDToken(ctx context.Context, idToken string) (string, error) {
	keys, err := s.fetchGoogleKeys(ctx)
	if err != nil {
		return "", err
	}

	token, err := jwt.ParseWithClaims(idToken, &googleClaims{}, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		key, ok := keys[kid]
		if !ok {
			return nil, errors.New("key not found")
		}
		return key, nil
	})
	if err != nil {
		return "", err
	}

	claims := token.Claims.(*googleClaims)

	if claims.Email == "" || !claims.EmailVerified {
		return "", errors.New("email not verified")
	}

	return claims.Email, nil
}

func (s *GoogleOAuthService) fetchGoogleKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", "https://www.googleapis.com/oauth2/v3/certs", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var jwks googleJWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, err
	}

	keys := make(map[string]*rsa.PublicKey)
	for _, k := range jwks.Keys {
		nBytes, _ := base64.RawURLEncoding.DecodeString(k.N)
		eBytes, _ := base64.RawURLEncoding.DecodeString(k.E)

		var e int
		for _, b := range eBytes {
			e = e<<8 + int(b)
		}

		keys[k.Kid] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: e,
		}
	}

	return keys, nil
}
