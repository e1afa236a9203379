package service

import (
	"encoding/json"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"backoffice/pkg/config"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/security"
)

// UserIdentity is the slice of a user the token factory needs. Callers pass
// it explicitly together with the user's roles and permission claim values;
// the factory never reaches into a request context or the database.
type UserIdentity struct {
	ID           uint64
	Username     string
	DisplayName  string
	SerialNumber string
}

// AccessClaims is the claim set embedded into access tokens.
type AccessClaims struct {
	Username     string   `json:"username"`
	DisplayName  string   `json:"displayName"`
	SerialNumber string   `json:"serialNumber"`
	DeviceHash   string   `json:"deviceHash"`
	Roles        []string `json:"roles"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject claim; 0 when absent or malformed.
func (c *AccessClaims) UserID() uint64 {
	id, _ := strconv.ParseUint(c.Subject, 10, 64)
	return id
}

// RefreshClaims is the claim set embedded into refresh tokens. Serial is a
// fresh CSPRNG value; its hash is what the token store records.
type RefreshClaims struct {
	Serial     string `json:"serial"`
	DeviceHash string `json:"deviceHash"`
	jwt.RegisteredClaims
}

// PermissionClaims carries the user's dynamic permission values, serialized
// for the client UI. It is not a security boundary.
type PermissionClaims struct {
	Permissions string `json:"permissions"`
	jwt.RegisteredClaims
}

// JwtTokensData is the transient result of minting tokens for one user.
// Persistence of the refresh serial is the caller's responsibility.
type JwtTokensData struct {
	AccessToken             string
	RefreshToken            string
	DynamicPermissionsToken string
	RefreshTokenSerial      string
	Claims                  *AccessClaims
}

type TokenFactory interface {
	CreateJwtTokens(user UserIdentity, roles []string, permissions []string, deviceHash string) (*JwtTokensData, error)
	ParseAccessToken(tokenString string) (*AccessClaims, error)
	GetRefreshTokenSerial(refreshTokenValue string) string
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}

type tokenFactory struct {
	cfg    config.BearerTokensConfig
	logger *zap.Logger
}

func NewTokenFactory(cfg config.BearerTokensConfig, logger *zap.Logger) TokenFactory {
	return &tokenFactory{cfg: cfg, logger: logger}
}

func (f *tokenFactory) CreateJwtTokens(user UserIdentity, roles []string, permissions []string, deviceHash string) (*JwtTokensData, error) {
	accessToken, claims, err := f.createAccessToken(user, roles, deviceHash)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshSerial, err := f.createRefreshToken(deviceHash)
	if err != nil {
		return nil, err
	}

	permissionsToken, err := f.createPermissionsToken(user.ID, permissions)
	if err != nil {
		return nil, err
	}

	return &JwtTokensData{
		AccessToken:             accessToken,
		RefreshToken:            refreshToken,
		DynamicPermissionsToken: permissionsToken,
		RefreshTokenSerial:      refreshSerial,
		Claims:                  claims,
	}, nil
}

func (f *tokenFactory) createAccessToken(user UserIdentity, roles []string, deviceHash string) (string, *AccessClaims, error) {
	now := time.Now()
	if roles == nil {
		roles = []string{}
	}

	claims := &AccessClaims{
		Username:     user.Username,
		DisplayName:  user.DisplayName,
		SerialNumber: user.SerialNumber,
		DeviceHash:   deviceHash,
		Roles:        roles,
		RegisteredClaims: f.registeredClaims(now, f.cfg.AccessTokenTTL(), userSubject(user.ID)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(f.cfg.Key))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (f *tokenFactory) createRefreshToken(deviceHash string) (string, string, error) {
	now := time.Now()
	serial := security.NewSecureSerial()

	claims := &RefreshClaims{
		Serial:           serial,
		DeviceHash:       deviceHash,
		RegisteredClaims: f.registeredClaims(now, f.cfg.RefreshTokenTTL(), ""),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(f.cfg.Key))
	if err != nil {
		return "", "", err
	}
	return signed, serial, nil
}

func (f *tokenFactory) createPermissionsToken(userID uint64, permissions []string) (string, error) {
	now := time.Now()
	if permissions == nil {
		permissions = []string{}
	}

	serialized, err := json.Marshal(permissions)
	if err != nil {
		return "", err
	}

	claims := &PermissionClaims{
		Permissions:      string(serialized),
		RegisteredClaims: f.registeredClaims(now, f.cfg.AccessTokenTTL(), userSubject(userID)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(f.cfg.Key))
}

func (f *tokenFactory) registeredClaims(now time.Time, ttl time.Duration, subject string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        security.NewJti(),
		Issuer:    f.cfg.Issuer,
		Audience:  jwt.ClaimStrings{f.cfg.Audience},
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

// ParseAccessToken validates the signature, issuer, audience and lifetime of
// an access token and returns its claims.
func (f *tokenFactory) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, f.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(f.cfg.Issuer),
		jwt.WithAudience(f.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// GetRefreshTokenSerial decodes and fully validates a refresh token and
// returns the embedded serial. Any validation failure resolves to "", never
// an error: an invalid or expired refresh token is an absent credential, not
// a caller bug.
func (f *tokenFactory) GetRefreshTokenSerial(refreshTokenValue string) string {
	if refreshTokenValue == "" {
		return ""
	}

	token, err := jwt.ParseWithClaims(refreshTokenValue, &RefreshClaims{}, f.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(f.cfg.Issuer),
		jwt.WithAudience(f.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		f.logger.Warn("failed to validate refresh token", zap.Error(err))
		return ""
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid {
		return ""
	}
	return claims.Serial
}

func (f *tokenFactory) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, apperrors.ErrInvalidSigningMethod
	}
	return []byte(f.cfg.Key), nil
}

func (f *tokenFactory) AccessTokenTTL() time.Duration  { return f.cfg.AccessTokenTTL() }
func (f *tokenFactory) RefreshTokenTTL() time.Duration { return f.cfg.RefreshTokenTTL() }

func userSubject(id uint64) string {
	return strconv.FormatUint(id, 10)
}
