package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles of admin API callers
const (
	// RoleOperator runs the platform and may touch every tenant.
	RoleOperator = "operator"
	// RoleTenantAdmin manages a single tenant.
	RoleTenantAdmin = "tenant_admin"
)

var ErrInvalidToken = errors.New("auth: invalid or expired token")

// Claims identify the caller of the admin API
type Claims struct {
	Role     string `json:"role"`
	TenantID string `json:"tenant_id,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

// NewJWTService creates a HS256 token service. ttl <= 0 means 24h.
func NewJWTService(secretKey string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTService{
		secretKey: []byte(secretKey),
		issuer:    "wa-booking-bot",
		ttl:       ttl,
		now:       time.Now,
	}
}

// Issue signs a token for subject. Tenant admins must name their tenant.
func (s *JWTService) Issue(subject, role, tenantID string) (string, time.Time, error) {
	switch role {
	case RoleOperator:
		tenantID = ""
	case RoleTenantAdmin:
		if tenantID == "" {
			return "", time.Time{}, fmt.Errorf("auth: %s token needs a tenant", role)
		}
	default:
		return "", time.Time{}, fmt.Errorf("auth: unknown role %q", role)
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := &Claims{
		Role:     role,
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Validate parses a token and returns its claims
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	switch claims.Role {
	case RoleOperator:
	case RoleTenantAdmin:
		if claims.TenantID == "" {
			return nil, fmt.Errorf("%w: tenant admin without tenant", ErrInvalidToken)
		}
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	return claims, nil
}
