package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	// AdminSubject is the fixed subject carried by admin tokens.
	AdminSubject = "ADMIN"
)

type Service struct {
	secret      []byte
	customerTTL time.Duration
	adminTTL    time.Duration
}

type Claims struct {
	CustomerID int64  `json:"customer_id,omitempty"`
	Role       string `json:"role"`
	jwtlib.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func New(secret string, customerTTL, adminTTL time.Duration) *Service {
	return &Service{
		secret:      []byte(secret),
		customerTTL: customerTTL,
		adminTTL:    adminTTL,
	}
}

func (s *Service) GenerateCustomerToken(customerID int64) (string, error) {
	claims := Claims{
		CustomerID: customerID,
		Role:       RoleCustomer,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   strconv.FormatInt(customerID, 10),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(s.customerTTL)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) GenerateAdminToken() (string, error) {
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   AdminSubject,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(s.adminTTL)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return claims, nil
}
