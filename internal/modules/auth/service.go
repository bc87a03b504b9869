package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taxibook/internal/domain"
)

type Service struct {
	customers CustomerRepository
	jwt       tokenIssuer
}

func NewService(customers CustomerRepository, jwt tokenIssuer) *Service {
	return &Service{
		customers: customers,
		jwt:       jwt,
	}
}

// Register creates a customer account. Email and phone are unique; the
// pre-insert check covers the common case and the unique indexes close
// the race on Postgres (unique violation maps to ErrCustomerExists).
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)

	exists, err := s.customers.ExistsByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCustomerExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Name:         strings.TrimSpace(req.Name),
		Phone:        phone,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCustomerExists
		}
		return nil, err
	}

	return customer, nil
}

// Login accepts the email or the phone number as username and returns a
// signed customer token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	customer, err := s.customers.GetByEmailOrPhone(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.jwt.GenerateCustomerToken(customer.ID)
}

func (s *Service) Me(ctx context.Context, customerID int64) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return customer, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
