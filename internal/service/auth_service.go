package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"container-tracking-service/internal/auth"
	"container-tracking-service/internal/model"
)

// Business errors exported for the controller to map onto HTTP statuses.
var (
	ErrInvalidInput       = errors.New("username and password are required")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrStoreUnavailable   = errors.New("database temporarily unavailable")
	ErrUnauthenticated    = errors.New("could not validate credentials")
)

// Interface over the account tables, implemented by repository.
type UserRepository interface {
	FindCustomerByUsername(ctx context.Context, username string) (*model.Customer, error)
	FindStaffByUsername(ctx context.Context, username string) (*model.StaffUser, error)
}

type LoginResult struct {
	DisplayName string
	Token       string
	UserType    string
}

// CurrentUser is the per-request identity: the token claims plus the
// freshly loaded account entity behind them. Exactly one of Customer and
// Staff is set, matching UserType.
type CurrentUser struct {
	Username    string
	DisplayName string
	UserType    string
	Customer    *model.Customer
	Staff       *model.StaffUser
}

func (u *CurrentUser) IsCustomer() bool {
	return u.UserType == auth.UserTypeCustomer
}

func (u *CurrentUser) IsStaff() bool {
	return u.UserType == auth.UserTypeStaff
}

// OwnershipKey is the value order ownership is checked against: the
// customer's zem_name, or "" for staff, meaning no restriction.
func (u *CurrentUser) OwnershipKey() string {
	if u.Customer != nil {
		return u.Customer.ZemName
	}
	return ""
}

// AuthService verifies credentials against the two account tables and
// turns bearer tokens back into identities.
type AuthService struct {
	users UserRepository
	codec *auth.TokenCodec
}

func NewAuthService(users UserRepository, codec *auth.TokenCodec) *AuthService {
	return &AuthService{users: users, codec: codec}
}

// Login authenticates a username/password pair. The customer table is
// checked first and a match there is terminal: the staff table is never
// consulted for that username, even when the password does not verify.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	customer, err := s.users.FindCustomerByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if customer != nil {
		return s.loginCustomer(customer, password)
	}

	staff, err := s.users.FindStaffByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if staff != nil {
		return s.loginStaff(staff, password)
	}

	return nil, ErrUserNotFound
}

func (s *AuthService) loginCustomer(customer *model.Customer, password string) (*LoginResult, error) {
	var storedHash string
	if customer.Password != nil {
		storedHash = *customer.Password
	}
	if !auth.VerifyPassword(password, storedHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.codec.Issue(auth.Claims{
		UserName:    customer.Username,
		DisplayName: customer.ZemName,
		UserType:    auth.UserTypeCustomer,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		DisplayName: customer.ZemName,
		Token:       token,
		UserType:    auth.UserTypeCustomer,
	}, nil
}

func (s *AuthService) loginStaff(staff *model.StaffUser, password string) (*LoginResult, error) {
	// Disabled accounts are rejected before the password is looked at.
	if !staff.IsActive {
		return nil, ErrAccountDisabled
	}
	if !auth.VerifyPassword(password, staff.Password) {
		return nil, ErrInvalidCredentials
	}

	displayName := strings.TrimSpace(staff.FirstName + " " + staff.LastName)
	if displayName == "" {
		displayName = staff.Username
	}

	token, err := s.codec.Issue(auth.Claims{
		UserName:    staff.Username,
		DisplayName: displayName,
		UserType:    auth.UserTypeStaff,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		DisplayName: displayName,
		Token:       token,
		UserType:    auth.UserTypeStaff,
	}, nil
}

// ResolveIdentity decodes a bearer token and re-loads the account behind
// it. The lookup happens on every call: the token's display name is only
// a cache hint, and authorization always runs against the live row. A
// token whose account has since disappeared fails the same way an
// invalid token does.
func (s *AuthService) ResolveIdentity(ctx context.Context, tokenString string) (*CurrentUser, error) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	switch claims.UserType {
	case auth.UserTypeCustomer:
		customer, err := s.users.FindCustomerByUsername(ctx, claims.UserName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if customer == nil {
			return nil, ErrUnauthenticated
		}
		return &CurrentUser{
			Username:    claims.UserName,
			DisplayName: claims.DisplayName,
			UserType:    auth.UserTypeCustomer,
			Customer:    customer,
		}, nil

	case auth.UserTypeStaff:
		staff, err := s.users.FindStaffByUsername(ctx, claims.UserName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if staff == nil {
			return nil, ErrUnauthenticated
		}
		return &CurrentUser{
			Username:    claims.UserName,
			DisplayName: claims.DisplayName,
			UserType:    auth.UserTypeStaff,
			Staff:       staff,
		}, nil

	default:
		return nil, ErrUnauthenticated
	}
}
