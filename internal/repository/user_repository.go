package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"container-tracking-service/internal/model"
)

// UserRepository reads the two account tables. The customer table and the
// Django auth_user table are independent namespaces; callers decide the
// lookup order.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindCustomerByUsername returns the customer account with the given
// login name, or (nil, nil) when none exists.
func (r *UserRepository) FindCustomerByUsername(ctx context.Context, username string) (*model.Customer, error) {
	query := `
	SELECT
		id,
		zem_name,
		full_name,
		zem_code,
		email,
		note,
		phone,
		accounting_name,
		address,
		username,
		password
	FROM warehouse_customer
	WHERE username = $1
	LIMIT 1;
	`

	c := &model.Customer{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&c.ID,
		&c.ZemName,
		&c.FullName,
		&c.ZemCode,
		&c.Email,
		&c.Note,
		&c.Phone,
		&c.AccountingName,
		&c.Address,
		&c.Username,
		&c.Password,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer by username: %w", err)
	}
	return c, nil
}

// FindStaffByUsername returns the staff account with the given login
// name, or (nil, nil) when none exists.
func (r *UserRepository) FindStaffByUsername(ctx context.Context, username string) (*model.StaffUser, error) {
	query := `
	SELECT
		id,
		username,
		password,
		first_name,
		last_name,
		is_active
	FROM auth_user
	WHERE username = $1
	LIMIT 1;
	`

	s := &model.StaffUser{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&s.ID,
		&s.Username,
		&s.Password,
		&s.FirstName,
		&s.LastName,
		&s.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find staff by username: %w", err)
	}
	return s, nil
}
