package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Local-development schema for the tables this service reads. Production
// runs against the Django-managed database, where migrations live; this
// exists so dbtool can stand up an empty Postgres for development and
// integration testing.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS warehouse_customer (
			id SERIAL PRIMARY KEY,
			zem_name VARCHAR(200) NOT NULL,
			full_name VARCHAR(200),
			accounting_name VARCHAR(200),
			zem_code VARCHAR(20),
			email VARCHAR(100),
			phone VARCHAR(30),
			note VARCHAR(500),
			address VARCHAR(500),
			username VARCHAR(150) UNIQUE,
			password VARCHAR(255)
		);`,
		`CREATE TABLE IF NOT EXISTS auth_user (
			id SERIAL PRIMARY KEY,
			password VARCHAR(128) NOT NULL,
			last_login TIMESTAMPTZ,
			is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
			username VARCHAR(150) UNIQUE NOT NULL,
			first_name VARCHAR(150) NOT NULL DEFAULT '',
			last_name VARCHAR(150) NOT NULL DEFAULT '',
			email VARCHAR(254) NOT NULL DEFAULT '',
			is_staff BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			date_joined TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS warehouse_container (
			id SERIAL PRIMARY KEY,
			container_number VARCHAR(255),
			container_type VARCHAR(255),
			weight_lbs DOUBLE PRECISION,
			is_special_container BOOLEAN,
			note VARCHAR(100)
		);`,
		`CREATE TABLE IF NOT EXISTS warehouse_zemwarehouse (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255),
			address VARCHAR(500)
		);`,
		`CREATE TABLE IF NOT EXISTS warehouse_vessel (
			id SERIAL PRIMARY KEY,
			vessel_id VARCHAR(255),
			master_bill_of_lading VARCHAR(255),
			origin_port VARCHAR(255),
			destination_port VARCHAR(255),
			shipping_line VARCHAR(255),
			vessel VARCHAR(255),
			voyage VARCHAR(255),
			vessel_etd TIMESTAMPTZ,
			vessel_eta TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS warehouse_retrieval (
			id SERIAL PRIMARY KEY,
			retrieval_id VARCHAR(255),
			shipping_order_number VARCHAR(255),
			master_bill_of_lading VARCHAR(255),
			retrive_by_zem BOOLEAN,
			retrieval_carrier VARCHAR(255),
			origin_port VARCHAR(255),
			destination_port VARCHAR(255),
			shipping_line VARCHAR(255),
			retrieval_destination_precise VARCHAR(500),
			assigned_by_appt BOOLEAN,
			retrieval_destination_area VARCHAR(255),
			scheduled_at TIMESTAMPTZ,
			target_retrieval_timestamp TIMESTAMPTZ,
			target_retrieval_timestamp_lower TIMESTAMPTZ,
			actual_retrieval_timestamp TIMESTAMPTZ,
			note VARCHAR(2000),
			arrive_at_destination BOOLEAN,
			arrive_at TIMESTAMPTZ,
			empty_returned BOOLEAN,
			empty_returned_at TIMESTAMPTZ,
			temp_t49_lfd DATE,
			temp_t49_available_for_pickup BOOLEAN,
			temp_t49_pod_arrive_at TIMESTAMPTZ,
			temp_t49_pod_discharge_at TIMESTAMPTZ,
			temp_t49_hold_status BOOLEAN
		);`,
		`CREATE TABLE IF NOT EXISTS warehouse_offload (
			id SERIAL PRIMARY KEY,
			offload_id VARCHAR(255),
			offload_required BOOLEAN,
			offload_at TIMESTAMPTZ,
			total_pallet INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS warehouse_order (
			id SERIAL PRIMARY KEY,
			order_id VARCHAR(255),
			customer_name_id INTEGER REFERENCES warehouse_customer(id),
			container_number_id INTEGER REFERENCES warehouse_container(id),
			warehouse_id INTEGER REFERENCES warehouse_zemwarehouse(id),
			vessel_id_id INTEGER REFERENCES warehouse_vessel(id),
			retrieval_id_id INTEGER REFERENCES warehouse_retrieval(id),
			offload_id_id INTEGER REFERENCES warehouse_offload(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			eta DATE,
			order_type VARCHAR(255),
			add_to_t49 BOOLEAN DEFAULT FALSE,
			cancel_notification BOOLEAN DEFAULT FALSE,
			cancel_time DATE
		);`,
		`CREATE TABLE IF NOT EXISTS warehouse_shipment (
			id SERIAL PRIMARY KEY,
			shipment_batch_number VARCHAR(255),
			is_shipment_schduled BOOLEAN DEFAULT FALSE,
			shipment_schduled_at TIMESTAMPTZ,
			shipment_appointment_utc TIMESTAMPTZ,
			is_shipped BOOLEAN DEFAULT FALSE,
			shipped_at_utc TIMESTAMPTZ,
			is_arrived BOOLEAN DEFAULT FALSE,
			arrived_at_utc TIMESTAMPTZ,
			pod_link VARCHAR(2000),
			pod_uploaded_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS warehouse_pallet (
			id SERIAL PRIMARY KEY,
			container_number_id INTEGER REFERENCES warehouse_container(id),
			master_shipment_batch_number_id INTEGER REFERENCES warehouse_shipment(id),
			destination VARCHAR(255),
			delivery_method VARCHAR(255),
			delivery_type VARCHAR(255),
			pallet_id VARCHAR(255),
			"PO_ID" VARCHAR(20),
			pcs INTEGER,
			cbm DOUBLE PRECISION,
			weight_lbs DOUBLE PRECISION,
			note VARCHAR(2000)
		);`,
		`CREATE INDEX IF NOT EXISTS ix_container_number
			ON warehouse_container(container_number);`,
	}

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}
	return nil
}

// SeedCustomer inserts a customer login for local development.
func SeedCustomer(ctx context.Context, db *sql.DB, zemName, username, passwordHash string) error {
	query := `
	INSERT INTO warehouse_customer (zem_name, username, password)
	VALUES ($1, $2, $3)
	ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password;
	`
	if _, err := db.ExecContext(ctx, query, zemName, username, passwordHash); err != nil {
		return fmt.Errorf("seed customer: %w", err)
	}
	return nil
}

// SeedStaff inserts a staff login for local development.
func SeedStaff(ctx context.Context, db *sql.DB, username, passwordHash, firstName, lastName string) error {
	query := `
	INSERT INTO auth_user (username, password, first_name, last_name, is_active)
	VALUES ($1, $2, $3, $4, TRUE)
	ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password;
	`
	if _, err := db.ExecContext(ctx, query, username, passwordHash, firstName, lastName); err != nil {
		return fmt.Errorf("seed staff: %w", err)
	}
	return nil
}
