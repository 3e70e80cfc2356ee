package services

import (
	"context"
	"database/sql"
	"fmt"

	"ssplt10-backend/models"
)

// RegistrationStore is the narrow view of player_registrations the payment
// core needs. Kept small so tests can fake it.
type RegistrationStore interface {
	UpdatePaymentFields(ctx context.Context, registrationID, paymentStatus string, amount float64, paymentID, orderID string) error
	GetContact(ctx context.Context, registrationID string) (name, email string, err error)
	ListRegistrations(ctx context.Context) ([]models.PlayerRegistration, error)
}

// PostgresRegistrationStore implements RegistrationStore on the Supabase
// Postgres pool.
type PostgresRegistrationStore struct {
	db *sql.DB
}

func NewPostgresRegistrationStore(db *sql.DB) *PostgresRegistrationStore {
	return &PostgresRegistrationStore{db: db}
}

// UpdatePaymentFields transitions the payment fields of one registration.
// Re-applying the same paid status is a natural no-op at the row level.
func (s *PostgresRegistrationStore) UpdatePaymentFields(ctx context.Context, registrationID, paymentStatus string, amount float64, paymentID, orderID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE player_registrations
		 SET payment_status = $1, payment_amount = $2, razorpay_payment_id = $3,
		     razorpay_order_id = $4, status = 'completed', updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		paymentStatus, amount, paymentID, orderID, registrationID)
	if err != nil {
		return fmt.Errorf("error updating player registration: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking registration update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("registration not found: %s", registrationID)
	}
	return nil
}

func (s *PostgresRegistrationStore) GetContact(ctx context.Context, registrationID string) (string, string, error) {
	var name, email string
	err := s.db.QueryRowContext(ctx,
		"SELECT name, email FROM player_registrations WHERE id = $1", registrationID).
		Scan(&name, &email)
	if err != nil {
		return "", "", fmt.Errorf("error retrieving registration contact: %w", err)
	}
	return name, email, nil
}

func (s *PostgresRegistrationStore) ListRegistrations(ctx context.Context) ([]models.PlayerRegistration, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(phone, ''),
		        COALESCE(status, ''), COALESCE(payment_status, ''), COALESCE(payment_amount, 0),
		        COALESCE(razorpay_payment_id, ''), COALESCE(razorpay_order_id, ''),
		        created_at, updated_at
		 FROM player_registrations
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	var regs []models.PlayerRegistration
	for rows.Next() {
		var reg models.PlayerRegistration
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Phone,
			&reg.Status, &reg.PaymentStatus, &reg.PaymentAmount,
			&reg.RazorpayPaymentID, &reg.RazorpayOrderID,
			&reg.CreatedAt, &reg.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
