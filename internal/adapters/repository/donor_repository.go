package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/ports"
)

const donorRegisteredEventType = "donor.registered"

type DonorRepository struct {
	db *sql.DB
}

var _ ports.DonorRepository = (*DonorRepository)(nil)

func NewDonorRepository(db *sql.DB) *DonorRepository {
	return &DonorRepository{db: db}
}

func (r *DonorRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, role, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.Role, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateDonor writes the user row, the donor profile, and the registration
// event in one transaction.
func (r *DonorRepository) CreateDonor(ctx context.Context, donor domain.Donor, outboxPayload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, email, role, created_at) VALUES ($1, $2, $3, $4)`,
		donor.ID, donor.Email, donor.Role, donor.CreatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO donors (user_id, first_name, last_name, phone, blood_type, address)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		donor.ID, donor.FirstName, donor.LastName, donor.Phone, donor.BloodType, donor.Address,
	)
	if err != nil {
		return err
	}

	if err := insertOutboxEvent(ctx, tx, donorRegisteredEventType, outboxPayload); err != nil {
		return err
	}

	return tx.Commit()
}
