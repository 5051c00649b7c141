package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hemolink/donation-service/internal/core/domain"
	"github.com/hemolink/donation-service/internal/core/ports"
)

const statusChangedEventType = "request.status_changed"

type RequestRepository struct {
	db *sql.DB
}

var _ ports.RequestRepository = (*RequestRepository)(nil)

func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts the request and its status event in one transaction. The
// trigger on outbox_events fires NOTIFY for the relay.
func (r *RequestRepository) Create(ctx context.Context, req domain.Request, outboxPayload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO requests
			(id, flow, status, appointment_date, campaign_id, person_id, person_name,
			 person_phone, person_blood_type, person_address, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12)`,
		req.ID,
		req.Flow,
		req.Status,
		req.AppointmentDate,
		req.Campaign.ID,
		req.Person.ID,
		req.Person.Name,
		req.Person.Phone,
		req.Person.BloodType,
		req.Person.Address,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err := insertOutboxEvent(ctx, tx, statusChangedEventType, outboxPayload); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.Request, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT r.id, r.flow, r.status, r.appointment_date,
		        COALESCE(r.campaign_id::text, ''), COALESCE(c.name, ''),
		        COALESCE(c.location, ''), COALESCE(c.banner_url, ''),
		        COALESCE(c.start_date, r.appointment_date),
		        r.person_id, r.person_name, r.person_phone, r.person_blood_type,
		        r.person_address, r.created_at, r.updated_at
		 FROM requests r
		 LEFT JOIN campaigns c ON c.id = r.campaign_id
		 WHERE r.id = $1`,
		id,
	)

	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ListByPerson returns a person's requests for one flow, newest first. The
// bucketing and filtering happen in the domain on this snapshot.
func (r *RequestRepository) ListByPerson(ctx context.Context, personID string, flow domain.Flow) ([]domain.Request, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.flow, r.status, r.appointment_date,
		        COALESCE(r.campaign_id::text, ''), COALESCE(c.name, ''),
		        COALESCE(c.location, ''), COALESCE(c.banner_url, ''),
		        COALESCE(c.start_date, r.appointment_date),
		        r.person_id, r.person_name, r.person_phone, r.person_blood_type,
		        r.person_address, r.created_at, r.updated_at
		 FROM requests r
		 LEFT JOIN campaigns c ON c.id = r.campaign_id
		 WHERE r.person_id = $1 AND r.flow = $2
		 ORDER BY r.appointment_date DESC, r.created_at DESC`,
		personID, flow,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// UpdateStatus transitions the request and records the event in the same
// transaction.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, at time.Time, outboxPayload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE requests SET status = $1, updated_at = $2 WHERE id = $3`,
		status, at, id,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}

	if err := insertOutboxEvent(ctx, tx, statusChangedEventType, outboxPayload); err != nil {
		return err
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*domain.Request, error) {
	var req domain.Request
	err := row.Scan(
		&req.ID,
		&req.Flow,
		&req.Status,
		&req.AppointmentDate,
		&req.Campaign.ID,
		&req.Campaign.Name,
		&req.Campaign.Location,
		&req.Campaign.BannerURL,
		&req.Campaign.CollectionDate,
		&req.Person.ID,
		&req.Person.Name,
		&req.Person.Phone,
		&req.Person.BloodType,
		&req.Person.Address,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func insertOutboxEvent(ctx context.Context, tx *sql.Tx, eventType string, payload []byte) error {
	if payload == nil {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO outbox_events (id, event_type, payload, created_at)
		 VALUES (gen_random_uuid(), $1, $2, NOW())`,
		eventType, payload,
	)
	return err
}
