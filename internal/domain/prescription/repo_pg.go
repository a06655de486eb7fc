package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const prescriptionCols = `id, user_id, prescription_date, patient_name, patient_age,
	patient_gender, diagnosis, medicines, next_visit_date, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()

	return r.pool.QueryRow(ctx, `
		INSERT INTO prescription
			(id, user_id, prescription_date, patient_name, patient_age,
			 patient_gender, diagnosis, medicines, next_visit_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		p.ID, p.UserID, p.PrescriptionDate, p.PatientName, p.PatientAge,
		p.PatientGender, p.Diagnosis, p.Medicines, p.NextVisitDate,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Prescription, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+prescriptionCols+`
		FROM prescription
		WHERE user_id = $1 AND id = $2`,
		ownerID, id)

	p, err := scanPrescription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *repoPG) List(ctx context.Context, ownerID uuid.UUID, f DateFilter) ([]Prescription, error) {
	query := `SELECT ` + prescriptionCols + ` FROM prescription WHERE user_id = $1`
	args := []any{ownerID}

	switch {
	case f.Exact != nil:
		query += fmt.Sprintf(" AND prescription_date = $%d", len(args)+1)
		args = append(args, *f.Exact)
	default:
		if f.Start != nil {
			query += fmt.Sprintf(" AND prescription_date >= $%d", len(args)+1)
			args = append(args, *f.Start)
		}
		if f.End != nil {
			query += fmt.Sprintf(" AND prescription_date <= $%d", len(args)+1)
			args = append(args, *f.End)
		}
	}
	query += " ORDER BY prescription_date DESC, created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Prescription{}
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, p *Prescription) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE prescription
		SET prescription_date = $3, patient_name = $4, patient_age = $5,
		    patient_gender = $6, diagnosis = $7, medicines = $8,
		    next_visit_date = $9, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING updated_at`,
		p.UserID, p.ID, p.PrescriptionDate, p.PatientName, p.PatientAge,
		p.PatientGender, p.Diagnosis, p.Medicines, p.NextVisitDate,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *repoPG) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM prescription WHERE user_id = $1 AND id = $2`,
		ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) DayWiseReport(ctx context.Context, ownerID uuid.UUID) ([]DayCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT prescription_date, COUNT(*)
		FROM prescription
		WHERE user_id = $1
		GROUP BY prescription_date
		ORDER BY prescription_date DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DayCount{}
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.PrescriptionDate, &dc.Count); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

func scanPrescription(row pgx.Row) (*Prescription, error) {
	p := &Prescription{}
	err := row.Scan(&p.ID, &p.UserID, &p.PrescriptionDate, &p.PatientName,
		&p.PatientAge, &p.PatientGender, &p.Diagnosis, &p.Medicines,
		&p.NextVisitDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
