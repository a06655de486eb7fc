package prescription

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rxledger/rxledger/pkg/optional"
)

// ErrValidation wraps field-level create/update failures so handlers can
// map them to a 400 without inspecting message text.
var ErrValidation = errors.New("validation failed")

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// CreateInput carries the caller-supplied fields for a new prescription.
// The owner is never part of it; it comes from the verified identity.
type CreateInput struct {
	PrescriptionDate Date   `json:"prescriptionDate"`
	PatientName      string `json:"patientName"`
	PatientAge       int    `json:"patientAge"`
	PatientGender    string `json:"patientGender"`
	Diagnosis        string `json:"diagnosis"`
	Medicines        string `json:"medicines"`
	NextVisitDate    Date   `json:"nextVisitDate"`
}

// UpdateInput carries a partial update. Required fields left at their
// zero value keep the stored value. Optional fields distinguish absent
// (keep), null (clear) and a new value.
type UpdateInput struct {
	PrescriptionDate Date                   `json:"prescriptionDate"`
	PatientName      string                 `json:"patientName"`
	PatientAge       int                    `json:"patientAge"`
	PatientGender    string                 `json:"patientGender"`
	Diagnosis        optional.Field[string] `json:"diagnosis"`
	Medicines        optional.Field[string] `json:"medicines"`
	NextVisitDate    optional.Field[Date]   `json:"nextVisitDate"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new prescription owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*Prescription, error) {
	if in.PrescriptionDate.IsZero() {
		return nil, validationErr("prescriptionDate is required")
	}
	if strings.TrimSpace(in.PatientName) == "" {
		return nil, validationErr("patientName is required")
	}
	if in.PatientAge <= 0 {
		return nil, validationErr("patientAge must be a positive integer")
	}
	if !ValidGender(in.PatientGender) {
		return nil, validationErr("patientGender must be Male, Female or Other")
	}

	p := &Prescription{
		UserID:           ownerID,
		PrescriptionDate: in.PrescriptionDate,
		PatientName:      strings.TrimSpace(in.PatientName),
		PatientAge:       in.PatientAge,
		PatientGender:    in.PatientGender,
		Diagnosis:        in.Diagnosis,
		Medicines:        in.Medicines,
	}
	if !in.NextVisitDate.IsZero() {
		d := in.NextVisitDate
		p.NextVisitDate = &d
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns one owned prescription.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Prescription, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// List returns the owner's prescriptions matching the filter, newest
// date first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, f DateFilter) ([]Prescription, error) {
	return s.repo.List(ctx, ownerID, f)
}

// Update applies a partial update to an owned prescription and returns
// the resulting record.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (*Prescription, error) {
	p, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if !in.PrescriptionDate.IsZero() {
		p.PrescriptionDate = in.PrescriptionDate
	}
	if strings.TrimSpace(in.PatientName) != "" {
		p.PatientName = strings.TrimSpace(in.PatientName)
	}
	if in.PatientAge != 0 {
		if in.PatientAge < 0 {
			return nil, validationErr("patientAge must be a positive integer")
		}
		p.PatientAge = in.PatientAge
	}
	if in.PatientGender != "" {
		if !ValidGender(in.PatientGender) {
			return nil, validationErr("patientGender must be Male, Female or Other")
		}
		p.PatientGender = in.PatientGender
	}

	if in.Diagnosis.Present() {
		if v, ok := in.Diagnosis.Value(); ok {
			p.Diagnosis = v
		} else {
			p.Diagnosis = ""
		}
	}
	if in.Medicines.Present() {
		if v, ok := in.Medicines.Value(); ok {
			p.Medicines = v
		} else {
			p.Medicines = ""
		}
	}
	if in.NextVisitDate.Present() {
		if v, ok := in.NextVisitDate.Value(); ok && !v.IsZero() {
			p.NextVisitDate = &v
		} else {
			p.NextVisitDate = nil
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes an owned prescription.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}

// DayWiseReport counts the owner's prescriptions per calendar date,
// newest date first.
func (s *Service) DayWiseReport(ctx context.Context, ownerID uuid.UUID) ([]DayCount, error) {
	return s.repo.DayWiseReport(ctx, ownerID)
}
