package prescription

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists prescriptions. Every method is scoped to the owning
// user: an id that exists under a different owner behaves as absent.
type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Prescription, error)
	List(ctx context.Context, ownerID uuid.UUID, f DateFilter) ([]Prescription, error)
	Update(ctx context.Context, p *Prescription) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	DayWiseReport(ctx context.Context, ownerID uuid.UUID) ([]DayCount, error)
}
