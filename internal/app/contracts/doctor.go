package contracts

import (
	"context"
	"vetcare-service/internal/app/models"
)

type DoctorRepository interface {
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	// ClaimSlot adds the slot to the doctor's booked index only if it is absent and
	// reports whether this call claimed it.
	ClaimSlot(ctx context.Context, doctorID, slotDate string, minutes int) (bool, error)
	ReleaseSlot(ctx context.Context, doctorID, slotDate string, minutes int) error
}
