package repositories

import (
	"context"

	"github.com/google/uuid"
	"voltbay.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	GetByIntentID(ctx context.Context, intentID string) (*entities.Payment, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Payment, int, error)
}
