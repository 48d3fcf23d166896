package ports

import (
	"context"

	"commerce/internal/core/domain/model/orderreturn"
)

// ReturnRepository persists returns and exchanges.
type ReturnRepository interface {
	Add(ctx context.Context, aggregate *orderreturn.OrderReturn) error
	Update(ctx context.Context, aggregate *orderreturn.OrderReturn) error
	Get(ctx context.Context, rmaCode string) (*orderreturn.OrderReturn, error)

	// ListByOrder returns every return of an order, cancelled ones included.
	ListByOrder(ctx context.Context, orderNumber string) ([]*orderreturn.OrderReturn, error)
}
