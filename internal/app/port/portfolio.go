package port

import (
	"context"

	"github.com/google/uuid"

	"portfolio_aggregator/internal/domain/entity"
)

// PortfolioAggregator turns a user's wallet list into a priced,
// chain-grouped portfolio. Partial failures surface as warnings inside the
// portfolio; only the wallet lookup itself can fail the whole call.
type PortfolioAggregator interface {
	Aggregate(ctx context.Context, userID uuid.UUID) (*entity.Portfolio, error)
}
