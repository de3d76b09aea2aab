package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio_aggregator/internal/app/port"
)

// PortfolioHandler serves the aggregated portfolio endpoint.
type PortfolioHandler struct {
	aggregator port.PortfolioAggregator
	logger     *zap.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(aggregator port.PortfolioAggregator, logger *zap.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		aggregator: aggregator,
		logger:     logger.Named("PortfolioHandler"),
	}
}

// GetPortfolio returns the caller's aggregated portfolio. Partial data is
// always better than no data here: the portfolio is returned with HTTP 200
// even when its warnings list is non-empty.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	portfolio, err := h.aggregator.Aggregate(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("portfolio aggregation failed", zap.String("userId", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate portfolio"})
		return
	}

	c.JSON(http.StatusOK, portfolio)
}
