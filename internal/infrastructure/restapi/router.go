package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires all HTTP endpoints. The portfolio and wallet routes sit
// behind bearer-token auth; health and metrics do not.
func SetupRouter(portfolio *PortfolioHandler, wallets *WalletHandler, auth *AuthHandler, authMiddleware gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		v1.POST("/auth/register", auth.Register)
		v1.POST("/auth/login", auth.Login)

		secured := v1.Group("")
		secured.Use(authMiddleware)
		{
			secured.GET("/portfolio", portfolio.GetPortfolio)
			secured.GET("/wallets", wallets.ListWallets)
			secured.POST("/wallets", wallets.AddWallet)
		}
	}

	return router
}
