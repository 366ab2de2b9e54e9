package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	ordersvc "greenledger/internal/service/order"
	productsvc "greenledger/internal/service/product"
)

// Deps carries the services the routes dispatch to.
type Deps struct {
	OrderSvc   *ordersvc.Service
	ProductSvc *productsvc.Service
}

// buildRouter wires the seller-scoped order and product routes.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	seller := router.Group("/sellers/:sellerID", requireSellerID)

	orders := seller.Group("/orders")
	orders.POST("", createOrderHandler(deps.OrderSvc))
	orders.GET("", listOrdersHandler(deps.OrderSvc))
	orders.GET("/:orderID", getOrderHandler(deps.OrderSvc))
	orders.POST("/:orderID/clone", cloneOrderHandler(deps.OrderSvc))
	orders.POST("/:orderID/lines", addOrUpdateLineHandler(deps.OrderSvc))
	orders.DELETE("/:orderID/lines/:lineID", removeLineHandler(deps.OrderSvc))
	orders.PUT("/:orderID/shipping", setShippingHandler(deps.OrderSvc))
	orders.PUT("/:orderID/status", transitionHandler(deps.OrderSvc))
	orders.POST("/:orderID/lock", lockOrderHandler(deps.OrderSvc))
	orders.PUT("/:orderID/sales-person", assignSalesPersonHandler(deps.OrderSvc))
	orders.POST("/:orderID/payments", applyPaymentHandler(deps.OrderSvc))
	orders.GET("/:orderID/payments", listPaymentsHandler(deps.OrderSvc))
	orders.GET("/:orderID/balance", balanceHandler(deps.OrderSvc))

	products := seller.Group("/products")
	products.POST("", createProductHandler(deps.ProductSvc))
	products.GET("", listProductsHandler(deps.ProductSvc))
	products.GET("/:productID", getProductHandler(deps.ProductSvc))
	products.PUT("/:productID", updateProductHandler(deps.ProductSvc))
	products.POST("/:productID/clone", cloneProductHandler(deps.ProductSvc))
	products.PATCH("/:productID/quick-edit", quickEditHandler(deps.ProductSvc))

	return router
}

// requireSellerID rejects requests without an explicit seller scope; there
// is no ambient tenant.
func requireSellerID(c *gin.Context) {
	if c.Param("sellerID") == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "missing_seller", "message": "seller id required"},
		})
		return
	}
	c.Next()
}
