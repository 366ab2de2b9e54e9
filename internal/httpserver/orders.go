package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"greenledger/internal/commission"
	"greenledger/internal/domain"
	ordersvc "greenledger/internal/service/order"
)

type createOrderRequest struct {
	Buyer domain.BuyerInfo       `json:"buyer" binding:"required"`
	Lines []ordersvc.LineRequest `json:"lines" binding:"required,min=1"`
}

func createOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_body", err.Error())
			return
		}
		order, err := svc.Create(c.Request.Context(), c.Param("sellerID"), req.Buyer, req.Lines)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func listOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pageParams(c)
		orders, err := svc.List(c.Request.Context(), c.Param("sellerID"), limit, offset)
		if err != nil {
			respondError(c, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"results": orders, "limit": limit, "offset": offset, "count": len(orders)})
	}
}

func getOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), c.Param("sellerID"), c.Param("orderID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func cloneOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Clone(c.Request.Context(), c.Param("sellerID"), c.Param("orderID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

type lineRequest struct {
	ProductID string             `json:"productId" binding:"required"`
	Tier      domain.WeightBreak `json:"tier"`
	Quantity  decimal.Decimal    `json:"quantity" binding:"required"`
}

func addOrUpdateLineHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_body", err.Error())
			return
		}
		order, err := svc.AddOrUpdateLine(c.Request.Context(), c.Param("sellerID"), c.Param("orderID"), req.ProductID, req.Tier, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func removeLineHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.RemoveLine(c.Request.Context(), c.Param("sellerID"), c.Param("orderID"), c.Param("lineID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type shippingRequest struct {
	ShippingCost decimal.Decimal `json:"shippingCost"`
}

func setShippingHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shippingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_body", err.Error())
			return
		}
		order, err := svc.SetShippingCost(c.Request.Context(), c.Param("sellerID"), c.Param("orderID"), req.ShippingCost)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type transitionRequest struct {
	Status int `json:"status" binding:"required"`
}

func transitionHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transitionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_body", err.Error())
			return
		}
		order, err := svc.Transition(c.Request.Context(), c.Param("sellerID"), c.Param("orderID"), domain.OrderStatus(req.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func lockOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Lock(c.Request.Context(), c.Param("sellerID"), c.Param("orderID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type assignRequest struct {
	SalesPersonID   string `json:"salesPersonId" binding:"required"`
	SalesPersonName string `json:"salesPersonName"`
}

func assignSalesPersonHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_body", err.Error())
			return
		}
		order, err := svc.AssignSalesPerson(c.Request.Context(), c.Param("sellerID"), c.Param("orderID"), commission.SalesPersonRef{
			ID:   req.SalesPersonID,
			Name: req.SalesPersonName,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type paymentRequest struct {
	Amount decimal.Decimal      `json:"amount" binding:"required"`
	Method domain.PaymentMethod `json:"method" binding:"required"`
	PaidAt time.Time            `json:"paidAt"`
}

func applyPaymentHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_body", err.Error())
			return
		}
		payment, err := svc.ApplyPayment(c.Request.Context(), c.Param("sellerID"), c.Param("orderID"), req.Amount, req.Method, req.PaidAt)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, payment)
	}
}

func listPaymentsHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pageParams(c)
		payments, err := svc.Payments(c.Request.Context(), c.Param("sellerID"), c.Param("orderID"), limit, offset)
		if err != nil {
			respondError(c, err)
			return
		}
		if payments == nil {
			payments = []domain.Payment{}
		}
		c.JSON(http.StatusOK, gin.H{"results": payments, "limit": limit, "offset": offset, "count": len(payments)})
	}
}

func balanceHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sellerID, orderID := c.Param("sellerID"), c.Param("orderID")
		paid, err := svc.TotalPaid(ctx, sellerID, orderID)
		if err != nil {
			respondError(c, err)
			return
		}
		balance, err := svc.BalanceDue(ctx, sellerID, orderID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"totalPaid":  paid,
			"balanceDue": balance,
			"fullyPaid":  !balance.IsPositive(),
		})
	}
}
