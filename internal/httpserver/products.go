package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"greenledger/internal/domain"
	productsvc "greenledger/internal/service/product"
)

func createProductHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.Product
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_body", err.Error())
			return
		}
		product, err := svc.Create(c.Request.Context(), c.Param("sellerID"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func listProductsHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pageParams(c)
		products, err := svc.List(c.Request.Context(), c.Param("sellerID"), limit, offset)
		if err != nil {
			respondError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"results": products, "limit": limit, "offset": offset, "count": len(products)})
	}
}

func getProductHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), c.Param("sellerID"), c.Param("productID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func updateProductHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.Product
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_body", err.Error())
			return
		}
		req.ID = c.Param("productID")
		product, err := svc.Update(c.Request.Context(), c.Param("sellerID"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func cloneProductHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Clone(c.Request.Context(), c.Param("sellerID"), c.Param("productID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func quickEditHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productsvc.QuickEdit
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_body", err.Error())
			return
		}
		product, err := svc.QuickEdit(c.Request.Context(), c.Param("sellerID"), c.Param("productID"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
