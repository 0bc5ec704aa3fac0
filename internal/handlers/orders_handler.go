package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medsupply/orders-api/internal/auth"
	"github.com/medsupply/orders-api/internal/aws"
	"github.com/medsupply/orders-api/internal/docintake"
	"github.com/medsupply/orders-api/internal/orders"
	"github.com/medsupply/orders-api/internal/validation"
)

// maxUploadBytes caps in-memory PDF uploads.
const maxUploadBytes = 10 << 20

// HandlerConfig groups dependencies for the orders handler.
type HandlerConfig struct {
	DynamoDBClient aws.DynamoDBAPI
	OrdersTable    string
	Keys           *auth.KeySet
	Pipeline       *docintake.Pipeline
	Metrics        *aws.Metrics
	Logger         *zap.Logger
}

// RegisterOrdersRoutes registers routes for the order API. Every route
// requires a valid allow-listed credential.
func RegisterOrdersRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	store := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable, cfg.Logger)
	service := orders.NewService(store, cfg.Metrics, cfg.Logger)

	g := r.Group("/orders", auth.Middleware(cfg.Keys))

	g.POST("", func(c *gin.Context) {
		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		order, err := service.Create(c.Request.Context(), orders.CreateInput{
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			ProductName:     req.ProductName,
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice,
			Status:          req.Status,
			ShippingAddress: req.ShippingAddress,
		})
		if err != nil {
			cfg.Logger.Error("create order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create_failed"})
			return
		}
		c.JSON(http.StatusCreated, order)
	})

	g.GET("", func(c *gin.Context) {
		list, err := service.FindAll(c.Request.Context())
		if err != nil {
			cfg.Logger.Error("list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list_failed"})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	g.GET("/:id", func(c *gin.Context) {
		order, err := service.FindOne(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeOrderError(c, cfg.Logger, "get order", err)
			return
		}
		c.JSON(http.StatusOK, order)
	})

	g.PATCH("/:id", func(c *gin.Context) {
		var req validation.UpdateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		order, err := service.Update(c.Request.Context(), c.Param("id"), orders.Patch{
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			ProductName:     req.ProductName,
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice,
			Status:          req.Status,
			ShippingAddress: req.ShippingAddress,
			PDFFileName:     req.PDFFileName,
			PDFFilePath:     req.PDFFilePath,
			PDFFileSize:     req.PDFFileSize,
		})
		if err != nil {
			writeOrderError(c, cfg.Logger, "update order", err)
			return
		}
		c.JSON(http.StatusOK, order)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		if err := service.Remove(c.Request.Context(), c.Param("id")); err != nil {
			writeOrderError(c, cfg.Logger, "delete order", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	})

	g.POST("/upload-pdf", func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}
		if fileHeader.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			cfg.Logger.Error("read upload", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload_read_failed"})
			return
		}

		mediaType := fileHeader.Header.Get("Content-Type")
		result, err := cfg.Pipeline.Process(c.Request.Context(), data, mediaType)
		if err != nil {
			if errors.Is(err, docintake.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			cfg.Metrics.Count(c.Request.Context(), aws.MetricIntakeFailures, 1)
			cfg.Logger.Error("document intake", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "document_processing_failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": result.Text})
	})

	// gin's router cannot host a static sibling of :id, so the health
	// path GET /orders/health/check is matched through the param route.
	g.GET("/:id/check", func(c *gin.Context) {
		if c.Param("id") != "health" {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}

func writeOrderError(c *gin.Context, logger *zap.Logger, op string, err error) {
	if errors.Is(err, orders.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	logger.Error(op, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}
