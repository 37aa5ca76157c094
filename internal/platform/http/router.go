package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leasedesk/rental-portal/pkg/model"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// UnitService serves unit views and photo folder mappings.
type UnitService interface {
	Overview(ctx context.Context) (model.UnitsOverview, error)
	TableRows(ctx context.Context) ([]model.UnitRow, error)
	Listings(ctx context.Context) ([]model.Listing, error)
	Available(ctx context.Context) ([]model.AvailableUnit, error)
	Photos(ctx context.Context, id uint) ([]string, error)
	SetPhotoFolder(ctx context.Context, id uint, folder string) error
}

// PerformanceService serves the property performance report.
type PerformanceService interface {
	Report(ctx context.Context) ([]model.PropertyPerformance, error)
	Snapshot(ctx context.Context) (model.PerformanceSnapshot, bool, error)
	Latest(ctx context.Context) (model.PerformanceSnapshot, error)
}

// LeaseService lists and closes leases.
type LeaseService interface {
	List(ctx context.Context) ([]model.LeaseRow, error)
	Terminate(ctx context.Context, id uint, reason string) (model.Lease, error)
	Delete(ctx context.Context, id uint) error
}

// Router wires HTTP handlers.
type Router struct {
	units       UnitService
	performance PerformanceService
	leases      LeaseService
	log         *zap.Logger
	origins     string
}

func NewRouter(units UnitService, performance PerformanceService, leases LeaseService, log *zap.Logger, allowedOrigins string) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Router{
		units:       units,
		performance: performance,
		leases:      leases,
		log:         log,
		origins:     allowedOrigins,
	}

	router := gin.New()
	router.Use(r.requestIDMiddleware(), r.accessLogMiddleware(), gin.Recovery(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/units", r.listUnits)
		api.GET("/units/overview", r.unitsOverview)
		api.GET("/units/available", r.availableUnits)
		api.GET("/units/:id/photos", r.unitPhotos)
		api.PUT("/units/:id/photo-folder", r.setPhotoFolder)
		api.GET("/listings", r.listListings)

		api.GET("/reports/performance", r.performanceReport)
		api.GET("/reports/performance/export", r.exportPerformance)
		api.POST("/reports/performance/snapshot", r.createSnapshot)
		api.GET("/reports/performance/snapshot", r.latestSnapshot)

		api.GET("/leases", r.listLeases)
		api.PATCH("/leases/:id/terminate", r.terminateLease)
		api.DELETE("/leases/:id", r.deleteLease)
	}

	return router
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := ""
		if len(trimmed) == 0 {
			allowed = "*"
		}
		for _, o := range trimmed {
			if o == "*" || o == origin {
				allowed = origin
				break
			}
		}
		if allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestIDHeader)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, "+requestIDHeader)
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

// requestIDMiddleware keeps a caller supplied X-Request-ID or assigns a new one.
func (r *Router) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (r *Router) accessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case status >= http.StatusInternalServerError:
			r.log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			r.log.Warn("request", fields...)
		default:
			r.log.Info("request", fields...)
		}
	}
}
