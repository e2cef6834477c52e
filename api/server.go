// Package api exposes the estimator over JSON HTTP.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"airbnb-pricing/models"
	"airbnb-pricing/pricing"
	"airbnb-pricing/storage"
	"airbnb-pricing/utils"
)

// Server wires the estimator and an optional store to gin routes.
type Server struct {
	logger *utils.Logger
	store  storage.EstimateStore
}

// NewServer creates a Server. store may be nil, in which case estimates are
// not persisted and the history endpoint answers 501.
func NewServer(logger *utils.Logger, store storage.EstimateStore) *Server {
	return &Server{logger: logger, store: store}
}

type catalogResponse struct {
	Cities        []models.City         `json:"cities"`
	PropertyTypes []models.PropertyType `json:"property_types"`
	Amenities     []models.Amenity      `json:"amenities"`
	Defaults      models.ListingInput   `json:"defaults"`
}

type estimateResponse struct {
	ID             string               `json:"id,omitempty"`
	Estimate       models.PriceEstimate `json:"estimate"`
	CityCenter     models.Coordinates   `json:"city_center"`
	RationaleScore float64              `json:"rationale_score"`
	Summary        []models.FeatureRow  `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		v1.GET("/catalog", s.getCatalog)
		v1.POST("/estimates", s.createEstimate)
		v1.GET("/estimates", s.listEstimates)
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.logger.Debug("[api] %s %s -> %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}

func (s *Server) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, catalogResponse{
		Cities:        pricing.Cities(),
		PropertyTypes: pricing.PropertyTypes(),
		Amenities:     pricing.AmenityCatalog(),
		Defaults:      pricing.DefaultInput(),
	})
}

func (s *Server) createEstimate(c *gin.Context) {
	in := pricing.DefaultInput()
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	if err := pricing.Validate(in); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	est, err := pricing.Estimate(in)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	center, _ := pricing.CityCenter(in.City)

	resp := estimateResponse{
		Estimate:       est,
		CityCenter:     center,
		RationaleScore: pricing.RationaleScore(in),
		Summary:        pricing.Summary(in),
	}

	if s.store != nil {
		rec := storage.NewRecord(in, est)
		if err := s.store.Save(c.Request.Context(), rec); err != nil {
			s.logger.Error("[api] Failed to persist estimate: %v", err)
			c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to persist estimate"})
			return
		}
		resp.ID = rec.ID
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) listEstimates(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotImplemented, errorResponse{Error: storage.ErrNoStore.Error()})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be between 1 and 500"})
			return
		}
		limit = n
	}

	records, err := s.store.List(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("[api] Failed to list estimates: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list estimates"})
		return
	}
	if records == nil {
		records = []*storage.EstimateRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"estimates": records})
}
