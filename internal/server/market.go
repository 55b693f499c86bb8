package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListRealtimeConsumption(c *gin.Context) {
	s.serveFeed(c, "consumption", func(start, end time.Time) (interface{}, error) {
		return s.marketSvc.ListRealtimeConsumption(c.Request.Context(), start, end)
	})
}

func (s *Server) ListDemandForecast(c *gin.Context) {
	s.serveFeed(c, "forecast", func(start, end time.Time) (interface{}, error) {
		return s.marketSvc.ListDemandForecast(c.Request.Context(), start, end)
	})
}

func (s *Server) ListMarketClearingPrice(c *gin.Context) {
	s.serveFeed(c, "prices", func(start, end time.Time) (interface{}, error) {
		return s.marketSvc.ListMarketClearingPrice(c.Request.Context(), start, end)
	})
}

func (s *Server) ListSystemMarginalPrice(c *gin.Context) {
	s.serveFeed(c, "prices", func(start, end time.Time) (interface{}, error) {
		return s.marketSvc.ListSystemMarginalPrice(c.Request.Context(), start, end)
	})
}

func (s *Server) serveFeed(c *gin.Context, key string, list func(start, end time.Time) (interface{}, error)) {
	start, end, err := timeRangeParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows, err := list(start, end)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{key: rows})
}
