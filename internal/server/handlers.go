package server

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"CryptoAnalyst/internal/analyst"
	"CryptoAnalyst/internal/collector"
	"CryptoAnalyst/internal/dashboard"
	"CryptoAnalyst/internal/recorder"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 500
)

// errorStatus maps an analysis failure to an HTTP status and detail message.
func errorStatus(symbol string, err error) (int, string) {
	var mde *analyst.MarketDataError
	switch {
	case errors.Is(err, collector.ErrInvalidSymbol):
		return http.StatusBadRequest, "Invalid symbol: " + symbol
	case errors.As(err, &mde):
		return http.StatusNotFound, "Market data error: " + mde.Err.Error()
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

func (s *Server) getAnalysis(c *gin.Context) {
	symbol := c.Param("symbol")
	report, err := s.svc.Analyze(c.Request.Context(), symbol)
	if err != nil {
		status, detail := errorStatus(symbol, err)
		log.Printf("[WARN] analysis %s: %v", symbol, err)
		c.JSON(status, gin.H{"detail": detail})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) getChart(c *gin.Context) {
	symbol := c.Param("symbol")
	report, err := s.svc.Analyze(c.Request.Context(), symbol)
	if err != nil {
		status, detail := errorStatus(symbol, err)
		c.JSON(status, gin.H{"detail": detail})
		return
	}

	var buf bytes.Buffer
	if err := dashboard.RenderChart(&buf, report); err != nil {
		if errors.Is(err, dashboard.ErrNoHistory) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "No price history for " + report.Symbol})
			return
		}
		log.Printf("[ERROR] render chart %s: %v", symbol, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal error"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) getHistory(c *gin.Context) {
	symbol := c.Param("symbol")
	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	snaps, err := s.svc.History(symbol, limit)
	if err != nil {
		if errors.Is(err, collector.ErrInvalidSymbol) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid symbol: " + symbol})
			return
		}
		log.Printf("[ERROR] history %s: %v", symbol, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal error"})
		return
	}
	if snaps == nil {
		snaps = []recorder.Snapshot{}
	}
	c.JSON(http.StatusOK, gin.H{"symbol": strings.ToUpper(strings.TrimSpace(symbol)), "snapshots": snaps})
}

// searchDashboard turns the search form query into a dashboard URL.
func (s *Server) searchDashboard(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		symbol = "BTC-USD"
	}
	c.Redirect(http.StatusFound, "/dashboard/"+url.PathEscape(strings.ToUpper(symbol)))
}

func (s *Server) getDashboard(c *gin.Context) {
	symbol := c.Param("symbol")
	var buf bytes.Buffer

	report, err := s.svc.Analyze(c.Request.Context(), symbol)
	if err != nil {
		status, _ := errorStatus(symbol, err)
		log.Printf("[WARN] dashboard %s: %v", symbol, err)
		if err := dashboard.RenderError(&buf, symbol); err != nil {
			c.String(http.StatusInternalServerError, "Internal error")
			return
		}
		c.Data(status, "text/html; charset=utf-8", buf.Bytes())
		return
	}

	if err := dashboard.Render(&buf, report); err != nil {
		log.Printf("[ERROR] render dashboard %s: %v", symbol, err)
		c.String(http.StatusInternalServerError, "Internal error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
