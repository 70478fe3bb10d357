package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"crm_manager/internal/metrics"
	"crm_manager/internal/store"
)

// SalesHandler serves the revenue ledger and the derived-metrics dashboard.
type SalesHandler struct {
	sales     *store.SalesStore
	customers *store.CustomerStore
	products  *store.ProductStore
}

func NewSalesHandler(sales *store.SalesStore, customers *store.CustomerStore, products *store.ProductStore) *SalesHandler {
	return &SalesHandler{sales: sales, customers: customers, products: products}
}

func (h *SalesHandler) GetSales(c *gin.Context) {
	c.JSON(http.StatusOK, h.sales.Data())
}

func (h *SalesHandler) UpsertYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	var req struct {
		Total float64 `json:"total"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	data, err := h.sales.UpsertYear(year, req.Total)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// Trend returns the yearly entries around a center year for charting.
func (h *SalesHandler) Trend(c *gin.Context) {
	center := time.Now().Year()
	if value := c.Query("center"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid center year"})
			return
		}
		center = parsed
	}

	radius := 2
	if value := c.Query("radius"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid radius"})
			return
		}
		radius = parsed
	}

	c.JSON(http.StatusOK, gin.H{"years": h.sales.YearsAround(center, radius)})
}

func (h *SalesHandler) DailyMetrics(c *gin.Context) {
	day := time.Now()
	if value := c.Query("date"); value != "" {
		parsed, err := parseDate(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	summary := metrics.Daily(h.customers.All(), h.products, day)
	c.JSON(http.StatusOK, gin.H{
		"date":    day.Format("2006-01-02"),
		"summary": summary,
	})
}

func (h *SalesHandler) MonthlyMetrics(c *gin.Context) {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if c.Query("year") != "" || c.Query("month") != "" {
		parsedYear, parsedMonth, err := parseMonth(c.Query("year"), c.Query("month"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		year, month = parsedYear, parsedMonth
	}

	summary := metrics.Monthly(h.customers.All(), h.products, year, month)
	c.JSON(http.StatusOK, gin.H{
		"year":    year,
		"month":   int(month),
		"summary": summary,
	})
}

// WindowMetrics returns the per-day series for a rolling range of days,
// defaulting to the last 7 ending today.
func (h *SalesHandler) WindowMetrics(c *gin.Context) {
	end := time.Now()
	if value := c.Query("end"); value != "" {
		parsed, err := parseDate(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
			return
		}
		end = parsed
	}

	days := 7
	if value := c.Query("days"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days"})
			return
		}
		days = parsed
	}

	series, totals := metrics.Window(h.customers.All(), h.products, end, days)
	c.JSON(http.StatusOK, gin.H{
		"series": series,
		"totals": totals,
	})
}
