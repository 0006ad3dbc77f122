package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/Dennisdaviddante/teissi-app/internal/repository"
	"github.com/Dennisdaviddante/teissi-app/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type StatisticsHandler struct {
	log *zap.Logger
}

func NewStatisticsHandler(log *zap.Logger) *StatisticsHandler {
	return &StatisticsHandler{log: log}
}

// Rows returns the projected assessment rows matching the supplied
// filters. Zero matches is a 200 with an empty array; only a store
// failure produces an error response, and then a generic one.
func (h *StatisticsHandler) Rows(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := repository.RunPipeline(c.Request.Context(), stats.Build(filters))
	if err != nil {
		h.log.Error("Aggregation pipeline failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error aggregating assessments"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// Chart returns the risk-level distribution of the matching assessments as
// an echarts option document the admin dashboard renders directly.
func (h *StatisticsHandler) Chart(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := repository.RunPipeline(c.Request.Context(), stats.Build(filters))
	if err != nil {
		h.log.Error("Aggregation pipeline failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error aggregating assessments"})
		return
	}

	c.JSON(http.StatusOK, generateDistributionChart(rows).JSON())
}

// parseFilters maps the flat query mapping to typed filter criteria.
// Absent keys are left unset and simply not filtered on.
func parseFilters(c *gin.Context) (stats.Filters, error) {
	var f stats.Filters

	if v := c.Query("dateFrom"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid dateFrom %q, expected YYYY-MM-DD", v)
		}
		f.From = &t
	}
	if v := c.Query("dateTo"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid dateTo %q, expected YYYY-MM-DD", v)
		}
		// Inclusive upper bound: extend to the end of the day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.To = &t
	}
	f.Career = c.Query("career")
	f.Gender = c.Query("gender")
	if v := c.Query("riskLevel"); v != "" {
		level := models.RiskLevel(v)
		if !level.Valid() {
			return f, fmt.Errorf("unknown risk level %q", v)
		}
		f.RiskLevel = level
	}
	if v := c.Query("psychologist"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, fmt.Errorf("invalid psychologist id %q", v)
		}
		f.PsychologistID = &id
	}

	return f, nil
}

// riskLevelOrder fixes the bar order from lowest to highest risk.
var riskLevelOrder = []models.RiskLevel{
	models.RiskLow,
	models.RiskModerateLow,
	models.RiskModerate,
	models.RiskHigh,
	models.RiskVeryHigh,
	models.RiskExtreme,
}

func generateDistributionChart(rows []stats.Row) *charts.Bar {
	counts := make(map[models.RiskLevel]int)
	for _, row := range rows {
		counts[row.IdeationRiskLevel]++
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Assessments by Risk Level",
			Subtitle: fmt.Sprintf("%d assessments", len(rows)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(riskLevelOrder))
	items := make([]opts.BarData, 0, len(riskLevelOrder))
	for _, level := range riskLevelOrder {
		labels = append(labels, string(level))
		items = append(items, opts.BarData{Value: counts[level]})
	}

	bar.SetXAxis(labels).AddSeries("Assessments", items)
	return bar
}
