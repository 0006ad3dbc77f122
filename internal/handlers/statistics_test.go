package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/Dennisdaviddante/teissi-app/internal/stats"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/statistics"+query, nil)
	return c
}

func TestParseFiltersEmptyQuery(t *testing.T) {
	f, err := parseFilters(filterContext(t, ""))
	require.NoError(t, err)
	assert.True(t, f.Empty())
}

func TestParseFiltersFullQuery(t *testing.T) {
	psychID := uuid.New()
	f, err := parseFilters(filterContext(t,
		"?dateFrom=2024-01-01&dateTo=2024-06-30&career=Derecho&gender=F&riskLevel=ALTO&psychologist="+psychID.String()))
	require.NoError(t, err)

	require.NotNil(t, f.From)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.From)
	// Upper bound is inclusive for the whole day.
	require.NotNil(t, f.To)
	assert.Equal(t, 30, f.To.Day())
	assert.Equal(t, 23, f.To.Hour())

	assert.Equal(t, "Derecho", f.Career)
	assert.Equal(t, "F", f.Gender)
	assert.Equal(t, models.RiskHigh, f.RiskLevel)
	require.NotNil(t, f.PsychologistID)
	assert.Equal(t, psychID, *f.PsychologistID)
}

func TestParseFiltersRejectsMalformedDate(t *testing.T) {
	_, err := parseFilters(filterContext(t, "?dateFrom=01-01-2024"))
	assert.Error(t, err)
}

func TestParseFiltersRejectsUnknownRiskLevel(t *testing.T) {
	_, err := parseFilters(filterContext(t, "?riskLevel=CRITICO"))
	assert.Error(t, err)
}

func TestParseFiltersRejectsBadPsychologistID(t *testing.T) {
	_, err := parseFilters(filterContext(t, "?psychologist=not-a-uuid"))
	assert.Error(t, err)
}

func TestGenerateDistributionChartCountsLevels(t *testing.T) {
	rows := []stats.Row{
		{IdeationRiskLevel: models.RiskLow},
		{IdeationRiskLevel: models.RiskLow},
		{IdeationRiskLevel: models.RiskVeryHigh},
	}

	bar := generateDistributionChart(rows)
	require.Len(t, bar.MultiSeries, 1)
	assert.Equal(t, "Assessments", bar.MultiSeries[0].Name)
	// One bar per declared risk level, lowest to highest.
	assert.Len(t, bar.MultiSeries[0].Data, len(riskLevelOrder))
}
