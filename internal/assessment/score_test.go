package assessment

import (
	"testing"

	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestScoreNoIdeationType(t *testing.T) {
	level := Score(models.IdeationIntensity{})
	assert.Equal(t, models.RiskLow, level)
}

func TestScoreThresholds(t *testing.T) {
	tests := []struct {
		name      string
		ideaType  int
		frequency int
		want      models.RiskLevel
	}{
		{"lowest possible", 1, 0, models.RiskLow},
		{"upper edge of low", 2, 1, models.RiskLow},
		{"upper edge of moderate-low", 3, 2, models.RiskModerateLow},
		{"upper edge of moderate", 4, 3, models.RiskModerate},
		{"exactly high", 4, 4, models.RiskHigh},
		{"very high", 5, 4, models.RiskVeryHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intensity := models.IdeationIntensity{
				MostSeriousIdeationType: intPtr(tt.ideaType),
				Frequency:               intPtr(tt.frequency),
			}
			assert.Equal(t, tt.want, Score(intensity))
		})
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	intensity := models.IdeationIntensity{
		MostSeriousIdeationType: intPtr(3),
		Frequency:               intPtr(2),
	}
	first := Score(intensity)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(intensity))
	}
}

func TestScoreMissingFrequencyCountsAsUnknown(t *testing.T) {
	// Type 5 with no frequency recorded averages to 2.5.
	intensity := models.IdeationIntensity{MostSeriousIdeationType: intPtr(5)}
	assert.Equal(t, models.RiskModerateLow, Score(intensity))
}

func TestOverrideRejectsUnknownLevel(t *testing.T) {
	_, err := Override(models.RiskLevel("CRITICO"), "clinical judgment")
	assert.Error(t, err)
}

func TestOverrideRequiresReason(t *testing.T) {
	_, err := Override(models.RiskExtreme, "")
	assert.Error(t, err)
}

func TestOverrideAllowsExtreme(t *testing.T) {
	assignment, err := Override(models.RiskExtreme, "imminent danger reported by family")
	require.NoError(t, err)
	assert.Equal(t, models.RiskExtreme, assignment.Level)
	assert.True(t, assignment.Overridden)

	var record models.SuicideAssessment
	assignment.Apply(&record)
	assert.Equal(t, models.RiskExtreme, record.RiskLevel)
	assert.True(t, record.RiskOverridden)
	assert.Equal(t, "imminent danger reported by family", record.OverrideReason)
}

func TestAuditDetectsDrift(t *testing.T) {
	record := models.SuicideAssessment{
		IdeationIntensity: models.IdeationIntensity{
			MostSeriousIdeationType: intPtr(5),
			Frequency:               intPtr(4),
		},
		RiskLevel: models.RiskLow,
	}

	err := Audit(&record)
	require.Error(t, err)
	var drift *DriftError
	require.ErrorAs(t, err, &drift)
	assert.Equal(t, string(models.RiskLow), drift.Stored)
	assert.Equal(t, string(models.RiskVeryHigh), drift.Computed)
}

func TestAuditSkipsOverriddenRecords(t *testing.T) {
	record := models.SuicideAssessment{
		RiskLevel:      models.RiskExtreme,
		RiskOverridden: true,
		OverrideReason: "manual escalation",
	}
	assert.NoError(t, Audit(&record))
}

func TestAuditAcceptsConsistentRecord(t *testing.T) {
	intensity := models.IdeationIntensity{
		MostSeriousIdeationType: intPtr(3),
		Frequency:               intPtr(2),
	}
	record := models.SuicideAssessment{IdeationIntensity: intensity}
	Computed(intensity).Apply(&record)
	assert.NoError(t, Audit(&record))
}
