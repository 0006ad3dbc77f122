package assessment

import (
	"testing"

	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

// baseRecord returns a minimal record with both screening items answered
// "no" and the full behavior block supplied, which passes validation.
func baseRecord() *models.SuicideAssessment {
	return &models.SuicideAssessment{
		StudentID:                         uuid.New(),
		PsychologistID:                    uuid.New(),
		DeathWish:                         models.ItemAnswer{Present: boolPtr(false)},
		NonSpecificActiveSuicidalThoughts: models.ItemAnswer{Present: boolPtr(false)},
		ActualAttempt:                     models.AttemptAnswer{Present: boolPtr(false)},
		NonSuicidalSelfInjury:             models.ItemAnswer{Present: boolPtr(false)},
		UnknownIntentSelfInjury:           models.ItemAnswer{Present: boolPtr(false)},
		InterruptedAttempt:                models.AttemptAnswer{Present: boolPtr(false)},
		AbortedAttempt:                    models.AttemptAnswer{Present: boolPtr(false)},
		PreparatoryActs:                   models.ItemAnswer{Present: boolPtr(false)},
	}
}

// ideationRecord returns a record reporting ideation with the intensity
// block and detailed ideation items fully supplied.
func ideationRecord() *models.SuicideAssessment {
	return &models.SuicideAssessment{
		StudentID:                         uuid.New(),
		PsychologistID:                    uuid.New(),
		DeathWish:                         models.ItemAnswer{Present: boolPtr(true), Description: "expressed during session"},
		NonSpecificActiveSuicidalThoughts: models.ItemAnswer{Present: boolPtr(true)},
		ActiveSuicidalIdeationWithMethods: models.ItemAnswer{Present: boolPtr(false)},
		ActiveSuicidalIdeationWithIntent:  models.ItemAnswer{Present: boolPtr(false)},
		ActiveSuicidalIdeationWithPlan:    models.PlanAnswer{Present: boolPtr(false)},
		IdeationIntensity: models.IdeationIntensity{
			MostSeriousIdeationType:        intPtr(2),
			MostSeriousIdeationDescription: "passive thoughts, no plan",
			Frequency:                      intPtr(models.FrequencyFewTimes),
		},
	}
}

func missingFields(t *testing.T, err error) []string {
	t.Helper()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	return vErr.Fields
}

func TestValidateAcceptsCompleteDenialRecord(t *testing.T) {
	assert.NoError(t, Validate(baseRecord()))
}

func TestValidateAcceptsCompleteIdeationRecord(t *testing.T) {
	assert.NoError(t, Validate(ideationRecord()))
}

func TestValidateRequiresScreeningAnswers(t *testing.T) {
	record := baseRecord()
	record.DeathWish.Present = nil
	record.NonSpecificActiveSuicidalThoughts.Present = nil

	fields := missingFields(t, Validate(record))
	assert.Contains(t, fields, "deathWish.present")
	assert.Contains(t, fields, "nonSpecificActiveSuicidalThoughts.present")
}

func TestValidateRequiresReferences(t *testing.T) {
	record := baseRecord()
	record.StudentID = uuid.Nil
	record.PsychologistID = uuid.Nil

	fields := missingFields(t, Validate(record))
	assert.Contains(t, fields, "student")
	assert.Contains(t, fields, "psychologist")
}

func TestValidateDetailedIdeationGatedByNonSpecificThoughts(t *testing.T) {
	tests := []struct {
		name string
		omit func(a *models.SuicideAssessment)
		want string
	}{
		{
			"methods omitted",
			func(a *models.SuicideAssessment) { a.ActiveSuicidalIdeationWithMethods.Present = nil },
			"activeSuicidalIdeationWithMethods.present",
		},
		{
			"intent omitted",
			func(a *models.SuicideAssessment) { a.ActiveSuicidalIdeationWithIntent.Present = nil },
			"activeSuicidalIdeationWithIntent.present",
		},
		{
			"plan omitted",
			func(a *models.SuicideAssessment) { a.ActiveSuicidalIdeationWithPlan.Present = nil },
			"activeSuicidalIdeationWithPlan.present",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := ideationRecord()
			tt.omit(record)
			fields := missingFields(t, Validate(record))
			assert.Equal(t, []string{tt.want}, fields)
		})
	}
}

func TestValidateIntensityGatedByAnyIdeation(t *testing.T) {
	// Death wish alone, without non-specific thoughts, still opens the
	// intensity block.
	record := baseRecord()
	record.DeathWish = models.ItemAnswer{Present: boolPtr(true)}

	fields := missingFields(t, Validate(record))
	assert.ElementsMatch(t, []string{
		"ideationIntensity.mostSeriousIdeationType",
		"ideationIntensity.mostSeriousIdeationDescription",
		"ideationIntensity.frequency",
	}, fields)
}

func TestValidateBehaviorBlockGatedByIdeationDenial(t *testing.T) {
	record := baseRecord()
	record.ActualAttempt.Present = nil
	record.InterruptedAttempt.Present = nil
	record.PreparatoryActs.Present = nil

	fields := missingFields(t, Validate(record))
	assert.ElementsMatch(t, []string{
		"actualAttempt.present",
		"interruptedAttempt.present",
		"preparatoryActs.present",
	}, fields)
}

func TestValidateBehaviorBlockNotRequiredWithIdeation(t *testing.T) {
	// With ideation reported the behavior screening is not mandatory.
	record := ideationRecord()
	record.ActualAttempt.Present = nil
	assert.NoError(t, Validate(record))
}

func TestValidateCollectsAllViolationsAtOnce(t *testing.T) {
	record := ideationRecord()
	record.ActiveSuicidalIdeationWithMethods.Present = nil
	record.IdeationIntensity.Frequency = nil

	fields := missingFields(t, Validate(record))
	assert.ElementsMatch(t, []string{
		"activeSuicidalIdeationWithMethods.present",
		"ideationIntensity.frequency",
	}, fields)
}

func TestValidateRangeChecks(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(a *models.SuicideAssessment)
		wantField string
	}{
		{
			"ideation type above bound",
			func(a *models.SuicideAssessment) { a.IdeationIntensity.MostSeriousIdeationType = intPtr(6) },
			"ideationIntensity.mostSeriousIdeationType",
		},
		{
			"ideation type below bound",
			func(a *models.SuicideAssessment) { a.IdeationIntensity.MostSeriousIdeationType = intPtr(0) },
			"ideationIntensity.mostSeriousIdeationType",
		},
		{
			"frequency above bound",
			func(a *models.SuicideAssessment) { a.IdeationIntensity.Frequency = intPtr(5) },
			"ideationIntensity.frequency",
		},
		{
			"lethality degree above bound",
			func(a *models.SuicideAssessment) { a.LethalityDegree = 6 },
			"lethalityDegree",
		},
		{
			"potential lethality above bound",
			func(a *models.SuicideAssessment) { a.PotentialLethality = intPtr(3) },
			"potentialLethality",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := ideationRecord()
			tt.mutate(record)
			err := Validate(record)
			var rErr *RangeError
			require.ErrorAs(t, err, &rErr)
			assert.Equal(t, tt.wantField, rErr.Field)
		})
	}
}
