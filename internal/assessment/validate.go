package assessment

import (
	"math"

	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/google/uuid"
)

// requiredField names one answer a rule can demand, with a predicate that
// reports whether the submission supplied it.
type requiredField struct {
	path     string
	supplied func(a *models.SuicideAssessment) bool
}

// dependencyRule is one branch of the interview flow: when its predicate
// holds, every listed field must have been answered explicitly.
type dependencyRule struct {
	name     string
	when     func(a *models.SuicideAssessment) bool
	requires []requiredField
}

// The three rules encode the branching of the interview form: affirmative
// non-specific ideation opens the detailed ideation items, any ideation
// opens the intensity block, and a full denial of ideation opens the
// behavior screening block instead.
var dependencyRules = []dependencyRule{
	{
		name: "detailed ideation items follow non-specific active thoughts",
		when: func(a *models.SuicideAssessment) bool {
			return a.NonSpecificActiveSuicidalThoughts.Present != nil && *a.NonSpecificActiveSuicidalThoughts.Present
		},
		requires: []requiredField{
			{"activeSuicidalIdeationWithMethods.present", func(a *models.SuicideAssessment) bool {
				return a.ActiveSuicidalIdeationWithMethods.Present != nil
			}},
			{"activeSuicidalIdeationWithIntent.present", func(a *models.SuicideAssessment) bool {
				return a.ActiveSuicidalIdeationWithIntent.Present != nil
			}},
			{"activeSuicidalIdeationWithPlan.present", func(a *models.SuicideAssessment) bool {
				return a.ActiveSuicidalIdeationWithPlan.Present != nil
			}},
		},
	},
	{
		name: "intensity block follows any reported ideation",
		when: func(a *models.SuicideAssessment) bool { return a.AnyIdeation() },
		requires: []requiredField{
			{"ideationIntensity.mostSeriousIdeationType", func(a *models.SuicideAssessment) bool {
				return a.IdeationIntensity.MostSeriousIdeationType != nil
			}},
			{"ideationIntensity.mostSeriousIdeationDescription", func(a *models.SuicideAssessment) bool {
				return a.IdeationIntensity.MostSeriousIdeationDescription != ""
			}},
			{"ideationIntensity.frequency", func(a *models.SuicideAssessment) bool {
				return a.IdeationIntensity.Frequency != nil
			}},
		},
	},
	{
		name: "behavior screening follows denial of all ideation",
		when: func(a *models.SuicideAssessment) bool { return a.IdeationDenied() },
		requires: []requiredField{
			{"actualAttempt.present", func(a *models.SuicideAssessment) bool {
				return a.ActualAttempt.Present != nil
			}},
			{"nonSuicidalSelfInjury.present", func(a *models.SuicideAssessment) bool {
				return a.NonSuicidalSelfInjury.Present != nil
			}},
			{"unknownIntentSelfInjury.present", func(a *models.SuicideAssessment) bool {
				return a.UnknownIntentSelfInjury.Present != nil
			}},
			{"interruptedAttempt.present", func(a *models.SuicideAssessment) bool {
				return a.InterruptedAttempt.Present != nil
			}},
			{"abortedAttempt.present", func(a *models.SuicideAssessment) bool {
				return a.AbortedAttempt.Present != nil
			}},
			{"preparatoryActs.present", func(a *models.SuicideAssessment) bool {
				return a.PreparatoryActs.Present != nil
			}},
		},
	},
}

// Validate checks a candidate record against the unconditional requirements
// and every dependency rule, collecting all missing fields before failing so
// the caller can re-prompt in one round. Numeric bounds are checked after
// the structural rules pass. Runs before any persistence attempt; a failure
// blocks the write entirely.
func Validate(a *models.SuicideAssessment) error {
	var missing []string

	if a.StudentID == uuid.Nil {
		missing = append(missing, "student")
	}
	if a.PsychologistID == uuid.Nil {
		missing = append(missing, "psychologist")
	}
	if a.DeathWish.Present == nil {
		missing = append(missing, "deathWish.present")
	}
	if a.NonSpecificActiveSuicidalThoughts.Present == nil {
		missing = append(missing, "nonSpecificActiveSuicidalThoughts.present")
	}

	for _, rule := range dependencyRules {
		if !rule.when(a) {
			continue
		}
		for _, f := range rule.requires {
			if !f.supplied(a) {
				missing = append(missing, f.path)
			}
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	return checkRanges(a)
}

func checkRanges(a *models.SuicideAssessment) error {
	if t := a.IdeationIntensity.MostSeriousIdeationType; t != nil && (*t < 1 || *t > 5) {
		return &RangeError{Field: "ideationIntensity.mostSeriousIdeationType", Value: *t, Min: 1, Max: 5}
	}
	if f := a.IdeationIntensity.Frequency; f != nil && (*f < models.FrequencyUnknown || *f > models.FrequencyConstant) {
		return &RangeError{Field: "ideationIntensity.frequency", Value: *f, Min: models.FrequencyUnknown, Max: models.FrequencyConstant}
	}
	if f := a.ActiveSuicidalIdeationWithPlan.Frequency; f < 0 {
		return &RangeError{Field: "activeSuicidalIdeationWithPlan.frequency", Value: f, Min: 0, Max: math.MaxInt}
	}
	if d := a.LethalityDegree; d < 0 || d > 5 {
		return &RangeError{Field: "lethalityDegree", Value: d, Min: 0, Max: 5}
	}
	if p := a.PotentialLethality; p != nil && (*p < 0 || *p > 2) {
		return &RangeError{Field: "potentialLethality", Value: *p, Min: 0, Max: 2}
	}
	return nil
}
