package assessment

import (
	"fmt"

	"github.com/Dennisdaviddante/teissi-app/internal/models"
)

// Score derives the risk level from the ideation-intensity block alone.
// With no ideation type recorded the interview scored no ideation at all
// and the level is BAJO. Otherwise the type code (1-5) and the frequency
// code (0-4) are averaged into a single figure and mapped through fixed
// thresholds. EXTREMO is never produced here; it only exists as an
// administrative override.
func Score(intensity models.IdeationIntensity) models.RiskLevel {
	if intensity.MostSeriousIdeationType == nil {
		return models.RiskLow
	}

	frequency := models.FrequencyUnknown
	if intensity.Frequency != nil {
		frequency = *intensity.Frequency
	}

	trueRisk := float64(*intensity.MostSeriousIdeationType+frequency) / 2

	switch {
	case trueRisk <= 1.5:
		return models.RiskLow
	case trueRisk <= 2.5:
		return models.RiskModerateLow
	case trueRisk <= 3.5:
		return models.RiskModerate
	case trueRisk <= 4.0:
		return models.RiskHigh
	default:
		return models.RiskVeryHigh
	}
}

// RiskAssignment tags a risk level with how it was obtained, so computed
// and manually overridden levels cannot silently diverge in storage.
type RiskAssignment struct {
	Level      models.RiskLevel
	Overridden bool
	Reason     string
}

// Computed scores the intensity block and returns an automatic assignment.
func Computed(intensity models.IdeationIntensity) RiskAssignment {
	return RiskAssignment{Level: Score(intensity)}
}

// Override builds a manual assignment. It is the only path that may assign
// EXTREMO, and it demands a reason for the audit trail.
func Override(level models.RiskLevel, reason string) (RiskAssignment, error) {
	if !level.Valid() {
		return RiskAssignment{}, fmt.Errorf("unknown risk level %q", level)
	}
	if reason == "" {
		return RiskAssignment{}, fmt.Errorf("a risk level override requires a reason")
	}
	return RiskAssignment{Level: level, Overridden: true, Reason: reason}, nil
}

// Apply writes the assignment onto the record.
func (r RiskAssignment) Apply(a *models.SuicideAssessment) {
	a.RiskLevel = r.Level
	a.RiskOverridden = r.Overridden
	a.OverrideReason = r.Reason
}

// Audit recomputes the risk level of a stored record and compares it with
// the persisted one. Overridden records are exempt: their level was set
// deliberately outside the scoring path. Intended to run whenever a record
// is read back, since level and answers are independently writable at the
// storage layer.
func Audit(a *models.SuicideAssessment) error {
	if a.RiskOverridden {
		return nil
	}
	computed := Score(a.IdeationIntensity)
	if computed != a.RiskLevel {
		return &DriftError{Stored: string(a.RiskLevel), Computed: string(computed)}
	}
	return nil
}
