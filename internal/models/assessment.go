package models

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel is the classification stored on every persisted assessment.
// The labels are kept in Spanish because the institution's reporting
// tooling consumes them verbatim.
type RiskLevel string

const (
	RiskLow         RiskLevel = "BAJO"
	RiskModerateLow RiskLevel = "MODERADO-BAJO"
	RiskModerate    RiskLevel = "MODERADO"
	RiskHigh        RiskLevel = "ALTO"
	RiskVeryHigh    RiskLevel = "MUY_ALTO"
	RiskExtreme     RiskLevel = "EXTREMO"
)

// Valid reports whether l is one of the six declared levels.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskModerateLow, RiskModerate, RiskHigh, RiskVeryHigh, RiskExtreme:
		return true
	}
	return false
}

// Ideation frequency codes for the intensity block.
const (
	FrequencyUnknown  = 0 // doesn't know / not applicable
	FrequencyOnce     = 1
	FrequencyFewTimes = 2
	FrequencyMany     = 3
	FrequencyConstant = 4
)

// ItemAnswer is one interview item: whether the thought or act is present,
// plus the clinician's free-text note. Present is a pointer so an omitted
// answer is distinguishable from an explicit "no".
type ItemAnswer struct {
	Present     *bool  `json:"present"`
	Description string `json:"description,omitempty"`
}

// AttemptAnswer extends ItemAnswer with a lifetime attempt count.
type AttemptAnswer struct {
	Present       *bool  `json:"present"`
	Description   string `json:"description,omitempty"`
	TotalAttempts int    `json:"totalAttempts"`
}

// PlanAnswer is the "ideation with plan" item, which also records how
// often the plan has been thought through.
type PlanAnswer struct {
	Present     *bool  `json:"present"`
	Description string `json:"description"`
	Frequency   int    `json:"frequency"`
}

// IdeationIntensity captures the most serious ideation reported during the
// interview. All three fields become mandatory as soon as any ideation item
// is answered affirmatively.
type IdeationIntensity struct {
	MostSeriousIdeationType        *int   `json:"mostSeriousIdeationType,omitempty"`
	MostSeriousIdeationDescription string `json:"mostSeriousIdeationDescription,omitempty"`
	Frequency                      *int   `json:"frequency,omitempty"`
}

// SuicideAssessment is one clinical interview. Records are written once by
// the interviewing psychologist and never deleted; the only later mutation
// is an administrative risk-level override.
type SuicideAssessment struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	StudentID      uuid.UUID `json:"student" gorm:"type:uuid;index"`
	Student        *Student  `json:"-" gorm:"foreignKey:StudentID"`
	PsychologistID uuid.UUID `json:"psychologist" gorm:"type:uuid;index"`
	Psychologist   *User     `json:"-" gorm:"foreignKey:PsychologistID"`
	Date           time.Time `json:"date"`

	// Ideation
	DeathWish                         ItemAnswer `json:"deathWish" gorm:"embedded;embeddedPrefix:death_wish_"`
	NonSpecificActiveSuicidalThoughts ItemAnswer `json:"nonSpecificActiveSuicidalThoughts" gorm:"embedded;embeddedPrefix:non_specific_thoughts_"`
	ActiveSuicidalIdeationWithMethods ItemAnswer `json:"activeSuicidalIdeationWithMethods" gorm:"embedded;embeddedPrefix:ideation_methods_"`
	ActiveSuicidalIdeationWithIntent  ItemAnswer `json:"activeSuicidalIdeationWithIntent" gorm:"embedded;embeddedPrefix:ideation_intent_"`
	ActiveSuicidalIdeationWithPlan    PlanAnswer `json:"activeSuicidalIdeationWithPlan" gorm:"embedded;embeddedPrefix:ideation_plan_"`

	IdeationIntensity IdeationIntensity `json:"ideationIntensity" gorm:"embedded;embeddedPrefix:intensity_"`

	RiskLevel      RiskLevel `json:"riskLevel" gorm:"type:varchar(16)"`
	RiskOverridden bool      `json:"riskOverridden"`
	OverrideReason string    `json:"overrideReason,omitempty"`

	Observations string `json:"observations,omitempty"`

	// Behavior
	ActualAttempt           AttemptAnswer `json:"actualAttempt" gorm:"embedded;embeddedPrefix:actual_attempt_"`
	NonSuicidalSelfInjury   ItemAnswer    `json:"nonSuicidalSelfInjury" gorm:"embedded;embeddedPrefix:nssi_"`
	UnknownIntentSelfInjury ItemAnswer    `json:"unknownIntentSelfInjury" gorm:"embedded;embeddedPrefix:unknown_intent_"`
	InterruptedAttempt      AttemptAnswer `json:"interruptedAttempt" gorm:"embedded;embeddedPrefix:interrupted_attempt_"`
	AbortedAttempt          AttemptAnswer `json:"abortedAttempt" gorm:"embedded;embeddedPrefix:aborted_attempt_"`
	PreparatoryActs         ItemAnswer    `json:"preparatoryActs" gorm:"embedded;embeddedPrefix:preparatory_acts_"`

	// Outcome
	CompletedSuicide      bool       `json:"completedSuicide"`
	MostLethalAttemptDate *time.Time `json:"mostLethalAttemptDate,omitempty"`
	LethalityDegree       int        `json:"lethalityDegree"`
	PotentialLethality    *int       `json:"potentialLethality,omitempty"`
	FinalRemarks          string     `json:"finalRemarks"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// AnyIdeation reports whether the interview recorded any suicidal ideation.
// Unanswered items count as no ideation.
func (a *SuicideAssessment) AnyIdeation() bool {
	return boolValue(a.DeathWish.Present) || boolValue(a.NonSpecificActiveSuicidalThoughts.Present)
}

// IdeationDenied reports whether both screening items were explicitly
// answered "no". This is what gates the behavior block; an omitted answer
// is not a denial.
func (a *SuicideAssessment) IdeationDenied() bool {
	return explicitlyFalse(a.DeathWish.Present) && explicitlyFalse(a.NonSpecificActiveSuicidalThoughts.Present)
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

func explicitlyFalse(b *bool) bool {
	return b != nil && !*b
}
