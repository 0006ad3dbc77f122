package stats

import (
	"time"

	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/google/uuid"
)

// StudentSummary is the joined student, empty when the reference dangles.
type StudentSummary struct {
	Career    string     `json:"career,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
}

// PsychologistSummary is the joined interviewer, empty when dangling.
type PsychologistSummary struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Row is one projected assessment as returned to the statistics surface.
// Its JSON keys mirror ProjectedFields exactly; nothing else is emitted.
type Row struct {
	ID   uuid.UUID `json:"id"`
	Date time.Time `json:"date"`

	// Both levels are projections of the single stored risk level. The
	// consumer expects the two keys separately even though the record
	// carries one classification.
	IdeationRiskLevel models.RiskLevel `json:"ideationRiskLevel"`
	BehaviorRiskLevel models.RiskLevel `json:"behaviorRiskLevel"`

	DeathWish                         models.ItemAnswer    `json:"deathWish"`
	NonSpecificActiveSuicidalThoughts models.ItemAnswer    `json:"nonSpecificActiveSuicidalThoughts"`
	ActiveSuicidalIdeationWithMethods models.ItemAnswer    `json:"activeSuicidalIdeationWithMethods"`
	ActiveSuicidalIdeationWithIntent  models.ItemAnswer    `json:"activeSuicidalIdeationWithIntent"`
	ActiveSuicidalIdeationWithPlan    models.PlanAnswer    `json:"activeSuicidalIdeationWithPlan"`
	ActualAttempt                     models.AttemptAnswer `json:"actualAttempt"`
	InterruptedAttempt                models.AttemptAnswer `json:"interruptedAttempt"`
	AbortedAttempt                    models.AttemptAnswer `json:"abortedAttempt"`
	PreparatoryActs                   models.ItemAnswer    `json:"preparatoryActs"`

	Student      StudentSummary      `json:"student"`
	Psychologist PsychologistSummary `json:"psychologist"`
}

// Project reduces one assessment plus its joined entities to a Row. Either
// joined entity may be nil; the row is kept with empty placeholders.
func Project(a *models.SuicideAssessment, student *models.Student, psychologist *models.User) Row {
	row := Row{
		ID:                                a.ID,
		Date:                              a.Date,
		IdeationRiskLevel:                 a.RiskLevel,
		BehaviorRiskLevel:                 a.RiskLevel,
		DeathWish:                         a.DeathWish,
		NonSpecificActiveSuicidalThoughts: a.NonSpecificActiveSuicidalThoughts,
		ActiveSuicidalIdeationWithMethods: a.ActiveSuicidalIdeationWithMethods,
		ActiveSuicidalIdeationWithIntent:  a.ActiveSuicidalIdeationWithIntent,
		ActiveSuicidalIdeationWithPlan:    a.ActiveSuicidalIdeationWithPlan,
		ActualAttempt:                     a.ActualAttempt,
		InterruptedAttempt:                a.InterruptedAttempt,
		AbortedAttempt:                    a.AbortedAttempt,
		PreparatoryActs:                   a.PreparatoryActs,
	}
	if student != nil {
		row.Student = StudentSummary{
			Career: student.Career,
			Gender: student.Gender,
		}
		if !student.BirthDate.IsZero() {
			birthDate := student.BirthDate
			row.Student.BirthDate = &birthDate
		}
	}
	if psychologist != nil {
		row.Psychologist = PsychologistSummary{
			FirstName: psychologist.FirstName,
			LastName:  psychologist.LastName,
		}
	}
	return row
}
