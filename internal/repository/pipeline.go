package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dennisdaviddante/teissi-app/internal/database"
	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/Dennisdaviddante/teissi-app/internal/stats"
	"github.com/google/uuid"
)

// pipelineRow is the flat scan target for the aggregation query. Joined
// columns are pointers because a dangling reference leaves them NULL.
type pipelineRow struct {
	ID        uuid.UUID
	Date      time.Time
	RiskLevel models.RiskLevel

	DeathWishPresent                *bool
	DeathWishDescription            string
	NonSpecificThoughtsPresent      *bool
	NonSpecificThoughtsDescription  string
	IdeationMethodsPresent          *bool
	IdeationMethodsDescription      string
	IdeationIntentPresent           *bool
	IdeationIntentDescription       string
	IdeationPlanPresent             *bool
	IdeationPlanDescription         string
	IdeationPlanFrequency           int
	ActualAttemptPresent            *bool
	ActualAttemptDescription        string
	ActualAttemptTotalAttempts      int
	InterruptedAttemptPresent       *bool
	InterruptedAttemptDescription   string
	InterruptedAttemptTotalAttempts int
	AbortedAttemptPresent           *bool
	AbortedAttemptDescription       string
	AbortedAttemptTotalAttempts     int
	PreparatoryActsPresent          *bool
	PreparatoryActsDescription      string

	StudentCareer         *string
	StudentGender         *string
	StudentBirthDate      *time.Time
	PsychologistFirstName *string
	PsychologistLastName  *string
}

// projectionColumns maps each logical projected field to the SQL select
// expressions that realize it. Only fields listed in the project stage are
// selected, so free-text clinical notes outside the list never leave the
// store.
var projectionColumns = map[string][]string{
	"id":                                {"suicide_assessments.id"},
	"date":                              {"suicide_assessments.date"},
	"ideationRiskLevel":                 {"suicide_assessments.risk_level"},
	"behaviorRiskLevel":                 {}, // alias of risk_level, selected once
	"deathWish":                         {"suicide_assessments.death_wish_present", "suicide_assessments.death_wish_description"},
	"nonSpecificActiveSuicidalThoughts": {"suicide_assessments.non_specific_thoughts_present", "suicide_assessments.non_specific_thoughts_description"},
	"activeSuicidalIdeationWithMethods": {"suicide_assessments.ideation_methods_present", "suicide_assessments.ideation_methods_description"},
	"activeSuicidalIdeationWithIntent":  {"suicide_assessments.ideation_intent_present", "suicide_assessments.ideation_intent_description"},
	"activeSuicidalIdeationWithPlan":    {"suicide_assessments.ideation_plan_present", "suicide_assessments.ideation_plan_description", "suicide_assessments.ideation_plan_frequency"},
	"actualAttempt":                     {"suicide_assessments.actual_attempt_present", "suicide_assessments.actual_attempt_description", "suicide_assessments.actual_attempt_total_attempts"},
	"interruptedAttempt":                {"suicide_assessments.interrupted_attempt_present", "suicide_assessments.interrupted_attempt_description", "suicide_assessments.interrupted_attempt_total_attempts"},
	"abortedAttempt":                    {"suicide_assessments.aborted_attempt_present", "suicide_assessments.aborted_attempt_description", "suicide_assessments.aborted_attempt_total_attempts"},
	"preparatoryActs":                   {"suicide_assessments.preparatory_acts_present", "suicide_assessments.preparatory_acts_description"},
	"student.career":                    {"students.career AS student_career"},
	"student.gender":                    {"students.gender AS student_gender"},
	"student.birthDate":                 {"students.birth_date AS student_birth_date"},
	"psychologist.firstName":            {"users.first_name AS psychologist_first_name"},
	"psychologist.lastName":             {"users.last_name AS psychologist_last_name"},
}

// RunPipeline translates the stage sequence into one SQL query, executes
// it and returns the projected rows. All-or-nothing: any store failure is
// surfaced as a StoreError and no partial result is returned. An empty
// result is a valid non-nil empty slice, never an error.
func RunPipeline(ctx context.Context, p stats.Pipeline) ([]stats.Row, error) {
	var (
		selects    []string
		joins      []string
		conditions []string
		args       []interface{}
	)

	for _, stage := range p {
		switch stage.Kind {
		case stats.StageMatch:
			conditions, args = matchConditions(stage.Match.Filters)
		case stats.StageJoin:
			joins = append(joins, fmt.Sprintf(
				"LEFT JOIN %s ON %s.id = suicide_assessments.%s",
				stage.Join.Entity, stage.Join.Entity, stage.Join.LocalKey,
			))
		case stats.StageProject:
			for _, field := range stage.Project.Fields {
				selects = append(selects, projectionColumns[field]...)
			}
		}
	}

	query := "SELECT " + strings.Join(selects, ", ") +
		" FROM suicide_assessments " + strings.Join(joins, " ")
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY suicide_assessments.date"

	var scanned []pipelineRow
	if err := database.DB.WithContext(ctx).Raw(query, args...).Scan(&scanned).Error; err != nil {
		return nil, &StoreError{Op: "run aggregation pipeline", Err: err}
	}

	rows := make([]stats.Row, 0, len(scanned))
	for i := range scanned {
		rows = append(rows, assembleRow(&scanned[i]))
	}
	return rows, nil
}

func matchConditions(f stats.Filters) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	if f.From != nil {
		conditions = append(conditions, "suicide_assessments.date >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		conditions = append(conditions, "suicide_assessments.date <= ?")
		args = append(args, *f.To)
	}
	if f.Career != "" {
		conditions = append(conditions, "students.career = ?")
		args = append(args, f.Career)
	}
	if f.Gender != "" {
		conditions = append(conditions, "students.gender = ?")
		args = append(args, f.Gender)
	}
	if f.RiskLevel != "" {
		conditions = append(conditions, "suicide_assessments.risk_level = ?")
		args = append(args, f.RiskLevel)
	}
	if f.PsychologistID != nil {
		conditions = append(conditions, "suicide_assessments.psychologist_id = ?")
		args = append(args, *f.PsychologistID)
	}
	return conditions, args
}

// assembleRow rebuilds the projected shape from the flat scan, feeding the
// shared projection so repository output and in-memory projection agree.
func assembleRow(r *pipelineRow) stats.Row {
	record := models.SuicideAssessment{
		ID:        r.ID,
		Date:      r.Date,
		RiskLevel: r.RiskLevel,
		DeathWish: models.ItemAnswer{Present: r.DeathWishPresent, Description: r.DeathWishDescription},
		NonSpecificActiveSuicidalThoughts: models.ItemAnswer{
			Present: r.NonSpecificThoughtsPresent, Description: r.NonSpecificThoughtsDescription,
		},
		ActiveSuicidalIdeationWithMethods: models.ItemAnswer{
			Present: r.IdeationMethodsPresent, Description: r.IdeationMethodsDescription,
		},
		ActiveSuicidalIdeationWithIntent: models.ItemAnswer{
			Present: r.IdeationIntentPresent, Description: r.IdeationIntentDescription,
		},
		ActiveSuicidalIdeationWithPlan: models.PlanAnswer{
			Present: r.IdeationPlanPresent, Description: r.IdeationPlanDescription, Frequency: r.IdeationPlanFrequency,
		},
		ActualAttempt: models.AttemptAnswer{
			Present: r.ActualAttemptPresent, Description: r.ActualAttemptDescription, TotalAttempts: r.ActualAttemptTotalAttempts,
		},
		InterruptedAttempt: models.AttemptAnswer{
			Present: r.InterruptedAttemptPresent, Description: r.InterruptedAttemptDescription, TotalAttempts: r.InterruptedAttemptTotalAttempts,
		},
		AbortedAttempt: models.AttemptAnswer{
			Present: r.AbortedAttemptPresent, Description: r.AbortedAttemptDescription, TotalAttempts: r.AbortedAttemptTotalAttempts,
		},
		PreparatoryActs: models.ItemAnswer{
			Present: r.PreparatoryActsPresent, Description: r.PreparatoryActsDescription,
		},
	}

	var student *models.Student
	if r.StudentCareer != nil || r.StudentGender != nil || r.StudentBirthDate != nil {
		student = &models.Student{}
		if r.StudentCareer != nil {
			student.Career = *r.StudentCareer
		}
		if r.StudentGender != nil {
			student.Gender = *r.StudentGender
		}
		if r.StudentBirthDate != nil {
			student.BirthDate = *r.StudentBirthDate
		}
	}

	var psychologist *models.User
	if r.PsychologistFirstName != nil || r.PsychologistLastName != nil {
		psychologist = &models.User{}
		if r.PsychologistFirstName != nil {
			psychologist.FirstName = *r.PsychologistFirstName
		}
		if r.PsychologistLastName != nil {
			psychologist.LastName = *r.PsychologistLastName
		}
	}

	return stats.Project(&record, student, psychologist)
}
