package stats

import (
	"testing"
	"time"

	"github.com/Dennisdaviddante/teissi-app/internal/assessment"
	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWithoutFiltersOmitsMatchStage(t *testing.T) {
	p := Build(Filters{})

	require.Len(t, p, 3)
	assert.Equal(t, StageJoin, p[0].Kind)
	assert.Equal(t, StageJoin, p[1].Kind)
	assert.Equal(t, StageProject, p[2].Kind)
}

func TestBuildWithFiltersPrependsMatchStage(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := Build(Filters{From: &from, Career: "Psicología"})

	require.Len(t, p, 4)
	require.Equal(t, StageMatch, p[0].Kind)
	require.NotNil(t, p[0].Match)
	assert.Equal(t, "Psicología", p[0].Match.Filters.Career)
	assert.Equal(t, from, *p[0].Match.Filters.From)
}

func TestBuildStageOrderIsFixed(t *testing.T) {
	p := Build(Filters{Gender: "F"})

	require.Len(t, p, 4)
	assert.Equal(t, StageMatch, p[0].Kind)

	require.NotNil(t, p[1].Join)
	assert.Equal(t, "students", p[1].Join.Entity)
	assert.Equal(t, "student_id", p[1].Join.LocalKey)

	require.NotNil(t, p[2].Join)
	assert.Equal(t, "users", p[2].Join.Entity)
	assert.Equal(t, "psychologist_id", p[2].Join.LocalKey)

	require.NotNil(t, p[3].Project)
	assert.Equal(t, ProjectedFields, p[3].Project.Fields)
}

func TestProjectedFieldSetIsExact(t *testing.T) {
	p := Build(Filters{})
	fields := p[len(p)-1].Project.Fields

	assert.Contains(t, fields, "ideationRiskLevel")
	assert.Contains(t, fields, "behaviorRiskLevel")
	assert.Contains(t, fields, "student.birthDate")
	// Free-text clinical notes must never be projected.
	assert.NotContains(t, fields, "observations")
	assert.NotContains(t, fields, "finalRemarks")
	assert.NotContains(t, fields, "ideationIntensity.mostSeriousIdeationDescription")
}

func TestFiltersEmpty(t *testing.T) {
	assert.True(t, Filters{}.Empty())

	id := uuid.New()
	assert.False(t, Filters{PsychologistID: &id}.Empty())
	assert.False(t, Filters{Career: "Derecho"}.Empty())
	assert.False(t, Filters{RiskLevel: models.RiskHigh}.Empty())
}

func present(v bool) *bool { return &v }

func sampleRecord() *models.SuicideAssessment {
	return &models.SuicideAssessment{
		ID:                                uuid.New(),
		Date:                              time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC),
		RiskLevel:                         models.RiskModerate,
		DeathWish:                         models.ItemAnswer{Present: present(true), Description: "recurring"},
		NonSpecificActiveSuicidalThoughts: models.ItemAnswer{Present: present(true)},
		ActiveSuicidalIdeationWithMethods: models.ItemAnswer{Present: present(false)},
		ActiveSuicidalIdeationWithIntent:  models.ItemAnswer{Present: present(false)},
		ActiveSuicidalIdeationWithPlan:    models.PlanAnswer{Present: present(false)},
		Observations:                      "confidential clinical notes",
	}
}

func TestProjectBothRiskLevelsComeFromStoredLevel(t *testing.T) {
	record := sampleRecord()
	row := Project(record, nil, nil)

	assert.Equal(t, models.RiskModerate, row.IdeationRiskLevel)
	assert.Equal(t, models.RiskModerate, row.BehaviorRiskLevel)
}

func TestProjectKeepsRowWhenStudentMissing(t *testing.T) {
	record := sampleRecord()
	row := Project(record, nil, &models.User{FirstName: "Laura", LastName: "Méndez"})

	assert.Equal(t, record.ID, row.ID)
	assert.Equal(t, StudentSummary{}, row.Student)
	assert.Equal(t, "Laura", row.Psychologist.FirstName)
}

func TestProjectKeepsRowWhenPsychologistMissing(t *testing.T) {
	student := &models.Student{
		Career:    "Ingeniería",
		Gender:    "M",
		BirthDate: time.Date(2001, 9, 15, 0, 0, 0, 0, time.UTC),
	}
	row := Project(sampleRecord(), student, nil)

	assert.Equal(t, "Ingeniería", row.Student.Career)
	require.NotNil(t, row.Student.BirthDate)
	assert.Equal(t, student.BirthDate, *row.Student.BirthDate)
	assert.Equal(t, PsychologistSummary{}, row.Psychologist)
}

func TestProjectOmitsZeroBirthDate(t *testing.T) {
	row := Project(sampleRecord(), &models.Student{Career: "Medicina"}, nil)
	assert.Nil(t, row.Student.BirthDate)
}

func TestProjectedLevelMatchesRescoredRecord(t *testing.T) {
	// A computed (non-overridden) record projects the same level the
	// scorer derives from its intensity answers.
	freq := 3
	ideaType := 4
	record := sampleRecord()
	record.IdeationIntensity = models.IdeationIntensity{
		MostSeriousIdeationType: &ideaType,
		Frequency:               &freq,
	}
	assessment.Computed(record.IdeationIntensity).Apply(record)

	row := Project(record, nil, nil)
	assert.Equal(t, assessment.Score(record.IdeationIntensity), row.IdeationRiskLevel)
}
