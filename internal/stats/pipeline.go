// Package stats builds the aggregation pipeline that turns the assessment
// store into statistics rows for administrators. The pipeline is plain
// data: an ordered list of typed stage descriptors the repository layer
// translates into a single query, which keeps the composition testable
// without a live database.
package stats

import (
	"time"

	"github.com/Dennisdaviddante/teissi-app/internal/models"
	"github.com/google/uuid"
)

type StageKind string

const (
	StageMatch   StageKind = "match"
	StageJoin    StageKind = "join"
	StageProject StageKind = "project"
)

// Filters are the optional criteria an administrator may supply. An unset
// field is simply not filtered on; it never means "match nothing".
type Filters struct {
	From           *time.Time
	To             *time.Time
	Career         string
	Gender         string
	RiskLevel      models.RiskLevel
	PsychologistID *uuid.UUID
}

// Empty reports whether no criterion was supplied at all.
func (f Filters) Empty() bool {
	return f.From == nil && f.To == nil && f.Career == "" && f.Gender == "" &&
		f.RiskLevel == "" && f.PsychologistID == nil
}

// MatchStage selects assessments satisfying every supplied criterion.
// The date range is inclusive on both ends.
type MatchStage struct {
	Filters Filters
}

// JoinStage attaches a referenced entity by id. Dangling references keep
// the assessment in the result with an empty placeholder (left outer join).
type JoinStage struct {
	Entity   string // joined table
	LocalKey string // FK column on the assessment
	As       string // name of the attached object in the output row
}

// ProjectStage reduces each joined record to exactly the listed fields.
type ProjectStage struct {
	Fields []string
}

// Stage is one pipeline step; exactly one of the typed descriptors is set,
// indicated by Kind.
type Stage struct {
	Kind    StageKind
	Match   *MatchStage
	Join    *JoinStage
	Project *ProjectStage
}

type Pipeline []Stage

// ProjectedFields is the exact output field set. Anything not listed here
// must not leave the store: the projection doubles as the privacy boundary
// for free-text clinical notes.
var ProjectedFields = []string{
	"id",
	"date",
	"ideationRiskLevel",
	"behaviorRiskLevel",
	"deathWish",
	"nonSpecificActiveSuicidalThoughts",
	"activeSuicidalIdeationWithMethods",
	"activeSuicidalIdeationWithIntent",
	"activeSuicidalIdeationWithPlan",
	"actualAttempt",
	"interruptedAttempt",
	"abortedAttempt",
	"preparatoryActs",
	"student.career",
	"student.gender",
	"student.birthDate",
	"psychologist.firstName",
	"psychologist.lastName",
}

// Build composes the fixed-order pipeline for the given filters. The match
// stage is omitted entirely when no criterion is supplied, letting every
// record flow through.
func Build(f Filters) Pipeline {
	var p Pipeline
	if !f.Empty() {
		p = append(p, Stage{Kind: StageMatch, Match: &MatchStage{Filters: f}})
	}
	p = append(p,
		Stage{Kind: StageJoin, Join: &JoinStage{Entity: "students", LocalKey: "student_id", As: "student"}},
		Stage{Kind: StageJoin, Join: &JoinStage{Entity: "users", LocalKey: "psychologist_id", As: "psychologist"}},
		Stage{Kind: StageProject, Project: &ProjectStage{Fields: ProjectedFields}},
	)
	return p
}
