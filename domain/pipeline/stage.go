package pipeline

// Stage represents a client's position in the studio sales funnel,
// ordered from least to most converted.
type Stage string

const (
	StageLead         Stage = "lead"
	StageConsultation Stage = "consultation"
	StageBooking      Stage = "booking"
	StageProcedure    Stage = "procedure"
	StageAftercare    Stage = "aftercare"
	StageTouchup      Stage = "touchup"
	StageRetention    Stage = "retention"
)

// Stages lists all funnel stages in conversion order.
var Stages = []Stage{
	StageLead,
	StageConsultation,
	StageBooking,
	StageProcedure,
	StageAftercare,
	StageTouchup,
	StageRetention,
}

var stageOrder = map[Stage]int{
	StageLead:         0,
	StageConsultation: 1,
	StageBooking:      2,
	StageProcedure:    3,
	StageAftercare:    4,
	StageTouchup:      5,
	StageRetention:    6,
}

// ParseStage maps a raw string onto a known stage. Unrecognized values
// collapse to StageLead so downstream scoring always has a valid funnel
// position to work from.
func ParseStage(s string) Stage {
	if _, ok := stageOrder[Stage(s)]; ok {
		return Stage(s)
	}
	return StageLead
}

// IsValid reports whether the stage is one of the seven funnel stages.
func (s Stage) IsValid() bool {
	_, ok := stageOrder[s]
	return ok
}

// Order returns the stage's position in the funnel (0 = lead).
func (s Stage) Order() int {
	if n, ok := stageOrder[s]; ok {
		return n
	}
	return 0
}

// AtLeast reports whether s is at or past the given funnel position.
func (s Stage) AtLeast(other Stage) bool {
	return s.Order() >= other.Order()
}

// String returns the string representation
func (s Stage) String() string { return string(s) }
