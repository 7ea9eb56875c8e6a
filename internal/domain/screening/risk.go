// internal/domain/screening/risk.go
package screening

import "fmt"

// RiskLevel is the ordered classification driving both the recommendation
// text and the notification threshold.
type RiskLevel string

const (
	RiskNone   RiskLevel = "none"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var riskRank = map[RiskLevel]int{
	RiskNone:   0,
	RiskLow:    1,
	RiskMedium: 2,
	RiskHigh:   3,
}

// Valid reports whether l is one of the four known levels.
func (l RiskLevel) Valid() bool {
	_, ok := riskRank[l]
	return ok
}

// AtLeast reports whether l is of equal or higher severity than other.
// Unknown levels rank below "none".
func (l RiskLevel) AtLeast(other RiskLevel) bool {
	return riskRank[l] >= riskRank[other]
}

// recommendations is the fixed clinical-guidance table keyed by risk level.
var recommendations = map[RiskLevel]string{
	RiskNone:   "No clear mental-health risk found. Self-care and routine follow-up as appropriate.",
	RiskLow:    "Elevated risk. Provide brief counselling or psycho-education, arrange a buddy for monitoring, and schedule a follow-up within one month.",
	RiskMedium: "Moderate suicide risk. Refer for a detailed physician or psychiatrist evaluation, establish a treatment plan, and set a follow-up schedule.",
	RiskHigh:   "Severe suicide risk. Refer to hospital immediately, keep the person under close 24-hour observation, and enforce strict safety measures.",
}

// Inputs captures the raw answers that produced an assessment. Retained on
// the assessment for audit and export.
type Inputs struct {
	StressScore *int
	TwoQ        TwoQAnswers
	EightQ      []int
	EightQTotal int
}

// RiskAssessment is the classifier output.
type RiskAssessment struct {
	Level          RiskLevel
	Emergency      bool
	Recommendation string
	Inputs         Inputs
}

// Classify maps raw questionnaire answers to a risk level and recommendation.
// Pure and deterministic: identical inputs always yield an identical result.
//
// A nil stressScore means the stress scale was not administered and
// contributes no risk. The 8Q module counts only when Q3 (suicidal ideation)
// was endorsed; in that case eightQ must hold exactly EightQLength items or
// Classify fails with ErrInvalidInput, because a partially administered
// suicide module is clinically meaningless to score.
func Classify(stressScore *int, twoQ TwoQAnswers, eightQ []int) (*RiskAssessment, error) {
	administered := twoQ.Q3 == 1

	eightQTotal := 0
	emergency := false
	var retained []int
	if administered {
		if len(eightQ) != EightQLength {
			return nil, fmt.Errorf("%w: 8Q requires exactly %d items, got %d", ErrInvalidInput, EightQLength, len(eightQ))
		}
		for _, v := range eightQ {
			if v == 1 {
				eightQTotal++
			}
		}
		// Items 7 and 8 are the emergency items: either alone forces the
		// highest tier regardless of the total.
		emergency = eightQ[6] == 1 || eightQ[7] == 1
		retained = append(retained, eightQ...)
	}

	var level RiskLevel
	switch {
	case administered && (emergency || eightQTotal >= 4):
		level = RiskHigh
	case administered && eightQTotal >= 2:
		level = RiskMedium
	case administered:
		level = RiskLow
	case twoQ.Q1 == 1 || twoQ.Q2 == 1 || (stressScore != nil && *stressScore >= 4):
		level = RiskLow
	default:
		level = RiskNone
	}

	return &RiskAssessment{
		Level:          level,
		Emergency:      emergency,
		Recommendation: recommendations[level],
		Inputs: Inputs{
			StressScore: stressScore,
			TwoQ:        twoQ,
			EightQ:      retained,
			EightQTotal: eightQTotal,
		},
	}, nil
}
