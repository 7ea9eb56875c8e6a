// internal/domain/screening/answers.go
package screening

import "fmt"

// EightQLength is the number of items in the suicide-risk questionnaire.
// Items 7 and 8 (1-indexed) are the emergency items.
const EightQLength = 8

// ErrInvalidInput indicates a malformed or incomplete questionnaire.
// It is a caller error and must be rejected before any side effect.
var ErrInvalidInput = fmt.Errorf("invalid screening input")

// TwoQAnswers holds the three boolean items of the short depression screener.
// Q3 (suicidal ideation) gates whether the 8Q module is administered at all.
type TwoQAnswers struct {
	Q1 int // depressed mood, 0 or 1
	Q2 int // anhedonia, 0 or 1
	Q3 int // suicidal ideation, 0 or 1
}

// ValidateAnswers checks the raw questionnaire values coming in from a client
// before they reach the classifier. The classifier itself only enforces the
// 8Q length contract; everything else is an intake concern.
func ValidateAnswers(stressScore *int, twoQ TwoQAnswers, eightQ []int) error {
	if stressScore != nil && (*stressScore < 1 || *stressScore > 5) {
		return fmt.Errorf("%w: stress score %d outside [1,5]", ErrInvalidInput, *stressScore)
	}
	for i, v := range []int{twoQ.Q1, twoQ.Q2, twoQ.Q3} {
		if v != 0 && v != 1 {
			return fmt.Errorf("%w: 2Q item %d must be 0 or 1, got %d", ErrInvalidInput, i+1, v)
		}
	}
	if twoQ.Q3 == 1 && len(eightQ) != EightQLength {
		return fmt.Errorf("%w: 8Q requires exactly %d items, got %d", ErrInvalidInput, EightQLength, len(eightQ))
	}
	for i, v := range eightQ {
		if v != 0 && v != 1 {
			return fmt.Errorf("%w: 8Q item %d must be 0 or 1, got %d", ErrInvalidInput, i+1, v)
		}
	}
	return nil
}
