// Package scoring derives the compliance score and performance tier for
// normalized child records. Both functions are pure; Apply enriches a
// dataset in place exactly once, after ingestion.
package scoring

import (
	"childmon/pkg/contracts/domain"
)

// PointsPerPractice is awarded for every fulfilled practice indicator.
const PointsPerPractice = 20

// Score counts the practice indicators whose value is exactly "OK" and
// awards PointsPerPractice for each. The comparison is case-sensitive and
// untrimmed: " OK" and "ok" do not count, and an absent indicator scores
// the same as a failed one. That asymmetry follows the methodology note
// the workbook is built against and must not be "fixed" here.
func Score(r *domain.ChildRecord) int {
	score := 0
	for _, practice := range r.Practices() {
		if practice == domain.PracticeOK {
			score += PointsPerPractice
		}
	}
	return score
}

// Classify maps a score onto its tier. Bounds are exclusive below and
// inclusive above, so exactly 75 is Good and exactly 25 is Regular. It
// accepts a float so the mean of a filtered set classifies with the same
// thresholds as a single record.
func Classify(score float64) domain.Classification {
	switch {
	case score > 75 && score <= 100:
		return domain.ClassificationExcellent
	case score > 50 && score <= 75:
		return domain.ClassificationGood
	case score > 25 && score <= 50:
		return domain.ClassificationSufficient
	default:
		return domain.ClassificationRegular
	}
}

// Apply scores and classifies every record in place.
func Apply(records []domain.ChildRecord) {
	for i := range records {
		records[i].Score = Score(&records[i])
		records[i].Classification = Classify(float64(records[i].Score))
	}
}
