package domain

import (
	"time"
)

// Classification is the performance tier derived from a compliance score.
type Classification string

const (
	ClassificationExcellent  Classification = "Excellent"
	ClassificationGood       Classification = "Good"
	ClassificationSufficient Classification = "Sufficient"
	ClassificationRegular    Classification = "Regular"
)

// AllClassifications lists the tiers in descending order of performance.
var AllClassifications = []Classification{
	ClassificationExcellent,
	ClassificationGood,
	ClassificationSufficient,
	ClassificationRegular,
}

const (
	// PracticeOK is the only indicator value that counts as fulfilled.
	PracticeOK = "OK"

	// PracticeCount is the number of practice indicators per record.
	PracticeCount = 5
)

// ChildRecord is one normalized row of the monitoring workbook. The first
// fifteen fields map positionally to the source sheet columns; Unit, Score
// and Classification are derived during ingestion and scoring. A practice
// value of "OK" means fulfilled, any other non-empty value means not
// fulfilled, and an empty value means not measured.
type ChildRecord struct {
	Name              string     `json:"name"`
	BirthDate         *time.Time `json:"birth_date"`
	FirstVisitDate    string     `json:"first_visit_date,omitempty"`
	DaysToFirstVisit  string     `json:"days_to_first_visit,omitempty"`
	PracticeA         string     `json:"practice_a,omitempty"`
	VisitCount        string     `json:"visit_count,omitempty"`
	PracticeB         string     `json:"practice_b,omitempty"`
	WeightHeightCount string     `json:"weight_height_count,omitempty"`
	PracticeC         string     `json:"practice_c,omitempty"`
	ACSVisit1Date     string     `json:"acs_visit_1_date,omitempty"`
	ACSVisit1Days     string     `json:"acs_visit_1_days,omitempty"`
	ACSVisit2Date     string     `json:"acs_visit_2_date,omitempty"`
	ACSVisit2Days     string     `json:"acs_visit_2_days,omitempty"`
	PracticeD         string     `json:"practice_d,omitempty"`
	PracticeE         string     `json:"practice_e,omitempty"`

	Unit           string         `json:"unit"`
	Score          int            `json:"score"`
	Classification Classification `json:"classification"`
}

// Practices returns the five indicator values in A..E order.
func (r *ChildRecord) Practices() [PracticeCount]string {
	return [PracticeCount]string{r.PracticeA, r.PracticeB, r.PracticeC, r.PracticeD, r.PracticeE}
}

// PracticeNames labels the indicators in the same order as Practices.
var PracticeNames = [PracticeCount]string{"Practice A", "Practice B", "Practice C", "Practice D", "Practice E"}
