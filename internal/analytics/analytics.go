// Package analytics computes the aggregate views the dashboard renders:
// the filtered record set, its overall summary, per-indicator conformity
// rates and per-unit average scores. All functions work on copies and
// never mutate the scored dataset.
package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"childmon/internal/scoring"
	"childmon/pkg/contracts/domain"
)

// Filter selects records by unit and classification. An empty slice places
// no constraint on that dimension.
type Filter struct {
	Units           []string                `json:"units,omitempty"`
	Classifications []domain.Classification `json:"classifications,omitempty"`
}

// Match reports whether a record passes the filter.
func (f Filter) Match(r *domain.ChildRecord) bool {
	if len(f.Units) > 0 && !containsString(f.Units, r.Unit) {
		return false
	}
	if len(f.Classifications) > 0 && !containsClassification(f.Classifications, r.Classification) {
		return false
	}
	return true
}

// Apply returns the records passing the filter, preserving order.
func Apply(records []domain.ChildRecord, f Filter) []domain.ChildRecord {
	out := make([]domain.ChildRecord, 0, len(records))
	for i := range records {
		if f.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// Summary is the overall view of a filtered record set. The classification
// is the tier of the mean score, not a distribution of tiers.
type Summary struct {
	Count          int                   `json:"count"`
	AverageScore   float64               `json:"average_score"`
	Classification domain.Classification `json:"classification"`
}

// Summarize computes the summary of a record set. An empty set yields a
// zero average and the Regular tier.
func Summarize(records []domain.ChildRecord) Summary {
	s := Summary{Count: len(records)}
	if len(records) > 0 {
		scores := make([]float64, len(records))
		for i := range records {
			scores[i] = float64(records[i].Score)
		}
		s.AverageScore = stat.Mean(scores, nil)
	}
	s.Classification = scoring.Classify(s.AverageScore)
	return s
}

// IndicatorRate is the conformity of one practice indicator over a record
// set: fulfilled divided by measured, as a percentage. Records where the
// indicator is absent do not enter the denominator.
type IndicatorRate struct {
	Indicator string  `json:"indicator"`
	Fulfilled int     `json:"fulfilled"`
	Measured  int     `json:"measured"`
	Rate      float64 `json:"rate"`
}

// ConformityRates computes the rate of every indicator, in A..E order.
// A rate with zero measured values is 0, never NaN.
func ConformityRates(records []domain.ChildRecord) []IndicatorRate {
	rates := make([]IndicatorRate, domain.PracticeCount)
	for i := range rates {
		rates[i].Indicator = domain.PracticeNames[i]
	}

	for r := range records {
		practices := records[r].Practices()
		for i, value := range practices {
			if value == "" {
				continue
			}
			rates[i].Measured++
			if value == domain.PracticeOK {
				rates[i].Fulfilled++
			}
		}
	}

	for i := range rates {
		if rates[i].Measured > 0 {
			rates[i].Rate = float64(rates[i].Fulfilled) / float64(rates[i].Measured) * 100
		}
	}
	return rates
}

// UnitScore is the average compliance score of one health unit.
type UnitScore struct {
	Unit         string  `json:"unit"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"average_score"`
}

// UnitAverages groups the records by unit and computes each unit's mean
// score, sorted by average descending (ties broken by unit name).
func UnitAverages(records []domain.ChildRecord) []UnitScore {
	scores := make(map[string][]float64)
	for i := range records {
		scores[records[i].Unit] = append(scores[records[i].Unit], float64(records[i].Score))
	}

	out := make([]UnitScore, 0, len(scores))
	for unit, unitScores := range scores {
		out = append(out, UnitScore{
			Unit:         unit,
			Count:        len(unitScores),
			AverageScore: stat.Mean(unitScores, nil),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageScore != out[j].AverageScore {
			return out[i].AverageScore > out[j].AverageScore
		}
		return out[i].Unit < out[j].Unit
	})
	return out
}

// Units returns the distinct unit names in the record set, sorted.
func Units(records []domain.ChildRecord) []string {
	seen := make(map[string]struct{})
	for i := range records {
		seen[records[i].Unit] = struct{}{}
	}
	units := make([]string, 0, len(seen))
	for unit := range seen {
		units = append(units, unit)
	}
	sort.Strings(units)
	return units
}

func containsString(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func containsClassification(values []domain.Classification, v domain.Classification) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
