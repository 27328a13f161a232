package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"childmon/internal/scoring"
	"childmon/pkg/contracts/domain"
)

func scoredRecord(name, unit string, practices [domain.PracticeCount]string) domain.ChildRecord {
	r := domain.ChildRecord{
		Name:      name,
		Unit:      unit,
		PracticeA: practices[0],
		PracticeB: practices[1],
		PracticeC: practices[2],
		PracticeD: practices[3],
		PracticeE: practices[4],
	}
	r.Score = scoring.Score(&r)
	r.Classification = scoring.Classify(float64(r.Score))
	return r
}

func sampleRecords() []domain.ChildRecord {
	return []domain.ChildRecord{
		scoredRecord("Ana", "Clinic A", [5]string{"OK", "OK", "OK", "OK", "OK"}),   // 100 Excellent
		scoredRecord("Bruno", "Clinic A", [5]string{"OK", "OK", "OK", "Não", ""}),  // 60 Good
		scoredRecord("Clara", "Clinic B", [5]string{"OK", "Não", "", "", ""}),      // 20 Regular
		scoredRecord("Davi", "Clinic B", [5]string{"OK", "OK", "Não", "Não", ""}),  // 40 Sufficient
		scoredRecord("Elisa", "Clinic C", [5]string{"Não", "Não", "Não", "", ""}),  // 0 Regular
	}
}

func TestFilterApply(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name      string
		filter    Filter
		wantNames []string
	}{
		{
			name:      "no constraints keeps everything",
			filter:    Filter{},
			wantNames: []string{"Ana", "Bruno", "Clara", "Davi", "Elisa"},
		},
		{
			name:      "single unit",
			filter:    Filter{Units: []string{"Clinic B"}},
			wantNames: []string{"Clara", "Davi"},
		},
		{
			name:      "multiple units",
			filter:    Filter{Units: []string{"Clinic A", "Clinic C"}},
			wantNames: []string{"Ana", "Bruno", "Elisa"},
		},
		{
			name:      "classification",
			filter:    Filter{Classifications: []domain.Classification{domain.ClassificationRegular}},
			wantNames: []string{"Clara", "Elisa"},
		},
		{
			name: "unit and classification combined",
			filter: Filter{
				Units:           []string{"Clinic B"},
				Classifications: []domain.Classification{domain.ClassificationSufficient},
			},
			wantNames: []string{"Davi"},
		},
		{
			name:      "no match",
			filter:    Filter{Units: []string{"Clinic Z"}},
			wantNames: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(records, tt.filter)
			names := make([]string, 0, len(got))
			for _, r := range got {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestSummarize(t *testing.T) {
	records := sampleRecords()

	s := Summarize(records)
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 44.0, s.AverageScore, 1e-9) // (100+60+20+40+0)/5
	assert.Equal(t, domain.ClassificationSufficient, s.Classification)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Count)
	assert.Zero(t, s.AverageScore)
	assert.Equal(t, domain.ClassificationRegular, s.Classification)
}

func TestConformityRates(t *testing.T) {
	records := sampleRecords()

	rates := ConformityRates(records)
	require.Len(t, rates, domain.PracticeCount)

	// Practice A: 5 measured, 4 fulfilled.
	assert.Equal(t, "Practice A", rates[0].Indicator)
	assert.Equal(t, 5, rates[0].Measured)
	assert.Equal(t, 4, rates[0].Fulfilled)
	assert.InDelta(t, 80.0, rates[0].Rate, 1e-9)

	// Practice C: Clara and Elisa did not measure it.
	assert.Equal(t, 4, rates[2].Measured)
	assert.Equal(t, 2, rates[2].Fulfilled)
	assert.InDelta(t, 50.0, rates[2].Rate, 1e-9)

	// Practice E: only Ana carries a value.
	assert.Equal(t, 1, rates[4].Measured)
	assert.Equal(t, 1, rates[4].Fulfilled)
	assert.InDelta(t, 100.0, rates[4].Rate, 1e-9)
}

func TestConformityRates_ZeroMeasured(t *testing.T) {
	records := []domain.ChildRecord{
		scoredRecord("Ana", "Clinic A", [5]string{"OK", "", "", "", ""}),
	}

	rates := ConformityRates(records)
	assert.Zero(t, rates[4].Measured)
	assert.Zero(t, rates[4].Rate, "an unmeasured indicator must report 0, not NaN")
}

func TestUnitAverages(t *testing.T) {
	records := sampleRecords()

	scores := UnitAverages(records)
	require.Len(t, scores, 3)

	// Sorted by average descending.
	assert.Equal(t, UnitScore{Unit: "Clinic A", Count: 2, AverageScore: 80}, scores[0])
	assert.Equal(t, UnitScore{Unit: "Clinic B", Count: 2, AverageScore: 30}, scores[1])
	assert.Equal(t, UnitScore{Unit: "Clinic C", Count: 1, AverageScore: 0}, scores[2])
}

func TestUnitAverages_TieBrokenByName(t *testing.T) {
	records := []domain.ChildRecord{
		scoredRecord("Ana", "Clinic B", [5]string{"OK", "OK", "OK", "OK", "OK"}),
		scoredRecord("Bruno", "Clinic A", [5]string{"OK", "OK", "OK", "OK", "OK"}),
	}

	scores := UnitAverages(records)
	require.Len(t, scores, 2)
	assert.Equal(t, "Clinic A", scores[0].Unit)
	assert.Equal(t, "Clinic B", scores[1].Unit)
}

func TestUnits(t *testing.T) {
	units := Units(sampleRecords())
	assert.Equal(t, []string{"Clinic A", "Clinic B", "Clinic C"}, units)
}

func TestUnits_Empty(t *testing.T) {
	assert.Empty(t, Units(nil))
}
