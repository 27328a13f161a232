package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"childmon/pkg/contracts/domain"
)

func sampleRecords() []domain.ChildRecord {
	birth := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return []domain.ChildRecord{
		{
			Name: "Ana Souza", BirthDate: &birth, Unit: "Clinic A",
			PracticeA: "OK", PracticeB: "OK", PracticeC: "OK", PracticeD: "OK", PracticeE: "OK",
			Score: 100, Classification: domain.ClassificationExcellent,
		},
		{
			Name: "Bruno Lima", BirthDate: &birth, Unit: "Clinic B",
			PracticeA: "OK", PracticeB: "Não", PracticeC: "OK",
			Score: 40, Classification: domain.ClassificationSufficient,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "scores.csv")

	err := WriteCSV(path, sampleRecords(), WriteOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeaders, rows[0])
	assert.Equal(t, []string{
		"Ana Souza", "2024-01-10", "Clinic A",
		"OK", "OK", "OK", "OK", "OK",
		"100", "Excellent",
	}, rows[1])
	assert.Equal(t, []string{
		"Bruno Lima", "2024-01-10", "Clinic B",
		"OK", "Não", "OK", "", "",
		"40", "Sufficient",
	}, rows[2])
}

func TestWriteCSV_BOMPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")

	err := WriteCSV(path, sampleRecords(), WriteOptions{BOMPrefix: true})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteCSV_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	records := sampleRecords()

	require.NoError(t, WriteCSV(path, records[:1], WriteOptions{}))
	require.NoError(t, WriteCSV(path, records[1:], WriteOptions{Append: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3, "appending must not repeat the header")
	assert.Equal(t, csvHeaders, rows[0])
	assert.Equal(t, "Bruno Lima", rows[2][0])
}

func TestWriteCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")

	require.NoError(t, WriteCSV(path, nil, WriteOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, csvHeaders, rows[0])
}
