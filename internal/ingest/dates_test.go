package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBirthDate(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{name: "brazilian day first", value: "10/01/2024", want: date(2024, time.January, 10)},
		{name: "brazilian single digits", value: "5/3/2024", want: date(2024, time.March, 5)},
		{name: "iso date", value: "2024-01-10", want: date(2024, time.January, 10)},
		{name: "excelize short format", value: "01-10-24", want: date(2024, time.January, 10)},
		{name: "datetime suffix", value: "10/01/2024 00:00:00", want: date(2024, time.January, 10)},
		{name: "surrounding whitespace", value: "  10/01/2024  ", want: date(2024, time.January, 10)},
		{name: "excel serial", value: "44562", want: date(2022, time.January, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseBirthDate(tt.value)
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %v, got %v", tt.want, *got)
		})
	}
}

func TestParseBirthDate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "empty", value: ""},
		{name: "whitespace only", value: "   "},
		{name: "free text", value: "sem registro"},
		{name: "negative serial", value: "-5"},
		{name: "zero serial", value: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, parseBirthDate(tt.value))
		})
	}
}
