package survey

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveycli/internal/errors"
)

func TestBreakdowns(t *testing.T) {
	respondents := []Respondent{
		scored("r1", 9, map[string]string{"gender": "femenino", "region": "montevideo"}),
		scored("r2", 5, map[string]string{"gender": "femenino", "region": "canelones"}),
		scored("r3", 8, map[string]string{"gender": "masculino", "region": "montevideo"}),
		respondent("r4", nil, map[string]string{"gender": "femenino"}),
	}

	agg := NewAggregator(slog.Default())
	breakdowns, err := agg.Breakdowns(context.Background(), respondents, []string{"gender", "region"})
	require.NoError(t, err)

	require.Len(t, breakdowns, 2)

	gender := breakdowns[0]
	assert.Equal(t, "gender", gender.Attribute)
	assert.Equal(t, 4, gender.Total)
	require.Len(t, gender.Values, 2)
	assert.Equal(t, ValueCount{Value: "femenino", Count: 3, Percent: 75.0}, gender.Values[0])
	assert.Equal(t, ValueCount{Value: "masculino", Count: 1, Percent: 25.0}, gender.Values[1])

	region := breakdowns[1]
	assert.Equal(t, "region", region.Attribute)
	require.Len(t, region.Values, 3)
	// Descending count; the respondent without a region lands in the
	// missing bucket.
	assert.Equal(t, "montevideo", region.Values[0].Value)
	assert.Equal(t, 2, region.Values[0].Count)
	assert.Equal(t, 50.0, region.Values[0].Percent)
	values := []string{region.Values[1].Value, region.Values[2].Value}
	assert.Contains(t, values, MissingValueLabel)
	assert.Contains(t, values, "canelones")
}

func TestBreakdowns_PercentRounding(t *testing.T) {
	respondents := []Respondent{
		scored("r1", 9, map[string]string{"region": "a"}),
		scored("r2", 9, map[string]string{"region": "a"}),
		scored("r3", 9, map[string]string{"region": "b"}),
	}

	agg := NewAggregator(slog.Default())
	breakdowns, err := agg.Breakdowns(context.Background(), respondents, []string{"region"})
	require.NoError(t, err)

	require.Len(t, breakdowns, 1)
	require.Len(t, breakdowns[0].Values, 2)
	assert.Equal(t, 66.67, breakdowns[0].Values[0].Percent)
	assert.Equal(t, 33.33, breakdowns[0].Values[1].Percent)
}

func TestBreakdowns_TiesOrderedByValue(t *testing.T) {
	respondents := []Respondent{
		scored("r1", 9, map[string]string{"region": "salto"}),
		scored("r2", 9, map[string]string{"region": "artigas"}),
	}

	agg := NewAggregator(slog.Default())
	breakdowns, err := agg.Breakdowns(context.Background(), respondents, []string{"region"})
	require.NoError(t, err)

	require.Len(t, breakdowns, 1)
	require.Len(t, breakdowns[0].Values, 2)
	assert.Equal(t, "artigas", breakdowns[0].Values[0].Value)
	assert.Equal(t, "salto", breakdowns[0].Values[1].Value)
}

func TestBreakdowns_EmptyDataset(t *testing.T) {
	agg := NewAggregator(slog.Default())

	_, err := agg.Breakdowns(context.Background(), nil, []string{"region"})
	require.Error(t, err)
	assert.True(t, errors.IsEmptyDatasetError(err))
}

func TestBreakdowns_NoAttributes(t *testing.T) {
	agg := NewAggregator(slog.Default())

	breakdowns, err := agg.Breakdowns(context.Background(), []Respondent{scored("r1", 9, nil)}, nil)
	require.NoError(t, err)
	assert.Empty(t, breakdowns)
}
