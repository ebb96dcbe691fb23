package survey

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"surveycli/internal/errors"
)

// ValueCount is one categorical value of a demographic attribute with its
// respondent count and percentage share.
type ValueCount struct {
	Value   string  `json:"value" csv:"Value"`
	Count   int     `json:"count" csv:"Count"`
	Percent float64 `json:"percent" csv:"Percent"`
}

// Breakdown is the distribution of one demographic attribute across the
// whole respondent population.
type Breakdown struct {
	Attribute string       `json:"attribute"`
	Total     int          `json:"total"`
	Values    []ValueCount `json:"values"`
}

// Breakdowns computes the value distribution of each given demographic
// attribute. Percentages are shares of all respondents, rounded to two
// decimals. Values are ordered by descending count, ties by value, so output
// is deterministic. Returns an EMPTY_DATASET error when respondents is empty.
func (a *Aggregator) Breakdowns(ctx context.Context, respondents []Respondent, attributes []string) ([]Breakdown, error) {
	if len(respondents) == 0 {
		return nil, errors.NewEmptyDatasetError("no respondents to summarize")
	}

	breakdowns := make([]Breakdown, 0, len(attributes))
	for _, attr := range attributes {
		counts := make(map[string]int)
		for _, r := range respondents {
			value := r.Demographics[attr]
			if value == "" {
				value = MissingValueLabel
			}
			counts[value]++
		}

		total := len(respondents)
		values := make([]ValueCount, 0, len(counts))
		for value, count := range counts {
			values = append(values, ValueCount{
				Value:   value,
				Count:   count,
				Percent: math.Round(float64(count)/float64(total)*100*100) / 100,
			})
		}

		sort.Slice(values, func(i, j int) bool {
			if values[i].Count != values[j].Count {
				return values[i].Count > values[j].Count
			}
			return values[i].Value < values[j].Value
		})

		breakdowns = append(breakdowns, Breakdown{
			Attribute: attr,
			Total:     total,
			Values:    values,
		})

		a.logger.InfoContext(ctx, "demographic breakdown computed",
			slog.String("attribute", attr),
			slog.Int("distinct_values", len(values)))
	}

	return breakdowns, nil
}
