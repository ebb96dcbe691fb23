package survey

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"surveycli/internal/errors"
)

// MissingValueLabel is the bucket used for respondents whose demographic
// attribute value is absent from the source.
const MissingValueLabel = "(missing)"

// GroupKeySeparator joins the attribute values of a multi-attribute group
// into one composite key.
const GroupKeySeparator = "|"

// GlobalGroupKey is the key of the single group produced when aggregating
// with no group-by attributes.
const GlobalGroupKey = "all"

// GroupResult holds the NPS computation for one demographic group.
type GroupResult struct {
	// Key is the composite group key, attribute values joined in group-by
	// order, or GlobalGroupKey for the ungrouped total.
	Key string `json:"key" csv:"Key"`
	// Group maps each group-by attribute to this group's value.
	Group map[string]string `json:"group,omitempty"`
	// Respondents counts every record in the group, scored or not.
	Respondents int `json:"respondents" csv:"Respondents"`
	// ValidResponses counts respondents with a usable score.
	ValidResponses int `json:"valid_responses" csv:"ValidResponses"`
	Promoters      int `json:"promoters" csv:"Promoters"`
	Passives       int `json:"passives" csv:"Passives"`
	Detractors     int `json:"detractors" csv:"Detractors"`
	// NPS is (promoters-detractors)/valid*100 rounded to one decimal, in
	// [-100,100]. Nil when the group has no valid responses: zero is a
	// real score, absence is not.
	NPS *float64 `json:"nps"`
}

// Aggregator partitions respondents into demographic groups and computes
// per-group NPS. It is a pure batch computation over immutable records.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates a new NPS aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Aggregate groups respondents by the given demographic attributes and
// computes NPS per group. An empty groupBy yields a single global group.
// Results are ordered by descending respondent count, ties broken by
// lexicographic group key, so repeated runs produce identical output.
// Returns an EMPTY_DATASET error when respondents is empty.
func (a *Aggregator) Aggregate(ctx context.Context, respondents []Respondent, groupBy []string) ([]GroupResult, error) {
	if len(respondents) == 0 {
		return nil, errors.NewEmptyDatasetError("no respondents to aggregate")
	}

	a.logger.InfoContext(ctx, "aggregating respondents",
		slog.Int("respondent_count", len(respondents)),
		slog.Any("group_by", groupBy))

	groups := make(map[string]*GroupResult)

	for _, r := range respondents {
		key, values := groupKey(r, groupBy)

		result, ok := groups[key]
		if !ok {
			result = &GroupResult{Key: key, Group: values}
			groups[key] = result
		}

		result.Respondents++
		if !r.HasValidScore() {
			continue
		}

		result.ValidResponses++
		switch Classify(*r.Score) {
		case BandPromoter:
			result.Promoters++
		case BandPassive:
			result.Passives++
		default:
			result.Detractors++
		}
	}

	results := make([]GroupResult, 0, len(groups))
	for _, g := range groups {
		g.NPS = npsScore(g.Promoters, g.Detractors, g.ValidResponses)
		results = append(results, *g)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Respondents != results[j].Respondents {
			return results[i].Respondents > results[j].Respondents
		}
		return results[i].Key < results[j].Key
	})

	a.logger.InfoContext(ctx, "aggregation complete",
		slog.Int("group_count", len(results)))

	return results, nil
}

// groupKey builds the composite key and attribute-value map for one
// respondent. Missing attribute values fall into the (missing) bucket.
func groupKey(r Respondent, groupBy []string) (string, map[string]string) {
	if len(groupBy) == 0 {
		return GlobalGroupKey, nil
	}

	values := make(map[string]string, len(groupBy))
	parts := make([]string, len(groupBy))
	for i, attr := range groupBy {
		value := r.Demographics[attr]
		if value == "" {
			value = MissingValueLabel
		}
		values[attr] = value
		parts[i] = escapeGroupValue(value)
	}

	return strings.Join(parts, GroupKeySeparator), values
}

// escapeGroupValue escapes the separator inside a value so that distinct
// value tuples never join into the same composite key.
func escapeGroupValue(value string) string {
	return strings.ReplaceAll(value, GroupKeySeparator, `\`+GroupKeySeparator)
}

// npsScore computes the NPS percentage rounded to one decimal place, or nil
// when there are no valid responses to divide by.
func npsScore(promoters, detractors, valid int) *float64 {
	if valid == 0 {
		return nil
	}

	score := float64(promoters-detractors) / float64(valid) * 100
	score = math.Round(score*10) / 10
	return &score
}
