package survey

// Band classifies a valid recommendation score into the standard NPS buckets.
type Band int

const (
	BandDetractor Band = iota // scores 0-6
	BandPassive               // scores 7-8
	BandPromoter              // scores 9-10
)

// String returns the band name used in reports and logs.
func (b Band) String() string {
	switch b {
	case BandPromoter:
		return "promoter"
	case BandPassive:
		return "passive"
	default:
		return "detractor"
	}
}

// Classify places a valid score into exactly one band.
// Callers must only pass scores in [0,10]; the loader guarantees that for
// every non-nil Respondent.Score.
func Classify(score int) Band {
	switch {
	case score >= 9:
		return BandPromoter
	case score >= 7:
		return BandPassive
	default:
		return BandDetractor
	}
}

// Respondent is one survey participant. Records are immutable after loading.
type Respondent struct {
	// ID is the opaque respondent identifier from the source file.
	ID string
	// Score is the recommendation score in [0,10], or nil when the source
	// value was missing, non-numeric, or out of range.
	Score *int
	// Demographics maps logical attribute names to normalized categorical
	// values. Missing source values are stored as the empty string.
	Demographics map[string]string
}

// HasValidScore reports whether the respondent counts toward NPS math.
func (r Respondent) HasValidScore() bool {
	return r.Score != nil
}

// ColumnMapping binds the logical survey fields to raw spreadsheet headers.
// Raw headers are matched after normalization (lowercase, accents stripped),
// so the mapping works regardless of casing or diacritics in the source.
type ColumnMapping struct {
	// ID is the raw header of the respondent identifier column. Required.
	ID string
	// Score is the raw header of the recommendation score column. Required.
	Score string
	// Demographics maps logical attribute names (e.g. "region") to raw
	// headers (e.g. "DEPTO"). Attributes whose column is absent from the
	// source are skipped with a warning, not an error.
	Demographics map[string]string
}

// Dataset is the cleaned, in-memory form of one source file.
type Dataset struct {
	// Source is the path the dataset was loaded from.
	Source string
	// Columns are the normalized headers found in the source, in file order.
	Columns []string
	// Respondents holds one record per data row, in file order.
	Respondents []Respondent
}

// ValidScores returns how many respondents carry a usable score.
func (d *Dataset) ValidScores() int {
	count := 0
	for _, r := range d.Respondents {
		if r.HasValidScore() {
			count++
		}
	}
	return count
}
