package main

// Post is a single record from the WordPress export. Fields are read-only
// once loaded; the pipeline never writes back to the export.
type Post struct {
	ID       int
	Title    string
	Content  string
	Date     string
	Slug     string
	Category string
	Tags     []string
}

// LoosePost is a markdown file from the posts directory that predates the
// WordPress import. Date is resolved at load time (filename prefix, front
// matter, or file modification time).
type LoosePost struct {
	Filename string
	Title    string
	Body     string
	Date     string
	Category string
	Tags     []string
}

// NormalizedKey identifies a logical post for duplicate detection. Two
// records with the same key are the same post regardless of formatting.
type NormalizedKey struct {
	TitleKey           string
	ContentFingerprint string
}

// Document is a fully converted post ready to be written. WordPressID is
// only meaningful when Type is "wp"; the writer omits the field otherwise.
type Document struct {
	Title       string
	Subtitle    string
	Category    string
	Tags        []string
	Date        string
	Type        string
	WordPressID int
	Body        string
}

const (
	TypeWordPress = "wp"
	TypeRain      = "rain"
)

// SkipReason classifies why a record was dropped from the run.
type SkipReason string

const (
	ReasonMalformedInput SkipReason = "malformed_input"
	ReasonMissingField   SkipReason = "missing_required_field"
)

// SkipError marks a per-record failure. Skips never abort the batch; the
// processor counts them by reason for the run summary.
type SkipError struct {
	Reason SkipReason
	Source string
	Err    error
}

func (e *SkipError) Error() string {
	if e.Err != nil {
		return string(e.Reason) + " (" + e.Source + "): " + e.Err.Error()
	}
	return string(e.Reason) + " (" + e.Source + ")"
}

func (e *SkipError) Unwrap() error { return e.Err }

// RunStats is the run summary reported after processing.
type RunStats struct {
	RecordsRead       int
	DuplicatesRemoved int
	WordPressWritten  int
	LooseSeen         int
	LooseMatched      int
	RainWritten       int
	Skipped           map[SkipReason]int
}

func (s *RunStats) skip(reason SkipReason) {
	if s.Skipped == nil {
		s.Skipped = make(map[SkipReason]int)
	}
	s.Skipped[reason]++
}

// TotalWritten returns the number of unique documents produced this run.
func (s *RunStats) TotalWritten() int {
	return s.WordPressWritten + s.RainWritten
}
