package domain

type CandidateOrigin string

const (
	OriginAuthor  CandidateOrigin = "author"
	OriginSubject CandidateOrigin = "subject"
)

// Candidate is a transient recommendable work flowing through the pipeline.
// It is created by the pool builder, mutated in place by the rating hydrator
// and discarded after formatting. Never persisted.
type Candidate struct {
	ID               string
	Title            string
	Author           string
	Authors          []string
	Image            string
	CoverID          int64
	EditionCount     int
	FirstPublishYear int
	RatingsAverage   *float64
	RatingsCount     *int
	Origin           CandidateOrigin
	SubjectTag       string
}
