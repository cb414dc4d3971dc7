package domain

// AuthorWorkEntry is one row of an author's works listing.
type AuthorWorkEntry struct {
	Key          string
	Title        string
	CoverID      int64
	EditionCount int
}

// AuthorWorks is an author's works listing together with the author name.
type AuthorWorks struct {
	Name    string
	Entries []AuthorWorkEntry
}

// SubjectWorkEntry is one row of a subject works listing. Subject listings
// already carry a ratings average for some works, so the field is a pointer
// to keep "unknown" distinct from zero.
type SubjectWorkEntry struct {
	Key              string
	Title            string
	Authors          []string
	CoverID          int64
	EditionCount     int
	FirstPublishYear int
	RatingsAverage   *float64
}
