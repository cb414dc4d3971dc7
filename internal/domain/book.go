package domain

// Book is the outward-facing recommendation record.
type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Image         string   `json:"image,omitempty"`
	Description   string   `json:"description,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	Category      string   `json:"category,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
}
