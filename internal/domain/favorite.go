package domain

// FavoriteBook is the stored book snapshot behind a favorite.
type FavoriteBook struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// FavoriteSeed is a read-only snapshot of one liked book, used as a
// recommendation seed. Never mutated by the pipeline.
type FavoriteSeed struct {
	BookID string       `json:"book_id"`
	Book   FavoriteBook `json:"book"`
}
