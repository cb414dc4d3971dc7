package seeds

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE favorites, books, users RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting users")
	if err := seedUsers(ctx, pool, rng, 20); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Println("[seed] inserting books")
	if err := seedBooks(ctx, pool); err != nil {
		return fmt.Errorf("seed books: %w", err)
	}

	log.Println("[seed] inserting favorites")
	if err := seedFavorites(ctx, pool, rng, 120); err != nil {
		return fmt.Errorf("seed favorites: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	adjectives := []string{"quiet", "avid", "midnight", "rainy", "dogeared", "wandering", "late", "chapter"}
	nouns := []string{"reader", "bookworm", "librarian", "margin", "bookmark", "paperback", "folio", "stacks"}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s_%s_%d",
			adjectives[rng.Intn(len(adjectives))],
			nouns[rng.Intn(len(nouns))],
			i+1,
		)
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(365))

		base := i * 2
		rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
		args = append(args, username, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO users (username, created_at) VALUES " + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

type seedBook struct {
	id       string
	title    string
	author   string
	category string
}

// Work keys follow the OpenLibrary format so the recommender can resolve
// metadata for them.
var bookCatalog = []seedBook{
	{"/works/OL27448W", "The Lord of the Rings", "J.R.R. Tolkien", "fantasy"},
	{"/works/OL262758W", "The Hobbit", "J.R.R. Tolkien", "fantasy"},
	{"/works/OL27479W", "A Wizard of Earthsea", "Ursula K. Le Guin", "fantasy"},
	{"/works/OL82563W", "Harry Potter and the Philosopher's Stone", "J.K. Rowling", "fantasy"},
	{"/works/OL27516W", "The Name of the Wind", "Patrick Rothfuss", "fantasy"},
	{"/works/OL17332W", "Mistborn: The Final Empire", "Brandon Sanderson", "fantasy"},
	{"/works/OL66534W", "Pride and Prejudice", "Jane Austen", "romance"},
	{"/works/OL66554W", "Jane Eyre", "Charlotte Brontë", "romance"},
	{"/works/OL5735363W", "Outlander", "Diana Gabaldon", "romance"},
	{"/works/OL16809866W", "The Rosie Project", "Graeme Simsion", "romance"},
	{"/works/OL19923322W", "Red, White & Royal Blue", "Casey McQuiston", "romance"},
	{"/works/OL471576W", "Murder on the Orient Express", "Agatha Christie", "mystery"},
	{"/works/OL471596W", "And Then There Were None", "Agatha Christie", "mystery"},
	{"/works/OL262460W", "The Hound of the Baskervilles", "Arthur Conan Doyle", "mystery"},
	{"/works/OL15008W", "The Girl with the Dragon Tattoo", "Stieg Larsson", "mystery"},
	{"/works/OL16239762W", "Gone Girl", "Gillian Flynn", "mystery"},
	{"/works/OL17114635W", "The Silent Patient", "Alex Michaelides", "mystery"},
	{"/works/OL59711W", "Dune", "Frank Herbert", "science fiction"},
	{"/works/OL46125W", "Foundation", "Isaac Asimov", "science fiction"},
	{"/works/OL46216W", "The Left Hand of Darkness", "Ursula K. Le Guin", "science fiction"},
	{"/works/OL17091839W", "The Martian", "Andy Weir", "science fiction"},
	{"/works/OL20121061W", "Project Hail Mary", "Andy Weir", "science fiction"},
	{"/works/OL1168083W", "Neuromancer", "William Gibson", "science fiction"},
	{"/works/OL66562W", "Wuthering Heights", "Emily Brontë", "fiction"},
	{"/works/OL468431W", "To Kill a Mockingbird", "Harper Lee", "fiction"},
	{"/works/OL1168007W", "Nineteen Eighty-Four", "George Orwell", "fiction"},
	{"/works/OL468204W", "The Great Gatsby", "F. Scott Fitzgerald", "fiction"},
	{"/works/OL1168065W", "The Remains of the Day", "Kazuo Ishiguro", "fiction"},
	{"/works/OL16707835W", "A Little Life", "Hanya Yanagihara", "fiction"},
	{"/works/OL17860744W", "Circe", "Madeline Miller", "fiction"},
	{"/works/OL8193418W", "The Song of Achilles", "Madeline Miller", "fiction"},
	{"/works/OL5819456W", "The Road", "Cormac McCarthy", "fiction"},
}

func seedBooks(ctx context.Context, pool *pgxpool.Pool) error {
	rows := []string{}
	args := []any{}

	for i, b := range bookCatalog {
		base := i * 4
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, b.id, b.title, b.author, b.category)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO books (id, title, author, category) VALUES " + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedFavorites(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	seen := make(map[string]bool)

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		// Power-law skew: a few heavy readers, a few popular books.
		userID := int64(math.Ceil(math.Pow(rng.Float64(), 1.5) * 20))
		userID = max(1, min(userID, 20))

		bookIdx := int(math.Ceil(math.Pow(rng.Float64(), 1.3) * float64(len(bookCatalog))))
		bookIdx = max(1, min(bookIdx, len(bookCatalog)))
		bookID := bookCatalog[bookIdx-1].id

		key := fmt.Sprintf("%d:%s", userID, bookID)
		if seen[key] {
			continue
		}
		seen[key] = true

		createdAt := time.Now().AddDate(0, 0, -rng.Intn(180))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, userID, bookID, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO favorites (user_id, book_id, created_at) VALUES " + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}
