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

	"github.com/libraryhub/library-service/internal/auth"
)

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE user_preferences, reviews, borrows, books, users RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting users")
	if err := seedUsers(ctx, pool, 12); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Println("[seed] inserting books")
	if err := seedBooks(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed books: %w", err)
	}

	log.Println("[seed] inserting borrows")
	if err := seedBorrows(ctx, pool, rng, 60); err != nil {
		return fmt.Errorf("seed borrows: %w", err)
	}

	log.Println("[seed] inserting preferences")
	if err := seedPreferences(ctx, pool); err != nil {
		return fmt.Errorf("seed preferences: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, n int) error {
	// One shared hash keeps seeding fast; every seed account logs in
	// with "password123".
	hashed, err := auth.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		email := fmt.Sprintf("reader%d@libraryhub.dev", i+1)
		username := fmt.Sprintf("reader%d", i+1)
		isAdmin := i == 0

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, email, username, hashed, isAdmin)
	}

	query := "INSERT INTO users (email, username, hashed_password, is_admin) VALUES " +
		strings.Join(rows, ", ")

	_, err = pool.Exec(ctx, query, args...)
	return err
}

type seedBook struct {
	title       string
	author      string
	genre       string
	description string
}

var catalog = []seedBook{
	{"Dune", "Frank Herbert", "sci-fi", "A desert planet, a noble family betrayed, and a young heir learning to command sandworms and fate"},
	{"Foundation", "Isaac Asimov", "sci-fi", "A mathematician predicts the fall of a galactic empire and plants a colony of scientists to shorten the dark age"},
	{"Neuromancer", "William Gibson", "sci-fi", "A washed-up hacker is hired for one last run through the matrix by a mysterious employer"},
	{"The Left Hand of Darkness", "Ursula K. Le Guin", "sci-fi", "An envoy to a planet of ambisexual people must cross the ice to bring a world into an interstellar community"},
	{"Hyperion", "Dan Simmons", "sci-fi", "Seven pilgrims cross a distant world to meet a creature of legend, each carrying a story and a secret"},
	{"The Hobbit", "J.R.R. Tolkien", "fantasy", "A comfortable hobbit is swept into a quest to reclaim a dwarf kingdom and its treasure from a dragon"},
	{"A Wizard of Earthsea", "Ursula K. Le Guin", "fantasy", "A gifted boy studies magic on an island of wizards and looses a shadow he must hunt across the sea"},
	{"The Name of the Wind", "Patrick Rothfuss", "fantasy", "An innkeeper recounts his youth as a legendary magician, musician and student of the arcane"},
	{"Mistborn", "Brandon Sanderson", "fantasy", "A street thief discovers she can burn metals for power and joins a crew plotting to topple an immortal tyrant"},
	{"Gone Girl", "Gillian Flynn", "mystery", "A wife disappears on her fifth wedding anniversary and her husband becomes the prime suspect"},
	{"The Girl with the Dragon Tattoo", "Stieg Larsson", "mystery", "A journalist and a hacker investigate a decades-old disappearance inside a wealthy family"},
	{"Big Little Lies", "Liane Moriarty", "mystery", "Three mothers with perfect lives and imperfect secrets collide at a school trivia night gone wrong"},
	{"In the Woods", "Tana French", "mystery", "A detective investigates a murder in the same woods where his childhood friends vanished"},
	{"Pride and Prejudice", "Jane Austen", "romance", "A sharp-tongued young woman spars with a proud gentleman in a dance of first impressions and second chances"},
	{"Outlander", "Diana Gabaldon", "romance", "A wartime nurse touches a standing stone and wakes two centuries earlier in the Scottish Highlands"},
	{"The Notebook", "Nicholas Sparks", "romance", "An old man reads a faded notebook to a woman whose memory is slipping away"},
	{"SPQR", "Mary Beard", "history", "A sweeping account of how a small Italian village became an empire that defined the ancient world"},
	{"The Guns of August", "Barbara Tuchman", "history", "A month-by-month account of how Europe stumbled into the first world war"},
	{"1491", "Charles C. Mann", "history", "A portrait of the Americas before Columbus, far more populous and sophisticated than the textbooks said"},
	{"A Distant Mirror", "Barbara Tuchman", "history", "The calamitous fourteenth century of plague, war and faith, seen through one French nobleman's life"},
}

func seedBooks(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	rows := []string{}
	args := []any{}

	for _, b := range catalog {
		copies := rng.Intn(3) + 1
		rating := math.Round((2.5+rng.Float64()*2.5)*10) / 10
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(730))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args, b.title, b.author, b.genre, b.description, copies, copies, rating, createdAt)
	}

	query := `INSERT INTO books
		(title, author, genre, description, total_copies, available_copies, avg_rating, created_at)
		VALUES ` + strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedBorrows(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	seen := make(map[[2]int64]bool)

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		userID := int64(math.Ceil(math.Pow(rng.Float64(), 1.5) * 12))
		userID = max(1, min(userID, 12))

		bookID := int64(math.Ceil(math.Pow(rng.Float64(), 1.3) * float64(len(catalog))))
		bookID = max(1, min(bookID, int64(len(catalog))))

		key := [2]int64{userID, bookID}
		if seen[key] {
			continue
		}
		seen[key] = true

		borrowedAt := time.Now().AddDate(0, 0, -rng.Intn(180))
		isReturned := rng.Float64() < 0.6

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, userID, bookID, borrowedAt, isReturned)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO borrows (user_id, book_id, borrowed_at, is_returned) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedPreferences(ctx context.Context, pool *pgxpool.Pool) error {
	prefs := []struct {
		userID  int64
		genres  string
		authors string
	}{
		{1, "sci-fi,fantasy", "Ursula K. Le Guin"},
		{2, "mystery", "Tana French,Gillian Flynn"},
		{3, "romance,history", ""},
		{4, "history", "Barbara Tuchman"},
	}

	rows := []string{}
	args := []any{}
	for _, p := range prefs {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, p.userID, p.genres, p.authors)
	}

	query := "INSERT INTO user_preferences (user_id, favorite_genres, favorite_authors) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}
