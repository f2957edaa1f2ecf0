package domain

import "testing"

func TestGenreSet(t *testing.T) {
	p := &UserPreference{FavoriteGenres: "Sci-Fi, fantasy ,, HISTORY"}
	set := p.GenreSet()

	if len(set) != 3 {
		t.Fatalf("expected 3 genres, got %d: %v", len(set), set)
	}
	for _, g := range []string{"sci-fi", "fantasy", "history"} {
		if _, ok := set[g]; !ok {
			t.Errorf("missing genre %q", g)
		}
	}
}

func TestGenreSetEmpty(t *testing.T) {
	p := &UserPreference{}
	if set := p.GenreSet(); len(set) != 0 {
		t.Errorf("expected empty set, got %v", set)
	}
}

func TestPreferenceSetsNilReceiver(t *testing.T) {
	var p *UserPreference
	if set := p.GenreSet(); len(set) != 0 {
		t.Errorf("expected nil-safe empty genre set, got %v", set)
	}
	if set := p.AuthorSet(); len(set) != 0 {
		t.Errorf("expected nil-safe empty author set, got %v", set)
	}
}

func TestAuthorSet(t *testing.T) {
	p := &UserPreference{FavoriteAuthors: "Ursula K. Le Guin, Frank Herbert"}
	set := p.AuthorSet()
	if _, ok := set["ursula k. le guin"]; !ok {
		t.Errorf("missing lowercased author, got %v", set)
	}
	if len(set) != 2 {
		t.Errorf("expected 2 authors, got %d", len(set))
	}
}
