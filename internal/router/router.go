package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/libraryhub/library-service/internal/auth"
	"github.com/libraryhub/library-service/internal/handler"
	"github.com/libraryhub/library-service/internal/storage"
)

func Setup(h *handler.Handler, tokens *auth.Manager, files *storage.Local) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Public routes
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Get("/books", h.ListBooks)
	r.Get("/books/{bookID}", h.GetBook)
	r.Get("/reviews/book/{bookID}", h.BookReviews)
	r.Get("/health", healthCheck)

	// Local storage serves uploads directly
	if files != nil {
		fs := http.StripPrefix("/files/", http.FileServer(http.Dir(files.BasePath())))
		r.Get("/files/*", fs.ServeHTTP)
	}

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(tokens.Middleware)

		r.Get("/auth/me", h.Me)

		r.Post("/books", h.CreateBook)
		r.Put("/books/{bookID}", h.UpdateBook)
		r.Delete("/books/{bookID}", h.DeleteBook)
		r.Get("/books/{bookID}/download", h.DownloadBook)

		r.Post("/borrows/{bookID}", h.BorrowBook)
		r.Post("/borrows/{borrowID}/return", h.ReturnBook)
		r.Get("/borrows/me", h.MyBorrows)

		r.Post("/reviews/book/{bookID}", h.CreateReview)
		r.Delete("/reviews/{reviewID}", h.DeleteReview)

		r.Get("/preferences", h.GetPreferences)
		r.Put("/preferences", h.UpdatePreferences)

		r.Get("/recommendations", h.GetRecommendations)
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
