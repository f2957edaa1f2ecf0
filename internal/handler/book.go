package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/libraryhub/library-service/internal/domain"
	"github.com/libraryhub/library-service/internal/service"
)

const maxUploadSize = 32 << 20 // 32 MiB

// GET /books
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.BookFilter{
		Search: q.Get("search"),
		Genre:  q.Get("genre"),
		Skip:   parseIntDefault(q.Get("skip"), 0),
		Limit:  parseIntDefault(q.Get("limit"), 20),
	}

	books, err := h.service.ListBooks(r.Context(), filter)
	if err != nil {
		handleError(w, err)
		return
	}
	if books == nil {
		books = []domain.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

// GET /books/{bookID}
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseID(w, r, "bookID")
	if !ok {
		return
	}

	book, err := h.service.GetBook(r.Context(), bookID)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// POST /books (multipart form with optional file/cover uploads)
func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid multipart form")
		return
	}

	in := service.CreateBookInput{
		Title:       r.FormValue("title"),
		Author:      r.FormValue("author"),
		ISBN:        r.FormValue("isbn"),
		Description: r.FormValue("description"),
		Genre:       r.FormValue("genre"),
		TotalCopies: parseIntDefault(r.FormValue("total_copies"), 1),
	}
	if in.Title == "" || in.Author == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Title and author are required")
		return
	}
	if yearStr := r.FormValue("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid year parameter")
			return
		}
		in.Year = &year
	}

	var err error
	if in.File, err = readUpload(r, "file"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Unreadable book file upload")
		return
	}
	if in.Cover, err = readUpload(r, "cover"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Unreadable cover upload")
		return
	}

	book, err := h.service.CreateBook(r.Context(), in)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

// PUT /books/{bookID}
func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseID(w, r, "bookID")
	if !ok {
		return
	}

	var in service.UpdateBookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid JSON body")
		return
	}

	book, err := h.service.UpdateBook(r.Context(), bookID, in)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// DELETE /books/{bookID}
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseID(w, r, "bookID")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteBook(r.Context(), userID, bookID); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /books/{bookID}/download
func (h *Handler) DownloadBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseID(w, r, "bookID")
	if !ok {
		return
	}

	target, err := h.service.BookFile(r.Context(), bookID)
	if err != nil {
		handleError(w, err)
		return
	}

	if target.RedirectURL != "" {
		http.Redirect(w, r, target.RedirectURL, http.StatusTemporaryRedirect)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+target.Filename+`"`)
	http.ServeFile(w, r, target.LocalPath)
}

func readUpload(r *http.Request, field string) (*service.Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &service.Upload{
		Filename:    header.Filename,
		ContentType: uploadContentType(header),
		Content:     content,
	}, nil
}

func uploadContentType(header *multipart.FileHeader) string {
	return header.Header.Get("Content-Type")
}

func parseIntDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return fallback
}
