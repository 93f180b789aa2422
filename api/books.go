package api

import (
	"errors"
	"net/http"

	"github.com/booklane/booklane/models"
	"github.com/booklane/booklane/store"
)

func (h *Handler) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list books", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch books")
		return
	}
	h.writeJSON(w, http.StatusOK, books)
}

func (h *Handler) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var book models.Book
	if err := decodeJSON(r, &book); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := models.Validate(&book); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.books.Create(r.Context(), &book)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			h.writeError(w, http.StatusBadRequest, "ISBN already exists")
			return
		}
		h.logger.Error("Failed to create book", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to create book")
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Book not found")
			return
		}
		h.logger.Error("Failed to fetch book", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch book")
		return
	}
	h.writeJSON(w, http.StatusOK, book)
}

func (h *Handler) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	var book models.Book
	if err := decodeJSON(r, &book); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := models.Validate(&book); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.books.Replace(r.Context(), r.PathValue("id"), &book)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.writeError(w, http.StatusNotFound, "Book not found")
		case errors.Is(err, store.ErrInvalidID):
			h.writeError(w, http.StatusBadRequest, "Invalid book id")
		case errors.Is(err, store.ErrDuplicateKey):
			h.writeError(w, http.StatusBadRequest, "ISBN already exists")
		default:
			h.logger.Error("Failed to update book", "error", err)
			h.writeError(w, http.StatusInternalServerError, "Failed to update book")
		}
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.books.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Book not found")
			return
		}
		h.logger.Error("Failed to delete book", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete book")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Book deleted"})
}
