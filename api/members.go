package api

import (
	"errors"
	"net/http"

	"github.com/booklane/booklane/models"
	"github.com/booklane/booklane/store"
)

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list members", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch members")
		return
	}
	h.writeJSON(w, http.StatusOK, members)
}

func (h *Handler) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	// joinDate arrives as an ISO date string and is normalized to a date
	// value while decoding; see models.Date.
	var member models.Member
	if err := decodeJSON(r, &member); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := models.Validate(&member); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.members.Create(r.Context(), &member)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			h.writeError(w, http.StatusBadRequest, "Membership ID already exists")
			return
		}
		h.logger.Error("Failed to create member", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to create member")
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleGetMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.members.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Member not found")
			return
		}
		h.logger.Error("Failed to fetch member", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch member")
		return
	}
	h.writeJSON(w, http.StatusOK, member)
}

func (h *Handler) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var member models.Member
	if err := decodeJSON(r, &member); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := models.Validate(&member); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.members.Replace(r.Context(), r.PathValue("id"), &member)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.writeError(w, http.StatusNotFound, "Member not found")
		case errors.Is(err, store.ErrInvalidID):
			h.writeError(w, http.StatusBadRequest, "Invalid member id")
		case errors.Is(err, store.ErrDuplicateKey):
			h.writeError(w, http.StatusBadRequest, "Membership ID already exists")
		default:
			h.logger.Error("Failed to update member", "error", err)
			h.writeError(w, http.StatusInternalServerError, "Failed to update member")
		}
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.members.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Member not found")
			return
		}
		h.logger.Error("Failed to delete member", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete member")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Member deleted"})
}
