package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

// Админка: статистика и принудительное удаление из каталога.
// Роль проверяет middleware, хендлеры в неё не заглядывают.
type Handler struct {
	Log   *log.Logger
	Users domain.UsersRepo
	Notes domain.NotesRepo
	Cache domain.Cache
}

type statsResponse struct {
	Notes int64 `json:"notes"`
	Users int64 `json:"users"`
	Likes int64 `json:"likes"`
}

// Stats godoc
// @Summary     Service-wide counters
// @Tags        admin
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{response=statsResponse}
// @Failure     403 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/admin/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	const op = "admin.stats"
	reqID := mw.RequestIDFromCtx(r.Context())

	notes, err := h.Notes.CountNotes(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "count notes failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	users, err := h.Users.CountUsers(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "count users failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	likes, err := h.Notes.TotalLikes(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "count likes failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteOKResponse(w, r, statsResponse{Notes: notes, Users: users, Likes: likes})
}

// ListNotes godoc
// @Summary     All catalog notes without pagination
// @Tags        admin
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=[]domain.NoteView}
// @Failure     403 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/admin/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	const op = "admin.notes"
	reqID := mw.RequestIDFromCtx(r.Context())

	items, err := h.Notes.AllNotes(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.NoteView{}
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(items))
	v1.WriteOKData(w, r, items)
}

// RemoveNote godoc
// @Summary     Force-delete any note
// @Description Удаляет запись каталога независимо от владельца. Файл в хранилище не трогает.
// @Tags        admin
// @Produce     json
// @Param       id path string true "note id"
// @Success     200 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/admin/notes/{id} [delete]
func (h *Handler) RemoveNote(w http.ResponseWriter, r *http.Request) {
	const op = "admin.remove"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		v1.WriteDomainError(w, r, fmt.Errorf("%w: bad note id", domain.ErrBadParams))
		return
	}

	if _, err := h.Notes.NoteByID(r.Context(), id); err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Notes.DeleteNote(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "db delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.bumpListVersion(r.Context())
	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKResponse(w, r, map[string]string{"message": "note removed"})
}

func (h *Handler) bumpListVersion(ctx context.Context) {
	if _, err := h.Cache.Incr(ctx, domain.CacheKeyNotesVersion()); err != nil {
		h.Log.Printf("bump list version failed: %v", err)
	}
}
