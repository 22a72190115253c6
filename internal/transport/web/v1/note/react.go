package note

import (
	"net/http"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

type likeResponse struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

type favoriteResponse struct {
	Favorited bool `json:"favorited"`
	Favorites int  `json:"favorites"`
}

// Like godoc
// @Summary     Toggle like on a note
// @Description Повторный вызов снимает лайк. Ответ — итоговое состояние.
// @Tags        notes
// @Produce     json
// @Param       id path string true "note id"
// @Success     200 {object} domain.APIEnvelope{response=likeResponse}
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/notes/like/{id} [post]
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	const op = "notes.like"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	id, err := noteID(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	// целевая заметка обязана существовать до переключения
	if _, err := h.Notes.NoteByID(r.Context(), id); err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	likes, liked, err := h.Notes.ToggleLike(r.Context(), id, me.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "toggle failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.bumpListVersion(r.Context())
	logx.Info(h.Log, reqID, op, "ok", "id", id, "liked", liked, "likes", likes)
	v1.WriteOKResponse(w, r, likeResponse{Likes: likes, Liked: liked})
}

// Favorite godoc
// @Summary     Toggle a note in caller's favorites
// @Tags        notes
// @Produce     json
// @Param       id path string true "note id"
// @Success     200 {object} domain.APIEnvelope{response=favoriteResponse}
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/notes/favorite/{id} [post]
func (h *Handler) Favorite(w http.ResponseWriter, r *http.Request) {
	const op = "notes.favorite"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	id, err := noteID(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	if _, err := h.Notes.NoteByID(r.Context(), id); err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	favorited, total, err := h.Users.ToggleFavorite(r.Context(), me.ID, id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "toggle failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	// выборка favorites=true кэшируется наравне с остальными
	h.bumpListVersion(r.Context())
	logx.Info(h.Log, reqID, op, "ok", "id", id, "favorited", favorited)
	v1.WriteOKResponse(w, r, favoriteResponse{Favorited: favorited, Favorites: total})
}
