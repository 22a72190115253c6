package note

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

type commentRequest struct {
	Text string `json:"text"`
}

type commentsResponse struct {
	Comments []domain.CommentView `json:"comments"`
}

// Comment godoc
// @Summary     Add a comment to a note
// @Description Ответ — полный список комментариев заметки, старые первыми.
// @Tags        notes
// @Accept      json
// @Produce     json
// @Param       id path string true "note id"
// @Success     201 {object} domain.APIEnvelope{response=commentsResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/notes/comment/{id} [post]
func (h *Handler) Comment(w http.ResponseWriter, r *http.Request) {
	const op = "notes.comment"
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

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		v1.WriteDomainError(w, r, fmt.Errorf("%w: invalid json", domain.ErrBadParams))
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		v1.WriteDomainError(w, r, fmt.Errorf("%w: comment text is required", domain.ErrBadParams))
		return
	}

	comments, err := h.Notes.AddComment(r.Context(), id, me.ID, text)
	if err != nil {
		logx.Error(h.Log, reqID, op, "add failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", id, "comments", len(comments))
	v1.WriteCreated(w, r, commentsResponse{Comments: comments})
}
