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

type updateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Update godoc
// @Summary     Update own note's metadata
// @Description Пустые поля запроса сохраняют прежние значения. Файл не меняется.
// @Tags        notes
// @Accept      json
// @Produce     json
// @Param       id path string true "note id"
// @Success     200 {object} domain.APIEnvelope{response=domain.NoteView}
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/notes/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "notes.update"
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

	// сначала существование, потом владение: чужая заметка — 403, не 404
	nv, err := h.Notes.NoteByID(r.Context(), id)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	if nv.UploadedBy != me.ID {
		logx.Info(h.Log, reqID, op, "denied", "id", id, "user", me.ID)
		v1.WriteDomainError(w, r, fmt.Errorf("%w: not the owner", domain.ErrForbidden))
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		v1.WriteDomainError(w, r, fmt.Errorf("%w: invalid json", domain.ErrBadParams))
		return
	}

	// непустое поле — новое значение, пустое — остаётся как было
	var p domain.NotePatch
	if s := strings.TrimSpace(req.Title); s != "" {
		p.Title = &s
	}
	if s := strings.TrimSpace(req.Description); s != "" {
		p.Description = &s
	}
	if s := strings.TrimSpace(req.Category); s != "" {
		p.Category = &s
	}

	if _, err := h.Notes.UpdateNote(r.Context(), id, p); err != nil {
		logx.Error(h.Log, reqID, op, "db update failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	// перечитываем view, чтобы отдать лайки/комментарии вместе с новыми полями
	nv, err = h.Notes.NoteByID(r.Context(), id)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	h.bumpListVersion(r.Context())
	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKResponse(w, r, nv)
}
