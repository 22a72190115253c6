package note

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

// noteID достаёт {id} из пути; кривой uuid — это bad params, не 404.
func noteID(r *http.Request) (domain.NoteID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad note id", domain.ErrBadParams)
	}
	return id, nil
}

// Get godoc
// @Summary     Get a single note
// @Tags        notes
// @Produce     json
// @Param       id path string true "note id"
// @Success     200 {object} domain.APIEnvelope{response=domain.NoteView}
// @Failure     404 {object} domain.APIEnvelope
// @Router      /api/notes/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "notes.get"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := noteID(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	nv, err := h.Notes.NoteByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db get failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKResponse(w, r, nv)
}
