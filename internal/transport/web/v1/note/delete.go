package note

import (
	"fmt"
	"net/http"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete own note
// @Description Файл в хранилище удаляется best-effort: его отказ не мешает удалению записи.
// @Tags        notes
// @Produce     json
// @Param       id path string true "note id"
// @Success     200 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/notes/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "notes.delete"
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

	// отказ хранилища только логируем: запись важнее осиротевшего файла
	if err := h.Storage.Delete(r.Context(), nv.FileKey); err != nil {
		logx.Error(h.Log, reqID, op, "storage delete failed", err, "key", nv.FileKey)
	}

	if err := h.Notes.DeleteNote(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "db delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.bumpListVersion(r.Context())
	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKResponse(w, r, map[string]string{"message": "note deleted"})
}
