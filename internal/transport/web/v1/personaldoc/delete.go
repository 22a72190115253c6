package personaldoc

import (
	"net/http"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete a personal document
// @Description Сначала файл, потом запись: если хранилище отказало, запись остаётся.
// @Tags        personal-docs
// @Produce     json
// @Param       id path string true "document id"
// @Success     200 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     502 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/personal-docs/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "docs.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	id, err := docID(r)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	d, err := h.Docs.DocByID(r.Context(), id, me.ID)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	// в отличие от каталога заметок здесь удаление "всё или ничего":
	// личный документ без файла бесполезен, поэтому отказ хранилища терминален
	if err := h.Storage.Delete(r.Context(), d.FileKey); err != nil {
		logx.Error(h.Log, reqID, op, "storage delete failed", err, "key", d.FileKey)
		v1.WriteDomainError(w, r, domain.ErrUpstream)
		return
	}

	if err := h.Docs.DeleteDoc(r.Context(), id, me.ID); err != nil {
		logx.Error(h.Log, reqID, op, "db delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKResponse(w, r, map[string]string{"message": "document deleted"})
}
