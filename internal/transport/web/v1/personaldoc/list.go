package personaldoc

import (
	"net/http"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

// List godoc
// @Summary     List caller's personal documents
// @Tags        personal-docs
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=[]domain.PersonalDoc}
// @Failure     401 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/personal-docs [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "docs.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	docs, err := h.Docs.DocsByOwner(r.Context(), me.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	if docs == nil {
		docs = []domain.PersonalDoc{}
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(docs))
	v1.WriteOKData(w, r, docs)
}

// Get godoc
// @Summary     Get a single personal document
// @Description Чужой документ отдаёт 404, как и несуществующий.
// @Tags        personal-docs
// @Produce     json
// @Param       id path string true "document id"
// @Success     200 {object} domain.APIEnvelope{response=domain.PersonalDoc}
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/personal-docs/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "docs.get"
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
		logx.Error(h.Log, reqID, op, "db get failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKResponse(w, r, d)
}
