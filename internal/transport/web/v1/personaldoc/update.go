package personaldoc

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

// description — указатель: переданная пустая строка затирает старую,
// а отсутствующее поле оставляет как было
type updateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
}

// Update godoc
// @Summary     Update personal document metadata
// @Tags        personal-docs
// @Accept      json
// @Produce     json
// @Param       id path string true "document id"
// @Success     200 {object} domain.APIEnvelope{response=domain.PersonalDoc}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/personal-docs/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "docs.update"
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

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		v1.WriteDomainError(w, r, fmt.Errorf("%w: invalid json", domain.ErrBadParams))
		return
	}

	var p domain.DocPatch
	if s := strings.TrimSpace(req.Title); s != "" {
		p.Title = &s
	}
	p.Description = req.Description
	if s := strings.TrimSpace(req.Category); s != "" {
		if !domain.ValidDocCategory(s) {
			v1.WriteDomainError(w, r, fmt.Errorf("%w: unknown category", domain.ErrBadParams))
			return
		}
		p.Category = &s
	}

	d, err := h.Docs.UpdateDoc(r.Context(), id, me.ID, p)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db update failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKResponse(w, r, d)
}
