package personaldoc

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

// Upload godoc
// @Summary     Upload a personal document
// @Description multipart: file + title обязательны; пустая категория становится Other.
// @Tags        personal-docs
// @Accept      multipart/form-data
// @Produce     json
// @Param       title formData string true "title"
// @Param       description formData string false "description"
// @Param       category formData string false "одна из фиксированных категорий"
// @Param       file formData file true "file"
// @Success     201 {object} domain.APIEnvelope{response=domain.PersonalDoc}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     502 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/personal-docs [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "docs.upload"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form failed", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		v1.WriteDomainError(w, r, fmt.Errorf("%w: title is required", domain.ErrBadParams))
		return
	}
	description := strings.TrimSpace(r.FormValue("description"))

	category := strings.TrimSpace(r.FormValue("category"))
	if category == "" {
		category = domain.DocCategoryOther
	} else if !domain.ValidDocCategory(category) {
		v1.WriteDomainError(w, r, fmt.Errorf("%w: unknown category", domain.ErrBadParams))
		return
	}

	fh, hdr, err := r.FormFile("file")
	if err != nil {
		v1.WriteDomainError(w, r, fmt.Errorf("%w: file is required", domain.ErrBadParams))
		return
	}
	defer fh.Close()

	if !extAllowed(hdr.Filename) {
		v1.WriteDomainError(w, r, fmt.Errorf("%w: extension not allowed", domain.ErrBadParams))
		return
	}

	ref, err := h.Storage.Put(r.Context(), fh, storageFolder, hdr.Filename, hdr.Header.Get("Content-Type"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "storage put failed", err)
		v1.WriteDomainError(w, r, domain.ErrUpstream)
		return
	}

	d, err := h.Docs.CreateDoc(r.Context(), domain.PersonalDoc{
		UserID:      me.ID,
		Title:       title,
		Description: description,
		Category:    category,
		FileURL:     ref.URL,
		FileKey:     ref.Key,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "db create failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "doc_id", d.ID)
	v1.WriteCreated(w, r, d)
}
