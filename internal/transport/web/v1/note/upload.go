package note

import (
	"net/http"
	"strings"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

// Upload godoc
// @Summary     Upload shared note
// @Description multipart: file (обязателен) + title/description/category
// @Tags        notes
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       title formData string true "title"
// @Param       description formData string true "description"
// @Param       category formData string true "category"
// @Param       file formData file true "file"
// @Success     201 {object} domain.APIEnvelope{response=domain.NoteView}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     502 {object} domain.APIEnvelope
// @Router      /api/notes/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "notes.upload"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

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
	description := strings.TrimSpace(r.FormValue("description"))
	category := strings.TrimSpace(r.FormValue("category"))
	if title == "" || description == "" || category == "" {
		logx.Error(h.Log, reqID, op, "missing fields", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	fh, hdr, err := r.FormFile("file")
	if err != nil {
		logx.Error(h.Log, reqID, op, "file is required", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	defer fh.Close()

	if !extAllowed(hdr.Filename) {
		logx.Error(h.Log, reqID, op, "extension not allowed", domain.ErrBadParams, "filename", hdr.Filename)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// сначала файл в хранилище, потом запись с полученной ссылкой
	ref, err := h.Storage.Put(r.Context(), fh, storageFolder, hdr.Filename, hdr.Header.Get("Content-Type"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "storage put failed", err)
		v1.WriteDomainError(w, r, domain.ErrUpstream)
		return
	}

	n, err := h.Notes.CreateNote(r.Context(), domain.Note{
		Title:       title,
		Description: description,
		Category:    category,
		FileURL:     ref.URL,
		FileKey:     ref.Key,
		UploadedBy:  me.ID,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "db create failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.bumpListVersion(r.Context())

	logx.Info(h.Log, reqID, op, "ok", "note_id", n.ID, "user_id", me.ID)
	// владельца присоединяем без повторного похода в БД
	v1.WriteCreated(w, r, domain.NoteView{
		Note:  n,
		Owner: me.Public(),
	})
}
