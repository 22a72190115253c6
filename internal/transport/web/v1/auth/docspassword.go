package auth

import (
	"encoding/json"
	"net/http"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

// Docs-пароль — второй пароль, которым фронт закрывает раздел личных
// документов. Хэшируется тем же hasher'ом, что и основной.

type docsPasswordRequest struct {
	Password string `json:"password"`
}

type resetDocsPasswordRequest struct {
	AccountPassword string `json:"account_password"`
	NewDocsPassword string `json:"new_docs_password"`
}

// VerifyDocsPassword godoc
// @Summary     Verify docs password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} domain.APIEnvelope{response=object}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Router      /api/auth/docs-password/verify [post]
func (h *Handler) VerifyDocsPassword(w http.ResponseWriter, r *http.Request) {
	const op = "auth.docs_password.verify"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	var req docsPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// гейт хэши в контекст не кладёт — перечитываем аккаунт
	u, err := h.Users.UserByID(r.Context(), me.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "load user failed", err, "user_id", me.ID)
		v1.WriteDomainError(w, r, err)
		return
	}
	if !u.HasDocsPassword() {
		logx.Error(h.Log, reqID, op, "docs password not set", domain.ErrBadParams, "user_id", me.ID)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	ok, err = h.Hasher.Verify(req.Password, u.DocsPassHash)
	if err != nil || !ok {
		logx.Error(h.Log, reqID, op, "verify failed", err, "user_id", me.ID)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID)
	v1.WriteOKResponse(w, r, map[string]bool{"success": true})
}

// SetDocsPassword godoc
// @Summary     Set docs password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} domain.APIEnvelope{response=object}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Router      /api/auth/docs-password/set [post]
func (h *Handler) SetDocsPassword(w http.ResponseWriter, r *http.Request) {
	const op = "auth.docs_password.set"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	var req docsPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if !domain.ValidDocsPassword(req.Password) {
		logx.Error(h.Log, reqID, op, "password too short", domain.ErrBadParams, "user_id", me.ID)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	hashStr, err := h.Hasher.Hash(req.Password)
	if err != nil {
		logx.Error(h.Log, reqID, op, "hash failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if err := h.Users.SetDocsPassword(r.Context(), me.ID, hashStr); err != nil {
		logx.Error(h.Log, reqID, op, "store failed", err, "user_id", me.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID)
	v1.WriteOKResponse(w, r, map[string]any{
		"message":           "docs password set",
		"has_docs_password": true,
	})
}

// ResetDocsPassword godoc
// @Summary     Reset docs password
// @Description Смена docs-пароля после повторного подтверждения основного пароля.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} domain.APIEnvelope{response=object}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Router      /api/auth/docs-password/reset [post]
func (h *Handler) ResetDocsPassword(w http.ResponseWriter, r *http.Request) {
	const op = "auth.docs_password.reset"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	var req resetDocsPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// сначала заново доказываем основной пароль
	u, err := h.Users.UserByID(r.Context(), me.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "load user failed", err, "user_id", me.ID)
		v1.WriteDomainError(w, r, err)
		return
	}
	ok, err = h.Hasher.Verify(req.AccountPassword, u.PassHash)
	if err != nil || !ok {
		logx.Error(h.Log, reqID, op, "account password verify failed", err, "user_id", me.ID)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	if !domain.ValidDocsPassword(req.NewDocsPassword) {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	hashStr, err := h.Hasher.Hash(req.NewDocsPassword)
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if err := h.Users.SetDocsPassword(r.Context(), me.ID, hashStr); err != nil {
		logx.Error(h.Log, reqID, op, "store failed", err, "user_id", me.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID)
	v1.WriteOKResponse(w, r, map[string]any{
		"message":           "docs password reset",
		"has_docs_password": true,
	})
}
