package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

// Окно действия reset-токена
const resetTokenTTL = 30 * time.Minute

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// ForgotPassword godoc
// @Summary     Request password reset token
// @Description Для неизвестного email отвечаем тем же сообщением — существование аккаунта не раскрываем.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body forgotPasswordRequest true "email"
// @Success     200 {object} domain.APIEnvelope{response=object}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /api/auth/forgot-password [post]
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	const op = "auth.forgot_password"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	req.Email = domain.NormalizeEmail(req.Email)
	if !domain.ValidEmail(req.Email) {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	u, err := h.Users.UserByEmail(r.Context(), req.Email)
	if err != nil {
		// не раскрываем, есть ли такой аккаунт
		logx.Info(h.Log, reqID, op, "unknown email", "email", req.Email)
		v1.WriteOKResponse(w, r, map[string]string{
			"message": "if that email exists, a reset link was sent",
		})
		return
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		logx.Error(h.Log, reqID, op, "rand failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	token := hex.EncodeToString(buf)

	if err := h.Users.SetResetToken(r.Context(), u.ID, token, time.Now().UTC().Add(resetTokenTTL)); err != nil {
		logx.Error(h.Log, reqID, op, "store token failed", err, "user_id", u.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	// TODO: отправка письма; пока возвращаем токен в ответе для разработки
	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID)
	v1.WriteOKResponse(w, r, map[string]string{
		"message": "reset token created",
		"token":   token,
	})
}

// ResetPassword godoc
// @Summary     Reset password by token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       token path string true "reset token"
// @Param       request body resetPasswordRequest true "new password"
// @Success     200 {object} domain.APIEnvelope{response=object}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /api/auth/reset-password/{token} [post]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	const op = "auth.reset_password"
	reqID := mw.RequestIDFromCtx(r.Context())

	token := r.PathValue("token")
	if token == "" {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if !domain.ValidPassword(req.Password) {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// истёкший или незнакомый токен — один и тот же ответ
	u, err := h.Users.UserByResetToken(r.Context(), token, time.Now().UTC())
	if err != nil {
		logx.Error(h.Log, reqID, op, "invalid or expired token", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	hashStr, err := h.Hasher.Hash(req.Password)
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	// UpdatePassword гасит reset-токен атомарно со сменой пароля
	if err := h.Users.UpdatePassword(r.Context(), u.ID, hashStr); err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "user_id", u.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID)
	v1.WriteOKResponse(w, r, map[string]string{"message": "password reset successful"})
}
