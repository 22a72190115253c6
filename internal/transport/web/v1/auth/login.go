package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary     Authenticate user
// @Description Возвращает JWT при валидных email и пароле.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body loginRequest true "email, password"
// @Success     200 {object} domain.APIEnvelope{response=authResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "auth.login"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req loginRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logx.Error(h.Log, reqID, op, "bad json", err)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
	} else {
		_ = r.ParseForm()
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
	}

	req.Email = domain.NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		logx.Error(h.Log, reqID, op, "empty email or password", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// несуществующий email и неверный пароль снаружи неразличимы
	u, err := h.Users.UserByEmail(r.Context(), req.Email)
	if err != nil {
		logx.Error(h.Log, reqID, op, "user not found", err, "email", req.Email)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	ok, err := h.Hasher.Verify(req.Password, u.PassHash)
	if err != nil || !ok {
		logx.Error(h.Log, reqID, op, "password verify failed", err, "email", req.Email)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	token, _, err := h.Tokens.Issue(r.Context(), u.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "issue token failed", err, "user_id", u.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID, "email", u.Email)
	v1.WriteOKResponse(w, r, authResponse{User: toUserInfo(u), Token: string(token)})
}

// Profile godoc
// @Summary     Current account profile
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} domain.APIEnvelope{response=object}
// @Failure     401 {object} domain.APIEnvelope
// @Router      /api/auth/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	v1.WriteOKResponse(w, r, map[string]any{"user": toUserInfo(me)})
}
