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

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  userInfo `json:"user"`
	Token string   `json:"token"`
}

// Register godoc
// @Summary     Register new user
// @Description Регистрация: уникальный email (без учёта регистра), сразу выдаём токен.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body registerRequest true "name, email, password"
// @Success     201 {object} domain.APIEnvelope{response=authResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     409 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "auth.register"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req registerRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logx.Error(h.Log, reqID, op, "bad json", err)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
	} else {
		// form / query (на случай ручного теста)
		_ = r.ParseForm()
		req.Name = r.FormValue("name")
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = domain.NormalizeEmail(req.Email)

	// валидация на границе компонента — до похода в хранилище
	if !domain.ValidName(req.Name) || !domain.ValidEmail(req.Email) || !domain.ValidPassword(req.Password) {
		logx.Error(h.Log, reqID, op, "validation failed", domain.ErrBadParams, "email", req.Email)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	hashStr, err := h.Hasher.Hash(req.Password)
	if err != nil {
		logx.Error(h.Log, reqID, op, "hash failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	// дубликат email приходит из хранилища как conflict
	u, err := h.Users.CreateUser(r.Context(), req.Name, req.Email, hashStr)
	if err != nil {
		logx.Error(h.Log, reqID, op, "create user failed", err, "email", req.Email)
		v1.WriteDomainError(w, r, err)
		return
	}

	token, _, err := h.Tokens.Issue(r.Context(), u.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "issue token failed", err, "user_id", u.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID, "email", u.Email)
	v1.WriteCreated(w, r, authResponse{User: toUserInfo(u), Token: string(token)})
}
