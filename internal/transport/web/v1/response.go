package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
)

// debug=true (не production) — в тексте ошибки отдаём детали причины.
// В проде наружу уходит только короткий текст таксономии.
var debug bool

func SetDebug(v bool) { debug = v }

// MapDomainError решает HTTP-статус + error.code/text для конверта
func MapDomainError(err error) (httpStatus int, env domain.APIEnvelope) {
	switch {
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, failWith(domain.ErrCodeBadParams, "bad params", err)
	case errors.Is(err, domain.ErrUnauth):
		return http.StatusUnauthorized, failWith(domain.ErrCodeUnauth, "unauthorized", err)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, failWith(domain.ErrCodeForbidden, "forbidden", err)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, failWith(domain.ErrCodeNotFound, "not found", err)
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, failWith(domain.ErrCodeMethodNotAllowed, "method not allowed", err)
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, failWith(domain.ErrCodeConflict, "already exists", err)
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, failWith(domain.ErrCodeUpstream, "upstream failure", err)
	default:
		// Таймауты/отмены/прочее — как 500
		return http.StatusInternalServerError, failWith(domain.ErrCodeUnexpected, "unexpected", err)
	}
}

func failWith(code int, text string, err error) domain.APIEnvelope {
	if debug && err != nil && err.Error() != text {
		return domain.Fail(code, err.Error())
	}
	return domain.Fail(code, text)
}

// WriteEnvelope пишет конверт; для HEAD — без тела
func WriteEnvelope(w http.ResponseWriter, r *http.Request, status int, env domain.APIEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(env)
}

// Шорткаты успеха
func WriteOKData(w http.ResponseWriter, r *http.Request, data any) {
	WriteEnvelope(w, r, http.StatusOK, domain.OkData(data))
}

func WriteOKResponse(w http.ResponseWriter, r *http.Request, resp any) {
	WriteEnvelope(w, r, http.StatusOK, domain.OkResponse(resp))
}

func WriteCreated(w http.ResponseWriter, r *http.Request, resp any) {
	WriteEnvelope(w, r, http.StatusCreated, domain.OkResponse(resp))
}

// Шорткаты ошибок
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := MapDomainError(err)
	WriteEnvelope(w, r, status, env)
}
