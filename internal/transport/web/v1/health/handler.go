package health

import (
	"context"
	"log"
	"net/http"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

type Pinger interface {
	Ping(context.Context) error
}

type Handler struct {
	Log *log.Logger
	// именованные зависимости, порядок опроса фиксированный
	Deps map[string]Pinger
}

// Liveness godoc
// @Summary     Process liveness
// @Tags        health
// @Produce     json
// @Success     200 {object} domain.APIEnvelope
// @Router      /health [get]
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	v1.WriteOKResponse(w, r, map[string]string{"status": "ok"})
}

// Readiness godoc
// @Summary     Dependency readiness
// @Description 502, если хотя бы одна зависимость не отвечает на ping.
// @Tags        health
// @Produce     json
// @Success     200 {object} domain.APIEnvelope
// @Failure     502 {object} domain.APIEnvelope
// @Router      /health/ready [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	states := make(map[string]string, len(h.Deps))
	ready := true
	for name, dep := range h.Deps {
		if err := dep.Ping(r.Context()); err != nil {
			h.Log.Printf("readiness: %s ping failed: %v", name, err)
			states[name] = "down"
			ready = false
			continue
		}
		states[name] = "up"
	}
	if !ready {
		status, env := v1.MapDomainError(domain.ErrUpstream)
		env.Data = states
		v1.WriteEnvelope(w, r, status, env)
		return
	}
	v1.WriteOKData(w, r, states)
}
