package note

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/logx"
	"github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/mw"
	v1 "github.com/ShaikMuktharBasha/noteshare-backend/internal/transport/web/v1"
)

type listResponse struct {
	Data       []domain.NoteView      `json:"data"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Pages      int                    `json:"pages"`
	Categories []domain.CategoryCount `json:"categories"`
}

// List godoc
// @Summary     List shared notes
// @Description Фильтры: search/category/mine/favorites; пагинация page/limit (max 50); sort=newest|likes.
// @Tags        notes
// @Produce     json
// @Param       search query string false "подстрока в title"
// @Param       category query string false "точная категория"
// @Param       mine query bool false "только свои (нужен токен)"
// @Param       favorites query bool false "только избранные (нужен токен)"
// @Param       page query int false "страница (с 1)"
// @Param       limit query int false "размер страницы (default 9, max 50)"
// @Param       sort query string false "newest|likes"
// @Success     200 {object} domain.APIEnvelope{response=listResponse}
// @Failure     401 {object} domain.APIEnvelope
// @Router      /api/notes [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "notes.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	q := r.URL.Query()
	me, authed := mw.UserFromCtx(r.Context())

	f := domain.NoteFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
	// mine/favorites без личности — терминальный отказ, не пустой список
	if q.Get("mine") == "true" {
		if !authed {
			v1.WriteDomainError(w, r, domain.ErrUnauth)
			return
		}
		id := me.ID
		f.OwnerID = &id
	}
	if q.Get("favorites") == "true" {
		if !authed {
			v1.WriteDomainError(w, r, domain.ErrUnauth)
			return
		}
		id := me.ID
		f.FavoritesOf = &id
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		f.Page = n
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil {
		f.Limit = n
	}
	f.Normalize()

	sortBy := domain.NoteSort(q.Get("sort"))
	if sortBy != domain.NoteSortLikes {
		sortBy = domain.NoteSortNewest
	}

	// кэш: ключ зависит от версии каталога и всех параметров запроса
	ckey := h.listCacheKey(r.Context(), f, sortBy)
	if b, err := h.Cache.Get(r.Context(), ckey); err != nil {
		logx.Error(h.Log, reqID, op, "cache get failed", err)
	} else if b != nil {
		var cached listResponse
		if err := json.Unmarshal(b, &cached); err == nil {
			logx.Info(h.Log, reqID, op, "cache hit", "key", ckey)
			v1.WriteOKResponse(w, r, cached)
			return
		}
	}

	items, total, err := h.Notes.ListNotes(r.Context(), f)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	// сортировка строго в пределах выбранной страницы: порядок не глобальный,
	// и это контракт каталога, а не недочёт
	if sortBy == domain.NoteSortLikes {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Likes > items[j].Likes })
	} else {
		sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	}

	counts, err := h.Notes.CategoryCounts(r.Context(), f)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db category counts failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	pages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	resp := listResponse{
		Data:       items,
		Total:      total,
		Page:       f.Page,
		Pages:      pages,
		Categories: counts,
	}

	if buf, err := json.Marshal(resp); err == nil {
		_ = h.Cache.Set(r.Context(), ckey, buf, h.ListTTL)
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(items), "total", total, "page", f.Page)
	v1.WriteOKResponse(w, r, resp)
}

// listCacheKey: версия каталога + хэш нормализованных параметров.
// Для mine/favorites в ключ входит и сам пользователь.
func (h *Handler) listCacheKey(ctx context.Context, f domain.NoteFilter, s domain.NoteSort) string {
	ver := int64(0)
	if b, err := h.Cache.Get(ctx, domain.CacheKeyNotesVersion()); err == nil && len(b) > 0 {
		if n, err := strconv.ParseInt(string(b), 10, 64); err == nil {
			ver = n
		}
	}
	owner, fav := "", ""
	if f.OwnerID != nil {
		owner = f.OwnerID.String()
	}
	if f.FavoritesOf != nil {
		fav = f.FavoritesOf.String()
	}
	raw := fmt.Sprintf("s=%s;c=%s;o=%s;f=%s;p=%d;l=%d;sort=%s",
		f.Search, f.Category, owner, fav, f.Page, f.Limit, s)
	sum := sha256.Sum256([]byte(raw))
	return domain.CacheKeyNotesList(ver, hex.EncodeToString(sum[:8]))
}
