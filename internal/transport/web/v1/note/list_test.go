package note

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

func nv(title string, likes int, created time.Time) domain.NoteView {
	return domain.NoteView{
		Note:  domain.Note{ID: uuid.New(), Title: title, CreatedAt: created},
		Likes: likes,
	}
}

func decodeList(t *testing.T, body []byte) listResponse {
	t.Helper()
	var env struct {
		Response listResponse `json:"response"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return env.Response
}

func TestList_Defaults(t *testing.T) {
	notes := &fakeNotes{
		list:  []domain.NoteView{nv("a", 0, time.Now())},
		total: 1,
	}
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, notes.gotFilter.Page)
	assert.Equal(t, domain.NoteDefaultLimit, notes.gotFilter.Limit)

	resp := decodeList(t, rr.Body.Bytes())
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 1, resp.Pages)
}

func TestList_LimitClamped(t *testing.T) {
	notes := &fakeNotes{total: 120}
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/notes?limit=500&page=2", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.NoteMaxLimit, notes.gotFilter.Limit)

	resp := decodeList(t, rr.Body.Bytes())
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 3, resp.Pages) // ceil(120/50)
}

func TestList_PageLocalSort(t *testing.T) {
	now := time.Now()
	// страница приходит в порядке вставки, сортируем только её
	notes := &fakeNotes{
		list: []domain.NoteView{
			nv("old-popular", 10, now.Add(-2*time.Hour)),
			nv("new-quiet", 1, now),
			nv("mid", 5, now.Add(-time.Hour)),
		},
		total: 3,
	}
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/notes?sort=likes", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeList(t, rr.Body.Bytes())
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "old-popular", resp.Data[0].Title)
	assert.Equal(t, "mid", resp.Data[1].Title)
	assert.Equal(t, "new-quiet", resp.Data[2].Title)

	// дефолт — новые первыми
	rr = httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	resp = decodeList(t, rr.Body.Bytes())
	assert.Equal(t, "new-quiet", resp.Data[0].Title)
}

func TestList_MineRequiresIdentity(t *testing.T) {
	h := newTestHandler(&fakeNotes{}, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/notes?mine=true", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/notes?favorites=true", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestList_MineFiltersByCaller(t *testing.T) {
	uid := uuid.New()
	notes := &fakeNotes{}
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	req := httptest.NewRequest(http.MethodGet, "/api/notes?mine=true", nil)
	req = req.WithContext(domain.WithUser(req.Context(), domain.User{ID: uid}))

	rr := httptest.NewRecorder()
	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, notes.gotFilter.OwnerID)
	assert.Equal(t, uid, *notes.gotFilter.OwnerID)
}

func TestList_CacheHitSkipsRepo(t *testing.T) {
	notes := &fakeNotes{
		list:  []domain.NoteView{nv("first", 0, time.Now())},
		total: 1,
	}
	cache := newFakeCache()
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, cache)

	// первый запрос наполняет кэш
	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	// повторный при застывшем кэше не видит новых данных
	notes.list = []domain.NoteView{nv("second", 0, time.Now())}
	rr = httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	resp := decodeList(t, rr.Body.Bytes())
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "first", resp.Data[0].Title)

	// бамп версии делает старый ключ невидимым
	h.bumpListVersion(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	rr = httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	resp = decodeList(t, rr.Body.Bytes())
	assert.Equal(t, "second", resp.Data[0].Title)
}

func TestList_FavoriteToggleInvalidatesCache(t *testing.T) {
	me := domain.User{ID: uuid.New()}
	fav := nv("kept", 0, time.Now())
	notes := &fakeNotes{
		note:  fav,
		list:  []domain.NoteView{fav},
		total: 1,
	}
	cache := newFakeCache()
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, cache)

	favReq := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/api/notes?favorites=true", nil)
		return r.WithContext(domain.WithUser(r.Context(), me))
	}

	// первая выборка избранного ложится в кэш
	rr := httptest.NewRecorder()
	h.List(rr, favReq())
	require.Equal(t, http.StatusOK, rr.Code)

	// переключение избранного обязано сбросить список
	rr = httptest.NewRecorder()
	h.Favorite(rr, withNoteID(authedReq(http.MethodPost, "/api/notes/favorite/"+fav.ID.String(), "", me), fav.ID))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, cache.bumps)

	// после снятия из избранного повторная выборка видит пустой список
	notes.list, notes.total = nil, 0
	rr = httptest.NewRecorder()
	h.List(rr, favReq())
	resp := decodeList(t, rr.Body.Bytes())
	assert.Empty(t, resp.Data)
}
