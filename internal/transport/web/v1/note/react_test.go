package note

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

func authedReq(method, target string, body string, u domain.User) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r.Header.Set("Content-Type", "application/json")
	return r.WithContext(domain.WithUser(r.Context(), u))
}

func withNoteID(r *http.Request, id domain.NoteID) *http.Request {
	r.SetPathValue("id", id.String())
	return r
}

func TestLike_ToggleStates(t *testing.T) {
	id := uuid.New()
	notes := &fakeNotes{note: domain.NoteView{Note: domain.Note{ID: id}}, likes: 1, liked: true}
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	req := withNoteID(authedReq(http.MethodPost, "/api/notes/like/"+id.String(), "", domain.User{ID: uuid.New()}), id)
	h.Like(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Response likeResponse `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Response.Liked)
	assert.Equal(t, 1, env.Response.Likes)

	// повторный клик снимает лайк
	notes.likes, notes.liked = 0, false
	rr = httptest.NewRecorder()
	h.Like(rr, withNoteID(authedReq(http.MethodPost, "/x", "", domain.User{ID: uuid.New()}), id))
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.False(t, env.Response.Liked)
	assert.Equal(t, 0, env.Response.Likes)
}

func TestLike_MissingNote(t *testing.T) {
	id := uuid.New()
	notes := &fakeNotes{noteErr: domain.ErrNotFound}
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	h.Like(rr, withNoteID(authedReq(http.MethodPost, "/x", "", domain.User{ID: uuid.New()}), id))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLike_BadID(t *testing.T) {
	h := newTestHandler(&fakeNotes{}, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	req := authedReq(http.MethodPost, "/x", "", domain.User{ID: uuid.New()})
	req.SetPathValue("id", "not-a-uuid")
	h.Like(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFavorite_Toggle(t *testing.T) {
	id := uuid.New()
	users := &fakeUsers{favorited: true, favTotal: 3}
	h := newTestHandler(&fakeNotes{note: domain.NoteView{Note: domain.Note{ID: id}}}, users, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	h.Favorite(rr, withNoteID(authedReq(http.MethodPost, "/x", "", domain.User{ID: uuid.New()}), id))

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Response favoriteResponse `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Response.Favorited)
	assert.Equal(t, 3, env.Response.Favorites)
}

func TestComment_EmptyTextRejected(t *testing.T) {
	id := uuid.New()
	notes := &fakeNotes{note: domain.NoteView{Note: domain.Note{ID: id}}}
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	h.Comment(rr, withNoteID(authedReq(http.MethodPost, "/x", `{"text":"   "}`, domain.User{ID: uuid.New()}), id))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestComment_ReturnsFullList(t *testing.T) {
	id := uuid.New()
	notes := &fakeNotes{
		note: domain.NoteView{Note: domain.Note{ID: id}},
		comments: []domain.CommentView{
			{ID: uuid.New(), Text: "first"},
			{ID: uuid.New(), Text: "second"},
		},
	}
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	h.Comment(rr, withNoteID(authedReq(http.MethodPost, "/x", `{"text":"second"}`, domain.User{ID: uuid.New()}), id))

	require.Equal(t, http.StatusCreated, rr.Code)
	var env struct {
		Response commentsResponse `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Len(t, env.Response.Comments, 2)
}
