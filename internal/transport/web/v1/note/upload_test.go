package note

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

func uploadReq(t *testing.T, fields map[string]string, filename string, u domain.User) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mp.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mp.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("content"))
		require.NoError(t, err)
	}
	require.NoError(t, mp.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/notes/upload", &buf)
	r.Header.Set("Content-Type", mp.FormDataContentType())
	return r.WithContext(domain.WithUser(r.Context(), u))
}

func TestUpload_OwnerAttachedFromToken(t *testing.T) {
	me := domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}
	st := &fakeStorage{ref: domain.FileRef{URL: "http://s3/notes/x.pdf", Key: "notes/x.pdf"}}
	cache := newFakeCache()
	h := newTestHandler(&fakeNotes{}, &fakeUsers{}, st, cache)

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadReq(t, map[string]string{
		"title": "algebra", "description": "notes", "category": "math",
	}, "algebra.pdf", me))

	require.Equal(t, http.StatusCreated, rr.Code)
	var env struct {
		Response domain.NoteView `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	// владелец подставляется из токена, без повторного похода в БД
	assert.Equal(t, me.ID, env.Response.Owner.ID)
	assert.Equal(t, "Alice", env.Response.Owner.Name)
	assert.Equal(t, "alice@example.com", env.Response.Owner.Email)
	assert.Equal(t, "http://s3/notes/x.pdf", env.Response.FileURL)
	assert.Equal(t, 1, cache.bumps)
}

func TestUpload_ExtensionRejected(t *testing.T) {
	h := newTestHandler(&fakeNotes{}, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadReq(t, map[string]string{
		"title": "x", "description": "y", "category": "z",
	}, "payload.exe", domain.User{ID: uuid.New()}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpload_MissingFields(t *testing.T) {
	h := newTestHandler(&fakeNotes{}, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	h.Upload(rr, uploadReq(t, map[string]string{"title": "only title"}, "a.pdf", domain.User{ID: uuid.New()}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
