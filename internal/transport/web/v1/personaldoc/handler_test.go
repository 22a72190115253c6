package personaldoc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

// ---- fakes ----

// Хранилище в памяти с настоящей владельческой изоляцией
type fakeDocs struct {
	docs map[domain.DocID]domain.PersonalDoc

	deleted []domain.DocID
}

func newFakeDocs() *fakeDocs { return &fakeDocs{docs: map[domain.DocID]domain.PersonalDoc{}} }

func (f *fakeDocs) DocsByOwner(ctx context.Context, owner domain.UserID) ([]domain.PersonalDoc, error) {
	var out []domain.PersonalDoc
	for _, d := range f.docs {
		if d.UserID == owner {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocs) DocByID(ctx context.Context, id domain.DocID, owner domain.UserID) (domain.PersonalDoc, error) {
	d, ok := f.docs[id]
	if !ok || d.UserID != owner {
		return domain.PersonalDoc{}, domain.ErrNotFound
	}
	return d, nil
}

func (f *fakeDocs) CreateDoc(ctx context.Context, d domain.PersonalDoc) (domain.PersonalDoc, error) {
	d.ID = uuid.New()
	f.docs[d.ID] = d
	return d, nil
}

func (f *fakeDocs) UpdateDoc(ctx context.Context, id domain.DocID, owner domain.UserID, p domain.DocPatch) (domain.PersonalDoc, error) {
	d, ok := f.docs[id]
	if !ok || d.UserID != owner {
		return domain.PersonalDoc{}, domain.ErrNotFound
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	f.docs[id] = d
	return d, nil
}

func (f *fakeDocs) DeleteDoc(ctx context.Context, id domain.DocID, owner domain.UserID) error {
	d, ok := f.docs[id]
	if !ok || d.UserID != owner {
		return domain.ErrNotFound
	}
	delete(f.docs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeStorage struct {
	ref        domain.FileRef
	putErr     error
	deleteErr  error
	deletedKey string
}

func (f *fakeStorage) Put(ctx context.Context, r io.Reader, folder, filename, contentType string) (domain.FileRef, error) {
	return f.ref, f.putErr
}
func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deletedKey = key
	return f.deleteErr
}

func newTestHandler(docs *fakeDocs, st *fakeStorage) *Handler {
	return &Handler{Log: log.New(io.Discard, "", 0), Docs: docs, Storage: st}
}

func authedReq(method, target, body string, u domain.User) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r.Header.Set("Content-Type", "application/json")
	return r.WithContext(domain.WithUser(r.Context(), u))
}

func multipartReq(t *testing.T, fields map[string]string, withFile bool, u domain.User) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mp.WriteField(k, v))
	}
	if withFile {
		fw, err := mp.CreateFormFile("file", "passport.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
	}
	require.NoError(t, mp.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/personal-docs", &buf)
	r.Header.Set("Content-Type", mp.FormDataContentType())
	return r.WithContext(domain.WithUser(r.Context(), u))
}

// ---- tests ----

func TestVault_OwnerIsolation(t *testing.T) {
	docs := newFakeDocs()
	owner := uuid.New()
	stranger := uuid.New()

	d, err := docs.CreateDoc(context.Background(), domain.PersonalDoc{UserID: owner, Title: "passport"})
	require.NoError(t, err)

	h := newTestHandler(docs, &fakeStorage{})

	// владелец видит документ
	rr := httptest.NewRecorder()
	req := authedReq(http.MethodGet, "/x", "", domain.User{ID: owner})
	req.SetPathValue("id", d.ID.String())
	h.Get(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	// чужой получает 404, а не 403 — существование не раскрываем
	rr = httptest.NewRecorder()
	req = authedReq(http.MethodGet, "/x", "", domain.User{ID: stranger})
	req.SetPathValue("id", d.ID.String())
	h.Get(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotContains(t, rr.Body.String(), "forbidden")

	// то же для обновления и удаления
	rr = httptest.NewRecorder()
	req = authedReq(http.MethodPut, "/x", `{"title":"stolen"}`, domain.User{ID: stranger})
	req.SetPathValue("id", d.ID.String())
	h.Update(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	req = authedReq(http.MethodDelete, "/x", "", domain.User{ID: stranger})
	req.SetPathValue("id", d.ID.String())
	h.Delete(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// документ остался нетронутым
	got, err := docs.DocByID(context.Background(), d.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "passport", got.Title)
}

func TestList_OnlyOwnDocs(t *testing.T) {
	docs := newFakeDocs()
	owner := uuid.New()
	_, _ = docs.CreateDoc(context.Background(), domain.PersonalDoc{UserID: owner, Title: "mine"})
	_, _ = docs.CreateDoc(context.Background(), domain.PersonalDoc{UserID: uuid.New(), Title: "theirs"})

	h := newTestHandler(docs, &fakeStorage{})

	rr := httptest.NewRecorder()
	h.List(rr, authedReq(http.MethodGet, "/api/personal-docs", "", domain.User{ID: owner}))

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Data []domain.PersonalDoc `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "mine", env.Data[0].Title)
}

func TestUpload_DefaultCategory(t *testing.T) {
	docs := newFakeDocs()
	st := &fakeStorage{ref: domain.FileRef{URL: "http://s3/docs/x.pdf", Key: "docs/x.pdf"}}
	h := newTestHandler(docs, st)

	rr := httptest.NewRecorder()
	h.Upload(rr, multipartReq(t, map[string]string{"title": "passport"}, true, domain.User{ID: uuid.New()}))

	require.Equal(t, http.StatusCreated, rr.Code)
	var env struct {
		Response domain.PersonalDoc `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, domain.DocCategoryOther, env.Response.Category)
	assert.Equal(t, "http://s3/docs/x.pdf", env.Response.FileURL)
}

func TestUpload_UnknownCategoryRejected(t *testing.T) {
	h := newTestHandler(newFakeDocs(), &fakeStorage{})

	rr := httptest.NewRecorder()
	h.Upload(rr, multipartReq(t, map[string]string{"title": "x", "category": "Homework"}, true, domain.User{ID: uuid.New()}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpload_FileRequired(t *testing.T) {
	h := newTestHandler(newFakeDocs(), &fakeStorage{})

	rr := httptest.NewRecorder()
	h.Upload(rr, multipartReq(t, map[string]string{"title": "x"}, false, domain.User{ID: uuid.New()}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpload_ExtensionRejected(t *testing.T) {
	h := newTestHandler(newFakeDocs(), &fakeStorage{})

	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)
	require.NoError(t, mp.WriteField("title", "x"))
	fw, err := mp.CreateFormFile("file", "payload.exe")
	require.NoError(t, err)
	_, err = fw.Write([]byte("MZ"))
	require.NoError(t, err)
	require.NoError(t, mp.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/personal-docs", &buf)
	r.Header.Set("Content-Type", mp.FormDataContentType())
	r = r.WithContext(domain.WithUser(r.Context(), domain.User{ID: uuid.New()}))

	rr := httptest.NewRecorder()
	h.Upload(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDelete_StorageFailureKeepsRecord(t *testing.T) {
	docs := newFakeDocs()
	owner := uuid.New()
	d, _ := docs.CreateDoc(context.Background(), domain.PersonalDoc{UserID: owner, FileKey: "docs/x.pdf"})

	st := &fakeStorage{deleteErr: assert.AnError}
	h := newTestHandler(docs, st)

	rr := httptest.NewRecorder()
	req := authedReq(http.MethodDelete, "/x", "", domain.User{ID: owner})
	req.SetPathValue("id", d.ID.String())
	h.Delete(rr, req)

	// хранилище отказало — запись не трогаем, наружу 502
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Empty(t, docs.deleted)
	_, err := docs.DocByID(context.Background(), d.ID, owner)
	assert.NoError(t, err)
}

func TestDelete_OK(t *testing.T) {
	docs := newFakeDocs()
	owner := uuid.New()
	d, _ := docs.CreateDoc(context.Background(), domain.PersonalDoc{UserID: owner, FileKey: "docs/x.pdf"})

	st := &fakeStorage{}
	h := newTestHandler(docs, st)

	rr := httptest.NewRecorder()
	req := authedReq(http.MethodDelete, "/x", "", domain.User{ID: owner})
	req.SetPathValue("id", d.ID.String())
	h.Delete(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "docs/x.pdf", st.deletedKey)
	assert.Len(t, docs.deleted, 1)
}

func TestUpdate_EmptyDescriptionClears(t *testing.T) {
	docs := newFakeDocs()
	owner := uuid.New()
	d, _ := docs.CreateDoc(context.Background(), domain.PersonalDoc{
		UserID: owner, Title: "passport", Description: "old", Category: "ID Proof",
	})

	h := newTestHandler(docs, &fakeStorage{})

	rr := httptest.NewRecorder()
	req := authedReq(http.MethodPut, "/x", `{"description":""}`, domain.User{ID: owner})
	req.SetPathValue("id", d.ID.String())
	h.Update(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Response domain.PersonalDoc `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Empty(t, env.Response.Description)
	assert.Equal(t, "passport", env.Response.Title) // не передано — не изменилось
}
