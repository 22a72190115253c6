package note

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

func TestUpdate_ForeignNoteForbidden(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()
	notes := &fakeNotes{note: domain.NoteView{Note: domain.Note{ID: id, UploadedBy: owner}}}
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	req := withNoteID(authedReq(http.MethodPut, "/x", `{"title":"new"}`, domain.User{ID: uuid.New()}), id)
	h.Update(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestUpdate_MissingNote(t *testing.T) {
	notes := &fakeNotes{noteErr: domain.ErrNotFound}
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	req := withNoteID(authedReq(http.MethodPut, "/x", `{"title":"new"}`, domain.User{ID: uuid.New()}), uuid.New())
	h.Update(rr, req)

	// чужого от несуществующего здесь отличают: нет заметки — 404
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdate_OwnerOK(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()
	notes := &fakeNotes{note: domain.NoteView{Note: domain.Note{ID: id, UploadedBy: owner}}}
	cache := newFakeCache()
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, cache)

	rr := httptest.NewRecorder()
	req := withNoteID(authedReq(http.MethodPut, "/x", `{"title":"new"}`, domain.User{ID: owner}), id)
	h.Update(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, cache.bumps) // списки инвалидированы
}

func TestDelete_StorageFailureDoesNotBlock(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()
	notes := &fakeNotes{note: domain.NoteView{Note: domain.Note{ID: id, UploadedBy: owner, FileKey: "notes/x.pdf"}}}
	st := &fakeStorage{deleteErr: assert.AnError}
	h := newTestHandler(notes, &fakeUsers{}, st, newFakeCache())

	rr := httptest.NewRecorder()
	req := withNoteID(authedReq(http.MethodDelete, "/x", "", domain.User{ID: owner}), id)
	h.Delete(rr, req)

	// файл не удалился, но запись каталога ушла
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "notes/x.pdf", st.deletedKey)
	require.Len(t, notes.deletedIDs, 1)
	assert.Equal(t, id, notes.deletedIDs[0])
}

func TestDelete_ForeignNoteForbidden(t *testing.T) {
	id := uuid.New()
	notes := &fakeNotes{note: domain.NoteView{Note: domain.Note{ID: id, UploadedBy: uuid.New()}}}
	h := newTestHandler(notes, &fakeUsers{}, &fakeStorage{}, newFakeCache())

	rr := httptest.NewRecorder()
	req := withNoteID(authedReq(http.MethodDelete, "/x", "", domain.User{ID: uuid.New()}), id)
	h.Delete(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, notes.deletedIDs)
}

func TestExtAllowed(t *testing.T) {
	assert.True(t, extAllowed("report.PDF"))
	assert.True(t, extAllowed("photo.jpeg"))
	assert.False(t, extAllowed("malware.exe"))
	assert.False(t, extAllowed("noext"))
}
