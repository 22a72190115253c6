package note

import (
	"context"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

// ---- fakes ----

type fakeNotes struct {
	note       domain.NoteView
	noteErr    error
	list       []domain.NoteView
	total      int64
	listErr    error
	counts     []domain.CategoryCount
	likes      int
	liked      bool
	toggleErr  error
	comments   []domain.CommentView
	commentErr error
	deleteErr  error

	gotFilter  domain.NoteFilter
	deletedIDs []domain.NoteID
}

func (f *fakeNotes) CreateNote(ctx context.Context, n domain.Note) (domain.Note, error) {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	return n, nil
}
func (f *fakeNotes) NoteByID(ctx context.Context, id domain.NoteID) (domain.NoteView, error) {
	return f.note, f.noteErr
}
func (f *fakeNotes) ListNotes(ctx context.Context, fl domain.NoteFilter) ([]domain.NoteView, int64, error) {
	f.gotFilter = fl
	return f.list, f.total, f.listErr
}
func (f *fakeNotes) CategoryCounts(ctx context.Context, fl domain.NoteFilter) ([]domain.CategoryCount, error) {
	return f.counts, nil
}
func (f *fakeNotes) UpdateNote(ctx context.Context, id domain.NoteID, p domain.NotePatch) (domain.Note, error) {
	return f.note.Note, f.noteErr
}
func (f *fakeNotes) DeleteNote(ctx context.Context, id domain.NoteID) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return f.deleteErr
}
func (f *fakeNotes) ToggleLike(ctx context.Context, noteID domain.NoteID, userID domain.UserID) (int, bool, error) {
	return f.likes, f.liked, f.toggleErr
}
func (f *fakeNotes) AddComment(ctx context.Context, noteID domain.NoteID, userID domain.UserID, text string) ([]domain.CommentView, error) {
	return f.comments, f.commentErr
}
func (f *fakeNotes) CountNotes(ctx context.Context) (int64, error) { return f.total, nil }
func (f *fakeNotes) TotalLikes(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakeNotes) AllNotes(ctx context.Context) ([]domain.NoteView, error) {
	return f.list, f.listErr
}

type fakeUsers struct {
	favorited bool
	favTotal  int
	err       error
}

func (f *fakeUsers) Close()                         {}
func (f *fakeUsers) Ping(ctx context.Context) error { return nil }
func (f *fakeUsers) CreateUser(ctx context.Context, name, email, passHash string) (domain.User, error) {
	return domain.User{}, f.err
}
func (f *fakeUsers) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	return domain.User{}, f.err
}
func (f *fakeUsers) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	return domain.User{}, f.err
}
func (f *fakeUsers) CountUsers(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakeUsers) SetDocsPassword(ctx context.Context, id domain.UserID, hash string) error {
	return nil
}
func (f *fakeUsers) SetResetToken(ctx context.Context, id domain.UserID, token string, expires time.Time) error {
	return nil
}
func (f *fakeUsers) UserByResetToken(ctx context.Context, token string, now time.Time) (domain.User, error) {
	return domain.User{}, f.err
}
func (f *fakeUsers) UpdatePassword(ctx context.Context, id domain.UserID, passHash string) error {
	return nil
}
func (f *fakeUsers) ToggleFavorite(ctx context.Context, userID domain.UserID, noteID domain.NoteID) (bool, int, error) {
	return f.favorited, f.favTotal, f.err
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

// Кэш в памяти; ведёт счётчик Incr как настоящий Redis
type fakeCache struct {
	data  map[string][]byte
	bumps int
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) { return f.data[key], nil }
func (f *fakeCache) Set(ctx context.Context, key string, val []byte, ttlSeconds int) error {
	f.data[key] = val
	return nil
}
func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}
func (f *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	f.bumps++
	f.data[key] = []byte(strconv.Itoa(f.bumps))
	return int64(f.bumps), nil
}
func (f *fakeCache) Ping(ctx context.Context) error { return nil }
func (f *fakeCache) Close()                         {}

func newTestHandler(notes *fakeNotes, users *fakeUsers, st *fakeStorage, c *fakeCache) *Handler {
	return &Handler{
		Log:     log.New(io.Discard, "", 0),
		Notes:   notes,
		Users:   users,
		Storage: st,
		Cache:   c,
		ListTTL: 60,
	}
}
