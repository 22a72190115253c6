package domain

import (
	"context"
	"time"
)

// Сортировка списка заметок. Применяется к уже выбранной странице,
// а не ко всей выборке — контрактная особенность каталога.
type NoteSort string

const (
	NoteSortNewest NoteSort = "newest"
	NoteSortLikes  NoteSort = "likes"
)

const (
	NoteDefaultLimit = 9
	NoteMaxLimit     = 50
)

// Фильтр каталога заметок
type NoteFilter struct {
	Search      string  // подстрока в title, без учёта регистра
	Category    string  // точное совпадение
	OwnerID     *UserID // mine=true — только свои
	FavoritesOf *UserID // favorites=true — только избранные вызывающего
	Page        int     // с 1
	Limit       int     // default 9, максимум 50
}

// Normalize выставляет дефолты страницы/лимита и clamp до максимума.
func (f *NoteFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = NoteDefaultLimit
	}
	if f.Limit > NoteMaxLimit {
		f.Limit = NoteMaxLimit
	}
}

func (f NoteFilter) Offset() uint64 { return uint64((f.Page - 1) * f.Limit) }

// Частичное обновление: nil — поле не передано
type NotePatch struct {
	Title       *string
	Description *string
	Category    *string
}

type DocPatch struct {
	Title       *string
	Description *string
	Category    *string
}

type UsersRepo interface {
	Close()
	Ping(context.Context) error
	// CreateUser возвращает ErrConflict при дубликате email.
	CreateUser(ctx context.Context, name, email, passHash string) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id UserID) (User, error)
	CountUsers(ctx context.Context) (int64, error)
	SetDocsPassword(ctx context.Context, id UserID, hash string) error
	SetResetToken(ctx context.Context, id UserID, token string, expires time.Time) error
	// UserByResetToken отдаёт пользователя только по не истёкшему токену.
	UserByResetToken(ctx context.Context, token string, now time.Time) (User, error)
	// UpdatePassword сбрасывает reset-токен вместе со сменой пароля.
	UpdatePassword(ctx context.Context, id UserID, passHash string) error
	// ToggleFavorite переключает заметку в избранном пользователя.
	ToggleFavorite(ctx context.Context, userID UserID, noteID NoteID) (favorited bool, total int, err error)
}

type NotesRepo interface {
	CreateNote(ctx context.Context, n Note) (Note, error)
	// NoteByID возвращает заметку с владельцем, лайками и комментариями.
	NoteByID(ctx context.Context, id NoteID) (NoteView, error)
	// ListNotes: страница в порядке вставки + total по всему фильтру.
	ListNotes(ctx context.Context, f NoteFilter) ([]NoteView, int64, error)
	// CategoryCounts: group-by по категории по тому же фильтру, без пагинации.
	CategoryCounts(ctx context.Context, f NoteFilter) ([]CategoryCount, error)
	UpdateNote(ctx context.Context, id NoteID, p NotePatch) (Note, error)
	DeleteNote(ctx context.Context, id NoteID) error
	// ToggleLike — атомарный переключатель членства в множестве лайков.
	ToggleLike(ctx context.Context, noteID NoteID, userID UserID) (likes int, liked bool, err error)
	AddComment(ctx context.Context, noteID NoteID, userID UserID, text string) ([]CommentView, error)
	CountNotes(ctx context.Context) (int64, error)
	TotalLikes(ctx context.Context) (int64, error)
	// AllNotes — для админки: все заметки с владельцем, новые первыми.
	AllNotes(ctx context.Context) ([]NoteView, error)
}

// Все операции хранилища личных документов уже ограничены владельцем:
// чужой id неотличим от несуществующего (ErrNotFound, не ErrForbidden).
type PersonalDocsRepo interface {
	DocsByOwner(ctx context.Context, owner UserID) ([]PersonalDoc, error)
	DocByID(ctx context.Context, id DocID, owner UserID) (PersonalDoc, error)
	CreateDoc(ctx context.Context, d PersonalDoc) (PersonalDoc, error)
	UpdateDoc(ctx context.Context, id DocID, owner UserID, p DocPatch) (PersonalDoc, error)
	DeleteDoc(ctx context.Context, id DocID, owner UserID) error
}
