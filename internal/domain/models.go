package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type UserID = uuid.UUID
type NoteID = uuid.UUID
type DocID = uuid.UUID

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Пользователь
type User struct {
	ID           UserID    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"` // хранится в нижнем регистре
	PassHash     string    `json:"-"`     // никогда не отдаём наружу
	DocsPassHash string    `json:"-"`     // пустая строка — docs-пароль не установлен
	Role         Role      `json:"role"`
	Favorites    []NoteID  `json:"favorites"`
	ResetToken   string    `json:"-"`
	ResetExpires time.Time `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) IsAdmin() bool         { return u.Role == RoleAdmin }
func (u User) HasDocsPassword() bool { return u.DocsPassHash != "" }

func (u User) ResetTokenValid(now time.Time) bool {
	return u.ResetToken != "" && now.Before(u.ResetExpires)
}

// Публичная проекция пользователя (populate name/email[/role])
type UserPublic struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

func (u User) Public() UserPublic {
	return UserPublic{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Ссылка на файл во внешнем хранилище: URL для чтения + ключ для удаления
type FileRef struct {
	URL string `json:"url"`
	Key string `json:"-"`
}

// Общая заметка (каталог)
type Note struct {
	ID          NoteID    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	FileURL     string    `json:"file_url"`
	FileKey     string    `json:"-"`
	UploadedBy  UserID    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Заметка с присоединёнными владельцем/лайками/комментариями
type NoteView struct {
	Note
	Owner    UserPublic    `json:"owner"`
	Likes    int           `json:"likes"`
	LikedBy  []UserID      `json:"liked_by,omitempty"`
	Comments []CommentView `json:"comments,omitempty"`
}

// Комментарий — неизменяемая под-сущность заметки
type Comment struct {
	ID        uuid.UUID `json:"id"`
	NoteID    NoteID    `json:"note_id"`
	UserID    UserID    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentView struct {
	ID        uuid.UUID  `json:"id"`
	Author    UserPublic `json:"user"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// Личный документ — строго привязан к владельцу, без шаринга и лайков
type PersonalDoc struct {
	ID          DocID     `json:"id"`
	UserID      UserID    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	FileURL     string    `json:"file_url"`
	FileKey     string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
