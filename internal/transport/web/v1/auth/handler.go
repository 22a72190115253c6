package auth

import (
	"log"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

type Handler struct {
	Log    *log.Logger
	Users  domain.UsersRepo
	Hasher domain.PasswordHasher
	Tokens domain.TokenManager
}

// Проекция аккаунта для ответов: без хэшей, с признаком docs-пароля
type userInfo struct {
	ID              domain.UserID   `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Role            domain.Role     `json:"role"`
	Favorites       []domain.NoteID `json:"favorites"`
	HasDocsPassword bool            `json:"has_docs_password"`
}

func toUserInfo(u domain.User) userInfo {
	favs := u.Favorites
	if favs == nil {
		favs = []domain.NoteID{}
	}
	return userInfo{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		Favorites:       favs,
		HasDocsPassword: u.HasDocsPassword(),
	}
}
