package web

import "github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"

type Repos struct {
	Users        domain.UsersRepo
	Notes        domain.NotesRepo
	PersonalDocs domain.PersonalDocsRepo
}

type AuthDeps struct {
	Hasher domain.PasswordHasher
	Tokens domain.TokenManager
}
