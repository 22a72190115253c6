package personaldoc

import (
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

// Хранилище личных документов: каждый запрос уже ограничен владельцем
// из токена, чужой документ неотличим от несуществующего.
type Handler struct {
	Log     *log.Logger
	Docs    domain.PersonalDocsRepo
	Storage domain.FileStorage
}

const storageFolder = "personal-docs"

var allowedExt = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".txt": true,
	".jpg": true, ".jpeg": true, ".png": true,
}

func extAllowed(filename string) bool {
	return allowedExt[strings.ToLower(path.Ext(filename))]
}

func docID(r *http.Request) (domain.DocID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad document id", domain.ErrBadParams)
	}
	return id, nil
}
