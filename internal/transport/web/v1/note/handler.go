package note

import (
	"context"
	"log"
	"path"
	"strings"

	"github.com/ShaikMuktharBasha/noteshare-backend/internal/domain"
)

type Handler struct {
	Log     *log.Logger
	Notes   domain.NotesRepo
	Users   domain.UsersRepo
	Storage domain.FileStorage
	Cache   domain.Cache

	ListTTL int // секунд
}

// Логическая папка каталога во внешнем хранилище
const storageFolder = "notes"

// Разрешённые расширения загружаемых файлов
var allowedExt = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".txt": true,
	".jpg": true, ".jpeg": true, ".png": true,
}

func extAllowed(filename string) bool {
	return allowedExt[strings.ToLower(path.Ext(filename))]
}

// bumpListVersion инвалидирует кэш списков: версия растёт, старые ключи
// отмирают по TTL. Ошибки кэша каталог не роняют.
func (h *Handler) bumpListVersion(ctx context.Context) {
	if _, err := h.Cache.Incr(ctx, domain.CacheKeyNotesVersion()); err != nil {
		h.Log.Printf("bump list version failed: %v", err)
	}
}
