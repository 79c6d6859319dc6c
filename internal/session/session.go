// Package session configures the server-side session manager backed by the
// application's SQLite database.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys used across handlers.
const (
	KeyUserID    = "user_id"
	KeyAdminLang = "admin_lang"
	KeyFlash     = "flash"
	KeyFlashKind = "flash_kind"
)

// New creates a session manager persisting sessions in the given database.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}
