package session

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	cookieName = "sheetdeck_session"
	idKey      = "id"
)

// Manager maps browser sessions to editing states. The cookie carries
// only an opaque uuid; the workbook bytes and tables live in process
// memory and vanish when the server exits.
type Manager struct {
	cookies *sessions.CookieStore

	mu     sync.Mutex
	states map[string]*State

	// Bootstrap, when set, initializes every newly created state. Used
	// by watch mode to preload a workbook from disk.
	Bootstrap func(*State)
}

// NewManager creates a Manager backed by a cookie store.
func NewManager(secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode

	return &Manager{
		cookies: store,
		states:  make(map[string]*State),
	}
}

// State returns the editing state for the request's session, creating
// one (and setting the session cookie) on first contact.
func (m *Manager) State(w http.ResponseWriter, r *http.Request) *State {
	sess, _ := m.cookies.Get(r, cookieName)

	id, ok := sess.Values[idKey].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		sess.Values[idKey] = id
		_ = sess.Save(r, w)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[id]
	if !ok {
		st = NewState()
		if m.Bootstrap != nil {
			m.Bootstrap(st)
		}
		m.states[id] = st
	}
	return st
}

// Each calls fn for every live state. Used by watch mode to push a
// reloaded workbook into all sessions.
func (m *Manager) Each(fn func(*State)) {
	m.mu.Lock()
	states := make([]*State, 0, len(m.states))
	for _, st := range m.states {
		states = append(states, st)
	}
	m.mu.Unlock()

	for _, st := range states {
		fn(st)
	}
}
