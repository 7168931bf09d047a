package session

// Session is the client-side login state for one backend
type Session struct {
	Token   string
	IsAdmin bool
}

// LoggedIn reports whether a bearer token is present
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// Store persists a Session. Clear removes every stored value.
type Store interface {
	Load() (Session, error)
	Save(s Session) error
	Clear() error
}
