package prefs

import "net/http"

// CookieStore resolves the preference from a cookie written by the client
// itself; the server never writes it.
type CookieStore struct {
	Name string
}

// NewCookieStore creates a resolver for the named preference cookie.
func NewCookieStore(name string) *CookieStore {
	return &CookieStore{Name: name}
}

func (s *CookieStore) Resolve(r *http.Request) string {
	c, err := r.Cookie(s.Name)
	if err != nil {
		return ""
	}
	return c.Value
}
