// Package prefs provides the framework preference capability: an explicit
// resolver threaded through the request instead of module-level state.
package prefs

import (
	"context"
	"net/http"
)

// Resolver resolves a request's stored framework preference. An empty string
// means no preference; absence is never an error.
type Resolver interface {
	Resolve(r *http.Request) string
}

// Store persists framework preferences keyed by client ID. Get returns
// ok=false when no preference exists.
type Store interface {
	Get(ctx context.Context, clientID string) (framework string, ok bool, err error)
	Set(ctx context.Context, clientID, framework string) error
}

// ClientIDCookie names the cookie carrying the opaque client ID used to key
// persistent preference stores.
const ClientIDCookie = "docportal_client"

// StoreResolver adapts a persistent Store to a Resolver by reading the client
// ID cookie. Store failures degrade to "no preference".
type StoreResolver struct {
	Store Store
}

func (sr StoreResolver) Resolve(r *http.Request) string {
	c, err := r.Cookie(ClientIDCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	framework, ok, err := sr.Store.Get(r.Context(), c.Value)
	if err != nil || !ok {
		return ""
	}
	return framework
}
