package httpserver

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/docportal/internal/docsconfig"
	derrors "git.home.luguber.info/inful/docportal/internal/errors"
	"git.home.luguber.info/inful/docportal/internal/prefs"
	"git.home.luguber.info/inful/docportal/internal/seo"
)

// assembled is the per-request result of version resolution and nav assembly.
type assembled struct {
	nav     docsconfig.AssembledNav
	version string // concrete version after latest-alias resolution
}

func (s *Server) assembleFor(r *http.Request) (*assembled, error) {
	snap := s.current()

	requested := chi.URLParam(r, "version")
	concrete, ok := snap.registry.Resolve(requested)
	if !ok {
		return nil, derrors.UnknownVersion(requested)
	}

	dcfg, err := s.opts.Provider.ForVersion(concrete)
	if err != nil {
		return nil, err
	}

	preference := ""
	if s.opts.Prefs != nil {
		preference = s.opts.Prefs.Resolve(r)
	}

	rctx := chi.RouteContext(r.Context())
	route := docsconfig.Route{
		Template: rctx.RoutePattern(),
		Params: map[string]string{
			"version":   requested,
			"framework": chi.URLParam(r, "framework"),
		},
		Tail: chi.URLParam(r, "*"),
	}

	nav := docsconfig.Assemble(docsconfig.Input{
		Params: docsconfig.RouteParams{
			Framework: chi.URLParam(r, "framework"),
			Version:   requested,
		},
		Preference:       preference,
		Config:           dcfg,
		Registry:         snap.cfg.Frameworks,
		DefaultFramework: snap.cfg.Versions.DefaultFramework,
		Versions:         snap.registry.Supported(),
		Site:             snap.cfg.Site,
		Route:            route,
	})

	return &assembled{nav: nav, version: concrete}, nil
}

// writeError answers through the error adapter and records the request under
// its mapped status so error responses show up in the request counter.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.opts.Recorder.IncRequest(chi.RouteContext(r.Context()).RoutePattern(), s.errorAdapter.StatusCodeFor(err))
	s.errorAdapter.WriteErrorResponse(w, r, err)
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	snap := s.current()

	a, err := s.assembleFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	page := chi.URLParam(r, "*")
	start := time.Now()
	rendered, err := s.opts.Renderer.RenderPage(a.version, a.nav.Framework, page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.opts.Recorder.ObserveRenderDuration(time.Since(start))

	meta := seo.ForPage(snap.cfg.Site, rendered.Title, originOf(r)+r.URL.Path)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = pageTemplate.Execute(w, pageData{
		Head: template.HTML(meta.HeadTags()),
		Nav:  a.nav,
		Body: template.HTML(rendered.HTML),
	})
	if err != nil {
		s.logger.Error("failed to render page shell", "error", err)
		return
	}

	s.opts.Publisher.PageView(a.version, a.nav.Framework, page)
	s.opts.Recorder.IncRequest(chi.RouteContext(r.Context()).RoutePattern(), http.StatusOK)
}

// handleNav serves the assembled navigation and SEO metadata as JSON for
// client applications that render the shell themselves.
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	snap := s.current()

	a, err := s.assembleFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	payload := struct {
		Version string                  `json:"version"`
		Nav     docsconfig.AssembledNav `json:"nav"`
		Meta    seo.Meta                `json:"meta"`
	}{
		Version: a.version,
		Nav:     a.nav,
		Meta:    seo.ForPage(snap.cfg.Site, "", originOf(r)+r.URL.Path),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode nav payload", "error", err)
	}
	s.opts.Recorder.IncRequest(chi.RouteContext(r.Context()).RoutePattern(), http.StatusOK)
}

// handleSetPreference stores the client's framework choice: in the persistent
// store when one is configured, otherwise in the preference cookie.
func (s *Server) handleSetPreference(w http.ResponseWriter, r *http.Request) {
	snap := s.current()

	var body struct {
		Framework string `json:"framework"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r,
			derrors.New(derrors.CategoryValidation, derrors.SeverityWarning, "invalid preference payload"))
		return
	}
	if _, ok := snap.cfg.FrameworkByName(body.Framework); !ok {
		s.writeError(w, r,
			derrors.ValidationFailed("framework", "unknown framework "+body.Framework))
		return
	}

	if s.opts.PrefStore != nil {
		clientID := ""
		if c, err := r.Cookie(prefs.ClientIDCookie); err == nil {
			clientID = c.Value
		}
		if clientID == "" {
			clientID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     prefs.ClientIDCookie,
				Value:    clientID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		if err := s.opts.PrefStore.Set(r.Context(), clientID, body.Framework); err != nil {
			s.writeError(w, r, err)
			return
		}
	} else {
		http.SetCookie(w, &http.Cookie{
			Name:     snap.cfg.Prefs.CookieName,
			Value:    body.Framework,
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
		})
	}

	w.WriteHeader(http.StatusNoContent)
}
