// Package api serves the sizing engine over HTTP.
//
// Routes:
//
//	GET  /healthz              build information
//	GET  /v1/sizings           registered handlers
//	GET  /v1/sizings/{name}    one handler
//	POST /v1/size              {"sizing": "contain", "input": {...}} -> output
//	POST /v1/render            same body -> SVG drawing
//
// Errors are rendered by httputil.WriteError.
package api

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/boxfit/pkg/buildinfo"
	"github.com/matzehuels/boxfit/pkg/errors"
	"github.com/matzehuels/boxfit/pkg/httputil"
	"github.com/matzehuels/boxfit/pkg/sink"
	"github.com/matzehuels/boxfit/pkg/sizing"
)

// SizeRequest is the body of /v1/size and /v1/render. An empty Sizing
// selects sizing.DefaultName.
type SizeRequest struct {
	Sizing string       `json:"sizing"`
	Input  sizing.Input `json:"input"`
}

// Health is the body of /healthz.
type Health struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// Server routes API requests to a sizing registry.
type Server struct {
	registry *sizing.Registry
	logger   *log.Logger
	router   chi.Router
}

// New creates a Server over reg. A nil logger uses log.Default().
func New(reg *sizing.Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{registry: reg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httputil.Observe(logger))

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/sizings", s.listSizings)
		r.Get("/sizings/{name}", s.getSizing)
		r.Post("/size", s.size)
		r.Post("/render", s.render)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, Health{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) listSizings(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, s.registry.Infos())
}

func (s *Server) getSizing(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	info, ok := s.registry.Info(name)
	if !ok {
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "unknown sizing %q", name))
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, info)
}

func (s *Server) size(w http.ResponseWriter, r *http.Request) {
	p, err := s.place(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, p.Output)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	p, err := s.place(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var opts []sink.SVGOption
	if r.URL.Query().Get("labels") != "false" {
		opts = append(opts, sink.WithLabels())
	}
	if title := r.URL.Query().Get("title"); title != "" {
		opts = append(opts, sink.WithTitle(title))
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(sink.RenderSVG(p, opts...))
}

// place decodes and validates a SizeRequest, then runs the handler.
func (s *Server) place(r *http.Request) (sink.Placement, error) {
	var req SizeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return sink.Placement{}, err
	}
	if strings.TrimSpace(req.Sizing) == "" {
		req.Sizing = sizing.DefaultName
	}

	h, err := s.registry.Lookup(req.Sizing)
	if err != nil {
		return sink.Placement{}, err
	}
	info, _ := s.registry.Info(req.Sizing)
	if err := validateInput(info, req.Input); err != nil {
		return sink.Placement{}, err
	}

	out := h.Size(req.Input)
	p := sink.NewPlacement(info.Name, req.Input, out)
	if !p.Finite() {
		return sink.Placement{}, errors.New(errors.ErrCodeInvalidDimension, "%s produced a non-finite placement", info.Name)
	}

	s.logger.Debug("sized", "sizing", info.Name, "width", out.Width, "height", out.Height, "scale", out.Scale)
	return p, nil
}

func validateInput(info sizing.Info, in sizing.Input) error {
	for _, d := range []struct {
		name string
		v    float64
	}{
		{"containerWidth", in.ContainerWidth},
		{"containerHeight", in.ContainerHeight},
		{"targetWidth", in.TargetWidth},
		{"targetHeight", in.TargetHeight},
	} {
		if err := errors.ValidateDimension(d.name, d.v); err != nil {
			return err
		}
	}
	for _, p := range []struct {
		side string
		v    float64
	}{
		{"top", in.PaddingTop},
		{"right", in.PaddingRight},
		{"bottom", in.PaddingBottom},
		{"left", in.PaddingLeft},
	} {
		if err := errors.ValidatePadding(p.side, p.v); err != nil {
			return err
		}
	}
	if info.RatioBased {
		return errors.ValidateRatioTarget(in.TargetWidth, in.TargetHeight)
	}
	return nil
}
