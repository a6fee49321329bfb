package server

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/buildinfo"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/observability"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/pipeline"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/render/outline"
)

// shutdownTimeout bounds how long in-flight requests may finish after the
// serving context is cancelled.
const shutdownTimeout = 5 * time.Second

// Option configures a [Server].
type Option func(*Server)

// WithDefaults sets the options every request starts from, such as a
// forced language or extents outlines.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// Server renders the slides of one document file on request.
type Server struct {
	runner   *pipeline.Runner
	path     string
	defaults pipeline.Options
	logger   *log.Logger
}

// New creates a server for the document at path.
func New(runner *pipeline.Runner, path string, opts ...Option) *Server {
	s := &Server{runner: runner, path: path, logger: runner.Logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/outline.svg", s.handleOutline)
	r.Route("/variants", func(r chi.Router) {
		r.Get("/", s.handleVariants)
		r.Get("/{name}/slide.{format}", s.handleSlide)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving previews", "addr", addr, "document", s.path)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) load() (*definition.Definition, *APIError) {
	def, err := pipeline.Load(s.path)
	if err != nil {
		return nil, FromError(err)
	}
	return def, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Current(),
	})
}

// VariantInfo describes one variant and where to fetch its slide.
type VariantInfo struct {
	Name        string            `json:"name"`
	Description []string          `json:"description,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Language    string            `json:"language,omitempty"`
	Dark        bool              `json:"dark,omitempty"`
	Pages       []int             `json:"pages,omitempty"`
	Source      int               `json:"source"`
	Links       map[string]string `json:"links"`
}

func variantInfos(def *definition.Definition) []VariantInfo {
	variants := def.EffectiveVariants()
	out := make([]VariantInfo, 0, len(variants))
	for _, v := range variants {
		links := make(map[string]string)
		for _, f := range pipeline.FormatNames() {
			links[f] = slidePath(v.Name, f)
		}
		out = append(out, VariantInfo{
			Name:        v.Name,
			Description: v.Description,
			Notes:       v.Notes,
			Language:    v.Language,
			Dark:        v.Dark,
			Pages:       v.Pages,
			Source:      v.Source,
			Links:       links,
		})
	}
	return out
}

func slidePath(variant, format string) string {
	return fmt.Sprintf("/variants/%s/slide.%s", url.PathEscape(variant), format)
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	def, apiErr := s.load()
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, variantInfos(def))
}

// requestOptions applies query parameters on top of the server defaults.
func (s *Server) requestOptions(r *http.Request, variant, format string) (pipeline.Options, *APIError) {
	opts := s.defaults
	opts.Variants = []string{variant}
	opts.Formats = []string{format}
	opts.Logger = s.logger

	q := r.URL.Query()
	if lang := q.Get("lang"); lang != "" {
		opts.Language = lang
	}
	for name, dst := range map[string]*bool{"dark": &opts.Dark, "extents": &opts.Extents} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, NewBadRequestError(fmt.Sprintf("invalid %s parameter", name), err)
			}
			*dst = b
		}
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, NewBadRequestError("invalid scale parameter", err)
		}
		opts.Scale = scale
	}
	if err := opts.ValidateForRender(); err != nil {
		return opts, NewBadRequestError("invalid options", err)
	}
	return opts, nil
}

func (s *Server) handleSlide(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	format := chi.URLParam(r, "format")
	if !pipeline.IsFormat(format) {
		writeError(w, NewNotFoundError("format", format))
		return
	}

	def, apiErr := s.load()
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	opts, apiErr := s.requestOptions(r, name, format)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	result, err := s.runner.Execute(r.Context(), def, opts)
	if err != nil {
		writeError(w, FromError(err))
		return
	}
	slide := result.Slides[0]
	if len(slide.Layout.Missing) > 0 {
		w.Header().Set("X-Missing-Logos", strconv.Itoa(len(slide.Layout.Missing)))
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", errors.Slug(name)+"."+format))
	w.Header().Set("X-Run-ID", result.RunID)
	_, _ = w.Write(slide.Artifacts[format])
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	def, apiErr := s.load()
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	dot, err := outline.ToDOT(def, outline.Options{Variant: r.URL.Query().Get("variant")})
	if err != nil {
		writeError(w, FromError(err))
		return
	}
	svg, err := outline.RenderSVG(r.Context(), dot)
	if err != nil {
		writeError(w, FromError(err))
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(pipeline.FormatSVG))
	_, _ = w.Write(svg)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{range .Variants}}<section>
<h2>{{.Name}}</h2>
{{range .Description}}<p>{{.}}</p>
{{end}}<p><a href="{{index .Links "svg"}}"><img src="{{index .Links "svg"}}" width="640" alt="{{.Name}}"></a></p>
<p><a href="{{index .Links "png"}}">png</a> · <a href="{{index .Links "pdf"}}">pdf</a> · <a href="{{index .Links "json"}}">json</a> · <a href="{{index .Links "md"}}">md</a></p>
</section>
{{end}}<p><a href="/outline.svg">outline</a></p>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	def, apiErr := s.load()
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	title := def.Title
	if title == "" {
		title = s.path
	}

	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, struct {
		Title    string
		Variants []VariantInfo
	}{title, variantInfos(def)})
	if err != nil {
		writeError(w, FromError(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
