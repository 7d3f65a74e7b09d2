// Package server exposes the renderer over HTTP. Every request carries its
// own upload and settings; nothing is kept between requests.
package server

import (
	"context"
	"encoding/json"
	"html/template"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/output"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/parser"
)

// StatusHeader carries the render status line on PNG responses.
const StatusHeader = "X-Facetgrid-Status"

// Config configures the HTTP server.
type Config struct {
	// ListenAddress is the host:port to serve on.
	ListenAddress string `yaml:"listen_address"`
	// MaxUploadBytes bounds the size of an uploaded table.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// Defaults fill in render settings a request leaves out.
	Defaults facetgrid.Options `yaml:"defaults"`
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		ListenAddress:   ":8080",
		MaxUploadBytes:  64 << 20,
		ShutdownTimeout: 10 * time.Second,
		Defaults:        facetgrid.DefaultOptions(),
	}
}

// Server serves the upload form and the render API.
type Server struct {
	cfg     Config
	logger  log.Logger
	metrics *metrics
	router  *mux.Router
}

// New builds a server. Metrics are registered with reg.
func New(cfg Config, logger log.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(reg),
		router:  mux.NewRouter(),
	}
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/api/render", s.handleRender).Methods(http.MethodPost)
	s.router.HandleFunc("/api/columns", s.handleColumns).Methods(http.MethodPost)
	s.router.HandleFunc("/ready", s.handleReady).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddress,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		level.Info(s.logger).Log("msg", "listening", "addr", s.cfg.ListenAddress)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready\n"))
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, s.cfg.Defaults); err != nil {
		level.Error(s.logger).Log("msg", "render index", "err", err)
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	outcome := "error"
	defer func() {
		s.metrics.rendersTotal.WithLabelValues(outcome).Inc()
		s.metrics.renderDuration.Observe(time.Since(start).Seconds())
	}()

	t, err := s.readTable(w, r)
	if err != nil {
		outcome = "bad_request"
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts, err := optionsFromForm(r, s.cfg.Defaults)
	if err != nil {
		outcome = "bad_request"
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts.Logger = log.With(s.logger, "component", "render")

	res, err := facetgrid.Render(t, opts)
	if err != nil {
		if facetgrid.IsConfigurationError(err) {
			outcome = "configuration_error"
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		level.Error(s.logger).Log("msg", "render failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	outcome = "success"
	s.metrics.renderedGroups.Observe(float64(len(res.Groups)))
	s.metrics.pngBytes.Observe(float64(len(res.PNG)))
	level.Info(s.logger).Log("msg", "rendered composite", "feature", res.Feature, "groups", len(res.Groups),
		"size", humanize.Bytes(uint64(len(res.PNG))), "duration", time.Since(start))

	w.Header().Set("Content-Type", output.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PNG)))
	w.Header().Set(StatusHeader, res.Status)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PNG)
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	t, err := s.readTable(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	label := formValue(r, "label", s.cfg.Defaults.LabelColumn)
	group := formValue(r, "group", s.cfg.Defaults.GroupColumn)
	d, err := facetgrid.Describe(t, label, group)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d); err != nil {
		level.Error(s.logger).Log("msg", "encode description", "err", err)
	}
}

// readTable parses the multipart upload in the "file" field.
func (s *Server) readTable(w http.ResponseWriter, r *http.Request) (*models.Table, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return nil, errors.Wrap(err, "parse upload")
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, errors.Wrap(err, "missing file")
	}
	defer f.Close()
	return parser.LoadFrom(f, hdr.Filename, formValue(r, "sheet", s.cfg.Defaults.Sheet))
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>facetgrid</title></head>
<body>
<h1>Composite box plots</h1>
<form action="/api/render" method="post" enctype="multipart/form-data">
<p><label>Dataset (CSV or XLSX) <input type="file" name="file" accept=".csv,.xlsx,.xlsm" required></label></p>
<p><label>Label column <input name="label" value="{{.LabelColumn}}"></label></p>
<p><label>Group column <input name="group" value="{{.GroupColumn}}"></label></p>
<p><label>Feature <input name="feature" value="{{.Feature}}"></label></p>
<p><label>Grid columns <input type="number" name="cols" min="1" value="{{.Columns}}"></label></p>
<p><label><input type="checkbox" name="fixed_y" value="true"{{if .FixedY}} checked{{end}}> Use fixed y-axis limits</label></p>
<p><label>Y-axis minimum <input name="y_min"></label> <label>Y-axis maximum <input name="y_max"></label></p>
<p><label>Label values (comma separated, empty for all) <input name="labels_csv"></label></p>
<p><input type="submit" value="Download composite plot as PNG"></p>
</form>
</body>
</html>
`))
