package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ai_content_studio/exporter"
	"ai_content_studio/generator"
	"ai_content_studio/metrics"
)

//go:embed web/dist
var embeddedStatic embed.FS

const maxBodyBytes = 1 << 20

// Generator 是 handler 需要的 generator.Agent 子集，便于 Mock。
type Generator interface {
	Generate(ctx context.Context, req generator.Request) (generator.Result, error)
}

type Server struct {
	gen            Generator
	logger         *zap.Logger
	requestTimeout time.Duration
	staticFS       http.Handler
}

func New(gen Generator, requestTimeout time.Duration, logger *zap.Logger) (*Server, error) {
	if gen == nil {
		return nil, errors.New("generator required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}

	sub, err := fs.Sub(embeddedStatic, "web/dist")
	if err != nil {
		return nil, err
	}

	return &Server{
		gen:            gen,
		logger:         logger,
		requestTimeout: requestTimeout,
		staticFS:       http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/options", s.handleOptions).Methods(http.MethodGet)
	api.HandleFunc("/generate", s.handleGenerate).Methods(http.MethodPost)
	api.HandleFunc("/calendar", s.handleCalendar).Methods(http.MethodPost)
	api.HandleFunc("/export/{format}", s.handleExport).Methods(http.MethodPost)
	api.NotFoundHandler = s.unmatched(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	}))
	r.MethodNotAllowedHandler = s.unmatched(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}))
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler
	r.PathPrefix("/").
		MatcherFunc(func(req *http.Request, _ *mux.RouteMatch) bool {
			// /api/ paths never fall through to the SPA.
			return !strings.HasPrefix(req.URL.Path, "/api/")
		}).
		Methods(http.MethodGet, http.MethodHead).
		Handler(s.staticFS)
	r.Use(s.requestID, s.accessLog)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.ExposedHeaders([]string{"Content-Disposition", requestIDHeader}),
	)(r)
}

// --- Handlers ---

type generateReq struct {
	Niche       string `json:"niche"`
	ContentType string `json:"content_type"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Tone        string `json:"tone"`
}

type optionsResp struct {
	ContentTypes []string `json:"content_types"`
	Tones        []string `json:"tones"`
	Formats      []string `json:"formats"`
}

type calendarReq struct {
	Text string `json:"text"`
}

type calendarResp struct {
	Rows []generator.CalendarRow `json:"rows"`
}

type errorResp struct {
	Error string `json:"error"`
}

const nicheWarning = "Please enter a niche before generating."

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	var resp optionsResp
	for _, ct := range generator.AllContentTypes() {
		resp.ContentTypes = append(resp.ContentTypes, ct.String())
	}
	for _, t := range generator.AllTones() {
		resp.Tones = append(resp.Tones, string(t))
	}
	for _, f := range exporter.Formats() {
		resp.Formats = append(resp.Formats, string(f))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body generateReq
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := toRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		if errors.Is(err, generator.ErrNicheRequired) {
			writeError(w, http.StatusBadRequest, nicheWarning)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()
	res, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("generation failed",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	var body calendarReq
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows := generator.ExtractCalendar(body.Text)
	metrics.ObserveCalendarRows(len(rows))
	writeJSON(w, http.StatusOK, calendarResp{Rows: rows})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := exporter.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var doc exporter.Document
	if err := decodeJSON(r, &doc); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	file, err := exporter.Export(format, doc)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	metrics.IncExport(string(format))

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Body)
}

// --- Helpers ---

func toRequest(body generateReq) (generator.Request, error) {
	ct, err := generator.ParseContentType(body.ContentType)
	if err != nil {
		return generator.Request{}, err
	}
	tone, err := generator.ParseTone(body.Tone)
	if err != nil {
		return generator.Request{}, err
	}
	return generator.Request{
		Niche:       body.Niche,
		ContentType: ct,
		Topic:       body.Topic,
		Description: body.Description,
		Tone:        tone,
	}.Normalized(), nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Error: msg})
}
