package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"clearclause/internal/config"
	"clearclause/internal/extract"
	"clearclause/internal/generation"
	"clearclause/internal/models"
	"clearclause/internal/prompts"

	"go.uber.org/zap"
)

const maxJSONBodyBytes = 16 << 20

// Generator is the part of the generation client the handlers use.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) generation.Result
}

type Server struct {
	cfg      config.Config
	logger   *zap.Logger
	gen      Generator
	prompts  *prompts.Builder
	provider string
}

func NewServer(cfg config.Config, logger *zap.Logger, gen Generator, builder *prompts.Builder, provider string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if builder == nil {
		builder = prompts.NewBuilder(prompts.DefaultTemplates(), cfg.DocumentCharLimit)
	}
	return &Server{
		cfg:      cfg,
		logger:   logger,
		gen:      gen,
		prompts:  builder,
		provider: provider,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/api/qa", s.handleQA)
	mux.HandleFunc("/api/summarize", s.handleSummarize)
	mux.HandleFunc("/api/translate", s.handleTranslate)
	mux.HandleFunc("/api/upload", s.handleUpload)
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		writeErr(w, http.StatusNotFound, errNotFound)
	})
	return withCORS(withRequestID(s.withAccessLog(s.withRecovery(mux))))
}

// requestError is a validation failure whose text is shown to the user as is.
type requestError string

func (e requestError) Error() string { return string(e) }

const (
	errMethodNotAllowed      requestError = "Method not allowed"
	errNotFound              requestError = "Not found"
	errInvalidJSON           requestError = "Invalid JSON request body"
	errBodyTooLarge          requestError = "Request body too large"
	errQuestionRequired      requestError = "Question is required"
	errInstructionRequired   requestError = "Summary instruction is required"
	errTranslateRequired     requestError = "Text and target language are required"
	errTranslateTextNotValid requestError = "Text must be a non-empty string"
	errNoFileUploaded        requestError = "No file uploaded"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, models.ErrorResponse{Error: userMessage(code, err)})
}

// userMessage keeps internal error detail out of responses. Only request
// and upload errors carry text meant for the user.
func userMessage(code int, err error) string {
	var re requestError
	if errors.As(err, &re) {
		return string(re)
	}
	var ue *extract.UploadError
	if errors.As(err, &ue) {
		return ue.Message
	}
	switch {
	case code == http.StatusMethodNotAllowed:
		return string(errMethodNotAllowed)
	case code == http.StatusNotFound:
		return string(errNotFound)
	case code >= 500:
		return "Internal server error"
	default:
		return "Invalid request"
	}
}

// decodeJSON reads a bounded JSON body into v. It writes the error response
// itself and reports whether the handler should continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeErr(w, http.StatusRequestEntityTooLarge, errBodyTooLarge)
			return false
		}
		writeErr(w, http.StatusBadRequest, errInvalidJSON)
		return false
	}
	return true
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
