package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"clearclause/internal/extract"
	"clearclause/internal/generation"
	"clearclause/internal/logging"
	"clearclause/internal/models"
	"clearclause/internal/providers"

	"go.uber.org/zap"
)

const (
	opQA        = "qa"
	opSummarize = "summarize"
	opTranslate = "translate"
)

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "provider": s.provider})
}

func (s *Server) handleQA(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	var req models.QARequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Question.IsString || strings.TrimSpace(req.Question.Value) == "" {
		writeErr(w, http.StatusBadRequest, errQuestionRequired)
		return
	}

	doc := models.Document(req.DocumentFileName, req.DocumentContent)
	res := s.generate(r, opQA, s.prompts.QA(req.Question.Value, doc), providers.GeneralSampling)
	writeJSON(w, http.StatusOK, models.QAResponse{Answer: s.prompts.WithDisclaimer(res.String())})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	var req models.SummarizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Instruction.IsString || strings.TrimSpace(req.Instruction.Value) == "" {
		writeErr(w, http.StatusBadRequest, errInstructionRequired)
		return
	}

	doc := models.Document(req.DocumentFileName, req.DocumentContent)
	res := s.generate(r, opSummarize, s.prompts.Summarize(req.Instruction.Value, doc), providers.GeneralSampling)
	writeJSON(w, http.StatusOK, models.SummarizeResponse{Summary: res.String()})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	var req models.TranslateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Text.Set || !req.TargetLanguage.Set {
		writeErr(w, http.StatusBadRequest, errTranslateRequired)
		return
	}
	if !req.Text.IsString || strings.TrimSpace(req.Text.Value) == "" {
		writeErr(w, http.StatusBadRequest, errTranslateTextNotValid)
		return
	}
	lang := strings.TrimSpace(req.TargetLanguage.Value)
	if !req.TargetLanguage.IsString || lang == "" {
		writeErr(w, http.StatusBadRequest, errTranslateRequired)
		return
	}

	res := s.generate(r, opTranslate, s.prompts.Translate(req.Text.Value, lang), providers.PreciseSampling)
	writeJSON(w, http.StatusOK, models.TranslateResponse{TranslatedText: res.String()})
}

// generate runs one generation cycle detached from the request's
// cancellation; a client that disconnects does not abort the retry loop.
func (s *Server) generate(r *http.Request, op, prompt string, sampling providers.Sampling) generation.Result {
	ctx := context.WithoutCancel(r.Context())
	res := s.gen.Generate(ctx, generation.Request{Operation: op, Prompt: prompt, Sampling: sampling})
	if !res.OK() {
		logging.FromContext(ctx, s.logger).Warn("generation failed",
			zap.String("operation", op),
			zap.String("failure", string(res.Failure)),
			zap.Int("attempts", res.Attempts),
		)
	}
	return res
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	log := logging.FromContext(r.Context(), s.logger)
	maxBytes := s.cfg.MaxUploadBytes()

	// Leave room over the limit so oversized files still parse and get the
	// size message from validation rather than a truncated body.
	r.Body = http.MaxBytesReader(w, r.Body, 2*maxBytes+(1<<20))
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeErr(w, http.StatusBadRequest, extract.ValidateUpload(maxBytes+1, "", maxBytes))
			return
		}
		writeErr(w, http.StatusBadRequest, errNoFileUploaded)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, fh, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, errNoFileUploaded)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		log.Warn("read uploaded file", zap.Error(err))
		writeErr(w, http.StatusBadRequest, errNoFileUploaded)
		return
	}
	size := fh.Size
	if int64(len(data)) > size {
		size = int64(len(data))
	}
	mediaType := extract.ResolveMediaType(fh.Header.Get("Content-Type"), data)
	if err := extract.ValidateUpload(size, mediaType, maxBytes); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	text, err := extract.Text(data, mediaType)
	if err != nil {
		log.Warn("text extraction failed",
			zap.String("file_name", fh.Filename),
			zap.String("type", mediaType),
			zap.Int64("size", size),
			zap.Error(err),
		)
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	log.Info("document processed",
		zap.String("type", mediaType),
		zap.Int64("size", size),
		zap.Int("text_bytes", len(text)),
	)
	writeJSON(w, http.StatusOK, extract.Describe(fh.Filename, size, mediaType, text))
}
