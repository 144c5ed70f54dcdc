package storage

import (
	"context"
	"fmt"
	"time"

	"clearclause/internal/generation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const generationCallsSchema = `
CREATE TABLE IF NOT EXISTS generation_calls (
	call_id       uuid PRIMARY KEY,
	request_id    text NOT NULL DEFAULT '',
	operation     text NOT NULL,
	provider_name text NOT NULL,
	model         text NOT NULL DEFAULT '',
	attempt       integer NOT NULL,
	status        text NOT NULL,
	error_type    text,
	latency_ms    bigint NOT NULL,
	created_at    timestamptz NOT NULL DEFAULT now()
)`

const insertTimeout = 2 * time.Second

// GenerationCallRecord is one model call. Prompts and answers are never
// stored, only call metadata.
type GenerationCallRecord struct {
	CallID       string
	RequestID    string
	Operation    string
	ProviderName string
	Model        string
	Attempt      int
	Status       string
	ErrorType    string
	LatencyMS    int64
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type GenerationAuditRepo struct {
	db     execer
	logger *zap.Logger
}

func NewGenerationAuditRepo(db *DB, logger *zap.Logger) *GenerationAuditRepo {
	return newGenerationAuditRepo(db.Pool, logger)
}

func newGenerationAuditRepo(db execer, logger *zap.Logger) *GenerationAuditRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationAuditRepo{db: db, logger: logger}
}

func (r *GenerationAuditRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, generationCallsSchema); err != nil {
		return fmt.Errorf("create generation_calls: %w", err)
	}
	return nil
}

func (r *GenerationAuditRepo) Insert(ctx context.Context, rec GenerationCallRecord) error {
	if rec.CallID == "" {
		rec.CallID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx, `
INSERT INTO generation_calls(call_id, request_id, operation, provider_name, model, attempt, status, error_type, latency_ms)
VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, NULLIF($8,''), $9)`,
		rec.CallID, rec.RequestID, rec.Operation, rec.ProviderName, rec.Model, rec.Attempt, rec.Status, rec.ErrorType, rec.LatencyMS)
	if err != nil {
		return fmt.Errorf("insert generation call: %w", err)
	}
	return nil
}

// RecordAttempt stores an attempt on a short deadline. Failures are logged
// and never reach the caller.
func (r *GenerationAuditRepo) RecordAttempt(ctx context.Context, a generation.Attempt) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), insertTimeout)
	defer cancel()
	if err := r.Insert(ctx, recordFromAttempt(a)); err != nil {
		r.logger.Warn("generation audit insert failed",
			zap.String("request_id", a.RequestID),
			zap.String("operation", a.Operation),
			zap.Error(err),
		)
	}
}

func recordFromAttempt(a generation.Attempt) GenerationCallRecord {
	return GenerationCallRecord{
		RequestID:    a.RequestID,
		Operation:    a.Operation,
		ProviderName: a.Provider,
		Model:        a.Model,
		Attempt:      a.Number,
		Status:       a.Status,
		ErrorType:    string(a.ErrorType),
		LatencyMS:    a.Latency.Milliseconds(),
	}
}
