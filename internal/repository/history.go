package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
	"github.com/joseph-ayodele/landdoc-verifier/internal/metrics"
)

// History is an append-only, newest-first record log.
type History[T any] interface {
	Append(ctx context.Context, rec T) error
	Get(ctx context.Context, id string) (T, error)
	ListRecent(ctx context.Context, n int) ([]T, error)
}

type (
	VerificationHistory = History[entity.VerificationResult]
	ContractHistory     = History[entity.ContractAnalysis]
)

// Kinds label history metrics and log lines.
const (
	KindVerification = "verification"
	KindContract     = "contract"
)

type rowMeta struct {
	id, name, status string
}

type sqlHistory[T any] struct {
	store  *Store
	table  string
	kind   string
	schema func() (*jsonschema.Schema, error)
	meta   func(T) rowMeta
	logger *slog.Logger

	// appends are serialized so seq order matches call order
	mu sync.Mutex
}

func NewVerificationHistory(store *Store, logger *slog.Logger) VerificationHistory {
	return &sqlHistory[entity.VerificationResult]{
		store:  store,
		table:  TableVerifications,
		kind:   KindVerification,
		schema: verificationValidator,
		meta: func(v entity.VerificationResult) rowMeta {
			return rowMeta{id: v.ID, name: v.DocumentName, status: v.Status}
		},
		logger: orDefault(logger),
	}
}

func NewContractHistory(store *Store, logger *slog.Logger) ContractHistory {
	return &sqlHistory[entity.ContractAnalysis]{
		store:  store,
		table:  TableContracts,
		kind:   KindContract,
		schema: contractValidator,
		meta: func(c entity.ContractAnalysis) rowMeta {
			return rowMeta{id: c.ID, name: c.Name, status: "Analyzed"}
		},
		logger: orDefault(logger),
	}
}

func (h *sqlHistory[T]) Append(ctx context.Context, rec T) error {
	payload, err := encode(h.schema, rec)
	if err != nil {
		metrics.HistoryAppends.WithLabelValues(h.kind, "invalid").Inc()
		h.logger.Error("history.append.invalid", "kind", h.kind, "error", err)
		return err
	}
	m := h.meta(rec)

	query, args := entsql.Dialect(h.store.dialect).
		Insert(h.table).
		Columns("id", "name", "status", "created_at", "payload").
		Values(m.id, m.name, m.status, time.Now().UTC().Format(time.RFC3339Nano), string(payload)).
		Query()

	h.mu.Lock()
	err = h.store.drv.Exec(ctx, query, args, nil)
	h.mu.Unlock()
	if err != nil {
		metrics.HistoryAppends.WithLabelValues(h.kind, "error").Inc()
		h.logger.Error("history.append.failed", "kind", h.kind, "id", m.id, "error", err)
		return dbError(err)
	}
	metrics.HistoryAppends.WithLabelValues(h.kind, "ok").Inc()
	h.logger.Info("history.append.ok", "kind", h.kind, "id", m.id, "status", m.status)
	return nil
}

func (h *sqlHistory[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	query, args := entsql.Dialect(h.store.dialect).
		Select("payload").
		From(entsql.Table(h.table)).
		Where(entsql.EQ("id", id)).
		Limit(1).
		Query()

	recs, err := h.query(ctx, query, args)
	if err != nil {
		return zero, err
	}
	if len(recs) == 0 {
		return zero, fmt.Errorf("%s %q: %w", h.kind, id, common.ErrNotFound)
	}
	return recs[0], nil
}

// ListRecent returns up to n records, newest first. n <= 0 returns all.
func (h *sqlHistory[T]) ListRecent(ctx context.Context, n int) ([]T, error) {
	sel := entsql.Dialect(h.store.dialect).
		Select("payload").
		From(entsql.Table(h.table)).
		OrderBy(entsql.Desc("seq"))
	if n > 0 {
		sel = sel.Limit(n)
	}
	query, args := sel.Query()
	return h.query(ctx, query, args)
}

func (h *sqlHistory[T]) query(ctx context.Context, query string, args []any) ([]T, error) {
	rows := &entsql.Rows{}
	if err := h.store.drv.Query(ctx, query, args, rows); err != nil {
		h.logger.Error("history.query.failed", "kind", h.kind, "error", err)
		return nil, dbError(err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var payload sql.NullString
		if err := rows.Scan(&payload); err != nil {
			return nil, dbError(err)
		}
		if err := validatePayload(h.schema, []byte(payload.String)); err != nil {
			h.logger.Error("history.load.invalid", "kind", h.kind, "error", err)
			return nil, err
		}
		var rec T
		if err := json.Unmarshal([]byte(payload.String), &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", h.kind, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}
	return out, nil
}

func encode[T any](schema func() (*jsonschema.Schema, error), rec T) ([]byte, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(schema, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func orDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
