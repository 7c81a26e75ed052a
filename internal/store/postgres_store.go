package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	pgUndefinedTable  = "42P01"
	pgDuplicateTable  = "42P07"
	pgUniqueViolation = "23505"
)

var collectionName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// postgresStore implements Store on PostgreSQL. Each collection is a table
// holding JSONB documents keyed by a UUID; insertion order is kept in seq.
type postgresStore struct {
	pool    *pgxpool.Pool
	name    string
	timeout time.Duration
	logger  zerolog.Logger

	tables sync.Map // collection -> struct{}, tables known to exist
}

// NewPostgresStore creates a Store over pool. Every operation is bounded by timeout.
func NewPostgresStore(pool *pgxpool.Pool, timeout time.Duration, logger zerolog.Logger) Store {
	name := pool.Config().ConnConfig.Database
	return &postgresStore{
		pool:    pool,
		name:    name,
		timeout: timeout,
		logger:  logger.With().Str("store", "postgres").Str("database", name).Logger(),
	}
}

func (s *postgresStore) Create(ctx context.Context, collection string, doc Document) (string, error) {
	table, err := tableIdentifier(collection)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.ensureTable(ctx, collection, table); err != nil {
		return "", err
	}

	body := make(Document, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		body[k] = v
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode document for %s: %w", collection, err)
	}

	id := uuid.New()
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)`, table)
	if _, err := s.pool.Exec(ctx, query, id, string(payload)); err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to insert document")
		return "", fmt.Errorf("failed to insert into %s: %w", collection, classifyPostgres(err))
	}

	s.logger.Debug().Str("collection", collection).Str("id", id.String()).Msg("document created")

	return id.String(), nil
}

func (s *postgresStore) Query(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error) {
	table, err := tableIdentifier(collection)
	if err != nil {
		return nil, err
	}

	where, args, err := containmentClause(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, doc FROM %s%s ORDER BY seq`, table, where)
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return []Document{}, nil
		}
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to query documents")
		return nil, fmt.Errorf("failed to query %s: %w", collection, classifyPostgres(err))
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var (
			id  uuid.UUID
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", collection, err)
		}

		doc := Document{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", collection, err)
		}
		doc["_id"] = id
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return []Document{}, nil
		}
		return nil, fmt.Errorf("error iterating %s: %w", collection, classifyPostgres(err))
	}

	return docs, nil
}

func (s *postgresStore) Collections(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", classifyPostgres(err))
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", classifyPostgres(err))
	}
	return names, nil
}

func (s *postgresStore) Name() string { return s.name }

func (s *postgresStore) Close(context.Context) error {
	s.pool.Close()
	return nil
}

func (s *postgresStore) ensureTable(ctx context.Context, collection, table string) error {
	if _, ok := s.tables.Load(collection); ok {
		return nil
	}

	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			seq BIGSERIAL PRIMARY KEY,
			id UUID NOT NULL UNIQUE,
			doc JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, table)
	if _, err := s.pool.Exec(ctx, ddl); err != nil && !isConcurrentCreate(err) {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to create collection table")
		return fmt.Errorf("failed to create collection %s: %w", collection, classifyPostgres(err))
	}

	s.tables.Store(collection, struct{}{})
	return nil
}

func tableIdentifier(collection string) (string, error) {
	if !collectionName.MatchString(collection) {
		return "", fmt.Errorf("invalid collection name %q", collection)
	}
	return pgx.Identifier{collection}.Sanitize(), nil
}

// containmentClause compiles filter into a WHERE clause of JSONB containment
// tests. An In constraint matches either a list field holding the value or a
// scalar field equal to it.
func containmentClause(filter Filter) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	fields := make([]string, 0, len(filter))
	for field := range filter {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var (
		conds []string
		args  []any
	)
	contains := func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		args = append(args, string(b))
		return fmt.Sprintf("doc @> $%d::jsonb", len(args)), nil
	}

	for _, field := range fields {
		value := filter[field]

		set, isIn := value.(In)
		if !isIn {
			cond, err := contains(map[string]any{field: value})
			if err != nil {
				return "", nil, fmt.Errorf("failed to encode filter on %s: %w", field, err)
			}
			conds = append(conds, cond)
			continue
		}

		if len(set) == 0 {
			conds = append(conds, "FALSE")
			continue
		}

		var alts []string
		for _, v := range set {
			asElem, err := contains(map[string]any{field: []any{v}})
			if err != nil {
				return "", nil, fmt.Errorf("failed to encode filter on %s: %w", field, err)
			}
			asScalar, err := contains(map[string]any{field: v})
			if err != nil {
				return "", nil, fmt.Errorf("failed to encode filter on %s: %w", field, err)
			}
			alts = append(alts, asElem, asScalar)
		}
		conds = append(conds, "("+strings.Join(alts, " OR ")+")")
	}

	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable
}

// isConcurrentCreate reports whether a CREATE TABLE IF NOT EXISTS failed only
// because a parallel session created the same table first. Postgres checks
// existence before taking the catalog locks, so the loser sees a unique
// violation on pg_type or a duplicate table instead of a no-op.
func isConcurrentCreate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == pgUniqueViolation || pgErr.Code == pgDuplicateTable)
}

// classifyPostgres marks connectivity failures with ErrUnavailable.
func classifyPostgres(err error) error {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
