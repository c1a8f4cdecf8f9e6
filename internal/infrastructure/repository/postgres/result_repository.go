package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tavalos/papeleo/internal/core/domain"
)

// ResultRepository stores one extraction result per document. Fields,
// acquisition metadata and validation verdicts are kept as JSONB so the
// per-type field layouts stay schemaless in the database.
type ResultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083002)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS extraction_results (
	document_id TEXT PRIMARY KEY REFERENCES documents(id) ON DELETE CASCADE,
	document_type TEXT NOT NULL,
	fields JSONB NOT NULL DEFAULT '{}'::jsonb,
	confidence INTEGER NOT NULL DEFAULT 0,
	method_used TEXT NOT NULL,
	acquisition JSONB NOT NULL DEFAULT '{}'::jsonb,
	validation JSONB,
	summary JSONB,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_extraction_results_type ON extraction_results(document_type);
CREATE INDEX IF NOT EXISTS idx_extraction_results_created_at ON extraction_results(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// Save upserts on document id: a reprocess run replaces the previous
// result instead of accumulating history.
func (r *ResultRepository) Save(ctx context.Context, result *domain.ExtractionResult) error {
	fieldsJSON, err := json.Marshal(result.Fields.Map())
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	acquisitionJSON, err := json.Marshal(result.Acquisition)
	if err != nil {
		return fmt.Errorf("marshal acquisition: %w", err)
	}
	validationJSON, err := marshalNullable(result.Validation)
	if err != nil {
		return fmt.Errorf("marshal validation: %w", err)
	}
	summaryJSON, err := marshalNullable(result.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO extraction_results (
	document_id, document_type, fields, confidence, method_used, acquisition, validation, summary, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (document_id) DO UPDATE SET
	document_type = EXCLUDED.document_type,
	fields = EXCLUDED.fields,
	confidence = EXCLUDED.confidence,
	method_used = EXCLUDED.method_used,
	acquisition = EXCLUDED.acquisition,
	validation = EXCLUDED.validation,
	summary = EXCLUDED.summary,
	created_at = EXCLUDED.created_at
`,
		result.DocumentID, string(result.DocumentType), fieldsJSON, result.Confidence,
		result.MethodUsed, acquisitionJSON, validationJSON, summaryJSON, result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert extraction result: %w", err)
	}
	return nil
}

func (r *ResultRepository) GetByDocumentID(ctx context.Context, documentID string) (*domain.ExtractionResult, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT document_id, document_type, fields, confidence, method_used, acquisition, validation, summary, created_at
FROM extraction_results
WHERE document_id = $1
`, documentID)

	result, err := scanResult(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get extraction result", fmt.Errorf("document %s", documentID))
		}
		return nil, err
	}
	return result, nil
}

func (r *ResultRepository) ListForExport(ctx context.Context, filter domain.ExportFilter) ([]*domain.ExtractionResult, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Type != "" {
		conditions = append(conditions, "document_type = "+arg(string(filter.Type)))
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, "created_at >= "+arg(filter.From))
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, "created_at < "+arg(filter.To))
	}

	query := `
SELECT document_id, document_type, fields, confidence, method_used, acquisition, validation, summary, created_at
FROM extraction_results`
	if len(conditions) > 0 {
		query += "\nWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\nORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list extraction results: %w", err)
	}
	defer rows.Close()

	var results []*domain.ExtractionResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate result rows: %w", err)
	}
	return results, nil
}

func scanResult(row rowScanner) (*domain.ExtractionResult, error) {
	var (
		result          domain.ExtractionResult
		docType         string
		fieldsRaw       []byte
		acquisitionRaw  []byte
		validationRaw   []byte
		summaryRaw      []byte
	)
	err := row.Scan(
		&result.DocumentID, &docType, &fieldsRaw, &result.Confidence, &result.MethodUsed,
		&acquisitionRaw, &validationRaw, &summaryRaw, &result.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	result.DocumentType = domain.DocumentType(docType)

	var fields map[string]any
	if err := json.Unmarshal(fieldsRaw, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	result.Fields = domain.RawFields{DocType: result.DocumentType, Values: fields}

	if err := json.Unmarshal(acquisitionRaw, &result.Acquisition); err != nil {
		return nil, fmt.Errorf("unmarshal acquisition: %w", err)
	}
	if len(validationRaw) > 0 {
		if err := json.Unmarshal(validationRaw, &result.Validation); err != nil {
			return nil, fmt.Errorf("unmarshal validation: %w", err)
		}
	}
	if len(summaryRaw) > 0 {
		if err := json.Unmarshal(summaryRaw, &result.Summary); err != nil {
			return nil, fmt.Errorf("unmarshal summary: %w", err)
		}
	}
	return &result, nil
}

func marshalNullable(v any) ([]byte, error) {
	switch value := v.(type) {
	case map[string]domain.FieldValidation:
		if len(value) == 0 {
			return nil, nil
		}
	case *domain.ValidationSummary:
		if value == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
