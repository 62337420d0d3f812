package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	docxconv "github.com/yshk0402/docx-converter"
)

// Compile-time interface verification.
var _ docxconv.BatchService = (*BatchService)(nil)

// BatchService implements docxconv.BatchService using SQLite.
type BatchService struct {
	db *DB
}

// NewBatchService creates a new BatchService.
func NewBatchService(db *DB) *BatchService {
	return &BatchService{db: db}
}

// CreateBatch stores a batch run together with its records and errors in
// one transaction.
func (s *BatchService) CreateBatch(ctx context.Context, batch *docxconv.Batch, records []*docxconv.Record, docs []docxconv.Document, errs []docxconv.ProcessingError) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	batch.ID = uuid.New().String()
	batch.CreatedAt = time.Now().UTC()
	batch.DocumentCount = len(docs)
	batch.RecordCount = len(records)
	batch.ErrorCount = len(errs)

	columns, err := json.Marshal(batch.Columns)
	if err != nil {
		return fmt.Errorf("encode columns: %w", err)
	}

	// Content hashes by document index, for change detection on re-runs.
	hashes := make(map[int]string, len(docs))
	for _, doc := range docs {
		hashes[doc.Index] = doc.ContentHash()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO batches (id, name, columns, document_count, record_count, error_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, batch.ID, batch.Name, string(columns), batch.DocumentCount, batch.RecordCount,
		batch.ErrorCount, batch.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for position, rec := range records {
		values := make(map[string]string, rec.Len())
		for _, column := range rec.Columns() {
			values[column], _ = rec.Get(column)
		}
		data, err := json.Marshal(values)
		if err != nil {
			return fmt.Errorf("encode record %d: %w", position, err)
		}

		// The identifier column is the document index plus one; failed
		// documents leave gaps, so position alone is not enough.
		hash := ""
		if id, ok := rec.Get(docxconv.ColumnID); ok {
			if n, err := strconv.Atoi(id); err == nil {
				hash = hashes[n-1]
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO batch_records (batch_id, position, content_hash, data)
			VALUES (?, ?, ?, ?)
		`, batch.ID, position, hash, string(data))
		if err != nil {
			return err
		}
	}

	for _, pe := range errs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO batch_errors (batch_id, document_index, kind, message, details, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, batch.ID, pe.DocumentIndex, string(pe.Kind), pe.Message, pe.Details,
			pe.Timestamp.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindBatchByID retrieves a batch by ID.
func (s *BatchService) FindBatchByID(ctx context.Context, id string) (*docxconv.Batch, error) {
	var batch docxconv.Batch
	var columns, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, columns, document_count, record_count, error_count, created_at
		FROM batches
		WHERE id = ?
	`, id).Scan(&batch.ID, &batch.Name, &columns, &batch.DocumentCount,
		&batch.RecordCount, &batch.ErrorCount, &createdAt)

	if err == sql.ErrNoRows {
		return nil, docxconv.Errorf(docxconv.ENOTFOUND, "batch not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(columns), &batch.Columns); err != nil {
		return nil, fmt.Errorf("decode columns: %w", err)
	}
	if batch.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &batch, nil
}

// FindBatches retrieves batches matching the filter, newest first.
func (s *BatchService) FindBatches(ctx context.Context, filter docxconv.BatchFilter) ([]*docxconv.Batch, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, name, columns, document_count, record_count, error_count, created_at FROM batches WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*docxconv.Batch
	for rows.Next() {
		var batch docxconv.Batch
		var columns, createdAt string

		if err := rows.Scan(&batch.ID, &batch.Name, &columns, &batch.DocumentCount,
			&batch.RecordCount, &batch.ErrorCount, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(columns), &batch.Columns); err != nil {
			return nil, fmt.Errorf("decode columns: %w", err)
		}
		if batch.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		batches = append(batches, &batch)
	}
	return batches, rows.Err()
}

// FindBatchRecords retrieves the stored records of a batch in position order.
func (s *BatchService) FindBatchRecords(ctx context.Context, batchID string) ([]*docxconv.BatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT batch_id, position, content_hash, data
		FROM batch_records
		WHERE batch_id = ?
		ORDER BY position ASC
	`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*docxconv.BatchRecord
	for rows.Next() {
		var rec docxconv.BatchRecord
		var data string

		if err := rows.Scan(&rec.BatchID, &rec.Position, &rec.ContentHash, &data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &rec.Values); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", rec.Position, err)
		}

		records = append(records, &rec)
	}
	return records, rows.Err()
}

// FindBatchErrors retrieves the stored errors of a batch in document order.
func (s *BatchService) FindBatchErrors(ctx context.Context, batchID string) ([]docxconv.ProcessingError, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document_index, kind, message, details, created_at
		FROM batch_errors
		WHERE batch_id = ?
		ORDER BY document_index ASC, created_at ASC
	`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []docxconv.ProcessingError
	for rows.Next() {
		var pe docxconv.ProcessingError
		var kind, createdAt string

		if err := rows.Scan(&pe.DocumentIndex, &kind, &pe.Message, &pe.Details, &createdAt); err != nil {
			return nil, err
		}
		pe.Kind = docxconv.ErrorKind(kind)
		if pe.Timestamp, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		errs = append(errs, pe)
	}
	return errs, rows.Err()
}

// DeleteBatch permanently removes a batch and its records.
func (s *BatchService) DeleteBatch(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM batches WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return docxconv.Errorf(docxconv.ENOTFOUND, "batch not found")
	}
	return nil
}
