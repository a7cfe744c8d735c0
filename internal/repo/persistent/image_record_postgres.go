package persistent

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/pkg/postgres"
	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
	"github.com/google/uuid"
)

const (
	// Table
	imagesTable = "images"

	// Columns
	idColumn          = "id"
	urlColumn         = "url"
	publicIDColumn    = "public_id"
	titleColumn       = "title"
	descriptionColumn = "description"
	uploadedAtColumn  = "uploaded_at"
	sizeColumn        = "size"
	widthColumn       = "width"
	heightColumn      = "height"
)

type ImageRecordRepo struct {
	*postgres.Postgres
}

func NewImageRecordRepo(pg *postgres.Postgres) *ImageRecordRepo {
	return &ImageRecordRepo{pg}
}

func (r *ImageRecordRepo) Create(ctx context.Context, record *entity.ImageRecord) error {
	sql, args, err := r.Builder.
		Insert(imagesTable).
		Columns(
			idColumn,
			urlColumn,
			publicIDColumn,
			titleColumn,
			descriptionColumn,
			uploadedAtColumn,
			sizeColumn,
			widthColumn,
			heightColumn,
		).
		Values(
			record.ID,
			record.URL,
			record.PublicID,
			record.Title,
			record.Description,
			record.UploadedAt,
			record.Size,
			record.Width,
			record.Height,
		).ToSql()
	if err != nil {
		return fmt.Errorf("ImageRecordRepo - Create - r.Builder.ToSql: %w", err)
	}

	// Pool / Tx
	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("ImageRecordRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *ImageRecordRepo) ListByUploadedAtDesc(ctx context.Context) ([]entity.ImageRecord, error) {
	sql, args, err := r.Builder.
		Select(
			idColumn,
			urlColumn,
			publicIDColumn,
			titleColumn,
			descriptionColumn,
			uploadedAtColumn,
			sizeColumn,
			widthColumn,
			heightColumn,
		).
		From(imagesTable).
		OrderBy(uploadedAtColumn + " DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ImageRecordRepo - ListByUploadedAtDesc - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ImageRecordRepo - ListByUploadedAtDesc - executor.Query: %w", err)
	}
	defer rows.Close()

	records := make([]entity.ImageRecord, 0)
	for rows.Next() {
		var rec entity.ImageRecord
		err = rows.Scan(
			&rec.ID,
			&rec.URL,
			&rec.PublicID,
			&rec.Title,
			&rec.Description,
			&rec.UploadedAt,
			&rec.Size,
			&rec.Width,
			&rec.Height,
		)
		if err != nil {
			return nil, fmt.Errorf("ImageRecordRepo - ListByUploadedAtDesc - rows.Scan: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ImageRecordRepo - ListByUploadedAtDesc - rows.Err: %w", err)
	}

	return records, nil
}

func (r *ImageRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.Builder.
		Delete(imagesTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ImageRecordRepo - Delete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("ImageRecordRepo - Delete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ImageRecordRepo - Delete: %w", errs.ErrRecordNotFound)
	}

	return nil
}

// DeleteBatch removes every listed document that still exists. Missing ids
// are not an error; the caller runs it inside a transaction.
func (r *ImageRecordRepo) DeleteBatch(ctx context.Context, ids uuid.UUIDs) (int64, error) {
	sql, args, err := r.Builder.
		Delete(imagesTable).
		Where(squirrel.Eq{idColumn: ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("ImageRecordRepo - DeleteBatch - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("ImageRecordRepo - DeleteBatch - executor.Exec: %w", err)
	}

	return tag.RowsAffected(), nil
}
