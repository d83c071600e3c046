package repositories

import (
	"context"

	"agenthub/internal/models"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *models.Document) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Document, error)
	Update(ctx context.Context, document *models.Document) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Document, error)
}

type documentRepo struct {
	db Database
}

func NewDocumentRepository(db Database) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, document *models.Document) error {
	query := `
		INSERT INTO documents (id, tenant_id, source, uri, title, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, document.ID, document.TenantID, document.Source, document.URI, document.Title, document.Metadata)
	return translateError(err)
}

func (r *documentRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Document, error) {
	document := &models.Document{}
	query := `
		SELECT id, tenant_id, source, uri, title, metadata, created_at, updated_at
		FROM documents
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&document.ID, &document.TenantID, &document.Source, &document.URI,
		&document.Title, &document.Metadata, &document.CreatedAt, &document.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return document, nil
}

func (r *documentRepo) Update(ctx context.Context, document *models.Document) error {
	query := `
		UPDATE documents
		SET source = $1, uri = $2, title = $3, metadata = $4, updated_at = NOW()
		WHERE tenant_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, document.Source, document.URI, document.Title, document.Metadata, document.TenantID, document.ID)
	return translateError(err)
}

func (r *documentRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM documents WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return translateError(err)
}

func (r *documentRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Document, error) {
	query := `
		SELECT id, tenant_id, source, uri, title, metadata, created_at, updated_at
		FROM documents
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		document := &models.Document{}
		if err := rows.Scan(
			&document.ID, &document.TenantID, &document.Source, &document.URI,
			&document.Title, &document.Metadata, &document.CreatedAt, &document.UpdatedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}
	return documents, rows.Err()
}
