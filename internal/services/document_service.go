package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"agenthub/internal/models"
	"agenthub/internal/repositories"

	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

type DocumentService interface {
	Create(ctx context.Context, tenantID uuid.UUID, document *models.Document) (*models.Document, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Document, error)
	Update(ctx context.Context, tenantID uuid.UUID, document *models.Document) (*models.Document, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Document, error)
	DownloadURL(ctx context.Context, tenantID, id uuid.UUID) (string, error)
}

type documentService struct {
	documentRepo repositories.DocumentRepository
	blobSvc      BlobService
}

func NewDocumentService(documentRepo repositories.DocumentRepository, blobSvc BlobService) DocumentService {
	return &documentService{documentRepo: documentRepo, blobSvc: blobSvc}
}

func (s *documentService) Create(ctx context.Context, tenantID uuid.UUID, document *models.Document) (*models.Document, error) {
	document.ID = uuid.New()
	document.TenantID = tenantID
	if document.Metadata == nil {
		document.Metadata = json.RawMessage("{}")
	}

	if err := s.documentRepo.Create(ctx, document); err != nil {
		return nil, err
	}

	return s.documentRepo.GetByID(ctx, tenantID, document.ID)
}

func (s *documentService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Document, error) {
	return s.documentRepo.GetByID(ctx, tenantID, id)
}

func (s *documentService) Update(ctx context.Context, tenantID uuid.UUID, document *models.Document) (*models.Document, error) {
	document.TenantID = tenantID
	if err := s.documentRepo.Update(ctx, document); err != nil {
		return nil, err
	}
	return s.documentRepo.GetByID(ctx, tenantID, document.ID)
}

// Delete removes the record, and for uploaded documents also the stored
// object. A storage failure is logged but does not resurrect the record.
func (s *documentService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	document, err := s.documentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	if document.Source == "upload" {
		bucket, object, err := parseObjectURI(document.URI)
		if err != nil {
			log.Printf("WARNING: document %s has unparseable uri %q, skipping object delete", id, document.URI)
			return nil
		}
		if err := s.blobSvc.Delete(ctx, bucket, object); err != nil {
			log.Printf("WARNING: failed to delete stored object for document %s: %v", id, err)
		}
	}

	return nil
}

func (s *documentService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Document, error) {
	return s.documentRepo.List(ctx, tenantID, limit, offset)
}

// DownloadURL returns a short-lived presigned URL for uploaded documents.
// Externally sourced documents already carry a reachable URI.
func (s *documentService) DownloadURL(ctx context.Context, tenantID, id uuid.UUID) (string, error) {
	document, err := s.documentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return "", err
	}

	if document.Source != "upload" {
		return document.URI, nil
	}

	bucket, object, err := parseObjectURI(document.URI)
	if err != nil {
		return "", err
	}
	return s.blobSvc.PresignedURL(ctx, bucket, object, presignExpiry)
}

// parseObjectURI splits "s3://bucket/path/to/object" into bucket and object.
func parseObjectURI(uri string) (string, string, error) {
	sep := strings.Index(uri, "://")
	if sep < 0 {
		return "", "", fmt.Errorf("uri %q has no scheme", uri)
	}
	rest := uri[sep+3:]
	slash := strings.Index(rest, "/")
	if slash <= 0 || slash == len(rest)-1 {
		return "", "", fmt.Errorf("uri %q has no bucket/object split", uri)
	}
	return rest[:slash], rest[slash+1:], nil
}
