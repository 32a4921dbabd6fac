package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"transio/internal/model"
	"transio/internal/repository"

	"github.com/google/uuid"
)

// allowedUploadExts mirrors the MIME whitelist on the filename side.
var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type DocumentService interface {
	Store(ctx context.Context, category string, file *multipart.FileHeader) (*model.Document, error)
	StoreBatch(ctx context.Context, category string, files []*multipart.FileHeader) ([]model.Document, error)
	Attach(ctx context.Context, id, ownerType, ownerID string) error
	Get(ctx context.Context, id string) (*model.Document, error)
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	repo repository.DocumentRepository
	root string
	now  func() time.Time
}

// NewDocumentService stores files below root, which defaults to "uploads"
// when empty.
func NewDocumentService(repo repository.DocumentRepository, root string) DocumentService {
	if root == "" {
		root = "uploads"
	}
	return &documentService{repo: repo, root: root, now: time.Now}
}

func (s *documentService) Store(ctx context.Context, category string, file *multipart.FileHeader) (*model.Document, error) {
	doc, err := s.saveOne(category, file)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		_ = os.Remove(doc.Path)
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}
	return doc, nil
}

func (s *documentService) StoreBatch(ctx context.Context, category string, files []*multipart.FileHeader) ([]model.Document, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files in request")
	}
	if len(files) > model.MaxUploadBatch {
		return nil, fmt.Errorf("too many files: max %d per request", model.MaxUploadBatch)
	}

	docs := make([]model.Document, 0, len(files))
	cleanup := func() {
		for _, d := range docs {
			_ = os.Remove(d.Path)
		}
	}
	for _, file := range files {
		doc, err := s.saveOne(category, file)
		if err != nil {
			cleanup()
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := s.repo.CreateBatch(ctx, docs); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to record uploads: %w", err)
	}
	return docs, nil
}

// saveOne validates the upload and writes it under
// root/{category}/YYYY/MM/DD/{uuid}{ext}.
func (s *documentService) saveOne(category string, file *multipart.FileHeader) (*model.Document, error) {
	if category != model.DocCategoryDocument && category != model.DocCategoryContract {
		return nil, fmt.Errorf("invalid upload category: %s", category)
	}
	if file.Size > model.MaxUploadBytes {
		return nil, fmt.Errorf("file %s exceeds the %d MB limit", file.Filename, model.MaxUploadBytes>>20)
	}

	contentType := file.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !model.AllowedUploadMIMEs[contentType] || !allowedUploadExts[ext] {
		return nil, fmt.Errorf("unsupported file type: %s (%s)", file.Filename, contentType)
	}

	dir := filepath.Join(s.root, category, s.now().Format("2006/01/02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	path := filepath.Join(dir, uuid.New().String()+ext)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return &model.Document{
		Categorie:  category,
		NumeFisier: file.Filename,
		Path:       path,
		MimeType:   contentType,
		Marime:     file.Size,
	}, nil
}

func (s *documentService) Attach(ctx context.Context, id, ownerType, ownerID string) error {
	docID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid document ID")
	}
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return fmt.Errorf("invalid owner ID")
	}
	switch ownerType {
	case model.OwnerKindTrip, model.OwnerKindDriver, model.OwnerKindPartner, model.OwnerKindInvoice:
	default:
		return fmt.Errorf("invalid owner type: %s", ownerType)
	}
	return s.repo.Attach(ctx, docID, ownerType, owner)
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid document ID")
	}
	doc, err := s.repo.FindByID(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("document not found: %w", err)
	}
	return doc, nil
}

// Delete removes the row first, then the file. A file left behind by a
// failed unlink is harmless; a row pointing at a deleted file is not.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, doc.ID); err != nil {
		return err
	}
	if doc.Path != "" {
		_ = os.Remove(doc.Path)
	}
	return nil
}
