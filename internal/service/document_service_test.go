package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"transio/internal/model"

	"github.com/google/uuid"
)

type stubDocumentRepo struct {
	created []model.Document
	failOn  string
}

func (s *stubDocumentRepo) Create(ctx context.Context, doc *model.Document) error {
	if s.failOn == "create" {
		return os.ErrPermission
	}
	s.created = append(s.created, *doc)
	return nil
}
func (s *stubDocumentRepo) CreateBatch(ctx context.Context, docs []model.Document) error {
	if s.failOn == "batch" {
		return os.ErrPermission
	}
	s.created = append(s.created, docs...)
	return nil
}
func (s *stubDocumentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	return nil, os.ErrNotExist
}
func (s *stubDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubDocumentRepo) Attach(ctx context.Context, id uuid.UUID, ownerType string, ownerID uuid.UUID) error {
	return nil
}

func uploadHeader(t *testing.T, filename, contentType, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestStoreWritesFileUnderDatedPath(t *testing.T) {
	root := t.TempDir()
	repo := &stubDocumentRepo{}
	svc := NewDocumentService(repo, root)

	file := uploadHeader(t, "cmr.pdf", "application/pdf", "%PDF-1.4 test")
	doc, err := svc.Store(context.Background(), model.DocCategoryDocument, file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.NumeFisier != "cmr.pdf" || doc.MimeType != "application/pdf" {
		t.Fatalf("document metadata: %+v", doc)
	}
	rel, err := filepath.Rel(root, doc.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		t.Fatalf("file stored outside root: %s", doc.Path)
	}
	if !strings.HasPrefix(rel, model.DocCategoryDocument+string(filepath.Separator)) {
		t.Fatalf("path should start with the category, got %s", rel)
	}
	if filepath.Ext(doc.Path) != ".pdf" {
		t.Fatalf("stored file should keep the extension, got %s", doc.Path)
	}
	if _, err := os.Stat(doc.Path); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("document row not recorded")
	}
}

func TestStoreRejectsUnknownType(t *testing.T) {
	svc := NewDocumentService(&stubDocumentRepo{}, t.TempDir())

	file := uploadHeader(t, "run.exe", "application/octet-stream", "MZ")
	if _, err := svc.Store(context.Background(), model.DocCategoryDocument, file); err == nil {
		t.Fatalf("executable upload should be rejected")
	}

	// Whitelisted MIME with a mismatched extension is still rejected.
	file = uploadHeader(t, "cmr.exe", "application/pdf", "%PDF")
	if _, err := svc.Store(context.Background(), model.DocCategoryDocument, file); err == nil {
		t.Fatalf("extension outside the whitelist should be rejected")
	}
}

func TestStoreRejectsUnknownCategory(t *testing.T) {
	svc := NewDocumentService(&stubDocumentRepo{}, t.TempDir())
	file := uploadHeader(t, "cmr.pdf", "application/pdf", "%PDF")
	if _, err := svc.Store(context.Background(), "poze", file); err == nil {
		t.Fatalf("unknown category should be rejected")
	}
}

func TestStoreBatchLimits(t *testing.T) {
	svc := NewDocumentService(&stubDocumentRepo{}, t.TempDir())

	if _, err := svc.StoreBatch(context.Background(), model.DocCategoryDocument, nil); err == nil {
		t.Fatalf("empty batch should be rejected")
	}

	files := make([]*multipart.FileHeader, model.MaxUploadBatch+1)
	for i := range files {
		files[i] = uploadHeader(t, "cmr.pdf", "application/pdf", "%PDF")
	}
	if _, err := svc.StoreBatch(context.Background(), model.DocCategoryDocument, files); err == nil {
		t.Fatalf("oversized batch should be rejected")
	}
}

func TestStoreBatchCleansUpOnFailure(t *testing.T) {
	root := t.TempDir()
	svc := NewDocumentService(&stubDocumentRepo{failOn: "batch"}, root)

	files := []*multipart.FileHeader{
		uploadHeader(t, "a.pdf", "application/pdf", "%PDF"),
		uploadHeader(t, "b.pdf", "application/pdf", "%PDF"),
	}
	if _, err := svc.StoreBatch(context.Background(), model.DocCategoryContract, files); err == nil {
		t.Fatalf("repo failure should surface")
	}

	// No orphaned files may remain after a failed batch.
	var leftovers int
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && info != nil && !info.IsDir() {
			leftovers++
		}
		return nil
	})
	if leftovers != 0 {
		t.Fatalf("found %d leftover files after failed batch", leftovers)
	}
}
