package repository

import (
	"context"
	"testing"

	"transio/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("bad uuid %q: %v", s, err)
	}
	return id
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return db, mock
}

func TestCountByPrefix(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices"`).
		WithArgs("TRF-202506-%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByPrefix(context.Background(), "TRF-202506-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 7 {
		t.Fatalf("count: got %d want 7", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByNumar(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "numar", "suma", "moneda", "status"}).
		AddRow("6ba7b810-9dad-11d1-80b4-00c04fd430c8", "TRF-202506-0003", "1500.00", "EUR", "EMISA")
	mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE numar = \$1`).
		WillReturnRows(rows)

	invoice, err := repo.FindByNumar(context.Background(), "TRF-202506-0003")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.Numar != "TRF-202506-0003" {
		t.Fatalf("numar: got %q", invoice.Numar)
	}
	if invoice.Status != model.InvoiceStatusIssued {
		t.Fatalf("status: got %s", invoice.Status)
	}
	if invoice.Suma.StringFixed(2) != "1500.00" {
		t.Fatalf("suma: got %s", invoice.Suma.StringFixed(2))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteIsSoft(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "invoices" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id := mustUUID(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
