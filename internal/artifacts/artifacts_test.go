package artifacts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func sample(id, user string, created time.Time) Artifact {
	return Artifact{
		ID:           id,
		UserID:       user,
		Kind:         "resume",
		Template:     "modern",
		FileName:     "BaraCV_Ana_Resume.pdf",
		StorageKey:   "exports/abc/" + id + ".pdf",
		Pages:        2,
		SizeBytes:    1024,
		MimeType:     "application/pdf",
		DeliveryMode: "native_share",
		Outcome:      OutcomePending,
		CreatedAt:    created,
	}
}

func TestMemoryRepoListNewestFirstWithPaging(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := repo.Create(ctx, sample(id, "u1", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	_ = repo.Create(ctx, sample("other", "u2", base))

	list, err := repo.ListByUser(ctx, "u1", 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "b" {
		t.Fatalf("unexpected page %+v", list)
	}
	list, _ = repo.ListByUser(ctx, "u1", 2, 2)
	if len(list) != 1 || list[0].ID != "a" {
		t.Fatalf("unexpected second page %+v", list)
	}
	list, _ = repo.ListByUser(ctx, "u1", 2, 10)
	if len(list) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(list))
	}
}

func TestMemoryRepoOwnershipAndOutcome(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	_ = repo.Create(ctx, sample("a", "u1", time.Now()))

	if _, err := repo.GetByID(ctx, "u2", "a"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	a, err := repo.UpdateOutcome(ctx, "u1", "a", OutcomeShared)
	if err != nil {
		t.Fatalf("update outcome: %v", err)
	}
	if a.Outcome != OutcomeShared {
		t.Fatalf("expected shared, got %s", a.Outcome)
	}
	if _, err := repo.UpdateOutcome(ctx, "u2", "a", OutcomeFailed); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReportableOutcome(t *testing.T) {
	for _, o := range []string{OutcomeShared, OutcomeCancelled, OutcomeFailed, OutcomeOpened} {
		if !ReportableOutcome(o) {
			t.Fatalf("%s should be reportable", o)
		}
	}
	for _, o := range []string{OutcomePending, OutcomeDownloaded, "", "bogus"} {
		if ReportableOutcome(o) {
			t.Fatalf("%q should not be reportable", o)
		}
	}
}

func artifactRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "kind", "template", "file_name", "storage_key", "pages", "size_bytes",
		"mime_type", "delivery_mode", "outcome", "created_at",
	})
}

func TestPGRepoCreateAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}
	created := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	a := sample("a", "u1", created)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO export_artifacts")).
		WithArgs(a.ID, a.UserID, a.Kind, a.Template, a.FileName, a.StorageKey, a.Pages, a.SizeBytes,
			a.MimeType, a.DeliveryMode, a.Outcome, a.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM export_artifacts")).
		WithArgs("a").
		WillReturnRows(artifactRows().AddRow(a.ID, a.UserID, a.Kind, a.Template, a.FileName, a.StorageKey,
			a.Pages, a.SizeBytes, a.MimeType, a.DeliveryMode, a.Outcome, a.CreatedAt))
	if _, err := repo.GetByID(context.Background(), "u2", "a"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM export_artifacts")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoListClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("u1", 100, 0).
		WillReturnRows(artifactRows())
	list, err := repo.ListByUser(context.Background(), "u1", 500, -3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoUpdateOutcome(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}
	a := sample("a", "u1", time.Now().UTC())

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE export_artifacts SET outcome = $1")).
		WithArgs(OutcomeCancelled, "a", "u1").
		WillReturnRows(artifactRows().AddRow(a.ID, a.UserID, a.Kind, a.Template, a.FileName, a.StorageKey,
			a.Pages, a.SizeBytes, a.MimeType, a.DeliveryMode, OutcomeCancelled, a.CreatedAt))
	got, err := repo.UpdateOutcome(context.Background(), "u1", "a", OutcomeCancelled)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Outcome != OutcomeCancelled {
		t.Fatalf("expected cancelled, got %s", got.Outcome)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
