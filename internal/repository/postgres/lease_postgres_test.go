package postgres

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaseintake/internal/model"
	"leaseintake/internal/repository"
)

func sampleLease(projectID string) *model.LeaseDocument {
	rec := model.LeaseRecord{}
	rec.Tenant.CompanyName = "Acme Corp"
	rec.Landlord.CompanyName = "Oakley Holdings"
	rec.FinancialTerms.BaseRent = "$5,000/mo"
	rec.LeaseTerms.StartDate = "2024-01-01"
	raw, _ := json.Marshal(rec)
	return &model.LeaseDocument{
		ID:          "lease-1",
		ProjectID:   projectID,
		FileName:    "lease.pdf",
		FileURL:     "http://files/lease.pdf",
		Lease:       rec,
		Raw:         raw,
		Status:      model.LeaseStatusProcessed,
		ProcessedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func insertArgs(d *model.LeaseDocument) []driver.Value {
	args := []driver.Value{d.ID, d.ProjectID, d.FileName, d.FileURL, string(d.Raw), d.Status, d.ProcessedAt}
	for _, c := range d.Lease.Flatten() {
		args = append(args, c.SQLValue())
	}
	return args
}

func TestInsertLeaseSQL(t *testing.T) {
	assert.Contains(t, insertLeaseSQL, "tenant_company")
	assert.Contains(t, insertLeaseSQL, "insurance_requirements")
	assert.Contains(t, insertLeaseSQL, "$42)")
}

func TestLeasePostgres_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewLeasePostgres(db)
	ctx := context.Background()
	created := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		doc := sampleLease("proj-1")
		args := insertArgs(doc)
		assert.Nil(t, args[7+22], "empty lease_end_date is stored as NULL")

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO lease_documents").
			WithArgs(args...).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
		mock.ExpectExec("UPDATE projects SET document_count = document_count \\+ 1").
			WithArgs("proj-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		out, err := repo.Save(ctx, doc)

		require.NoError(t, err)
		assert.Equal(t, created, out.CreatedAt)
		assert.EqualValues(t, "Acme Corp", out.Lease.Tenant.CompanyName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing project via foreign key", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO lease_documents").
			WillReturnError(&pgconn.PgError{Code: "23503"})
		mock.ExpectRollback()

		out, err := repo.Save(ctx, sampleLease("missing"))

		assert.ErrorIs(t, err, repository.ErrProjectNotFound)
		assert.Nil(t, out)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing project via zero rows updated", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO lease_documents").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
		mock.ExpectExec("UPDATE projects").
			WithArgs("gone").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.Save(ctx, sampleLease("gone"))

		assert.ErrorIs(t, err, repository.ErrProjectNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counter update failure rolls back the insert", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO lease_documents").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
		mock.ExpectExec("UPDATE projects").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := repo.Save(ctx, sampleLease("proj-1"))

		assert.ErrorContains(t, err, "increment document_count")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("raw is derived when absent", func(t *testing.T) {
		doc := sampleLease("proj-1")
		doc.Raw = nil
		want, _ := json.Marshal(doc.Lease)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO lease_documents").
			WithArgs(doc.ID, doc.ProjectID, doc.FileName, doc.FileURL, string(want),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
		mock.ExpectExec("UPDATE projects").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		out, err := repo.Save(ctx, doc)

		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(out.Raw))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeasePostgres_Save_IncrementsCounterPerLease(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLeasePostgres(db)
	const n = 3
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO lease_documents").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec("UPDATE projects SET document_count = document_count \\+ 1").
			WithArgs("proj-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	for i := 0; i < n; i++ {
		_, err := repo.Save(context.Background(), sampleLease("proj-1"))
		require.NoError(t, err)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func leaseRows(docs ...*model.LeaseDocument) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "project_id", "file_name", "file_url", "raw_lease_data", "status", "processed_at", "created_at"})
	for _, d := range docs {
		rows.AddRow(d.ID, d.ProjectID, d.FileName, d.FileURL, []byte(d.Raw), d.Status, d.ProcessedAt, d.ProcessedAt)
	}
	return rows
}

func TestLeasePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewLeasePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM lease_documents WHERE id = ?").
			WithArgs("lease-1").
			WillReturnRows(leaseRows(sampleLease("proj-1")))

		d, err := repo.FindByID(ctx, "lease-1")

		require.NoError(t, err)
		assert.EqualValues(t, "Acme Corp", d.Lease.Tenant.CompanyName)
		assert.EqualValues(t, "2024-01-01", d.Lease.LeaseTerms.StartDate)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM lease_documents WHERE id = ?").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		d, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, d)
	})

	t.Run("malformed id", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM lease_documents WHERE id = ?").
			WithArgs("not-a-uuid").
			WillReturnError(&pgconn.PgError{Code: "22P02"})

		_, err := repo.FindByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestLeasePostgres_ListByProject(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLeasePostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM lease_documents WHERE project_id").
		WithArgs("proj-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM lease_documents WHERE project_id = (.+) ORDER BY created_at DESC").
		WithArgs("proj-1", 20, 0).
		WillReturnRows(leaseRows(sampleLease("proj-1")))

	res, err := repo.ListByProject(context.Background(), "proj-1", repository.PageQuery{Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "lease.pdf", res.Items[0].FileName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeasePostgres_ListAllByProject(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLeasePostgres(db)
	a, b := sampleLease("proj-1"), sampleLease("proj-1")
	b.ID = "lease-2"

	mock.ExpectQuery("SELECT (.+) FROM lease_documents WHERE project_id = (.+) ORDER BY created_at ASC").
		WithArgs("proj-1").
		WillReturnRows(leaseRows(a, b))

	items, err := repo.ListAllByProject(context.Background(), "proj-1")

	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeasePostgres_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM projects(.+) FROM lease_documents").
		WillReturnRows(sqlmock.NewRows([]string{"p", "d", "m"}).AddRow(4, 10, 3))

	s, err := NewLeasePostgres(db).Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.Stats{TotalProjects: 4, TotalDocuments: 10, ProcessedThisMonth: 3}, *s)
	assert.NoError(t, mock.ExpectationsWereMet())
}
