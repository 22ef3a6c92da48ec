package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaseintake/internal/model"
	"leaseintake/internal/repository"
)

var projectCols = []string{"id", "name", "description", "document_count", "status", "created_at", "updated_at"}

func TestProjectPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	now := time.Now().UTC()
	p := &model.Project{
		ID:        "proj-1",
		Name:      "Downtown Portfolio",
		Status:    model.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO projects").
		WithArgs(p.ID, p.Name, nil, 0, p.Status, now, now).
		WillReturnRows(sqlmock.NewRows(projectCols).AddRow(p.ID, p.Name, nil, 0, "active", now, now))

	out, err := repo.Create(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, "proj-1", out.ID)
	assert.Empty(t, out.Description)
	assert.Equal(t, model.ProjectActive, out.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE id = ?").
			WithArgs("proj-1").
			WillReturnRows(sqlmock.NewRows(projectCols).
				AddRow("proj-1", "Downtown", "Class A offices", 2, "active", time.Now(), time.Now()))

		p, err := repo.FindByID(ctx, "proj-1")

		require.NoError(t, err)
		assert.Equal(t, 2, p.DocumentCount)
		assert.Equal(t, "Class A offices", p.Description)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, p)
	})

	t.Run("malformed id", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE id = ?").
			WithArgs("x").
			WillReturnError(&pgconn.PgError{Code: "22P02"})

		_, err := repo.FindByID(ctx, "x")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestProjectPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM projects").
		WithArgs("down").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM projects WHERE (.+) ORDER BY").
		WithArgs("down", 10, 0).
		WillReturnRows(sqlmock.NewRows(projectCols).
			AddRow("proj-1", "Downtown", nil, 0, "active", time.Now(), time.Now()))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 10, Search: "down"})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM projects WHERE id = ?").
		WithArgs("proj-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, "proj-1"))

	mock.ExpectExec("DELETE FROM projects WHERE id = ?").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsNoRowsError(t *testing.T) {
	assert.True(t, IsNoRowsError(sql.ErrNoRows))
	assert.False(t, IsNoRowsError(sql.ErrConnDone))
}
