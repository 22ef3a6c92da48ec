package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"leaseintake/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSN(t *testing.T) {
	base := config.DatabaseConfig{Host: "db", Port: "5432", User: "lease", Name: "leases"}

	tests := []struct {
		name    string
		mutate  func(c *config.DatabaseConfig)
		want    string
		wantErr bool
	}{
		{
			name: "password sslmode and connect timeout",
			mutate: func(c *config.DatabaseConfig) {
				c.Password = "s3cret"
				c.SSLMode = "disable"
				c.ConnectTimeoutSec = 5
			},
			want: "postgres://lease:s3cret@db:5432/leases?application_name=leaseintake&connect_timeout=5&sslmode=disable",
		},
		{
			name:   "no password",
			mutate: func(c *config.DatabaseConfig) { c.SSLMode = "require" },
			want:   "postgres://lease@db:5432/leases?application_name=leaseintake&sslmode=require",
		},
		{
			name:   "password is escaped",
			mutate: func(c *config.DatabaseConfig) { c.Password = "p@ss/word" },
			want:   "postgres://lease:p%40ss%2Fword@db:5432/leases?application_name=leaseintake",
		},
		{name: "missing host", mutate: func(c *config.DatabaseConfig) { c.Host = "" }, wantErr: true},
		{name: "missing port", mutate: func(c *config.DatabaseConfig) { c.Port = "" }, wantErr: true},
		{name: "missing user", mutate: func(c *config.DatabaseConfig) { c.User = "" }, wantErr: true},
		{name: "missing name", mutate: func(c *config.DatabaseConfig) { c.Name = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			got, err := BuildPostgresDSN(c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPingTimeout(t *testing.T) {
	assert.Equal(t, defaultPingTimeout, pingTimeout(config.DatabaseConfig{}))
	assert.Equal(t, 2*time.Second, pingTimeout(config.DatabaseConfig{ConnectTimeoutSec: 2}))
}

func TestNewPostgres(t *testing.T) {
	conf := config.DatabaseConfig{
		Host:               "db",
		Port:               "5432",
		User:               "lease",
		Password:           "s3cret",
		Name:               "leases",
		MaxOpenConns:       10,
		MaxIdleConns:       5,
		ConnMaxLifetimeSec: 300,
		ConnectTimeoutSec:  1,
	}

	stubOpen := func(t *testing.T, db *sql.DB, err error) *string {
		t.Helper()
		var gotDSN string
		orig := sqlOpen
		sqlOpen = func(_, dsn string) (*sql.DB, error) {
			gotDSN = dsn
			return db, err
		}
		t.Cleanup(func() { sqlOpen = orig })
		return &gotDSN
	}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		dsn := stubOpen(t, db, nil)

		mock.ExpectPing()

		gotDB, err := NewPostgres(conf)
		require.NoError(t, err)
		assert.Same(t, db, gotDB)
		assert.Contains(t, *dsn, "application_name=leaseintake")
		assert.Equal(t, 10, gotDB.Stats().MaxOpenConnections)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver registered once", func(t *testing.T) {
		first, err := tracedDriver()
		require.NoError(t, err)
		second, err := tracedDriver()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("sqlOpen error", func(t *testing.T) {
		stubOpen(t, nil, errors.New("open error"))

		gotDB, err := NewPostgres(conf)
		assert.ErrorContains(t, err, "sql open: open error")
		assert.Nil(t, gotDB)
	})

	t.Run("ping error closes the pool", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)

		mock.ExpectPing().WillReturnError(errors.New("ping failed"))

		gotDB, err := NewPostgres(conf)
		assert.ErrorContains(t, err, "db ping: ping failed")
		assert.Nil(t, gotDB)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid DSN", func(t *testing.T) {
		gotDB, err := NewPostgres(config.DatabaseConfig{})
		assert.Error(t, err)
		assert.Nil(t, gotDB)
	})
}
