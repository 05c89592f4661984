package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm", err: gorm.ErrDuplicatedKey, want: true},
		{name: "postgres", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "postgres_other", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "mysql", err: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, want: true},
		{name: "sqlite", err: errors.New("UNIQUE constraint failed: variants.sku"), want: true},
		{name: "other", err: errors.New("connection refused"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateKeyErr(tc.err))
		})
	}
}

func TestDialectRejectsUnknownType(t *testing.T) {
	_, err := Dialect(Config{Type: "oracle"})
	assert.Error(t, err)

	d, err := Dialect(Config{Type: "SQLite"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
}

func TestNewTestIsolatesDatabases(t *testing.T) {
	type probe struct {
		ID int64 `gorm:"primaryKey"`
	}

	first, err := NewTest()
	require.NoError(t, err)
	second, err := NewTest()
	require.NoError(t, err)

	require.NoError(t, first.AutoMigrate(&probe{}))
	require.NoError(t, first.Create(&probe{ID: 1}).Error)

	assert.True(t, first.Migrator().HasTable(&probe{}))
	assert.False(t, second.Migrator().HasTable(&probe{}))
	assert.False(t, SupportsRowLocking(first))
}
