package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gomissing/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Database
		expected string
	}{
		{
			name: "preferred TLS default",
			cfg: config.Database{
				Host: "db.example.com", Port: 3306,
				User: "reader", Password: "secret", Database: "warehouse",
			},
			expected: "reader:secret@tcp(db.example.com:3306)/warehouse?parseTime=true&tls=preferred",
		},
		{
			name: "TLS disabled",
			cfg: config.Database{
				Host: "localhost", Port: 3307,
				User: "u", Password: "p", Database: "d", TLS: "disable",
			},
			expected: "u:p@tcp(localhost:3307)/d?parseTime=true&tls=false",
		},
		{
			name: "TLS required",
			cfg: config.Database{
				Host: "h", Port: 3306,
				User: "u", Password: "p", Database: "d", TLS: "required",
			},
			expected: "u:p@tcp(h:3306)/d?parseTime=true&tls=true",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BuildDSN(&tc.cfg))
		})
	}
}

func TestLoadRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	src := &Source{
		DB: db,
		config: &config.Database{
			Table:       "samples",
			DocColumn:   "doc",
			OrderColumn: "id",
		},
	}

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow(`{"k1": "key1", "optional_field": 19}`).
		AddRow(`{"k1": "key3", "optional_field": null}`)
	mock.ExpectQuery("SELECT `doc` FROM `samples` ORDER BY `id` ASC").
		WillReturnRows(rows)

	docs, err := src.LoadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "key1", docs[0]["k1"])
	assert.Nil(t, docs[1]["optional_field"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRows_NoOrderColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	src := &Source{
		DB:     db,
		config: &config.Database{Table: "samples", DocColumn: "doc"},
	}

	mock.ExpectQuery("SELECT `doc` FROM `samples`").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	docs, err := src.LoadRows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRows_BadDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	src := &Source{
		DB:     db,
		config: &config.Database{Table: "samples", DocColumn: "doc"},
	}

	mock.ExpectQuery("SELECT `doc` FROM `samples`").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(`{broken`))

	_, err = src.LoadRows(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row document")
}

func TestLoadRows_InvalidIdentifier(t *testing.T) {
	src := &Source{
		config: &config.Database{Table: "samples; DROP TABLE x", DocColumn: "doc"},
	}
	_, err := src.LoadRows(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid identifier")
}
