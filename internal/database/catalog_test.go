package database

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTables(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.ListTables(context.Background())
	require.NoError(t, err)

	var names []string
	for _, row := range rows {
		name, ok := row.Get("name")
		require.True(t, ok)
		names = append(names, name.(string))
	}
	assert.ElementsMatch(t, CoreTables, names)
}

func TestTableInfo(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.TableInfo(context.Background(), TableStudents)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, []string{"cid", "name", "type", "notnull", "dflt_value", "pk"}, rows[0].Columns)

	name, _ := rows[0].Get("name")
	pk, _ := rows[0].Get("pk")
	assert.Equal(t, "id", name)
	assert.Equal(t, int64(1), pk)

	notnull, _ := rows[1].Get("notnull")
	assert.Equal(t, int64(1), notnull, "vorname is NOT NULL")
}

func TestTableInfoUnknownTable(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.TableInfo(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}

func TestQueryRowsIsRolledBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	seedSchool(t, repo)

	_, err := db.QueryRows(context.Background(), "DELETE FROM schueler")
	require.NoError(t, err)

	count, err := repo.CountRows(TableStudents)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestQueryRowsError(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.QueryRows(context.Background(), "SELECT nope FROM schueler")
	assert.Error(t, err)
}

func TestRowMarshalJSON(t *testing.T) {
	row := Row{
		Columns: []string{"z", "a", "note"},
		Values:  []any{"Müller", nil, 2.3},
	}

	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"Müller","a":null,"note":2.3}`, string(b))
}

func TestRowGet(t *testing.T) {
	row := Row{Columns: []string{"id"}, Values: []any{int64(7)}}

	v, ok := row.Get("id")
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)

	_, ok = row.Get("missing")
	assert.False(t, ok)
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"bytes", []byte("10a"), "10a"},
		{"midnight", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "2026-09-01"},
		{"timestamp", time.Date(2026, 9, 1, 8, 15, 0, 0, time.UTC), "2026-09-01T08:15:00Z"},
		{"integer", int64(4), int64(4)},
		{"null", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeValue(tt.in))
		})
	}
}

func TestRowMarshalJSONKeepsRealDecimals(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"whole real", 2.0, `{"v":2.0}`},
		{"negative whole", -3.0, `{"v":-3.0}`},
		{"fraction", 1.7, `{"v":1.7}`},
		{"integer column", int64(2), `{"v":2}`},
		{"huge real", 1e20, `{"v":100000000000000000000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(Row{Columns: []string{"v"}, Values: []any{tt.in}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestQueryRowsRealColumns(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.QueryRows(context.Background(), "SELECT 2.0 AS note, ROUND(2.26, 1) AS schnitt, 3 AS n")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	b, err := json.Marshal(rows[0])
	require.NoError(t, err)
	assert.Equal(t, `{"note":2.0,"schnitt":2.3,"n":3}`, string(b))
}

func TestQueryRowsRejectsChainedStatements(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	seedSchool(t, repo)

	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"single", "SELECT 1", false},
		{"trailing semicolon", "SELECT 1;", false},
		{"trailing comment", "SELECT 1; -- done\n  ;", false},
		{"trailing block comment", "SELECT 1; /* done */", false},
		{"semicolon in string", "SELECT ';DELETE FROM schueler' AS s", false},
		{"semicolon in identifier", `SELECT 1 AS "a;b"`, false},
		{"semicolon in comment", "SELECT 1 /* ; DELETE FROM schueler */", false},
		{"two selects", "SELECT 1 AS a; SELECT 2 AS b", true},
		{"select then delete", "SELECT 1; DELETE FROM schueler", true},
		{"after comment", "SELECT 1; -- x\nDELETE FROM schueler", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.QueryRows(context.Background(), tt.query)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMultipleStatements)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	count, err := repo.CountRows(TableStudents)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestFirstStatement(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT 1;  -- done", "SELECT 1;"},
		{"SELECT 'a;b'; /* x */ ;", "SELECT 'a;b';"},
		{"SELECT 'it''s'; ", "SELECT 'it''s';"},
		{"SELECT [x;y] FROM t;", "SELECT [x;y] FROM t;"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := firstStatement(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := firstStatement("SELECT 'it''s'; SELECT 2")
	assert.ErrorIs(t, err, ErrMultipleStatements)
}
