package journal

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockStore(t *testing.T) (sqlmock.Sqlmock, *Store) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return mock, &Store{DB: gdb, Log: zap.NewNop()}
}

func TestEntriesMissingKeyIsEmpty(t *testing.T) {
	mock, store := setupMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "journals"`).
		WithArgs("dreamFormDataArray", 1).
		WillReturnRows(sqlmock.NewRows([]string{"key", "entries", "updated_at"}))

	entries, err := store.Entries(context.Background(), "dreamFormDataArray")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntriesDecodesStoredSequence(t *testing.T) {
	mock, store := setupMockStore(t)

	blob := `[{"dreamText":"un lac","isLucidDream":true,"dateDisplay":"06/01/2025","intensity":7}]`
	rows := sqlmock.NewRows([]string{"key", "entries", "updated_at"}).
		AddRow("dreamFormDataArray", []byte(blob), time.Now())

	mock.ExpectQuery(`SELECT \* FROM "journals"`).
		WithArgs("dreamFormDataArray", 1).
		WillReturnRows(rows)

	entries, err := store.Entries(context.Background(), "dreamFormDataArray")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "un lac", e.Text)
	assert.True(t, e.IsLucid)
	require.NotNil(t, e.Intensity)
	assert.Equal(t, 7, *e.Intensity)
	assert.Nil(t, e.Quality, "absent fields stay absent, not zero-filled")
}

func TestEntriesCorruptBlobIsEmptyNotError(t *testing.T) {
	mock, store := setupMockStore(t)

	rows := sqlmock.NewRows([]string{"key", "entries", "updated_at"}).
		AddRow("dreamFormDataArray", []byte(`{"not":"an array"`), time.Now())

	mock.ExpectQuery(`SELECT \* FROM "journals"`).
		WithArgs("dreamFormDataArray", 1).
		WillReturnRows(rows)

	entries, err := store.Entries(context.Background(), "dreamFormDataArray")
	require.NoError(t, err, "one bad payload must not blank every reader")
	assert.Empty(t, entries)
}

func TestProjectionRowsTrackPositions(t *testing.T) {
	entries := []Entry{
		{Text: "premier", DateDisplay: "06/01/2025", Type: TypeLucid, Tags: []string{"#Forêt", "nuit froide"}},
		{Text: "sans date", Character: "renard"},
	}

	rows := projectionRows("k", entries)
	require.Len(t, rows, 2)

	assert.Equal(t, 0, rows[0].Position)
	assert.Equal(t, "lucid", rows[0].Type)
	require.NotNil(t, rows[0].OccurredAt)
	assert.Equal(t, []string{"forêt", "nuit-froide"}, []string(rows[0].Tags))

	assert.Equal(t, 1, rows[1].Position)
	assert.Nil(t, rows[1].OccurredAt, "undated entries stay listable but undatable")
	assert.Equal(t, "renard", rows[1].Character)
	assert.NotNil(t, []string(rows[1].Tags))
}
