package migration

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doccms/internal/logging"
)

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("skips existing schema", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		var buf bytes.Buffer
		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, EnsureMigrated(ctx, db, logging.New(&buf, time.UTC), "db"))
		assert.Contains(t, buf.String(), "db_migration_skip")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("runs every step", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		var buf bytes.Buffer
		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		for range steps {
			mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
		}

		require.NoError(t, EnsureMigrated(ctx, db, logging.New(&buf, time.UTC), "db"))
		assert.Contains(t, buf.String(), "db_migration_success")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("step failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		var buf bytes.Buffer
		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(ctx, db, logging.New(&buf, time.UTC), "db")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create_table_activity")
		assert.Contains(t, buf.String(), `"level":"error"`)
	})

	t.Run("sentinel check failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT to_regclass").WillReturnError(errors.New("conn refused"))

		err = EnsureMigrated(ctx, db, logging.New(&bytes.Buffer{}, time.UTC), "db")
		assert.ErrorContains(t, err, "failed to check sentinel table")
	})
}
