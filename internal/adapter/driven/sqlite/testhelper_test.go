package sqlite

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB opens a migrated in-memory blog database scoped to the test.
// The database is named after the test (percent-encoded, so subtests with
// "/" in their names stay valid URI filenames) and shared between the writer
// and reader pools via cache=shared, mirroring the on-disk dual-pool setup.
// WAL does not apply in memory, so that pragma is skipped.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:inkwell_test_%s?mode=memory&cache=shared"+
			"&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
		url.PathEscape(t.Name()),
	)

	writer, err := openConn(dsn, writerConns)
	require.NoError(t, err, "open test writer")

	reader, err := openConn(dsn, readerConns)
	if err != nil {
		_ = writer.Close()
	}
	require.NoError(t, err, "open test reader")

	db := &DB{Writer: writer, Reader: reader, path: dsn}
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(), "migrate test db")

	return db
}
