package utils_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjintranet/TF-Order-Address-Validation/pkg/utils"
)

// newTestFileManager builds a FileManager rooted in a temp dir with the
// directory tree created.
func newTestFileManager(t *testing.T) *utils.FileManager {
	t.Helper()
	root := t.TempDir()
	fm := utils.NewFileManager(
		filepath.Join(root, "input"),
		filepath.Join(root, "output"),
		filepath.Join(root, "archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func writeInputFile(t *testing.T, fm *utils.FileManager, name, content string) string {
	t.Helper()
	path := filepath.Join(fm.InputDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func Test_DiscoverInputFiles(t *testing.T) {
	fm := newTestFileManager(t)

	writeInputFile(t, fm, "orders_1.txt", "")
	writeInputFile(t, fm, "orders_2.txt", "")
	writeInputFile(t, fm, "notes.md", "")
	require.NoError(t, os.MkdirAll(filepath.Join(fm.InputDir, "nested.txt"), 0755))

	t.Run("default pattern picks up txt files only", func(t *testing.T) {
		files, err := fm.DiscoverInputFiles("")
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "orders_1.txt", filepath.Base(files[0]))
		assert.Equal(t, "orders_2.txt", filepath.Base(files[1]))
	})

	t.Run("explicit pattern", func(t *testing.T) {
		files, err := fm.DiscoverInputFiles("*.md")
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "notes.md", filepath.Base(files[0]))
	})

	t.Run("no matches yields empty list", func(t *testing.T) {
		files, err := fm.DiscoverInputFiles("*.csv")
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func Test_ArchiveInputFile(t *testing.T) {
	t.Run("moves the file into the archive", func(t *testing.T) {
		fm := newTestFileManager(t)
		path := writeInputFile(t, fm, "orders.txt", "payload")

		archived, err := fm.ArchiveInputFile(path)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(fm.InputArchiveDir, "orders.txt"), archived)
		assert.NoFileExists(t, path)
		data, err := os.ReadFile(archived)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("name collision gets a unique suffix", func(t *testing.T) {
		fm := newTestFileManager(t)
		first := writeInputFile(t, fm, "orders.txt", "first")
		archivedFirst, err := fm.ArchiveInputFile(first)
		require.NoError(t, err)

		second := writeInputFile(t, fm, "orders.txt", "second")
		archivedSecond, err := fm.ArchiveInputFile(second)
		require.NoError(t, err)

		assert.NotEqual(t, archivedFirst, archivedSecond)
		assert.FileExists(t, archivedFirst)
		assert.FileExists(t, archivedSecond)
		assert.Regexp(t, regexp.MustCompile(`orders_[0-9a-f]{8}\.txt$`), archivedSecond)
	})

	t.Run("disabled archival leaves the file in place", func(t *testing.T) {
		fm := newTestFileManager(t)
		fm.ArchiveOnSuccess = false
		path := writeInputFile(t, fm, "orders.txt", "payload")

		archived, err := fm.ArchiveInputFile(path)
		require.NoError(t, err)
		assert.Equal(t, path, archived)
		assert.FileExists(t, path)
	})
}

func Test_GenerateReportFileName(t *testing.T) {
	t.Run("original and timestamp placeholders", func(t *testing.T) {
		name := utils.GenerateReportFileName("{original}_validation_{timestamp}", "/data/in/orders_20260815.txt")
		assert.Regexp(t, `^orders_20260815_validation_\d{8}_\d{6}$`, name)
	})

	t.Run("date and time placeholders", func(t *testing.T) {
		name := utils.GenerateReportFileName("report_{date}_{time}", "orders.txt")
		assert.Regexp(t, `^report_\d{8}_\d{6}$`, name)
	})

	t.Run("uuid placeholder", func(t *testing.T) {
		name := utils.GenerateReportFileName("{original}_{uuid}", "orders.txt")
		assert.Regexp(t, `^orders_[0-9a-f-]{36}$`, name)
	})

	t.Run("format without placeholders passes through", func(t *testing.T) {
		assert.Equal(t, "static_name", utils.GenerateReportFileName("static_name", "orders.txt"))
	})
}

func Test_CleanOldArchives(t *testing.T) {
	fm := newTestFileManager(t)

	oldFile := filepath.Join(fm.InputArchiveDir, "ancient.txt")
	require.NoError(t, os.WriteFile(oldFile, []byte("x"), 0644))
	oldTime := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldFile, oldTime, oldTime))

	freshFile := filepath.Join(fm.InputArchiveDir, "fresh.txt")
	require.NoError(t, os.WriteFile(freshFile, []byte("x"), 0644))

	removed, err := utils.CleanOldArchives(fm.InputArchiveDir, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, freshFile)
}
