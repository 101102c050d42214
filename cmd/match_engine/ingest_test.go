package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCmd() *cobra.Command {
	return &cobra.Command{}
}

func writeBatch(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunIngest_MissingFile(t *testing.T) {
	ingestFile = filepath.Join(t.TempDir(), "no_such.json")

	err := runIngest(testCmd(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRunIngest_SchemaRejectsBadBatch(t *testing.T) {
	// Record is missing skills, so validation fails before anything
	// touches the database.
	ingestFile = writeBatch(t, `{"jobs": [{"title": "Engineer", "company": "Acme", "source": "lever", "external_id": "1"}]}`)

	err := runIngest(testCmd(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch file rejected")
}

func TestRunIngest_ValidBatchNeedsDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	ingestFile = writeBatch(t, `{"jobs": [{"title": "Engineer", "company": "Acme", "skills": ["go"], "source": "lever", "external_id": "1"}]}`)

	err := runIngest(testCmd(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
