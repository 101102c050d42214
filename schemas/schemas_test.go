package schemas

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/jonathan/job-match-engine/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalJobSchema_ValidJSON(t *testing.T) {
	data, err := os.ReadFile("external_job.schema.json")
	require.NoError(t, err, "should be able to read schema file")

	var v interface{}
	err = json.Unmarshal(data, &v)
	assert.NoError(t, err, "schema file should be valid JSON")
}

func TestExternalJobSchema_LoadsAsSchema(t *testing.T) {
	data, err := os.ReadFile("external_job.schema.json")
	require.NoError(t, err)

	// A loadable schema validates at least one trivially valid document.
	batch := `{"jobs": [{"title": "Engineer", "company": "Acme", "skills": ["go"], "source": "lever", "external_id": "1"}]}`
	err = schemas.ValidateJSONString(string(data), batch)
	assert.NoError(t, err)
}

func TestExternalJobSchema_RejectsUnknownFields(t *testing.T) {
	data, err := os.ReadFile("external_job.schema.json")
	require.NoError(t, err)

	batch := `{"jobs": [{"title": "Engineer", "company": "Acme", "skills": ["go"], "source": "lever", "external_id": "1", "surprise": true}]}`
	err = schemas.ValidateJSONString(string(data), batch)
	require.Error(t, err)

	_, ok := err.(*schemas.ValidationError)
	assert.True(t, ok, "error should be ValidationError type")
}
