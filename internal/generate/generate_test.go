package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genclient/genclient/internal/config"
)

const sampleDoc = `{
  "openapi": "3.0.0",
  "info": {"title": "Widgets", "version": "1.0.0"},
  "paths": {
    "/widgets/{widgetId}": {
      "get": {
        "operationId": "getWidget",
        "parameters": [
          {"name": "widgetId", "in": "path", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {
            "description": "ok",
            "content": {"application/json": {"schema": {
              "type": "object",
              "required": ["name"],
              "properties": {"name": {"type": "string"}}
            }}}
          },
          "404": {"description": "not found"}
        }
      }
    }
  }
}`

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "openapi.json")
	require.NoError(t, os.WriteFile(inputPath, []byte(sampleDoc), 0o644))

	cfg := &config.Config{
		Input:      inputPath,
		Output:     filepath.Join(dir, "client.go"),
		Package:    "client",
		ClientType: "Client",
		TagRouting: "both",
	}

	result, err := Run(cfg, Options{RuntimeImportPath: "example.com/genclienttest/runtime"})
	require.NoError(t, err)
	assert.Contains(t, result.Source, "package client")
	assert.Contains(t, result.Source, "func (c *Client) GetWidget(")
	assert.Contains(t, result.Source, "type Client struct")
}

func TestLowerForDumpReturnsOperationsAndTypes(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "openapi.json")
	require.NoError(t, os.WriteFile(inputPath, []byte(sampleDoc), 0o644))

	cfg := &config.Config{Input: inputPath, Output: filepath.Join(dir, "client.go")}
	dump, err := LowerForDump(cfg)
	require.NoError(t, err)
	require.Len(t, dump.Operations, 1)
	assert.Equal(t, "getWidget", dump.Operations[0].OperationID)
	assert.NotEmpty(t, dump.Types)
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cachePath := CachePath(filepath.Join(dir, "client.go"))

	c := New("confighash", "inputhash", filepath.Join(dir, "client.go"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "client.go"), []byte("package client"), 0o644))
	require.NoError(t, Save(cachePath, c))

	loaded := Load(cachePath)
	require.NotNil(t, loaded)
	assert.True(t, loaded.IsValid("confighash", "inputhash"))
	assert.False(t, loaded.IsValid("confighash", "different"))
}
