package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocument(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc), "document must be valid JSON")
	assert.Equal(t, "/api", doc.BasePath)

	for _, path := range []string{
		"/health",
		"/upload-cv",
		"/generate-questions",
		"/interviews/start",
		"/interviews/{id}",
		"/interviews/{id}/responses",
		"/interviews/{id}/complete",
		"/interviews/{id}/export",
		"/auth/signup",
		"/auth/password-strength",
		"/auth/me",
	} {
		assert.Contains(t, doc.Paths, path)
	}
}
