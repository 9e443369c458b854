package persona

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumminds/council/pkg/errx"
	"github.com/quantumminds/council/pkg/kernel"
)

func TestResolveKnownAgent(t *testing.T) {
	reg := NewRegistry(map[string]string{
		"allex": "Você é Allex, Mentor de Líderes.",
		"julia": "Você é Julia, Mentora de Desenvolvimento.",
	})

	prompt, err := reg.Resolve(kernel.NewAgentID("allex"))
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "Allex")
}

func TestResolveUnknownAgent(t *testing.T) {
	reg := NewRegistry(map[string]string{"allex": "prompt"})

	_, err := reg.Resolve(kernel.NewAgentID("nobody"))
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeValidation))

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatus)
	assert.Equal(t, "nobody", e.Details["agent_id"])
}

func TestResolveIsCaseSensitive(t *testing.T) {
	reg := NewRegistry(map[string]string{"allex": "prompt"})

	_, err := reg.Resolve(kernel.NewAgentID("Allex"))
	assert.Error(t, err)
}

func TestHasAndLen(t *testing.T) {
	reg := NewRegistry(map[string]string{"a": "1", "b": "2"})

	assert.Equal(t, 2, reg.Len())
	assert.True(t, reg.Has(kernel.NewAgentID("a")))
	assert.False(t, reg.Has(kernel.NewAgentID("c")))
	assert.Len(t, reg.AgentIDs(), 2)
}

func TestLoadFileValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.json")
	content := `{"allex": "Você é Allex.", "lucas": "Você é Lucas."}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reg := LoadFile(path)
	require.NotNil(t, reg)
	assert.Equal(t, 2, reg.Len())

	prompt, err := reg.Resolve(kernel.NewAgentID("lucas"))
	require.NoError(t, err)
	assert.Equal(t, "Você é Lucas.", prompt)
}

func TestLoadFileMissingDegradesToEmpty(t *testing.T) {
	reg := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.json"))

	require.NotNil(t, reg)
	assert.Equal(t, 0, reg.Len())

	_, err := reg.Resolve(kernel.NewAgentID("allex"))
	assert.Error(t, err)
}

func TestLoadFileMalformedDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	reg := LoadFile(path)
	require.NotNil(t, reg)
	assert.Equal(t, 0, reg.Len())
}
