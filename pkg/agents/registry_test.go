package agents

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/impulsyia-backend/pkg/agents/resources"
	"github.com/dskvich/impulsyia-backend/pkg/domain"
)

const testManifest = `
agents:
  - id: tutor_socratico
    name: Tutor Socrático
    description: Valida domínio ativo.
    prompt: tutor.txt
    default_model: qwen-plus
  - id: diagnosticador_foco
    name: Diagnosticador F.O.C.O.
    description: Separa fatos e emoções.
    prompt: foco.txt
`

func TestLoad_EmbeddedCatalog(t *testing.T) {
	r, err := Load(resources.FS)
	require.NoError(t, err)

	ids := []string{
		"mestre_mapeamento",
		"diagnosticador_foco",
		"validador_estrategico",
		"laboratorio_cientifico",
		"tutor_socratico",
		"arquiteto_implementacao",
		"construtor_sistemas",
	}

	list := r.List()
	require.Len(t, list, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, list[i].ID)

		def, err := r.Get(id)
		require.NoError(t, err)
		assert.NotEmpty(t, def.SystemPrompt, id)
		assert.NotEmpty(t, def.Name, id)
		assert.Equal(t, "qwen-plus", def.DefaultModel, id)
	}

	tutor, err := r.Get("tutor_socratico")
	require.NoError(t, err)
	assert.Equal(t, "Tutor Socrático", tutor.Name)
}

func TestLoad_TrimsPromptsAndKeepsOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"agents.yaml":       {Data: []byte(testManifest)},
		"prompts/tutor.txt": {Data: []byte("\n  Você é o tutor.  \n")},
		"prompts/foco.txt":  {Data: []byte("Você é o diagnosticador.")},
	}

	r, err := Load(fsys)
	require.NoError(t, err)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "tutor_socratico", list[0].ID)
	assert.Equal(t, "Você é o tutor.", list[0].SystemPrompt)
	assert.Equal(t, "diagnosticador_foco", list[1].ID)
	assert.Empty(t, list[1].DefaultModel)
}

func TestLoad_MissingPrompt(t *testing.T) {
	fsys := fstest.MapFS{
		"agents.yaml":       {Data: []byte(testManifest)},
		"prompts/tutor.txt": {Data: []byte("Você é o tutor.")},
	}

	r, err := Load(fsys)
	require.ErrorIs(t, err, domain.ErrPromptResourceMissing)
	assert.Nil(t, r)
	assert.Contains(t, err.Error(), "prompts/foco.txt")
	assert.Contains(t, err.Error(), "diagnosticador_foco")
}

func TestLoad_EmptyPrompt(t *testing.T) {
	fsys := fstest.MapFS{
		"agents.yaml":       {Data: []byte(testManifest)},
		"prompts/tutor.txt": {Data: []byte("   \n")},
		"prompts/foco.txt":  {Data: []byte("Você é o diagnosticador.")},
	}

	_, err := Load(fsys)
	require.ErrorIs(t, err, domain.ErrEmptyPrompt)
}

func TestLoad_MissingManifest(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agents.yaml")
}

func TestLoad_MalformedManifest(t *testing.T) {
	_, err := Load(fstest.MapFS{"agents.yaml": {Data: []byte("agents: [")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing agents.yaml")
}

func TestNewRegistry_DuplicateID(t *testing.T) {
	def := domain.AgentDefinition{ID: "a", Name: "A", SystemPrompt: "p"}
	_, err := NewRegistry(def, def)
	require.ErrorIs(t, err, domain.ErrDuplicateAgent)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r, err := NewRegistry(domain.AgentDefinition{ID: "a", Name: "A", SystemPrompt: "p"})
	require.NoError(t, err)

	for _, id := range []string{"", "b", "A", "a "} {
		_, err := r.Get(id)
		require.ErrorIs(t, err, domain.ErrAgentNotFound, "id=%q", id)
	}
}

func TestRegistry_SummariesHideSystemPrompt(t *testing.T) {
	r, err := Load(resources.FS)
	require.NoError(t, err)

	summaries := r.Summaries()
	require.Len(t, summaries, len(r.List()))
	for i, s := range summaries {
		def := r.List()[i]
		assert.Equal(t, domain.AgentSummary{ID: def.ID, Name: def.Name, Description: def.Description}, s)
	}
}
