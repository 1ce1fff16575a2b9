package agents

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/dskvich/impulsyia-backend/pkg/domain"
)

const (
	manifestFile = "agents.yaml"
	promptsDir   = "prompts"
)

type manifest struct {
	Agents []manifestEntry `yaml:"agents"`
}

type manifestEntry struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Prompt       string `yaml:"prompt"`
	DefaultModel string `yaml:"default_model"`
}

// Registry is the fixed agent catalog. It is never mutated after construction.
type Registry struct {
	order []string
	byID  map[string]domain.AgentDefinition
}

// NewRegistry builds a registry from in-memory definitions, keeping their order.
func NewRegistry(defs ...domain.AgentDefinition) (*Registry, error) {
	r := &Registry{
		order: make([]string, 0, len(defs)),
		byID:  make(map[string]domain.AgentDefinition, len(defs)),
	}

	for _, def := range defs {
		if _, ok := r.byID[def.ID]; ok {
			return nil, fmt.Errorf("agent '%s': %w", def.ID, domain.ErrDuplicateAgent)
		}
		if strings.TrimSpace(def.SystemPrompt) == "" {
			return nil, fmt.Errorf("agent '%s': %w", def.ID, domain.ErrEmptyPrompt)
		}
		r.order = append(r.order, def.ID)
		r.byID[def.ID] = def
	}

	return r, nil
}

// Load reads the manifest and every referenced prompt from fsys.
// Any missing or empty prompt fails the whole catalog.
func Load(fsys fs.FS) (*Registry, error) {
	raw, err := fs.ReadFile(fsys, manifestFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", manifestFile, err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifestFile, err)
	}

	defs := make([]domain.AgentDefinition, 0, len(m.Agents))
	for _, entry := range m.Agents {
		prompt, err := loadPrompt(fsys, entry.Prompt)
		if err != nil {
			return nil, fmt.Errorf("loading agent '%s': %w", entry.ID, err)
		}

		defs = append(defs, domain.AgentDefinition{
			ID:           entry.ID,
			Name:         entry.Name,
			Description:  entry.Description,
			SystemPrompt: prompt,
			DefaultModel: entry.DefaultModel,
		})
	}

	r, err := NewRegistry(defs...)
	if err != nil {
		return nil, err
	}

	slog.Info("agent catalog loaded", "agents", len(r.order))
	return r, nil
}

func loadPrompt(fsys fs.FS, filename string) (string, error) {
	p := path.Join(promptsDir, filename)
	raw, err := fs.ReadFile(fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("prompt file not found: %s: %w", p, domain.ErrPromptResourceMissing)
		}
		return "", fmt.Errorf("reading prompt %s: %w", p, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (r *Registry) Get(id string) (domain.AgentDefinition, error) {
	def, ok := r.byID[id]
	if !ok {
		return domain.AgentDefinition{}, fmt.Errorf("agent '%s': %w", id, domain.ErrAgentNotFound)
	}
	return def, nil
}

// List returns the full catalog in manifest order.
func (r *Registry) List() []domain.AgentDefinition {
	return lo.Map(r.order, func(id string, _ int) domain.AgentDefinition {
		return r.byID[id]
	})
}

func (r *Registry) Summaries() []domain.AgentSummary {
	return lo.Map(r.List(), func(def domain.AgentDefinition, _ int) domain.AgentSummary {
		return def.Summary()
	})
}
