// Package tools declares the closed set of capabilities the model may
// invoke instead of answering in free text.
package tools

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"cryptochat/internal/ui"
)

// GenerateFunc is a two-step producer: it yields a loading placeholder
// before any network call, then returns the final renderable. Committing
// the turn's history summary happens inside the producer, so the
// orchestrator must not append a second assistant message for tool turns.
type GenerateFunc func(ctx context.Context, rawArgs string, yield func(ui.Renderable)) (ui.Renderable, error)

// Tool pairs the model-facing declaration with its execution producer.
type Tool struct {
	Info     *schema.ToolInfo
	Generate GenerateFunc
}

// Registry is the fixed tool set for a session.
type Registry struct {
	tools  []*Tool
	byName map[string]*Tool
}

func NewRegistry(tools ...*Tool) *Registry {
	r := &Registry{byName: make(map[string]*Tool, len(tools))}
	for _, t := range tools {
		r.tools = append(r.tools, t)
		r.byName[t.Info.Name] = t
	}
	return r
}

// Infos returns the declarations to bind to the chat model.
func (r *Registry) Infos() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(r.tools))
	for _, t := range r.tools {
		infos = append(infos, t.Info)
	}
	return infos
}

func (r *Registry) Lookup(name string) (*Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}
