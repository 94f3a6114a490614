package provider

import (
	"fmt"
	"sort"

	"NewsSummary/internal/ports"
)

// Registry keeps a mapping from model names to summarization providers.
type Registry struct {
	providers map[string]ports.SummarizationProvider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]ports.SummarizationProvider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(p ports.SummarizationProvider) {
	if r.providers == nil {
		r.providers = map[string]ports.SummarizationProvider{}
	}
	r.providers[p.Name()] = p
}

// Resolve returns a provider by model name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.SummarizationProvider, error) {
	if p, ok := r.providers[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("model %s is not registered", name)
}

// Names lists the registered model names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
