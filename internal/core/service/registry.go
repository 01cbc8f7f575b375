package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/olusolaa/api-contract-oracle/internal/core/ports"
	"github.com/olusolaa/api-contract-oracle/internal/errors"
)

// DefaultScheme is used for locations without a scheme prefix.
const DefaultScheme = "file"

type ComponentRegistry struct {
	mu           sync.RWMutex
	suiteSources map[string]ports.SuiteSource
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		suiteSources: make(map[string]ports.SuiteSource),
	}
}

func (r *ComponentRegistry) RegisterSuiteSource(source ports.SuiteSource) error {
	if source == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil suite source")
	}
	scheme := source.Scheme()
	if scheme == "" {
		return errors.New(errors.CodeInternal, "suite source scheme cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.suiteSources[scheme]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("suite source for scheme '%s' already registered", scheme))
	}
	r.suiteSources[scheme] = source
	return nil
}

func (r *ComponentRegistry) GetSuiteSource(scheme string) (ports.SuiteSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, exists := r.suiteSources[scheme]
	if !exists {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("no suite source registered for scheme '%s'", scheme),
			"Use a local path or an s3://bucket/key location.")
	}
	return source, nil
}

// ResolveSuiteSource picks the source for a location by its scheme prefix.
func (r *ComponentRegistry) ResolveSuiteSource(location string) (ports.SuiteSource, error) {
	return r.GetSuiteSource(SchemeOf(location))
}

func SchemeOf(location string) string {
	if scheme, _, ok := strings.Cut(location, "://"); ok && scheme != "" {
		return strings.ToLower(scheme)
	}
	return DefaultScheme
}
