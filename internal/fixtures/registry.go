package fixtures

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownFixture   = errors.New("unknown fixture")
	ErrDuplicateFixture = errors.New("fixture already registered")
	ErrInvalidFixture   = errors.New("invalid fixture")
	ErrFixtureType      = errors.New("fixture type mismatch")
)

// Stable fixture names.
const (
	NameTestConfig       = "test_config"
	NameMockSessionID    = "mock_session_id"
	NameSampleQuestionKo = "sample_question_ko"
	NameSampleQuestionEn = "sample_question_en"
)

// Producer builds a fixture value. It is called on every resolve.
type Producer func() any

// Registry maps fixture names to producers. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	producers map[string]Producer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{producers: make(map[string]Producer)}
}

// Default returns a new registry holding the standard fixtures.
func Default() *Registry {
	r := NewRegistry()
	r.mustRegister(NameTestConfig, func() any { return TestConfig() })
	r.mustRegister(NameMockSessionID, func() any { return MockSessionID() })
	r.mustRegister(NameSampleQuestionKo, func() any { return SampleQuestionKo() })
	r.mustRegister(NameSampleQuestionEn, func() any { return SampleQuestionEn() })
	return r
}

// Register adds a producer under name.
func (r *Registry) Register(name string, p Producer) error {
	if name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidFixture)
	}
	if p == nil {
		return fmt.Errorf("%w: %s has nil producer", ErrInvalidFixture, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.producers[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFixture, name)
	}
	r.producers[name] = p
	return nil
}

func (r *Registry) mustRegister(name string, p Producer) {
	if err := r.Register(name, p); err != nil {
		panic(err)
	}
}

// Resolve runs the producer registered under name.
func (r *Registry) Resolve(name string) (any, error) {
	r.mu.RLock()
	p, ok := r.producers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFixture, name)
	}
	return p(), nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.producers))
	for name := range r.producers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// ResolveAs resolves name and asserts the value to T.
func ResolveAs[T any](r *Registry, name string) (T, error) {
	var zero T
	v, err := r.Resolve(name)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T", ErrFixtureType, name, v)
	}
	return typed, nil
}
