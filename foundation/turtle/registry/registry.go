// File: registry.go
// Title: Turtle Function Registry
// Description: Holds the set of function definitions an interpreter state
//              is built from. Built-ins are registered at construction;
//              extra definitions can be added as long as their aliases do
//              not collide. Lookup is case-insensitive and unknown names
//              produce the positioned unknown-function error.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial registry for turtle built-ins

package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	mdwerror "github.com/msto63/mlogo/foundation/core/error"
	"github.com/msto63/mlogo/foundation/core/log"
	"github.com/msto63/mlogo/foundation/turtle/builtins"
	"github.com/msto63/mlogo/foundation/turtle/language"
	mdwstringx "github.com/msto63/mlogo/foundation/utils/stringx"
)

// Options configures registry behavior
type Options struct {
	Logger *log.Logger

	// Functions are registered after the built-ins
	Functions language.FunctionTable

	// DisableBuiltins starts from an empty table
	DisableBuiltins bool
}

// Description is the printable summary of one function
type Description struct {
	Name        string   `json:"name" yaml:"name"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Parameters  []string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Description string   `json:"description" yaml:"description"`
}

// Registry is a concurrency-safe function table
type Registry struct {
	functions language.FunctionTable
	aliases   map[string]*language.FunctionDefinition
	logger    *log.Logger
	mutex     sync.RWMutex
}

// New creates a registry with the built-ins and any extra functions
func New(opts Options) (*Registry, error) {
	if opts.Logger == nil {
		opts.Logger = log.GetDefault()
	}

	r := &Registry{
		aliases: make(map[string]*language.FunctionDefinition),
		logger:  opts.Logger.WithField("component", "turtle-registry"),
	}

	var initial language.FunctionTable
	if !opts.DisableBuiltins {
		initial = builtins.All()
	}
	initial = append(initial, opts.Functions...)

	for _, def := range initial {
		if err := r.Register(def); err != nil {
			return nil, fmt.Errorf("failed to register function: %w", err)
		}
	}

	r.logger.Debug("Turtle registry initialized", log.Fields{
		"functionCount": len(r.functions),
	})

	return r, nil
}

// Default returns a registry with only the built-ins
func Default() *Registry {
	r, err := New(Options{Logger: log.Discard()})
	if err != nil {
		// built-in aliases are unique; see TestAll_UniqueAliases
		panic(err)
	}
	return r
}

// Register adds a definition. Names must be non-blank and unique across
// every registered alias, ignoring case.
func (r *Registry) Register(def *language.FunctionDefinition) error {
	if def == nil {
		return mdwerror.New("function definition cannot be nil").
			WithCode(mdwerror.CodeInvalidInput)
	}
	if len(def.Names) == 0 {
		return mdwerror.New("function definition needs at least one name").
			WithCode(mdwerror.CodeInvalidInput)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, name := range def.Names {
		if mdwstringx.IsBlank(name) {
			return mdwerror.New("function name cannot be blank").
				WithCode(mdwerror.CodeInvalidInput)
		}
		if _, exists := r.aliases[strings.ToLower(name)]; exists {
			return mdwerror.Newf("function %s already registered", name).
				WithCode(mdwerror.CodeInvalidInput).
				WithDetail(mdwerror.DetailToken, name)
		}
	}

	for _, name := range def.Names {
		r.aliases[strings.ToLower(name)] = def
	}
	r.functions = append(slices.Clip(r.functions), def)

	r.logger.Debug("Turtle function registered", log.Fields{
		"name":    def.Name(),
		"aliases": len(def.Names) - 1,
	})

	return nil
}

// Lookup returns the definition for name ignoring case. It fails like
// FunctionTable.Resolve so tools outside the parser report misses the same
// way a script does.
func (r *Registry) Lookup(name string) (*language.FunctionDefinition, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	def, exists := r.aliases[strings.ToLower(name)]
	if !exists {
		return nil, language.UnknownFunction(name)
	}
	return def, nil
}

// Functions returns a snapshot of the registered table in registration order
func (r *Registry) Functions() language.FunctionTable {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return slices.Clone(r.functions)
}

// NewState returns a fresh interpreter state over the registered functions
func (r *Registry) NewState() language.State {
	return language.NewState(r.Functions())
}

// Names returns every registered alias, sorted
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.aliases))
	for _, def := range r.functions {
		names = append(names, def.Names...)
	}
	slices.Sort(names)
	return names
}

// Suggest returns the closest registered alias to an unknown name
func (r *Registry) Suggest(name string) (string, bool) {
	return mdwstringx.Closest(name, r.Names(), 2)
}

// Describe returns printable summaries in registration order
func (r *Registry) Describe() []Description {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	descriptions := make([]Description, 0, len(r.functions))
	for _, def := range r.functions {
		descriptions = append(descriptions, describe(def))
	}
	return descriptions
}

// DescribeName describes the function registered under name or alias
func (r *Registry) DescribeName(name string) (Description, error) {
	def, err := r.Lookup(name)
	if err != nil {
		return Description{}, err
	}
	return describe(def), nil
}

func describe(def *language.FunctionDefinition) Description {
	return Description{
		Name:        def.Name(),
		Aliases:     slices.Clone(def.Names[1:]),
		Parameters:  slices.Clone(def.Parameters),
		Description: def.Description,
	}
}
