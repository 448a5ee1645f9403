package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/approx/internal/ivp"
	"github.com/san-kum/approx/internal/linalg"
	"github.com/san-kum/approx/internal/ode"
)

type Registry struct {
	problems map[string]func() ivp.Definition
	methods  map[string]func() ode.Stepper
	solvers  map[string]func() linalg.Solver
}

func NewRegistry() *Registry {
	r := &Registry{
		problems: make(map[string]func() ivp.Definition),
		methods:  make(map[string]func() ode.Stepper),
		solvers:  make(map[string]func() linalg.Solver),
	}

	for _, name := range ivp.Names() {
		def, _ := ivp.Get(name)
		r.RegisterProblem(def)
	}

	for _, name := range ode.Methods() {
		if fn, err := ode.Factory(name); err == nil {
			r.methods[name] = fn
		}
	}

	for _, name := range linalg.Solvers() {
		name := name
		if _, err := linalg.Lookup(name); err == nil {
			r.solvers[name] = func() linalg.Solver { s, _ := linalg.Lookup(name); return s }
		}
	}

	return r
}

// RegisterProblem adds or replaces a problem definition.
func (r *Registry) RegisterProblem(def ivp.Definition) {
	r.problems[def.Name] = func() ivp.Definition { return def }
}

func (r *Registry) GetProblem(name string) (ivp.Definition, error) {
	fn, ok := r.problems[name]
	if !ok {
		return ivp.Definition{}, fmt.Errorf("unknown problem: %s (available: %v)", name, r.ListProblems())
	}
	return fn(), nil
}

func (r *Registry) GetMethod(name string) (ode.Stepper, error) {
	fn, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s (available: %v)", name, r.ListMethods())
	}
	return fn(), nil
}

func (r *Registry) GetSolver(name string) (linalg.Solver, error) {
	fn, ok := r.solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver: %s (available: %v)", name, r.ListSolvers())
	}
	return fn(), nil
}

func (r *Registry) ListProblems() []string { return sortedKeys(r.problems) }
func (r *Registry) ListMethods() []string  { return sortedKeys(r.methods) }
func (r *Registry) ListSolvers() []string  { return sortedKeys(r.solvers) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
