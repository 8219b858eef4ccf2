package eval

import "github.com/mtnygard/eq/value"

// Env is a chain of lexical bindings introduced by Lambda, AnonLambda,
// and let. Lookups walk outward to the defining scope, matching
// spec.md §3.3's "lambda bindings shadow outer bindings of the same
// name; the built-in registry is always the outermost scope."
type Env struct {
	parent *Env
	names  []string
	vals   []value.Value
}

// NewEnv returns the empty root environment.
func NewEnv() *Env {
	return nil
}

// Extend returns a child of e binding names to vals positionally.
func (e *Env) Extend(names []string, vals []value.Value) *Env {
	return &Env{parent: e, names: names, vals: vals}
}

// Lookup resolves name against the lambda-binding chain. The built-in
// registry is consulted separately by the caller when ok is false.
func (e *Env) Lookup(name string) (value.Value, bool) {
	for s := e; s != nil; s = s.parent {
		for i, n := range s.names {
			if n == name {
				return s.vals[i], true
			}
		}
	}
	return value.Nil, false
}
