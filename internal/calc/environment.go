package calc

import (
	"fmt"
	"math"

	"fortio.org/log"
	"github.com/google/btree"
)

// Definition is a variable together with the expression text it was assigned.
type Definition struct {
	Name string
	Text string
}

// Environment maps variable names to the unevaluated text of their defining
// expression. Reading a variable evaluates its text again, so a variable
// defined in terms of another one follows the other's redefinitions.
type Environment struct {
	definitions *btree.BTreeG[Definition]
	// names whose definitions are being evaluated right now
	resolving map[string]bool
}

// NewEnvironment creates an environment with no variables defined
func NewEnvironment() *Environment {
	return &Environment{
		definitions: btree.NewG(8, func(a, b Definition) bool {
			return a.Name < b.Name
		}),
		resolving: make(map[string]bool),
	}
}

// DefineConstants adds the predefined symbolic values.
func (env *Environment) DefineConstants() {
	env.Define("pi", FormatValue(math.Pi))
	env.Define("e", FormatValue(math.E))
}

// Define sets the text of name, replacing any previous definition.
func (env *Environment) Define(name string, text string) {
	env.definitions.ReplaceOrInsert(Definition{name, text})
}

// Lookup returns the text name was defined with.
func (env *Environment) Lookup(name string) (string, bool) {
	def, ok := env.definitions.Get(Definition{Name: name})
	return def.Text, ok
}

// Resolve evaluates the current definition of the variable named by tok.
func (env *Environment) Resolve(tok Token) (float64, error) {
	name := tok.Lexeme
	text, ok := env.Lookup(name)
	if !ok {
		msg := fmt.Sprintf("Undefined variable '%s'.", name)
		return 0, newTokenError(UndefinedVariable, tok, msg)
	}
	if env.resolving[name] {
		msg := fmt.Sprintf("Variable '%s' is defined in terms of itself.", name)
		return 0, newTokenError(CyclicDefinition, tok, msg)
	}

	env.resolving[name] = true
	defer delete(env.resolving, name)

	log.LogVf("resolve %s = %q", name, text)
	value, err := Evaluate(env, text)
	if err != nil {
		return 0, fmt.Errorf("resolving '%s': %w", name, err)
	}
	return value, nil
}

// Assign defines the variable named by tok as text and evaluates it. When the
// evaluation fails the previous definition is put back, so the environment
// only ever holds definitions that evaluated at the time they were made.
func (env *Environment) Assign(tok Token, text string) (float64, error) {
	name := tok.Lexeme
	prev, hadPrev := env.Lookup(name)
	env.Define(name, text)

	value, err := Evaluate(env, text)
	if err != nil {
		if hadPrev {
			env.Define(name, prev)
		} else {
			env.definitions.Delete(Definition{Name: name})
		}
		return 0, fmt.Errorf("assigning '%s': %w", name, err)
	}
	return value, nil
}

// Definitions returns every definition ordered by name.
func (env *Environment) Definitions() []Definition {
	defs := make([]Definition, 0, env.definitions.Len())
	env.definitions.Ascend(func(def Definition) bool {
		defs = append(defs, def)
		return true
	})
	return defs
}

// Len returns the number of defined variables.
func (env *Environment) Len() int {
	return env.definitions.Len()
}
