package calc

import (
	"math"
	"os"
	"strings"
	"testing"

	"fortio.org/log"
	"github.com/stretchr/testify/assert"
)

func nameTok(name string) Token {
	return NewToken(NAME, name, 0, 1)
}

func TestEnvironmentDefineOverwrites(t *testing.T) {
	assert := assert.New(t)
	env := NewEnvironment()

	env.Define("x", "1")
	env.Define("x", "2 + 3")

	text, ok := env.Lookup("x")
	assert.True(ok)
	assert.Equal("2 + 3", text)
	assert.Equal(1, env.Len())

	val, err := env.Resolve(nameTok("x"))
	assert.NoError(err)
	assert.Equal(5.0, val)
}

func TestEnvironmentNamesAreCaseSensitive(t *testing.T) {
	assert := assert.New(t)
	env := NewEnvironment()
	env.Define("x", "1")

	_, ok := env.Lookup("X")
	assert.False(ok)

	_, err := env.Resolve(nameTok("X"))
	kind, _ := KindOf(err)
	assert.Equal(UndefinedVariable, kind)
}

func TestEnvironmentResolveIsLive(t *testing.T) {
	assert := assert.New(t)
	env := NewEnvironment()

	env.Define("x", "2")
	env.Define("y", "x + 1")
	val, err := env.Resolve(nameTok("y"))
	assert.NoError(err)
	assert.Equal(3.0, val)

	env.Define("x", "10")
	val, err = env.Resolve(nameTok("y"))
	assert.NoError(err)
	assert.Equal(11.0, val)
}

func TestEnvironmentResolvePropagatesErrors(t *testing.T) {
	testCases := []struct {
		defs map[string]string
		name string
		kind ErrorKind
		msg  string
	}{
		{
			map[string]string{"y": "z * 2"},
			"y",
			UndefinedVariable,
			"resolving 'y': [line 1] Error at 'z': Undefined variable 'z'.",
		},
		{
			map[string]string{"y": "1 / x", "x": "0"},
			"y",
			DivideByZero,
			"resolving 'y': [line 1] Error at '/': Division by zero.",
		},
		{
			map[string]string{"a": "b", "b": "c + 1", "c": "a"},
			"a",
			CyclicDefinition,
			"resolving 'a': resolving 'b': resolving 'c': [line 1] Error at 'a': Variable 'a' is defined in terms of itself.",
		},
		{
			map[string]string{"self": "self"},
			"self",
			CyclicDefinition,
			"resolving 'self': [line 1] Error at 'self': Variable 'self' is defined in terms of itself.",
		},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		env := NewEnvironment()
		for name, text := range tc.defs {
			env.Define(name, text)
		}

		_, err := env.Resolve(nameTok(tc.name))
		kind, ok := KindOf(err)
		assert.True(ok, tc.msg)
		assert.Equal(tc.kind, kind, tc.msg)
		assert.Equal(tc.msg, err.Error())
	}
}

func TestEnvironmentDiamondIsNotACycle(t *testing.T) {
	env := NewEnvironment()
	env.Define("base", "2")
	env.Define("left", "base * 3")
	env.Define("right", "base + 3")
	env.Define("top", "left + right + base")

	val, err := env.Resolve(nameTok("top"))
	assert.NoError(t, err)
	assert.Equal(t, 13.0, val)
}

func TestEnvironmentAssign(t *testing.T) {
	assert := assert.New(t)
	env := NewEnvironment()
	env.Define("x", "4")

	val, err := env.Assign(nameTok("y"), "x * x")
	assert.NoError(err)
	assert.Equal(16.0, val)

	text, ok := env.Lookup("y")
	assert.True(ok)
	assert.Equal("x * x", text)
}

func TestEnvironmentDefinitionsAreOrdered(t *testing.T) {
	env := NewEnvironment()
	env.Define("zeta", "1")
	env.Define("alpha", "2")
	env.Define("Mid", "3")
	env.Define("beta", "alpha")

	assert.Equal(t, []Definition{
		{"Mid", "3"},
		{"alpha", "2"},
		{"beta", "alpha"},
		{"zeta", "1"},
	}, env.Definitions())
}

func TestEnvironmentConstants(t *testing.T) {
	assert := assert.New(t)
	env := NewEnvironment()
	assert.Equal(0, env.Len())

	env.DefineConstants()
	pi, err := env.Resolve(nameTok("pi"))
	assert.NoError(err)
	assert.Equal(math.Pi, pi)

	e, err := env.Resolve(nameTok("e"))
	assert.NoError(err)
	assert.Equal(math.E, e)

	// constants are ordinary variables
	env.Define("pi", "3")
	pi, err = env.Resolve(nameTok("pi"))
	assert.NoError(err)
	assert.Equal(3.0, pi)
}

func TestEnvironmentResolveTracedAtVerboseLevel(t *testing.T) {
	var out strings.Builder
	log.SetOutput(&out)
	prev := log.SetLogLevelQuiet(log.Verbose)
	defer func() {
		log.SetLogLevelQuiet(prev)
		log.SetOutput(os.Stderr)
	}()

	env := NewEnvironment()
	env.Define("x", "4")
	val, err := env.Resolve(nameTok("x"))
	assert.NoError(t, err)
	assert.Equal(t, 4.0, val)
	assert.Contains(t, out.String(), "resolve x")
}
