package celrule

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// VarName is the name the expression uses to reference the variable value.
const VarName = "value"

// ErrNotBool is returned when an expression does not produce a bool.
var ErrNotBool = errors.New("celrule: expression must evaluate to bool")

// Compiler compiles and caches predicate programs.
type Compiler struct {
	env   *cel.Env
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewCompiler creates a Compiler with the value variable declared as a string.
func NewCompiler() (*Compiler, error) {
	env, err := cel.NewEnv(
		cel.Variable(VarName, cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	return &Compiler{
		env:   env,
		cache: make(map[string]cel.Program),
	}, nil
}

// Compile turns expression into a predicate.
// Evaluation errors at runtime (for example int("abc")) make the predicate return false.
func (c *Compiler) Compile(expression string) (func(string) bool, error) {
	program, err := c.program(expression)
	if err != nil {
		return nil, err
	}

	return func(value string) bool {
		out, _, err := program.Eval(map[string]any{VarName: value})
		if err != nil {
			return false
		}
		ok, isBool := out.Value().(bool)
		return isBool && ok
	}, nil
}

// program gets a compiled program from cache or compiles it
func (c *Compiler) program(expression string) (cel.Program, error) {
	c.mu.RLock()
	if program, ok := c.cache[expression]; ok {
		c.mu.RUnlock()
		return program, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if program, ok := c.cache[expression]; ok {
		return program, nil
	}

	ast, issues := c.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, issues.Err())
	}

	switch ast.OutputType().String() {
	case "bool", "dyn":
	default:
		return nil, fmt.Errorf("compile %q: %w (got %s)", expression, ErrNotBool, ast.OutputType())
	}

	program, err := c.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expression, err)
	}

	c.cache[expression] = program
	return program, nil
}

var (
	defaultOnce     sync.Once
	defaultCompiler *Compiler
	defaultErr      error
)

// Compile compiles expression with a shared Compiler.
func Compile(expression string) (func(string) bool, error) {
	defaultOnce.Do(func() {
		defaultCompiler, defaultErr = NewCompiler()
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultCompiler.Compile(expression)
}
