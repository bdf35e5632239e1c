package dialogue

import (
	"context"
	"regexp"
	"sync"

	"github.com/d5/tengo/v2"

	"github.com/milk9111/anewworld/logger"
)

var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_.-]+)\}`)

// Context is the dialogue blackboard: string variables used for text
// substitution and boolean flags used by conditions and spawn rules.
type Context struct {
	mu    sync.RWMutex
	vars  map[string]string
	flags map[string]bool
}

func NewContext() *Context {
	return &Context{
		vars:  make(map[string]string),
		flags: make(map[string]bool),
	}
}

func (c *Context) SetVar(name, value string) {
	c.mu.Lock()
	c.vars[name] = value
	c.mu.Unlock()
}

func (c *Context) Var(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vars[name]
	return v, ok
}

func (c *Context) SetFlag(name string, value bool) {
	c.mu.Lock()
	c.flags[name] = value
	c.mu.Unlock()
}

// Flag returns the flag value; missing flags are false.
func (c *Context) Flag(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.flags[name]
}

// Substitute replaces {name} tokens with variables. Unknown tokens are left
// as written.
func (c *Context) Substitute(text string) string {
	if text == "" {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return placeholder.ReplaceAllStringFunc(text, func(tok string) string {
		if v, ok := c.vars[tok[1:len(tok)-1]]; ok {
			return v
		}
		return tok
	})
}

// CheckConditions reports whether every condition holds. An empty list
// holds.
func (c *Context) CheckConditions(conds []Condition) bool {
	for _, cond := range conds {
		if cond.Flag != "" && c.Flag(cond.Flag) != cond.Equals {
			return false
		}
		if cond.Expr != "" && !c.Eval(cond.Expr) {
			return false
		}
	}
	return true
}

func (c *Context) ApplyActions(actions []Action) {
	for _, a := range actions {
		if a.SetFlag != "" {
			c.SetFlag(a.SetFlag, a.Value)
		}
		if a.SetVar != "" {
			c.SetVar(a.SetVar, a.To)
		}
	}
}

// Eval evaluates a tengo expression with the maps `flags` and `vars` in
// scope, e.g. `flags.met_elder && vars.questStage == "2"`. Anything other
// than a true boolean result, including an evaluation error, is false.
func (c *Context) Eval(expr string) bool {
	c.mu.RLock()
	flags := make(map[string]any, len(c.flags))
	for k, v := range c.flags {
		flags[k] = v
	}
	vars := make(map[string]any, len(c.vars))
	for k, v := range c.vars {
		vars[k] = v
	}
	c.mu.RUnlock()

	res, err := tengo.Eval(context.Background(), expr, map[string]any{
		"flags": flags,
		"vars":  vars,
	})
	if err != nil {
		logger.Log.WithError(err).WithField("expr", expr).Warn("dialogue: condition expression failed")
		return false
	}
	ok, _ := res.(bool)
	return ok
}
