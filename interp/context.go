/*
File    : pysh/interp/context.go

Execution context: the process-local shell state that outlives individual
command invocations.
*/
package interp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sfuller/pyshlang/builtins"
)

// Context is the state the bytecode mutates: the variable store, the set
// of exported variable names, the working directory, and the builtin
// registry. One Context lives for the whole interactive session. The
// registry is populated once at startup and read-only afterwards.
type Context struct {
	Variables map[string]string
	Exported  map[string]struct{}
	Pwd       string
	Builtins  map[string]builtins.Builtin
}

// NewContext creates a Context with the utility builtins installed and
// the working directory taken from the process.
func NewContext() *Context {
	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}
	ctx := &Context{
		Variables: map[string]string{},
		Exported:  map[string]struct{}{},
		Pwd:       pwd,
		Builtins:  map[string]builtins.Builtin{},
	}
	builtins.Install(ctx.Builtins)
	ctx.installContextBuiltins()
	return ctx
}

// installContextBuiltins registers the builtins that must mutate the
// context and therefore cannot live behind the plain InvokeInfo contract:
// export and cd.
func (ctx *Context) installContextBuiltins() {
	ctx.Builtins["export"] = func(info builtins.InvokeInfo) int {
		for _, arg := range info.Arguments[1:] {
			name := arg
			if idx := strings.IndexByte(arg, '='); idx >= 0 {
				name = arg[:idx]
				ctx.Variables[name] = arg[idx+1:]
			}
			if name != "" {
				ctx.Exported[name] = struct{}{}
			}
		}
		return 0
	}

	ctx.Builtins["cd"] = func(info builtins.InvokeInfo) int {
		target := ""
		if len(info.Arguments) > 1 {
			target = info.Arguments[1]
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				fmt.Fprintf(info.Stderr, "cd: %s\n", err)
				return 1
			}
			target = home
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(ctx.Pwd, target)
		}
		stat, err := os.Stat(target)
		if err != nil || !stat.IsDir() {
			fmt.Fprintf(info.Stderr, "cd: no such directory: %s\n", target)
			return 1
		}
		ctx.Pwd = filepath.Clean(target)
		return 0
	}
}
