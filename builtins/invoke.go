/*
File    : pysh/builtins/invoke.go

The invocation contract between the interpreter and builtin commands.
*/
package builtins

import "io"

// EnvVar is one environment variable forwarded to an invocation.
type EnvVar struct {
	Name  string
	Value string
}

// InvokeInfo carries everything a builtin may consult: the expanded argv
// (Arguments[0] is the command name), the exported environment, the
// standard input text, the working directory, and the writers the builtin
// must use for its output so the shell can capture or redirect it.
type InvokeInfo struct {
	Arguments []string
	Env       []EnvVar
	Stdin     string
	Pwd       string
	Stdout    io.Writer
	Stderr    io.Writer
}

// Builtin is a command implemented in-process. It returns the command's
// exit status.
type Builtin func(info InvokeInfo) int
