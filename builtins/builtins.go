/*
File    : pysh/builtins/builtins.go

The utility builtins: ls, echo, true, false, exit, test. Builtins that
must mutate the execution context (export, cd) live with the interpreter.
*/
package builtins

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Ls lists the entries of the working directory, one per line.
func Ls(info InvokeInfo) int {
	entries, err := os.ReadDir(info.Pwd)
	if err != nil {
		fmt.Fprintf(info.Stderr, "ls: %s\n", err)
		return 1
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	fmt.Fprintln(info.Stdout, strings.Join(names, "\n"))
	return 0
}

// Echo prints its arguments joined by single spaces.
func Echo(info InvokeInfo) int {
	fmt.Fprintln(info.Stdout, strings.Join(info.Arguments[1:], " "))
	return 0
}

// True succeeds.
func True(info InvokeInfo) int {
	return 0
}

// False fails.
func False(info InvokeInfo) int {
	return 1
}

// Exit terminates the shell process. The first argument is the exit
// status; absent or unparsable arguments exit zero.
func Exit(info InvokeInfo) int {
	rv := 0
	if len(info.Arguments) > 1 {
		if parsed, err := strconv.Atoi(info.Arguments[1]); err == nil {
			rv = parsed
		}
	}
	os.Exit(rv)
	return 1
}

// Install registers the utility builtins into the given registry.
func Install(registry map[string]Builtin) {
	registry["ls"] = Ls
	registry["echo"] = Echo
	registry["true"] = True
	registry["false"] = False
	registry["exit"] = Exit
	registry["test"] = Test
}
