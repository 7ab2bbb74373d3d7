/*
File    : pysh/builtins/builtins_test.go
*/
package builtins

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// invokeWith builds an InvokeInfo with captured output streams.
func invokeWith(args []string, pwd string) (InvokeInfo, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return InvokeInfo{
		Arguments: args,
		Pwd:       pwd,
		Stdout:    out,
		Stderr:    errOut,
	}, out, errOut
}

func TestEcho(t *testing.T) {
	info, out, _ := invokeWith([]string{"echo", "hello", "world"}, ".")
	assert.Equal(t, 0, Echo(info))
	assert.Equal(t, "hello world\n", out.String())

	info, out, _ = invokeWith([]string{"echo"}, ".")
	assert.Equal(t, 0, Echo(info))
	assert.Equal(t, "\n", out.String())
}

func TestTrueFalse(t *testing.T) {
	info, _, _ := invokeWith([]string{"true"}, ".")
	assert.Equal(t, 0, True(info))

	info, _, _ = invokeWith([]string{"false"}, ".")
	assert.Equal(t, 1, False(info))
}

func TestLs(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))

	info, out, _ := invokeWith([]string{"ls"}, dir)
	assert.Equal(t, 0, Ls(info))
	assert.Equal(t, "a.txt\nb.txt\n", out.String())
}

func TestLs_MissingDirectory(t *testing.T) {
	info, _, errOut := invokeWith([]string{"ls"}, "/pysh-no-such-dir-xyzzy")
	assert.Equal(t, 1, Ls(info))
	assert.Contains(t, errOut.String(), "ls: ")
}

func TestInstall(t *testing.T) {
	registry := map[string]Builtin{}
	Install(registry)
	for _, name := range []string{"ls", "echo", "true", "false", "exit", "test"} {
		assert.Contains(t, registry, name)
	}
}
