/*
File    : pysh/builtins/testexpr_test.go
*/
package builtins

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// runTest invokes the test builtin with the given expression argv.
func runTest(args ...string) (int, string) {
	errOut := &bytes.Buffer{}
	info := InvokeInfo{
		Arguments: append([]string{"test"}, args...),
		Stdout:    &bytes.Buffer{},
		Stderr:    errOut,
	}
	return Test(info), errOut.String()
}

// represents a test case for the test builtin
// Args: the expression argv (without the leading "test")
// ExpectedStatus: the exit status the builtin must return
type TestExprCase struct {
	Args           []string
	ExpectedStatus int
}

func TestTest_Comparisons(t *testing.T) {
	tests := []TestExprCase{
		// Bare values: non-empty is true.
		{Args: []string{"abc"}, ExpectedStatus: 0},
		{Args: []string{""}, ExpectedStatus: 1},

		// String comparisons.
		{Args: []string{"abc", "=", "abc"}, ExpectedStatus: 0},
		{Args: []string{"abc", "==", "abc"}, ExpectedStatus: 0},
		{Args: []string{"abc", "=", "abd"}, ExpectedStatus: 1},
		{Args: []string{"abc", "!=", "abd"}, ExpectedStatus: 0},
		{Args: []string{"abc", "!=", "abc"}, ExpectedStatus: 1},

		// Integer comparisons.
		{Args: []string{"3", "-eq", "3"}, ExpectedStatus: 0},
		{Args: []string{"3", "-ne", "3"}, ExpectedStatus: 1},
		{Args: []string{"3", "-lt", "5"}, ExpectedStatus: 0},
		{Args: []string{"5", "-lt", "3"}, ExpectedStatus: 1},
		{Args: []string{"5", "-gt", "3"}, ExpectedStatus: 0},
		{Args: []string{"3", "-le", "3"}, ExpectedStatus: 0},
		{Args: []string{"4", "-le", "3"}, ExpectedStatus: 1},
		{Args: []string{"3", "-ge", "4"}, ExpectedStatus: 1},

		// Numeric strings compare numerically with -eq, textually with =.
		{Args: []string{"010", "-eq", "10"}, ExpectedStatus: 0},
		{Args: []string{"010", "=", "10"}, ExpectedStatus: 1},
	}

	for _, test := range tests {
		status, _ := runTest(test.Args...)
		assert.Equal(t, test.ExpectedStatus, status, "test %v", test.Args)
	}
}

func TestTest_BooleanOperators(t *testing.T) {
	tests := []TestExprCase{
		{Args: []string{"!", "abc"}, ExpectedStatus: 1},
		{Args: []string{"!", ""}, ExpectedStatus: 0},

		{Args: []string{"a", "-a", "b"}, ExpectedStatus: 0},
		{Args: []string{"a", "-a", ""}, ExpectedStatus: 1},
		{Args: []string{"", "-o", "b"}, ExpectedStatus: 0},
		{Args: []string{"", "-o", ""}, ExpectedStatus: 1},

		{Args: []string{"(", "abc", ")"}, ExpectedStatus: 0},
		{Args: []string{"(", "a", "=", "b", ")"}, ExpectedStatus: 1},

		// Comparison binds tighter than -a, -a tighter than -o.
		{Args: []string{"a", "=", "b", "-o", "c", "=", "c"}, ExpectedStatus: 0},
		{Args: []string{"a", "=", "a", "-a", "b", "=", "c"}, ExpectedStatus: 1},
		{Args: []string{"a", "=", "b", "-a", "c", "=", "c", "-o", "x"}, ExpectedStatus: 0},

		// Negation applies to the following primary only.
		{Args: []string{"!", "", "-a", "b"}, ExpectedStatus: 0},
	}

	for _, test := range tests {
		status, _ := runTest(test.Args...)
		assert.Equal(t, test.ExpectedStatus, status, "test %v", test.Args)
	}
}

func TestTest_EmptyExpressionIsFalse(t *testing.T) {
	status, _ := runTest()
	assert.Equal(t, 1, status)
}

func TestTest_IntegerParseError(t *testing.T) {
	status, stderr := runTest("3", "-eq", "foo")
	assert.Equal(t, 2, status)
	assert.Equal(t, "integer expression expected\n", stderr)
}

func TestTest_TooManyArguments(t *testing.T) {
	status, stderr := runTest("a", "b")
	assert.Equal(t, 2, status)
	assert.Equal(t, "Too many arguments\n", stderr)
}

func TestTest_TypeMismatch(t *testing.T) {
	// The right-hand side of = is a boolean sub-expression.
	status, stderr := runTest("a", "=", "(", "b", "-a", "c", ")")
	assert.Equal(t, 2, status)
	assert.Equal(t, "Type mismatch\n", stderr)
}

func TestTest_UnbalancedParen(t *testing.T) {
	status, _ := runTest("(", "abc")
	assert.Equal(t, 2, status)
}
