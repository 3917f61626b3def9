package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calcResult(t *testing.T, expression string) string {
	t.Helper()
	tool := &CalculatorTool{}
	result, err := tool.Execute(context.Background(), map[string]string{"expression": expression})
	require.NoError(t, err)
	return result
}

func TestCalculatorBasicArithmetic(t *testing.T) {
	tests := []struct {
		expression string
		want       string
	}{
		{"2+2", "🔢 2+2 = 4"},
		{"2^3", "🔢 2^3 = 8"},
		{"2^3^2", "🔢 2^3^2 = 512"}, // right-associative
		{"10 / 4", "🔢 10 / 4 = 2.5"},
		{"(1 + 2) * 3", "🔢 (1 + 2) * 3 = 9"},
		{"-5 + 3", "🔢 -5 + 3 = -2"},
		{"2 * -3", "🔢 2 * -3 = -6"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, calcResult(t, tt.expression), tt.expression)
	}
}

func TestCalculatorQueryFallback(t *testing.T) {
	tool := &CalculatorTool{}
	result, err := tool.Execute(context.Background(), map[string]string{"query": "6*7"})

	require.NoError(t, err)
	assert.Equal(t, "🔢 6*7 = 42", result)
}

func TestCalculatorRejectsDisallowedCharacters(t *testing.T) {
	tool := &CalculatorTool{}

	for _, expression := range []string{
		"__import__('os')",
		"sqrt(2)", // letters are outside the character gate
		"2+2; rm -rf /",
		"1,000",
	} {
		result, err := tool.Execute(context.Background(), map[string]string{"expression": expression})
		require.NoError(t, err, expression)
		assert.Equal(t, "❌ Disallowed characters in expression", result, expression)
	}
}

func TestCalculatorDivisionByZero(t *testing.T) {
	tool := &CalculatorTool{}
	_, err := tool.Execute(context.Background(), map[string]string{"expression": "1/0"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestCalculatorMalformedExpression(t *testing.T) {
	tool := &CalculatorTool{}

	for _, expression := range []string{"2+", "(1+2", "2 2", "..5"} {
		_, err := tool.Execute(context.Background(), map[string]string{"expression": expression})
		assert.Error(t, err, expression)
	}
}

func TestCalculatorRequiresExpression(t *testing.T) {
	tool := &CalculatorTool{}
	_, err := tool.Execute(context.Background(), map[string]string{})

	assert.Error(t, err)
}

func TestEvalExpressionFunctionsAndConstants(t *testing.T) {
	// The evaluator resolves functions and constants even though the
	// character gate in Execute never lets letters through.
	v, err := evalExpression("sqrt(16) + abs(-2)")
	require.NoError(t, err)
	assert.InDelta(t, 6.0, v, 1e-9)

	v, err = evalExpression("pow(2, 10)")
	require.NoError(t, err)
	assert.InDelta(t, 1024.0, v, 1e-9)

	v, err = evalExpression("pi")
	require.NoError(t, err)
	assert.InDelta(t, 3.14159265, v, 1e-6)

	_, err = evalExpression("nope(1)")
	assert.Error(t, err)
}
