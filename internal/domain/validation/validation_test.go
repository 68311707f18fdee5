package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheck_CollectsFirstFailurePerField(t *testing.T) {
	err := Check(
		Field{Value: "", Rules: []Rule{Required("a"), {Tag: "len=3", Message: "a len"}}},
		Field{Value: "toolong", Rules: []Rule{Required("b"), {Tag: "max=3", Message: "b max"}}},
		Field{Value: "ok", Rules: []Rule{Required("c")}},
	)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []string{"El campo 'a' es obligatorio", "b max"}, verr.Messages)
}

func TestCheck_AllValid(t *testing.T) {
	err := Check(Field{Value: "12.5", Rules: []Rule{Required("p"), {Tag: "decimalnum", Message: "n"}, {Tag: "positive", Message: "pos"}}})
	require.NoError(t, err)
}

func TestCheck_CustomTags(t *testing.T) {
	tests := []struct {
		name  string
		value string
		tag   string
		ok    bool
	}{
		{"positive float", "0.01", "positive", true},
		{"zero is not positive", "0", "positive", false},
		{"negative", "-3", "positive", false},
		{"not a number", "abc", "positive", false},
		{"decimal", "12.5", "decimalnum", true},
		{"leading dot", ".5", "decimalnum", true},
		{"trailing dot", "5.", "decimalnum", true},
		{"exponent", "1E-1", "decimalnum", true},
		{"hex float", "0x10", "decimalnum", false},
		{"underscore", "1_000", "decimalnum", false},
		{"infinity", "inf", "decimalnum", false},
		{"overflow", "1e999", "decimalnum", false},
		{"words", "doce", "decimalnum", false},
		{"in range", "18", "intbetween=1 120", true},
		{"upper bound", "120", "intbetween=1 120", true},
		{"below range", "0", "intbetween=1 120", false},
		{"above range", "121", "intbetween=1 120", false},
		{"not an int", "18.5", "intbetween=1 120", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(Field{Value: tt.value, Rules: []Rule{{Tag: tt.tag, Message: "fail"}}})
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
