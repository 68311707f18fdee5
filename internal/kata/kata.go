// Package kata holds the small practice exercises that ship with the CRUD
// app: palindromes, the star triangle, a calculator and a few collections.
package kata

import (
	"errors"
	"math/rand/v2"
	"strings"
	"unicode"
)

var (
	ErrInvalidMax       = errors.New("el máximo debe ser mayor que 1")
	ErrDivisionByZero   = errors.New("no se puede dividir entre cero")
	ErrUnknownOperation = errors.New("operación no válida")
)

// IsPalindrome ignores case and whitespace.
func IsPalindrome(s string) bool {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
	return palindrome([]rune(clean))
}

func palindrome(r []rune) bool {
	if len(r) < 2 {
		return true
	}
	if r[0] != r[len(r)-1] {
		return false
	}
	return palindrome(r[1 : len(r)-1])
}

// Stars returns the triangle from max stars down to one.
func Stars(max int) []string {
	if max <= 0 {
		return nil
	}
	lines := make([]string, 0, max)
	for i := max; i > 0; i-- {
		lines = append(lines, strings.Repeat("*", i))
	}
	return lines
}

// RandomUpTo returns a value in 1..max.
func RandomUpTo(max int) (int, error) {
	if max <= 1 {
		return 0, ErrInvalidMax
	}
	return rand.IntN(max) + 1, nil
}

type Operation string

const (
	OpAdd      Operation = "sumar"
	OpSubtract Operation = "restar"
	OpMultiply Operation = "multiplicar"
	OpDivide   Operation = "dividir"
)

func Calculate(op Operation, a, b float64) (float64, error) {
	switch Operation(strings.ToLower(strings.TrimSpace(string(op)))) {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	}
	return 0, ErrUnknownOperation
}

// NameLengths maps every name to its length in characters.
func NameLengths(names []string) []int {
	lengths := make([]int, len(names))
	for i, n := range names {
		lengths[i] = len([]rune(n))
	}
	return lengths
}

func SumLengths(names []string) int {
	total := 0
	for _, l := range NameLengths(names) {
		total += l
	}
	return total
}

// Counter is the click counter. The zero value starts at 0.
type Counter struct {
	value int
}

func (c *Counter) Increment() int {
	c.value++
	return c.value
}

func (c *Counter) Reset() {
	c.value = 0
}

func (c *Counter) Value() int {
	return c.value
}
