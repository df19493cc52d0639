package utils

import (
	"math"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseFloatOrZero converte valores numéricos vindos como string da API, retornando 0 quando vazios ou inválidos
func ParseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

// ParseIntOrZero aceita inteiros e notação decimal/científica. Negativos viram 0 e valores acima de MaxInt64 são limitados.
func ParseIntOrZero(s string) int64 {
	if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		return max(n, 0)
	}

	f := ParseFloatOrZero(s)
	if f <= 0 {
		return 0
	}

	// float64(MaxInt64) arredonda para 2^63, que já não cabe em int64
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(math.Round(f))
}

// SafeDivide retorna 0 quando o denominador é zero
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	return numerator / denominator
}
