package lexer

import (
	"strings"
	"testing"
)

func benchmarkInput(statements int) string {
	stmt := "INSERT INTO orders (id, user_id, total, status) VALUES (1, 42, 1299.99, 'completed'); -- seed\n" +
		"SELECT name, age FROM users WHERE age >= 30 AND NOT status <> 'inactive';\n"
	return strings.Repeat(stmt, statements)
}

func BenchmarkTokenizeSmall(b *testing.B) {
	input := benchmarkInput(1)
	b.SetBytes(int64(len(input)))
	for i := 0; i < b.N; i++ {
		Tokenize(input)
	}
}

func BenchmarkTokenizeLarge(b *testing.B) {
	input := benchmarkInput(1000)
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Tokenize(input)
	}
}

func BenchmarkTokenizeCaseInsensitive(b *testing.B) {
	input := strings.ToLower(benchmarkInput(100))
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Tokenize(input, WithCaseInsensitiveKeywords())
	}
}
