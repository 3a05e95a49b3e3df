package lexer

import "testing"

func TestSummarize(t *testing.T) {
	tests := []struct {
		input  string
		total  int
		errors int
		halted bool
	}{
		{"", 0, 0, false},
		{"SELECT a FROM t;", 5, 0, false},
		{"5 & 3", 3, 1, false},
		{"x # comment", 2, 1, false},
		{"a 'open", 2, 1, true},
	}

	for _, test := range tests {
		s := Summarize(Tokenize(test.input))
		if s.Total != test.total {
			t.Errorf("Test %q: expected total %d, got %d", test.input, test.total, s.Total)
		}
		if s.Errors != test.errors {
			t.Errorf("Test %q: expected %d errors, got %d", test.input, test.errors, s.Errors)
		}
		if s.Halted != test.halted {
			t.Errorf("Test %q: expected halted=%v", test.input, test.halted)
		}
	}
}

func TestSummarizeByType(t *testing.T) {
	s := Summarize(Tokenize("SELECT a, b FROM t WHERE a = 1 AND b = 2;"))
	expected := map[TokenType]int{
		SELECT:     1,
		IDENTIFIER: 5,
		COMMA:      1,
		FROM:       1,
		WHERE:      1,
		EQUAL:      2,
		NUMBER:     2,
		AND:        1,
		SEMICOLON:  1,
	}
	for tt, n := range expected {
		if s.ByType[tt] != n {
			t.Errorf("%s: expected %d, got %d", tt, n, s.ByType[tt])
		}
	}
}

func TestErrorPredicates(t *testing.T) {
	comment := Tokenize("# open")[0]
	if !IsUnclosedComment(comment) || IsUnclosedString(comment) {
		t.Errorf("misclassified %v", comment)
	}
	str := Tokenize("'open")[0]
	if !IsUnclosedString(str) || IsUnclosedComment(str) {
		t.Errorf("misclassified %v", str)
	}
}

func TestKeywordAndTypeLists(t *testing.T) {
	kw := Keywords()
	if len(kw) != 14 || kw[0] != "SELECT" || kw[13] != "NOT" {
		t.Errorf("unexpected keywords %v", kw)
	}
	types := TypeNames()
	if len(types) != 3 || types[0] != "FLOAT" || types[1] != "INT" || types[2] != "TEXT" {
		t.Errorf("unexpected type names %v", types)
	}
}
