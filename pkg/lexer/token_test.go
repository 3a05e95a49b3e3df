package lexer

import (
	"encoding/json"
	"testing"
)

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		tt       TokenType
		expected string
	}{
		{SELECT, "SELECT"},
		{NOT, "NOT"},
		{TYPE, "TYPE"},
		{IDENTIFIER, "IDENTIFIER"},
		{GREATER_EQUAL, "GREATER_EQUAL"},
		{NOT_EQUAL, "NOT_EQUAL"},
		{LEFT_PAREN, "LEFT_PAREN"},
		{SEMICOLON, "SEMICOLON"},
		{ERROR, "ERROR"},
		{TokenType(-1), "UNKNOWN"},
		{tokenTypeCount, "UNKNOWN"},
	}

	for _, test := range tests {
		if got := test.tt.String(); got != test.expected {
			t.Errorf("expected %s, got %s", test.expected, got)
		}
	}
}

func TestKeywordTagsMatchSpelling(t *testing.T) {
	for word, tt := range keywords {
		if tt.String() != word {
			t.Errorf("keyword %q has tag %s", word, tt)
		}
		if !tt.IsKeyword() {
			t.Errorf("keyword %q: IsKeyword false", word)
		}
	}
}

func TestParseTokenType(t *testing.T) {
	for tt := SELECT; tt < tokenTypeCount; tt++ {
		parsed, err := ParseTokenType(tt.String())
		if err != nil {
			t.Fatalf("ParseTokenType(%s): %v", tt, err)
		}
		if parsed != tt {
			t.Errorf("expected %s, got %s", tt, parsed)
		}
	}

	if _, err := ParseTokenType("KEYWORD"); err == nil {
		t.Error("expected error for unknown type name")
	}
}

func TestTokenTypeClassification(t *testing.T) {
	tests := []struct {
		tt                                    TokenType
		keyword, operator, delimiter, literal bool
	}{
		{SELECT, true, false, false, false},
		{NOT, true, false, false, false},
		{TYPE, false, false, false, false},
		{IDENTIFIER, false, false, false, false},
		{NUMBER, false, false, false, true},
		{STRING, false, false, false, true},
		{EQUAL, false, true, false, false},
		{DIVIDE, false, true, false, false},
		{LEFT_PAREN, false, false, true, false},
		{SEMICOLON, false, false, true, false},
		{ERROR, false, false, false, false},
	}

	for _, test := range tests {
		if test.tt.IsKeyword() != test.keyword {
			t.Errorf("%s: IsKeyword expected %v", test.tt, test.keyword)
		}
		if test.tt.IsOperator() != test.operator {
			t.Errorf("%s: IsOperator expected %v", test.tt, test.operator)
		}
		if test.tt.IsDelimiter() != test.delimiter {
			t.Errorf("%s: IsDelimiter expected %v", test.tt, test.delimiter)
		}
		if test.tt.IsLiteral() != test.literal {
			t.Errorf("%s: IsLiteral expected %v", test.tt, test.literal)
		}
	}
}

func TestTokenJSON(t *testing.T) {
	data, err := json.Marshal(Tokenize("SELECT 5 & x"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	expected := `[{"type":"SELECT","lexeme":"SELECT","line":1,"column":1},` +
		`{"type":"NUMBER","lexeme":"5","line":1,"column":8},` +
		`{"type":"ERROR","lexeme":"Invalid char '&' at line 1, column 10","line":1,"column":10},` +
		`{"type":"IDENTIFIER","lexeme":"x","line":1,"column":12}]`
	if string(data) != expected {
		t.Errorf("unexpected JSON:\n got %s\nwant %s", data, expected)
	}

	var decoded []Token
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded[2].Type != ERROR {
		t.Errorf("expected ERROR after decode, got %s", decoded[2].Type)
	}
}

func TestTokenTypeMarshalInvalid(t *testing.T) {
	if _, err := TokenType(99).MarshalText(); err == nil {
		t.Error("expected error marshaling out-of-range type")
	}
}
