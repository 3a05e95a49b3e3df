package lexer

import "fmt"

type TokenType int

const (
	SELECT TokenType = iota
	FROM
	WHERE
	INSERT
	INTO
	VALUES
	UPDATE
	SET
	DELETE
	CREATE
	TABLE
	AND
	OR
	NOT

	TYPE
	IDENTIFIER
	NUMBER
	STRING

	EQUAL
	GREATER_THAN
	GREATER_EQUAL
	LESS_THAN
	LESS_EQUAL
	NOT_EQUAL
	PLUS
	MINUS
	MULTIPLY
	DIVIDE

	LEFT_PAREN
	RIGHT_PAREN
	COMMA
	SEMICOLON

	ERROR

	tokenTypeCount
)

func (t TokenType) String() string {
	switch t {
	case SELECT:
		return "SELECT"
	case FROM:
		return "FROM"
	case WHERE:
		return "WHERE"
	case INSERT:
		return "INSERT"
	case INTO:
		return "INTO"
	case VALUES:
		return "VALUES"
	case UPDATE:
		return "UPDATE"
	case SET:
		return "SET"
	case DELETE:
		return "DELETE"
	case CREATE:
		return "CREATE"
	case TABLE:
		return "TABLE"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case NOT:
		return "NOT"
	case TYPE:
		return "TYPE"
	case IDENTIFIER:
		return "IDENTIFIER"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case EQUAL:
		return "EQUAL"
	case GREATER_THAN:
		return "GREATER_THAN"
	case GREATER_EQUAL:
		return "GREATER_EQUAL"
	case LESS_THAN:
		return "LESS_THAN"
	case LESS_EQUAL:
		return "LESS_EQUAL"
	case NOT_EQUAL:
		return "NOT_EQUAL"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case LEFT_PAREN:
		return "LEFT_PAREN"
	case RIGHT_PAREN:
		return "RIGHT_PAREN"
	case COMMA:
		return "COMMA"
	case SEMICOLON:
		return "SEMICOLON"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// typesByName is the reverse of String, built once from the enum range.
var typesByName = func() map[string]TokenType {
	m := make(map[string]TokenType, int(tokenTypeCount))
	for t := SELECT; t < tokenTypeCount; t++ {
		m[t.String()] = t
	}
	return m
}()

// ParseTokenType returns the TokenType whose String form is name.
func ParseTokenType(name string) (TokenType, error) {
	if t, ok := typesByName[name]; ok {
		return t, nil
	}
	return ERROR, fmt.Errorf("unknown token type %q", name)
}

// MarshalText renders the type by name so JSON output carries "SELECT"
// rather than the numeric value.
func (t TokenType) MarshalText() ([]byte, error) {
	if t < SELECT || t >= tokenTypeCount {
		return nil, fmt.Errorf("invalid token type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *TokenType) UnmarshalText(text []byte) error {
	parsed, err := ParseTokenType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TokenType) IsKeyword() bool {
	return t >= SELECT && t <= NOT
}

func (t TokenType) IsOperator() bool {
	return t >= EQUAL && t <= DIVIDE
}

func (t TokenType) IsDelimiter() bool {
	return t >= LEFT_PAREN && t <= SEMICOLON
}

func (t TokenType) IsLiteral() bool {
	return t == NUMBER || t == STRING
}

// Token is one classified unit of lexical output. Line and Column are
// 1-based and point at the first character; Column counts characters, not
// bytes. Offset is the byte offset of that character and is not serialized.
type Token struct {
	Type   TokenType `json:"type"`
	Lexeme string    `json:"lexeme"`
	Line   int       `json:"line"`
	Column int       `json:"column"`
	Offset int       `json:"-"`
}

func (t Token) String() string {
	return fmt.Sprintf("Token: %s, Lexeme: %s, (line %d, col %d)", t.Type, t.Lexeme, t.Line, t.Column)
}
