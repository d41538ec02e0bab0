package query

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	// specials
	TokenEOF TokenType = iota
	TokenError

	// literals
	TokenField
	TokenValue

	// ops
	TokenColon // :
	TokenAt    // @
)

type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return fmt.Sprintf("ERROR(%s)", t.Value)
	case TokenField:
		return fmt.Sprintf("FIELD(%s)", t.Value)
	case TokenValue:
		return fmt.Sprintf("VALUE(%s)", t.Value)
	case TokenColon:
		return "COLON"
	case TokenAt:
		return "AT"
	default:
		return fmt.Sprintf("UNKNOWN(%s)", t.Value)
	}
}

// field aliases accepted by the lexer, mapped to their canonical name
var fieldAliases = map[string]string{
	"style":      FieldStyle,
	"styles":     FieldStyle,
	"city":       FieldCity,
	"in":         FieldCity,
	"zip":        FieldPostcode,
	"postcode":   FieldPostcode,
	"near":       FieldPostcode,
	"level":      FieldDifficulty,
	"difficulty": FieldDifficulty,
	"sort":       FieldSort,
	"page":       FieldPage,
	"limit":      FieldLimit,
	"radius":     FieldRadius,
	"within":     FieldRadius,
	"price":      FieldPrice,
	"available":  FieldAvailable,
	"open":       FieldAvailable,
	"rating":     FieldRating,
	"stars":      FieldRating,
}

const (
	FieldStyle      = "style"
	FieldCity       = "city"
	FieldPostcode   = "postcode"
	FieldDifficulty = "difficulty"
	FieldSort       = "sort"
	FieldPage       = "page"
	FieldLimit      = "limit"
	FieldRadius     = "radius"
	FieldPrice      = "price"
	FieldAvailable  = "available"
	FieldRating     = "rating"
)

type Lexer struct {
	input  string
	pos    int
	width  int
	ch     rune
	tokens []Token
}

func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		tokens: []Token{},
	}
	l.decode()
	return l
}

func Tokenize(input string) ([]Token, error) {
	lexer := NewLexer(input)
	return lexer.tokenize()
}

func (l *Lexer) tokenize() ([]Token, error) {
	for {
		token := l.nextToken()
		l.tokens = append(l.tokens, token)

		if token.Type == TokenEOF {
			break
		}
		if token.Type == TokenError {
			return l.tokens, fmt.Errorf("lexer error at position %d: %s", token.Pos, token.Value)
		}
	}
	return l.tokens, nil
}

func (l *Lexer) nextToken() Token {
	l.skipWhitespace()

	if l.ch == 0 {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	pos := l.pos

	switch l.ch {
	case ':':
		l.advance()
		return Token{Type: TokenColon, Value: ":", Pos: pos}
	case '@':
		l.advance()
		return Token{Type: TokenAt, Value: "@", Pos: pos}
	case '"', '\'':
		return l.readQuotedValue()
	}

	if isIdentRune(l.ch) {
		return l.readIdentifier()
	}

	return l.readValue()
}

func (l *Lexer) readIdentifier() Token {
	pos := l.pos
	var sb strings.Builder

	for l.ch != 0 && isIdentRune(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}

	value := sb.String()

	// a field name only counts as a field when a colon follows it, so
	// "japanese style" stays plain text
	if canonical, ok := fieldAliases[strings.ToLower(value)]; ok && l.ch == ':' {
		return Token{Type: TokenField, Value: canonical, Pos: pos}
	}

	return Token{Type: TokenValue, Value: value, Pos: pos}
}

func (l *Lexer) readValue() Token {
	pos := l.pos
	var sb strings.Builder

	for l.ch != 0 && !unicode.IsSpace(l.ch) && l.ch != ':' && l.ch != '@' && l.ch != '"' && l.ch != '\'' {
		sb.WriteRune(l.ch)
		l.advance()
	}

	return Token{Type: TokenValue, Value: sb.String(), Pos: pos}
}

func (l *Lexer) readQuotedValue() Token {
	pos := l.pos
	quote := l.ch
	l.advance()

	var sb strings.Builder

	for l.ch != 0 && l.ch != quote {
		if l.ch == '\\' && l.peek() == quote {
			l.advance()
		}
		sb.WriteRune(l.ch)
		l.advance()
	}

	if l.ch != quote {
		return Token{
			Type:  TokenError,
			Value: "unterminated quoted string",
			Pos:   pos,
		}
	}
	l.advance()

	return Token{Type: TokenValue, Value: sb.String(), Pos: pos}
}

func (l *Lexer) skipWhitespace() {
	for l.ch != 0 && unicode.IsSpace(l.ch) {
		l.advance()
	}
}

func (l *Lexer) advance() {
	l.pos += l.width
	l.decode()
}

func (l *Lexer) decode() {
	if l.pos >= len(l.input) {
		l.ch = 0
		l.width = 0
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
}

func (l *Lexer) peek() rune {
	next := l.pos + l.width
	if next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[next:])
	return r
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.' || r == ',' || r == '+' || r == '\''
}

// IsQueryLanguage reports whether the input uses field syntax rather than
// being plain free text.
func IsQueryLanguage(input string) bool {
	input = strings.TrimSpace(input)

	if strings.HasPrefix(input, "@") || strings.Contains(input, " @") {
		return true
	}

	if !strings.Contains(input, ":") {
		return false
	}

	lower := strings.ToLower(input)
	for alias := range fieldAliases {
		if strings.Contains(lower, alias+":") {
			return true
		}
	}
	return false
}
