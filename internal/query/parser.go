package query

import (
	"fmt"
	"strings"
)

type QueryFilter struct {
	Field string
	Value string
	Pos   int
}

func (qf QueryFilter) String() string {
	if strings.ContainsAny(qf.Value, " \t") {
		return fmt.Sprintf("%s:%q", qf.Field, qf.Value)
	}
	return fmt.Sprintf("%s:%s", qf.Field, qf.Value)
}

type ParsedQuery struct {
	Terms   []string
	Filters []QueryFilter
	Errors  []ParseError
}

type ParseError struct {
	Message string
	Pos     int
}

func (e ParseError) String() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Message)
}

type Parser struct {
	tokens []Token
	pos    int
	errors []ParseError
}

func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
		errors: []ParseError{},
	}
}

func ParseQuery(input string) (*ParsedQuery, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return &ParsedQuery{Filters: []QueryFilter{}, Errors: []ParseError{}}, nil
	}

	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}

	parser := NewParser(tokens)
	return parser.parse()
}

func (p *Parser) parse() (*ParsedQuery, error) {
	query := &ParsedQuery{Filters: []QueryFilter{}}

	for !p.isAtEnd() {
		token := p.current()

		switch token.Type {
		case TokenAt:
			filter, err := p.parseAtMention()
			if err != nil {
				p.fail(err, token.Pos)
				continue
			}
			query.Filters = append(query.Filters, *filter)

		case TokenField:
			filter, err := p.parseFieldFilter()
			if err != nil {
				p.fail(err, token.Pos)
				continue
			}
			query.Filters = append(query.Filters, *filter)

		case TokenValue:
			p.advance()
			if p.current().Type == TokenColon {
				p.fail(fmt.Errorf("unknown field '%s'", token.Value), token.Pos)
				p.skipFieldValue()
				continue
			}
			query.Terms = append(query.Terms, token.Value)

		default:
			// stray colon
			p.advance()
		}
	}

	query.Errors = p.errors

	if len(p.errors) > 0 {
		return query, fmt.Errorf("%s", p.errors[0].String())
	}

	return query, nil
}

func (p *Parser) parseAtMention() (*QueryFilter, error) {
	pos := p.current().Pos
	p.advance() // @

	if p.current().Type != TokenValue {
		return nil, fmt.Errorf("expected city name after @")
	}

	value := p.current().Value
	p.advance()

	return &QueryFilter{Field: FieldCity, Value: value, Pos: pos}, nil
}

func (p *Parser) parseFieldFilter() (*QueryFilter, error) {
	token := p.current()
	p.advance()

	if p.current().Type != TokenColon {
		return nil, fmt.Errorf("expected : after field name '%s'", token.Value)
	}
	p.advance()

	if p.current().Type != TokenValue {
		return nil, fmt.Errorf("expected value after '%s:'", token.Value)
	}

	value := p.current().Value
	p.advance()

	return &QueryFilter{Field: token.Value, Value: value, Pos: token.Pos}, nil
}

func (p *Parser) fail(err error, pos int) {
	p.errors = append(p.errors, ParseError{Message: err.Error(), Pos: pos})
}

// skips ": value" after a bad field name
func (p *Parser) skipFieldValue() {
	if p.current().Type == TokenColon {
		p.advance()
	}
	if p.current().Type == TokenValue {
		p.advance()
	}
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens) || p.current().Type == TokenEOF
}

func (q *ParsedQuery) HasField(field string) bool {
	return q.GetField(field) != nil
}

func (q *ParsedQuery) GetField(field string) *QueryFilter {
	for i := range q.Filters {
		if q.Filters[i].Field == field {
			return &q.Filters[i]
		}
	}
	return nil
}

func (q *ParsedQuery) GetAllFields(field string) []QueryFilter {
	var filters []QueryFilter
	for _, filter := range q.Filters {
		if filter.Field == field {
			filters = append(filters, filter)
		}
	}
	return filters
}

func (q *ParsedQuery) HasErrors() bool {
	return len(q.Errors) > 0
}

// Text joins the free-text terms.
func (q *ParsedQuery) Text() string {
	return strings.Join(q.Terms, " ")
}
