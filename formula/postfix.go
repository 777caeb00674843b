package formula

// Postfix reorders infix tokens into postfix order with the shunting-yard
// algorithm. Every function call gets an ArgMark token in the output where
// its arguments begin so that the evaluator can collect a variable number
// of arguments.
func Postfix(infix []Token) ([]Token, error) {
	var (
		output = make([]Token, 0, len(infix))
		stack  []Token
	)
	top := func() (Token, bool) {
		if len(stack) == 0 {
			return Token{}, false
		}
		return stack[len(stack)-1], true
	}
	pop := func() Token {
		tok := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return tok
	}
	for _, tok := range infix {
		switch tok.Type {
		case Number, CellRef:
			output = append(output, tok)
		case Function:
			stack = append(stack, tok)
			output = append(output, makeToken(ArgMark, "|", tok.Position))
		case ArgSep:
			for t, ok := top(); ok && t.Type != LeftParen; t, ok = top() {
				output = append(output, pop())
			}
			if len(stack) == 0 {
				return nil, syntaxError(tok.Position, "misplaced separator")
			}
		case Operator:
			for t, ok := top(); ok && t.Type == Operator && t.precedence() >= tok.precedence(); t, ok = top() {
				output = append(output, pop())
			}
			stack = append(stack, tok)
		case LeftParen:
			stack = append(stack, tok)
		case RightParen:
			for t, ok := top(); ok && t.Type != LeftParen; t, ok = top() {
				output = append(output, pop())
			}
			if len(stack) == 0 {
				return nil, syntaxError(tok.Position, "mismatched parentheses")
			}
			pop()
			if t, ok := top(); ok && t.Type == Function {
				output = append(output, pop())
			}
		default:
			return nil, syntaxError(tok.Position, "unexpected token %s", tok)
		}
	}
	for len(stack) > 0 {
		tok := pop()
		if tok.Type == LeftParen || tok.Type == RightParen {
			return nil, syntaxError(tok.Position, "mismatched parentheses")
		}
		output = append(output, tok)
	}
	return output, nil
}
