package asm

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var foldCase = cases.Fold()

func toLower(s string) string {
	return foldCase.String(s)
}

// Each pattern is anchored at the start of the remaining line.
// tokenizeLine tries them in the order of its switch (whitespace and
// commas first, char literals before hex and decimal): the first one
// that matches wins, "longest prefix" meaning the matched text is
// consumed and tokenising resumes right after it.
var (
	reDirective  = regexp.MustCompile(`^\.[A-Za-z_][A-Za-z0-9_]*`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*:`)
	reString     = regexp.MustCompile(`^"(?:[^"\\]|\\.)*"`)
	reComma      = regexp.MustCompile(`^,`)
	reSpace      = regexp.MustCompile(`^[ \t]+`)
	reComOpr     = regexp.MustCompile(`^(-?[0-9]*)\(\s*(\$[A-Za-z0-9]+|zero\b)\s*\)`)
	reReg        = regexp.MustCompile(`^(\$[A-Za-z0-9]+|zero\b)`)
	reHex        = regexp.MustCompile(`^0[xX][0-9a-fA-F]+`)
	reDec        = regexp.MustCompile(`^[-+]?[0-9]+`)
	reChar       = regexp.MustCompile(`^'(?:[^'\\]|\\.)'`)
	reWord       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
)

var charEscapes = map[byte]byte{
	'n': '\n', 't': '\t', '\\': '\\', '"': '"', '0': 0, '\'': '\'',
}

// stripComment removes everything from the first '#' to the end of
// the line (§4.2 pre-pass). Quoting and escapes are not considered: a
// '#' inside a string literal also starts the comment.
func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// tokenizeLine applies the pre-pass (comment strip, trim) to one raw
// source line and converts what remains into its token sequence; an
// empty result yields no tokens.
func tokenizeLine(raw string, lineNo int) ([]Token, error) {
	line := strings.TrimSpace(stripComment(raw))
	if line == "" {
		return nil, nil
	}

	var toks []Token
	rest := line
	for rest != "" {
		switch {
		case reSpace.MatchString(rest):
			rest = rest[len(reSpace.FindString(rest)):]

		case reComma.MatchString(rest):
			rest = rest[1:]

		case reDirective.MatchString(rest):
			m := reDirective.FindString(rest)
			toks = append(toks, Token{Kind: TokSpecial, Text: toLower(m)})
			rest = rest[len(m):]

		case reLabel.MatchString(rest):
			m := reLabel.FindString(rest)
			name := m[:len(m)-1]
			toks = append(toks, Token{Kind: TokLabel, Text: toLower(name)})
			rest = rest[len(m):]

		case reString.MatchString(rest):
			m := reString.FindString(rest)
			decoded, err := decodeString(m[1 : len(m)-1])
			if err != nil {
				return nil, lineErr(lineNo, "%v", err)
			}
			toks = append(toks, Token{Kind: TokString, Text: decoded})
			rest = rest[len(m):]

		case reComOpr.MatchString(rest):
			m := reComOpr.FindStringSubmatch(rest)
			off := int32(0)
			if m[1] != "" && m[1] != "-" {
				n, err := parseSignedInt(m[1])
				if err != nil {
					return nil, lineErr(lineNo, "bad offset %q: %v", m[1], err)
				}
				off = int32(n)
			}
			toks = append(toks, Token{Kind: TokComOpr, Offset: off, Reg: toLower(m[2])})
			rest = rest[len(m[0]):]

		case reReg.MatchString(rest):
			m := reReg.FindString(rest)
			toks = append(toks, Token{Kind: TokRegOpr, Text: toLower(m)})
			rest = rest[len(m):]

		case reChar.MatchString(rest):
			m := reChar.FindString(rest)
			toks = append(toks, Token{Kind: TokInteger, Text: m})
			rest = rest[len(m):]

		case reHex.MatchString(rest):
			m := reHex.FindString(rest)
			toks = append(toks, Token{Kind: TokInteger, Text: m})
			rest = rest[len(m):]

		case reDec.MatchString(rest):
			m := reDec.FindString(rest)
			toks = append(toks, Token{Kind: TokInteger, Text: m})
			rest = rest[len(m):]

		case reWord.MatchString(rest):
			m := reWord.FindString(rest)
			toks = append(toks, Token{Kind: TokWord, Text: toLower(m)})
			rest = rest[len(m):]

		default:
			return nil, lineErr(lineNo, "unexpected syntax near %q", rest)
		}
	}
	return toks, nil
}

func decodeString(body string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("unterminated escape in string literal")
		}
		esc, ok := charEscapes[body[i]]
		if !ok {
			return "", fmt.Errorf("unknown escape sequence \\%c", body[i])
		}
		sb.WriteByte(esc)
	}
	return sb.String(), nil
}

func decodeCharLiteral(lit string) (byte, error) {
	// lit is 'x' or '\x' including the surrounding quotes.
	inner := lit[1 : len(lit)-1]
	if len(inner) == 1 {
		return inner[0], nil
	}
	if len(inner) == 2 && inner[0] == '\\' {
		esc, ok := charEscapes[inner[1]]
		if !ok {
			return 0, fmt.Errorf("unknown escape sequence \\%c", inner[1])
		}
		return esc, nil
	}
	return 0, fmt.Errorf("invalid character literal %q", lit)
}
