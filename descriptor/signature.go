/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package descriptor

import "fmt"

// SignatureErr reports a syntactically malformed generic class/method
// signature (the Signature attribute's Utf8 payload). Full generic
// resolution (type variable binding, bound checking) is out of scope —
// bytecode verification is explicitly excluded — but the signature must at
// minimum be well-formed so a consumer can tell a corrupt attribute from a
// valid one.
type SignatureErr struct {
	Signature string
	Reason    string
}

func (e *SignatureErr) Error() string {
	return fmt.Sprintf("malformed signature %q: %s", e.Signature, e.Reason)
}

// ParseClassSignature validates the syntax of a class or method generic
// signature: balanced '<' '>' nesting and balanced 'L...;' object
// references, without attempting to resolve type variables.
func ParseClassSignature(s string) error {
	depth := 0
	i := 0
	for i < len(s) {
		switch s[i] {
		case '<':
			depth++
			i++
		case '>':
			depth--
			if depth < 0 {
				return &SignatureErr{Signature: s, Reason: "unbalanced '>'"}
			}
			i++
		case 'L', 'T':
			end := i + 1
			for end < len(s) && s[end] != ';' && s[end] != '<' {
				end++
			}
			if end >= len(s) {
				return &SignatureErr{Signature: s, Reason: "unterminated object or type-variable reference"}
			}
			if s[end] == '<' {
				// parameterized type: skip to matching '>' before requiring ';'
				inner := 1
				j := end + 1
				for j < len(s) && inner > 0 {
					switch s[j] {
					case '<':
						inner++
					case '>':
						inner--
					}
					j++
				}
				if inner != 0 {
					return &SignatureErr{Signature: s, Reason: "unterminated type argument list"}
				}
				if j >= len(s) || s[j] != ';' {
					return &SignatureErr{Signature: s, Reason: "missing ';' after parameterized type"}
				}
				i = j + 1
				continue
			}
			i = end + 1
		default:
			i++
		}
	}
	if depth != 0 {
		return &SignatureErr{Signature: s, Reason: "unbalanced '<'"}
	}
	return nil
}
