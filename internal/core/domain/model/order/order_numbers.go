package order

import (
	"slices"
	"strings"

	"warehouse/internal/pkg/errs"
)

const orderNumberSeparator = ", "

// OrderNumbers is the ordered, de-duplicated set of identifiers an order is known by.
// Linking appends tokens; nothing in the domain ever removes one.
type OrderNumbers struct {
	tokens []string
}

// ParseOrderNumbers splits a stored "A, B, C" value. Blank and repeated tokens are dropped.
func ParseOrderNumbers(s string) OrderNumbers {
	var n OrderNumbers
	n.tokens = appendTokens(nil, s)
	return n
}

// Link returns a copy with the tokens of number appended.
// changed is false when every token was already present.
func (n OrderNumbers) Link(number string) (_ OrderNumbers, changed bool, _ error) {
	if strings.TrimSpace(strings.ReplaceAll(number, ",", "")) == "" {
		return n, false, errs.NewValueIsRequiredError("orderNumber")
	}

	tokens := appendTokens(slices.Clone(n.tokens), number)
	if len(tokens) == len(n.tokens) {
		return n, false, nil
	}
	return OrderNumbers{tokens: tokens}, true, nil
}

// Contains reports whether number is already linked.
func (n OrderNumbers) Contains(number string) bool {
	return slices.Contains(n.tokens, strings.TrimSpace(number))
}

// Tokens returns a copy of the linked numbers in order of linking.
func (n OrderNumbers) Tokens() []string {
	return slices.Clone(n.tokens)
}

// IsEmpty reports whether no number is linked.
func (n OrderNumbers) IsEmpty() bool {
	return len(n.tokens) == 0
}

// String returns the stored form, e.g. "5542, 5543".
func (n OrderNumbers) String() string {
	return strings.Join(n.tokens, orderNumberSeparator)
}

func appendTokens(tokens []string, s string) []string {
	for _, raw := range strings.Split(s, ",") {
		token := strings.TrimSpace(raw)
		if token == "" || slices.Contains(tokens, token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
