// Package parser turns raw player input into world.Command values.
// Intentionally dumb: one verb, an optional subject, an optional
// preposition from a closed vocabulary, and an optional object. Anything
// fancier belongs in rules, not here.
package parser

import (
	"strings"
	"unicode"

	"github.com/mkbray/fabula/engine/world"
)

// prepositions is the closed vocabulary the parser recognizes. A token
// outside this set is never treated as a structural delimiter, no
// matter how preposition-ish it looks.
var prepositions = map[string]bool{
	"aboard": true, "about": true, "above": true, "across": true,
	"after": true, "against": true, "along": true, "amid": true,
	"among": true, "around": true, "as": true, "at": true,
	"atop": true, "before": true, "behind": true, "below": true,
	"beneath": true, "beside": true, "besides": true, "between": true,
	"beyond": true, "but": true, "by": true, "concerning": true,
	"considering": true, "despite": true, "down": true, "during": true,
	"except": true, "excepting": true, "excluding": true, "following": true,
	"for": true, "from": true, "in": true, "inside": true,
	"into": true, "like": true, "minus": true, "near": true,
	"of": true, "off": true, "on": true, "onto": true,
	"opposite": true, "out": true, "outside": true, "over": true,
	"past": true, "per": true, "plus": true, "regarding": true,
	"round": true, "save": true, "since": true, "than": true,
	"through": true, "throughout": true, "till": true, "to": true,
	"toward": true, "towards": true, "under": true, "underneath": true,
	"unlike": true, "until": true, "unto": true, "up": true,
	"upon": true, "versus": true, "via": true, "with": true,
	"within": true, "without": true,
}

// IsPreposition reports whether word belongs to the parser's closed
// preposition vocabulary.
func IsPreposition(word string) bool {
	return prepositions[word]
}

// Parse converts one line of input into a command. It never fails:
// empty input yields a command with an empty verb, and unrecognized
// structure is left for the rule layers to reject.
//
// The first token is the verb. Remaining tokens accumulate into a term;
// each recognized preposition commits the current term as the subject
// (overwriting any previous one), records itself as the preposition,
// and resets the term. At end of input the final term becomes the
// object if any preposition was seen, otherwise the subject. So with
// several prepositions, only the last one marks the object boundary and
// the terms between them are discarded along the way.
func Parse(input string) *world.Command {
	cmd := &world.Command{}

	words := tokenize(input)
	if len(words) == 0 {
		return cmd
	}
	cmd.Verb = words[0]

	var term []string
	seenPrep := false
	for _, w := range words[1:] {
		if prepositions[w] {
			cmd.Subject = strings.Join(term, " ")
			cmd.Preposition = w
			term = term[:0]
			seenPrep = true
			continue
		}
		term = append(term, w)
	}

	if seenPrep {
		cmd.Object = strings.Join(term, " ")
	} else {
		cmd.Subject = strings.Join(term, " ")
	}
	return cmd
}

// tokenize lower-cases the input and extracts maximal runs of letters
// and digits. Punctuation only separates tokens.
func tokenize(input string) []string {
	return strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
