package world

// Outcome is the tagged result of evaluating a rule: either no match
// (the zero value) or a handled command carrying a player-visible
// message. Keeping the tag separate from the message means a rule can
// consume a command while saying nothing, without "empty string" doing
// double duty as "declined".
type Outcome struct {
	handled bool
	message string
}

// NoMatch is the outcome of a rule that declines a command.
var NoMatch = Outcome{}

// Handled marks a command as handled with the given message.
func Handled(message string) Outcome {
	return Outcome{handled: true, message: message}
}

// IsHandled reports whether the rule claimed the command.
func (o Outcome) IsHandled() bool { return o.handled }

// Message returns the player-visible text, "" for NoMatch.
func (o Outcome) Message() string { return o.message }

// Rule examines a command and either declines it or produces a message,
// possibly mutating session state along the way.
type Rule func(rb *Rulebook, cmd *Command) Outcome

// Rulebook is an ordered, mutable sequence of rules. AddRule always
// inserts at the front, and Handle scans the whole sequence front to
// back with later-scanned matches overwriting earlier ones. The two
// together mean the rule added FIRST is evaluated LAST and wins when
// several rules match, the opposite of first-match-wins.
type Rulebook struct {
	rules []Rule
}

// NewRulebook creates an empty rulebook.
func NewRulebook() *Rulebook {
	return &Rulebook{}
}

// AddRule inserts rule at the front of the stored sequence.
func (rb *Rulebook) AddRule(rule Rule) {
	rb.rules = append([]Rule{rule}, rb.rules...)
}

// Len reports how many rules the book holds.
func (rb *Rulebook) Len() int {
	return len(rb.rules)
}

// Handle evaluates every rule in stored order. A matching rule
// overwrites the running outcome but never stops the scan; the last
// matching rule in scan order wins. Do not "fix" this into a
// short-circuit: rules deliberately placed early (at the back of the
// scan, since AddRule prepends) override newer rules that also match.
func (rb *Rulebook) Handle(cmd *Command) Outcome {
	var out Outcome
	for _, rule := range rb.rules {
		if res := rule(rb, cmd); res.IsHandled() {
			out = res
		}
	}
	return out
}
