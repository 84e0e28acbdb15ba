package world

// NotUnderstood is the fixed fallback reply when no rule layer claims a
// command. Unrecognized input is never an error.
const NotUnderstood = "I don't understand."

// Handle routes a parsed command through the rulebook layers in strict
// order, stopping at the first layer that claims it:
//
//  1. system rules, irrevocable commands that nothing can shadow
//  2. the current location's own rulebook, when a location is set
//  3. global rules
//  4. the entity the subject names, when it exists and sits in the
//     current location: its rulebook first, then a behavior method
//     named exactly after the verb
//  5. last-chance rules
//  6. the fixed NotUnderstood fallback
//
// Each layer's own Handle keeps the full-scan overwrite semantics of
// Rulebook.Handle; only this cross-layer sequence short-circuits.
func (s *Session) Handle(cmd *Command) string {
	cmd.Session = s
	s.Turns++

	if out := s.System.Handle(cmd); out.IsHandled() {
		return out.Message()
	}
	if s.Location != nil {
		if out := s.Location.Rules().Handle(cmd); out.IsHandled() {
			return out.Message()
		}
	}
	if out := s.Global.Handle(cmd); out.IsHandled() {
		return out.Message()
	}
	if e := s.FindEntity(cmd.Subject); e != nil && s.Location != nil && e.Container() == s.Location {
		if out := e.handleCommand(cmd); out.IsHandled() {
			return out.Message()
		}
	}
	if out := s.LastChance.Handle(cmd); out.IsHandled() {
		return out.Message()
	}
	return NotUnderstood
}

// handleCommand runs the entity's own rulebook first, then falls back
// to a behavior method named exactly after the verb. A method result
// surfaces only when it is a non-empty string; anything else (including
// ErrNoCapability from Invoke) reads as "not handled" and dispatch
// moves on.
func (e *Entity) handleCommand(cmd *Command) Outcome {
	if out := e.Rules().Handle(cmd); out.IsHandled() {
		return out
	}
	res, err := e.Invoke(cmd.Verb, cmd)
	if err != nil {
		return NoMatch
	}
	if msg, ok := res.(string); ok && msg != "" {
		return Handled(msg)
	}
	return NoMatch
}
