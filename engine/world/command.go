package world

// Command is the parsed form of one line of player input. Subject and
// Object may be multi-word; Preposition is drawn from the parser's
// closed vocabulary. All fields except Verb may be empty, and even an
// empty Verb is dispatched rather than rejected; rule layers decide
// what is and is not understood.
type Command struct {
	Verb        string
	Subject     string
	Preposition string
	Object      string

	// Session is the session currently dispatching the command. It is
	// set by Session.Handle so rules can reach game state.
	Session *Session
}
