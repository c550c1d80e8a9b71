// Package condition decides whether a configuration unit should be activated
// when a container boots.
package condition

// Outcome is the verdict of a condition together with a diagnostic message.
type Outcome struct {
	Matched bool
	Message string
}

// Match returns a matching outcome.
func Match(message string) Outcome {
	return Outcome{Matched: true, Message: message}
}

// NoMatch returns a non-matching outcome.
func NoMatch(message string) Outcome {
	return Outcome{Matched: false, Message: message}
}

func (o Outcome) IsMatch() bool {
	return o.Matched
}

func (o Outcome) String() string {
	if o.Matched {
		return "match: " + o.Message
	}
	return "no match: " + o.Message
}
