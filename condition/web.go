package condition

import (
	"slices"

	"github.com/centraunit/digo/env"
)

// SessionScope is the scope name only web containers register.
const SessionScope = "session"

// OnWebApplication matches when the container's web support agrees with the
// ConditionalOnWebApplication annotation of the configuration unit: annotated
// units need a web application, all others need a non-web one.
type OnWebApplication struct{}

func (OnWebApplication) Order() int {
	return HighestPrecedence + 20
}

func (OnWebApplication) MatchOutcome(ctx Context, md Metadata) Outcome {
	required := md.IsAnnotated(ConditionalOnWebApplication)
	web := IsWebApplication(ctx)

	if required && !web.IsMatch() {
		return NoMatch(web.Message)
	}
	if !required && web.IsMatch() {
		return NoMatch(web.Message)
	}
	return Match(web.Message)
}

// IsWebApplication classifies the container behind ctx. The checks run in a
// fixed order and the first decisive one wins; nothing else is consulted when
// the web marker type is absent.
func IsWebApplication(ctx Context) Outcome {
	if !ctx.ClassLoader().IsPresent(env.WebContextClass) {
		return NoMatch("web application classes not found")
	}

	if registry := ctx.BeanFactory(); registry != nil {
		if slices.Contains(registry.RegisteredScopeNames(), SessionScope) {
			return Match("found web application 'session' scope")
		}
	}

	if _, ok := ctx.Environment().(*env.StandardServletEnvironment); ok {
		return Match("found web application StandardServletEnvironment")
	}

	if _, ok := ctx.ResourceLoader().(env.WebApplicationContext); ok {
		return Match("found web application WebApplicationContext")
	}

	return NoMatch("not a web application")
}
