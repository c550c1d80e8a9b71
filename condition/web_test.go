package condition_test

import (
	"net/http"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/centraunit/digo/condition"
	"github.com/centraunit/digo/env"
	"github.com/centraunit/digo/mock"
)

var (
	webRequired = condition.Annotations{condition.ConditionalOnWebApplication}
	notRequired = condition.Annotations{}
)

type WebApplicationTestSuite struct {
	suite.Suite
	ctx *mock.ConditionContext
}

func (s *WebApplicationTestSuite) SetupTest() {
	s.ctx = mock.WebReadyContext()
}

func (s *WebApplicationTestSuite) TestMarkerClassAbsent() {
	s.ctx.Loader = mock.NewClassLoader()
	s.ctx.Registry.Scopes = []string{condition.SessionScope}
	s.ctx.Env = env.NewStandardServletEnvironment()

	outcome := condition.OnWebApplication{}.MatchOutcome(s.ctx, webRequired)
	s.Equal(condition.NoMatch("web application classes not found"), outcome)
	s.Zero(s.ctx.Registry.Lookups, "no other signal is consulted without the marker type")
}

func (s *WebApplicationTestSuite) TestMarkerClassAbsentNotRequired() {
	s.ctx.Loader = mock.NewClassLoader()

	outcome := condition.OnWebApplication{}.MatchOutcome(s.ctx, notRequired)
	s.Equal(condition.Match("web application classes not found"), outcome)
}

func (s *WebApplicationTestSuite) TestSessionScope() {
	s.ctx.Registry.Scopes = append(s.ctx.Registry.Scopes, condition.SessionScope)

	outcome := condition.OnWebApplication{}.MatchOutcome(s.ctx, webRequired)
	s.Equal(condition.Match("found web application 'session' scope"), outcome)
}

func (s *WebApplicationTestSuite) TestSessionScopeWinsOverEnvironment() {
	s.ctx.Registry.Scopes = []string{condition.SessionScope}
	s.ctx.Env = env.NewStandardServletEnvironment()

	outcome := condition.IsWebApplication(s.ctx)
	s.Equal("found web application 'session' scope", outcome.Message)
}

func (s *WebApplicationTestSuite) TestNilBeanFactory() {
	s.ctx.Registry = nil
	s.ctx.Env = env.NewStandardServletEnvironment()

	outcome := condition.OnWebApplication{}.MatchOutcome(s.ctx, webRequired)
	s.Equal(condition.Match("found web application StandardServletEnvironment"), outcome)
}

func (s *WebApplicationTestSuite) TestServletEnvironmentNotRequired() {
	s.ctx.Env = env.NewStandardServletEnvironment()

	s.True(condition.IsWebApplication(s.ctx).IsMatch())
	outcome := condition.OnWebApplication{}.MatchOutcome(s.ctx, notRequired)
	s.Equal(condition.NoMatch("found web application StandardServletEnvironment"), outcome)
}

func (s *WebApplicationTestSuite) TestWebApplicationContextLoader() {
	s.ctx.Resource = env.NewGenericWebApplicationContext(afero.NewMemMapFs())

	outcome := condition.OnWebApplication{}.MatchOutcome(s.ctx, webRequired)
	s.Equal(condition.Match("found web application WebApplicationContext"), outcome)
}

func (s *WebApplicationTestSuite) TestCustomWebApplicationContext() {
	s.ctx.Resource = handlerLoader{}

	outcome := condition.IsWebApplication(s.ctx)
	s.Equal(condition.Match("found web application WebApplicationContext"), outcome)
}

func (s *WebApplicationTestSuite) TestNoWebSignalRequired() {
	outcome := condition.OnWebApplication{}.MatchOutcome(s.ctx, webRequired)
	s.Equal(condition.NoMatch("not a web application"), outcome)
}

func (s *WebApplicationTestSuite) TestNoWebSignalNotRequired() {
	outcome := condition.OnWebApplication{}.MatchOutcome(s.ctx, notRequired)
	s.Equal(condition.Match("not a web application"), outcome)
}

func (s *WebApplicationTestSuite) TestNotWebAnnotationIsNotARequirement() {
	md := condition.Annotations{condition.ConditionalOnNotWebApplication}
	s.True(condition.OnWebApplication{}.MatchOutcome(s.ctx, md).IsMatch())

	s.ctx.Env = env.NewStandardServletEnvironment()
	s.False(condition.OnWebApplication{}.MatchOutcome(s.ctx, md).IsMatch())
}

func (s *WebApplicationTestSuite) TestNilEnvironmentAndLoader() {
	s.ctx.Env = nil
	s.ctx.Resource = nil

	outcome := condition.IsWebApplication(s.ctx)
	s.Equal(condition.NoMatch("not a web application"), outcome)
}

func (s *WebApplicationTestSuite) TestReferentiallyTransparent() {
	for _, md := range []condition.Annotations{webRequired, notRequired} {
		first := condition.OnWebApplication{}.MatchOutcome(s.ctx, md)
		second := condition.OnWebApplication{}.MatchOutcome(s.ctx, md)
		s.Equal(first, second)
	}
}

func (s *WebApplicationTestSuite) TestOrder() {
	s.Equal(condition.HighestPrecedence+20, condition.OnWebApplication{}.Order())
}

func TestWebApplicationSuite(t *testing.T) {
	suite.Run(t, new(WebApplicationTestSuite))
}

// handlerLoader is a WebApplicationContext that is not a GenericWebApplicationContext.
type handlerLoader struct{}

func (handlerLoader) Resource(string) ([]byte, error) { return nil, nil }
func (handlerLoader) Handler() http.Handler           { return http.NotFoundHandler() }
