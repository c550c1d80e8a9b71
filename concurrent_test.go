package digo_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"

	"github.com/centraunit/digo"
	"github.com/centraunit/digo/condition"
	"github.com/centraunit/digo/env"
	"github.com/centraunit/digo/mock"
)

type ConcurrentTestSuite struct {
	suite.Suite
}

func (s *ConcurrentTestSuite) SetupTest() {
	digo.Reset()
}

func (s *ConcurrentTestSuite) TestConcurrentResolution() {
	ctx := digo.NewContainerContext(context.Background())
	s.NoError(digo.BindSingleton[mock.Database](&mock.MockDB{}, ctx))
	_, err := digo.ResolveSingleton[mock.Database]()
	s.NoError(err)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := digo.ResolveSingleton[mock.Database](); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}
}

func (s *ConcurrentTestSuite) TestConcurrentBindings() {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := digo.NewContainerContext(context.Background())
			_ = digo.BindTransient[mock.Database](&mock.MockDB{}, ctx)
		}()
	}
	wg.Wait()

	_, err := digo.ResolveTransient[mock.Database]()
	s.NoError(err)
}

func (s *ConcurrentTestSuite) TestConcurrentConditionEvaluation() {
	digo.RegisterType[*env.GenericWebApplicationContext]()
	digo.SetEnvironment(env.NewStandardServletEnvironment())
	ctx := digo.ConditionContext()
	md := condition.Annotations{condition.ConditionalOnWebApplication}

	var wg sync.WaitGroup
	outcomes := make(chan condition.Outcome, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = digo.RegisterScope(digo.Scope("custom"))
			}
			outcomes <- condition.OnWebApplication{}.MatchOutcome(ctx, md)
		}(i)
	}
	wg.Wait()
	close(outcomes)

	for outcome := range outcomes {
		s.Equal(condition.Match("found web application StandardServletEnvironment"), outcome)
	}
}

func (s *ConcurrentTestSuite) TestConcurrentShutdowns() {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = digo.Shutdown(true)
		}()
	}
	wg.Wait()
	s.NoError(digo.Boot())
}

func TestConcurrentSuite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	suite.Run(t, new(ConcurrentTestSuite))
}
