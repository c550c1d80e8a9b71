package digo_test

import (
	"context"
	"testing"

	"github.com/centraunit/digo"
	"github.com/centraunit/digo/condition"
	"github.com/centraunit/digo/env"
	"github.com/centraunit/digo/mock"
)

func BenchmarkResolution(b *testing.B) {
	b.Run("TransientResolution", func(b *testing.B) {
		digo.Reset()
		ctx := digo.NewContainerContext(context.Background())
		_ = digo.BindTransient[mock.Database](&mock.MockDB{}, ctx)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = digo.ResolveTransient[mock.Database]()
		}
	})

	b.Run("SingletonResolution", func(b *testing.B) {
		digo.Reset()
		_ = digo.BindSingleton[mock.Database](&mock.MockDB{})
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = digo.ResolveSingleton[mock.Database]()
		}
	})
}

func BenchmarkWebApplicationCondition(b *testing.B) {
	md := condition.Annotations{condition.ConditionalOnWebApplication}

	b.Run("Container", func(b *testing.B) {
		digo.Reset()
		digo.RegisterType[*env.GenericWebApplicationContext]()
		digo.SetEnvironment(env.NewStandardServletEnvironment())
		ctx := digo.ConditionContext()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = condition.OnWebApplication{}.MatchOutcome(ctx, md)
		}
	})

	b.Run("Stub", func(b *testing.B) {
		ctx := mock.WebReadyContext()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = condition.OnWebApplication{}.MatchOutcome(ctx, md)
		}
	})
}

func BenchmarkBoot(b *testing.B) {
	for i := 0; i < b.N; i++ {
		digo.Reset()
		_ = digo.RegisterConfiguration(digo.OnWebApplication(digo.Configuration{Name: "web"}))
		_ = digo.RegisterConfiguration(digo.OnNotWebApplication(digo.Configuration{Name: "console"}))
		_ = digo.Boot()
	}
}
