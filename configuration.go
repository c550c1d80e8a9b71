package digo

import (
	"slices"

	"go.uber.org/zap"

	"github.com/centraunit/digo/condition"
)

// Configuration is a unit of bindings that Boot applies only when all of its
// conditions match.
type Configuration struct {
	Name        string
	Annotations condition.Annotations
	Conditions  []condition.Condition

	// Configure binds the unit's services. It receives the container context
	// carrying the container environment.
	Configure func(ctx *ContainerContext) error
}

// OnWebApplication marks cfg as requiring a web application.
func OnWebApplication(cfg Configuration) Configuration {
	return withWebCondition(cfg, condition.ConditionalOnWebApplication)
}

// OnNotWebApplication marks cfg as requiring a non-web application.
func OnNotWebApplication(cfg Configuration) Configuration {
	return withWebCondition(cfg, condition.ConditionalOnNotWebApplication)
}

func withWebCondition(cfg Configuration, annotation string) Configuration {
	cfg.Annotations = append(slices.Clone(cfg.Annotations), annotation)
	cfg.Conditions = append(slices.Clone(cfg.Conditions), condition.OnWebApplication{})
	return cfg
}

// RegisterConfiguration adds cfg to the units evaluated by the next Boot.
// Units are evaluated in registration order.
func RegisterConfiguration(cfg Configuration) error {
	if cfg.Name == "" {
		return &InvalidConfigurationError{Reason: "name is required"}
	}

	c := GetContainer()
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.configurations {
		if existing.Name == cfg.Name {
			return &InvalidConfigurationError{Name: cfg.Name, Reason: "already registered"}
		}
	}
	c.configurations = append(c.configurations, cfg)
	Logger().Debug("configuration registered",
		zap.String("configuration", cfg.Name),
		zap.Int("conditions", len(cfg.Conditions)))
	return nil
}
