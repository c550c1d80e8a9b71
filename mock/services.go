package mock

import (
	"fmt"

	"github.com/centraunit/digo"
)

type Database interface {
	digo.Lifecycle
	Connect() error
	GetContextValue(key string) (interface{}, error)
}

type Cache interface {
	digo.Lifecycle
	Get(key string) interface{}
}

// SessionStore is only bound by web configurations, in the session scope.
type SessionStore interface {
	digo.Lifecycle
	Put(sessionID, key, value string)
	Get(sessionID, key string) (string, bool)
}

// Runner is only bound by non-web configurations.
type Runner interface {
	digo.Lifecycle
	Run() error
}

type MockDB struct {
	isConnected bool
	ctx         *digo.ContainerContext
	RequestID   string
	Boots       int
}

func (m *MockDB) Connect() error {
	return nil
}

func (m *MockDB) OnBoot(ctx *digo.ContainerContext) error {
	m.isConnected = true
	m.ctx = ctx
	m.Boots++
	if reqID, ok := ctx.RequestID(); ok {
		if str, ok := reqID.(string); ok {
			m.RequestID = str
		}
	}
	return nil
}

func (m *MockDB) GetContextValue(key string) (interface{}, error) {
	if m.ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}
	return m.ctx.Value(key), nil
}

func (m *MockDB) OnShutdown(ctx *digo.ContainerContext) error {
	m.isConnected = false
	m.ctx = nil
	return nil
}

func (m *MockDB) IsConnected() bool {
	return m.isConnected
}

// FailingDB fails OnBoot or OnShutdown on demand.
type FailingDB struct {
	MockDB
	ShouldFail         bool
	ShouldFailShutdown bool
}

func (f *FailingDB) OnBoot(ctx *digo.ContainerContext) error {
	if f.ShouldFail {
		return fmt.Errorf("simulated boot failure")
	}
	return f.MockDB.OnBoot(ctx)
}

func (f *FailingDB) OnShutdown(ctx *digo.ContainerContext) error {
	if f.ShouldFailShutdown {
		return fmt.Errorf("simulated shutdown failure")
	}
	return f.MockDB.OnShutdown(ctx)
}

// MockCache resolves its Database when booted.
type MockCache struct {
	DB Database
}

func (m *MockCache) Get(key string) interface{} {
	return nil
}

func (m *MockCache) OnBoot(ctx *digo.ContainerContext) error {
	db, err := digo.ResolveTransient[Database]()
	if err != nil {
		return err
	}
	m.DB = db
	return nil
}

func (m *MockCache) OnShutdown(ctx *digo.ContainerContext) error {
	return nil
}

type MemorySessionStore struct {
	sessions map[string]map[string]string
	Profile  string
}

func (s *MemorySessionStore) OnBoot(ctx *digo.ContainerContext) error {
	s.sessions = make(map[string]map[string]string)
	if e := ctx.Environment(); e != nil {
		if profiles := e.ActiveProfiles(); len(profiles) > 0 {
			s.Profile = profiles[0]
		}
	}
	return nil
}

func (s *MemorySessionStore) OnShutdown(ctx *digo.ContainerContext) error {
	s.sessions = nil
	return nil
}

func (s *MemorySessionStore) Put(sessionID, key, value string) {
	if s.sessions[sessionID] == nil {
		s.sessions[sessionID] = make(map[string]string)
	}
	s.sessions[sessionID][key] = value
}

func (s *MemorySessionStore) Get(sessionID, key string) (string, bool) {
	v, ok := s.sessions[sessionID][key]
	return v, ok
}

type ConsoleRunner struct {
	Runs int
}

func (r *ConsoleRunner) OnBoot(ctx *digo.ContainerContext) error     { return nil }
func (r *ConsoleRunner) OnShutdown(ctx *digo.ContainerContext) error { return nil }
func (r *ConsoleRunner) Run() error {
	r.Runs++
	return nil
}

// Circular dependency test types
type CircularService1 interface {
	digo.Lifecycle
	GetService2() CircularService2
}

type CircularService2 interface {
	digo.Lifecycle
	GetService1() CircularService1
}

type CircularImpl1 struct {
	svc2 CircularService2
}

func (i *CircularImpl1) OnBoot(ctx *digo.ContainerContext) error {
	var err error
	i.svc2, err = digo.ResolveTransient[CircularService2]()
	return err
}

func (i *CircularImpl1) OnShutdown(ctx *digo.ContainerContext) error { return nil }
func (i *CircularImpl1) GetService2() CircularService2               { return i.svc2 }

type CircularImpl2 struct {
	svc1 CircularService1
}

func (i *CircularImpl2) OnBoot(ctx *digo.ContainerContext) error {
	var err error
	i.svc1, err = digo.ResolveTransient[CircularService1]()
	return err
}

func (i *CircularImpl2) OnShutdown(ctx *digo.ContainerContext) error { return nil }
func (i *CircularImpl2) GetService1() CircularService1               { return i.svc1 }
