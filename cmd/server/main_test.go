package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"gorm.io/gorm"

	"strainlog/internal/config"
	"strainlog/internal/db/mock"
	"strainlog/internal/prefs"
	"strainlog/internal/server"
)

type stubServer struct {
	startErr       error
	stopErr        error
	blockUntilStop bool

	startCalled bool
	stopCalled  bool

	startGate   chan struct{}
	startNotify chan struct{}
}

func newStubServer(startErr, stopErr error, block bool) *stubServer {
	s := &stubServer{
		startErr:       startErr,
		stopErr:        stopErr,
		blockUntilStop: block,
		startNotify:    make(chan struct{}),
	}
	if block {
		s.startGate = make(chan struct{})
	}
	return s
}

func (s *stubServer) Start() error {
	s.startCalled = true
	close(s.startNotify)
	if s.blockUntilStop {
		<-s.startGate
	}
	return s.startErr
}

func (s *stubServer) Stop() error {
	s.stopCalled = true
	if s.blockUntilStop {
		close(s.startGate)
	}
	return s.stopErr
}

// restoreHooks puts every injectable back once the test finishes.
func restoreHooks(t *testing.T) {
	t.Helper()

	originalLoadConfig := loadConfigFunc
	originalSetLogLevel := setLogLevelFunc
	originalSetLogFormat := setLogFormatFunc
	originalMock := newMockDatabaseFunc
	originalConfigure := configureDatabase
	originalOpenPrefs := openPrefsFunc
	originalNewServer := newServerFunc
	originalSubscribe := subscribeShutdownSig

	t.Cleanup(func() {
		loadConfigFunc = originalLoadConfig
		setLogLevelFunc = originalSetLogLevel
		setLogFormatFunc = originalSetLogFormat
		newMockDatabaseFunc = originalMock
		configureDatabase = originalConfigure
		openPrefsFunc = originalOpenPrefs
		newServerFunc = originalNewServer
		subscribeShutdownSig = originalSubscribe
	})

	setLogLevelFunc = func(string) error { return nil }
	setLogFormatFunc = func(string) error { return nil }
	openPrefsFunc = func(config.PrefsConfig) (*prefs.Store, error) {
		return prefs.Open(config.PrefsConfig{InMemory: true})
	}
}

func mockConfig() config.Config {
	return config.Config{
		Server:    config.ServerConfig{Addr: ":8080"},
		Database:  config.DatabaseConfig{UseMock: true},
		Prefs:     config.PrefsConfig{InMemory: true},
		Logging:   config.LoggingConfig{Level: "debug", Format: "text"},
		Session:   config.SessionConfig{Lifetime: time.Hour, CookieName: "test", CookieSecure: true},
		Recommend: config.RecommendConfig{TopN: 5},
	}
}

func TestRunUsesMockDatabaseWhenConfigured(t *testing.T) {
	restoreHooks(t)

	cfg := mockConfig()

	var mockCalled bool
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	newMockDatabaseFunc = func(ctx context.Context) (*gorm.DB, error) {
		mockCalled = true
		return mock.New(ctx)
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		t.Fatal("configureDatabase should not be called when mock is enabled")
		return nil, nil
	}

	serverStub := newStubServer(http.ErrServerClosed, nil, true)
	var got server.Config
	newServerFunc = func(c server.Config) (serverLifecycle, error) {
		got = c
		return serverStub, nil
	}

	shutdownCh := make(chan os.Signal, 1)
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return shutdownCh, func() {}
	}

	go func() {
		<-serverStub.startNotify
		shutdownCh <- syscall.SIGTERM
	}()

	code := run(context.Background())
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !mockCalled {
		t.Fatal("expected mock database to be used")
	}
	if !serverStub.startCalled || !serverStub.stopCalled {
		t.Fatal("expected server start and stop to be invoked")
	}
	if got.Addr != ":8080" || got.TopN != 5 {
		t.Fatalf("unexpected server config: %+v", got)
	}
	if got.Session.CookieName != "test" || !got.Session.CookieSecure || got.Session.Lifetime != time.Hour {
		t.Fatalf("session settings not forwarded: %+v", got.Session)
	}
	if got.Service == nil {
		t.Fatal("expected a journal service to be wired")
	}
}

func TestRunReturnsErrorWhenServerStartFails(t *testing.T) {
	restoreHooks(t)

	loadConfigFunc = func() (config.Config, error) { return mockConfig(), nil }
	newMockDatabaseFunc = mock.New

	serverStub := newStubServer(errors.New("bind: address already in use"), nil, false)
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		return serverStub, nil
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return make(chan os.Signal), func() {}
	}

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 on start failure, got %d", code)
	}
	if serverStub.stopCalled {
		t.Fatal("stop should not be called when start fails")
	}
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	restoreHooks(t)

	loadConfigFunc = func() (config.Config, error) { return mockConfig(), nil }
	newMockDatabaseFunc = mock.New

	serverStub := newStubServer(http.ErrServerClosed, nil, true)
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		return serverStub, nil
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return make(chan os.Signal), func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-serverStub.startNotify
		cancel()
	}()

	if code := run(ctx); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !serverStub.stopCalled {
		t.Fatal("expected server stop on cancellation")
	}
}

func TestRunReturnsErrorWhenShutdownFails(t *testing.T) {
	restoreHooks(t)

	loadConfigFunc = func() (config.Config, error) { return mockConfig(), nil }
	newMockDatabaseFunc = mock.New

	serverStub := newStubServer(http.ErrServerClosed, errors.New("shutdown timeout"), true)
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		return serverStub, nil
	}
	shutdownCh := make(chan os.Signal, 1)
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return shutdownCh, func() {}
	}
	go func() {
		<-serverStub.startNotify
		shutdownCh <- syscall.SIGINT
	}()

	if code := run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1 when shutdown fails, got %d", code)
	}
}

func TestRunReturnsErrorWhenConfigFails(t *testing.T) {
	restoreHooks(t)

	loadConfigFunc = func() (config.Config, error) {
		return config.Config{}, errors.New("bad env")
	}

	if code := run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1 for config failure, got %d", code)
	}
}

func TestRunReturnsErrorWhenDatabaseConfigurationFails(t *testing.T) {
	restoreHooks(t)

	cfg := mockConfig()
	cfg.Database = config.DatabaseConfig{URL: "postgres://example"}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) {
		t.Fatal("mock database should not be used")
		return nil, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		return nil, errors.New("db connection refused")
	}

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 on database configuration failure, got %d", code)
	}
}

func TestRunReturnsErrorWhenPrefsFail(t *testing.T) {
	restoreHooks(t)

	loadConfigFunc = func() (config.Config, error) { return mockConfig(), nil }
	newMockDatabaseFunc = mock.New
	openPrefsFunc = func(config.PrefsConfig) (*prefs.Store, error) {
		return nil, errors.New("directory locked")
	}
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		t.Fatal("server should not be built without a preference store")
		return nil, nil
	}

	if code := run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1 when prefs fail, got %d", code)
	}
}

func TestRunReturnsErrorWhenLogLevelInvalid(t *testing.T) {
	restoreHooks(t)

	cfg := config.Config{Logging: config.LoggingConfig{Level: "invalid"}}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return errors.New("invalid level") }

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 for invalid log level, got %d", code)
	}
}

func TestRunReturnsErrorWhenLogFormatInvalid(t *testing.T) {
	restoreHooks(t)

	cfg := config.Config{Logging: config.LoggingConfig{Level: "info", Format: "xml"}}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogFormatFunc = func(string) error { return errors.New("unknown format") }

	if code := run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1 for invalid log format, got %d", code)
	}
}
