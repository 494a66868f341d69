package e2etest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/status-im/market-dashboard/core"
)

// TestEnv represents a test environment
type TestEnv struct {
	App           *core.App
	MockServer    *MockServer
	Context       context.Context
	CancelFunc    context.CancelFunc
	ConfigPath    string
	ServerBaseURL string
}

// SetupTest starts the whole application against a mock provider. prepare
// runs before the services start, so it can shape the first refresh.
func SetupTest(t *testing.T, prepare ...func(*MockServer)) *TestEnv {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("DASHBOARD_CURRENCY", "")

	ctx, cancel := context.WithCancel(context.Background())
	mockServer := NewMockServer()
	for _, fn := range prepare {
		fn(mockServer)
	}

	env := &TestEnv{MockServer: mockServer, Context: ctx, CancelFunc: cancel}
	t.Cleanup(env.TearDown)

	port := freePort(t)
	cfg, configPath, err := loadTestConfig(mockServer.GetURL(), port)
	require.NoError(t, err, "Failed to load test config")
	env.ConfigPath = configPath

	app, err := core.Setup(ctx, cfg, core.Options{Serve: true})
	require.NoError(t, err, "Failed to setup services")
	env.App = app

	require.NoError(t, app.Registry.StartAll(ctx), "Failed to start services")

	env.ServerBaseURL = fmt.Sprintf("http://127.0.0.1:%s", port)
	waitForServer(t, env.ServerBaseURL)

	return env
}

// TearDown releases test environment resources
func (env *TestEnv) TearDown() {
	if env.App != nil {
		env.App.Registry.StopAll()
		env.App = nil
	}
	if env.MockServer != nil {
		env.MockServer.Close()
		env.MockServer = nil
	}
	if env.CancelFunc != nil {
		env.CancelFunc()
	}
	if env.ConfigPath != "" {
		cleanupTestConfig(env.ConfigPath)
		env.ConfigPath = ""
	}
}

func freePort(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	return strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)
}

// waitForServer polls /health until the API answers
func waitForServer(t *testing.T, baseURL string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("Server at %s did not become ready", baseURL)
}
