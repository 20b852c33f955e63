//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	ClientID    string
	AccessToken string
	ImgurPath   string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		ClientID:    os.Getenv("IMGUR_CLIENT_ID"),
		AccessToken: os.Getenv("IMGUR_ACCESS_TOKEN"),
		ImgurPath:   getImgurPath(),
		Verbose:     os.Getenv("IMGUR_VERBOSE") == "true",
	}
}

// getImgurPath determines the path to the imgur binary
func getImgurPath() string {
	if path := os.Getenv("IMGUR_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../imgur", "./imgur", "../imgur"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "imgur"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.ClientID == "" {
		t.Skip("IMGUR_CLIENT_ID not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.ImgurPath); err != nil {
		t.Skipf("imgur binary not found at %s, skipping integration test", config.ImgurPath)
	}
}

// SkipIfAnonymous skips tests that act on an account
func (config *TestConfig) SkipIfAnonymous(t *testing.T) {
	t.Helper()

	if config.AccessToken == "" {
		t.Skip("IMGUR_ACCESS_TOKEN not set, skipping authenticated integration test")
	}
}

// CommandRunner runs the imgur binary against an isolated config file
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes an imgur command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	cmd := exec.Command(runner.config.ImgurPath, args...) //nolint:gosec
	cmd.Env = append(os.Environ(), "IMGUR_CLIENT_ID="+runner.config.ClientID)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.ImgurPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}
