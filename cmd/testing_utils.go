// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for building a test CLI, faking the
// environment and the GitHub API, and capturing output.
package cmd

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/PolarWolf314/ghadmin/internal/configs"
	"github.com/PolarWolf314/ghadmin/internal/ghapi"
	logger "github.com/PolarWolf314/ghadmin/internal/logging"

	"github.com/spf13/cobra"
)

// setupTestEnvironment runs the test in a fresh working directory with the
// given environment and resets global command state afterwards.
func setupTestEnvironment(t *testing.T, env map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	originalGetenv, originalIsTerminal := getenv, stdinIsTerminal
	getenv = func(key string) string { return env[key] }
	stdinIsTerminal = func() bool { return false }

	ResetGlobalState()
	t.Cleanup(func() {
		getenv, stdinIsTerminal = originalGetenv, originalIsTerminal
		ResetGlobalState()
	})
	return dir
}

// useFakeGitHub points newAPIClient at handler for the rest of the test.
func useFakeGitHub(t *testing.T, handler http.Handler) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	original := newAPIClient
	newAPIClient = func(ctx context.Context, cfg *configs.Config) (*ghapi.Client, error) {
		return ghapi.NewClientWithHTTP(server.Client(), server.URL, server.URL+"/graphql")
	}
	t.Cleanup(func() { newAPIClient = original })
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channels to collect output
	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// createTestCLI creates a complete CLI instance for testing that runs args.
func createTestCLI(args ...string) *cobra.Command {
	Logger = logger.Logger{}

	rootCmd := &cobra.Command{
		Use:           "ghadmin",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(SecretsCmd)
	rootCmd.AddCommand(ReportCmd)
	rootCmd.AddCommand(MigrationsCmd)
	rootCmd.AddCommand(ConfigCmd)

	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI executes args and returns everything written to stdout and stderr.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	output, err := captureOutput(func() error {
		cli := createTestCLI(args...)
		cli.SetOut(os.Stdout)
		cli.SetErr(os.Stderr)
		return cli.Execute()
	})
	if err != nil {
		t.Fatalf("ghadmin %v failed: %v\n%s", args, err, output)
	}
	return output
}
