package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

func waitForOK(t *testing.T, url string) *http.Response {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			return resp
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("server at %s never answered", url)
	return nil
}

func TestRun_CancelReturnsNilAndReleasesPort(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "tts_app.html"), []byte("<html>tts</html>"), 0o644); err != nil {
		t.Fatalf("failed to write entry: %v", err)
	}
	port := freePort(t)
	args := []string{
		"-port", strconv.Itoa(port),
		"-dir", root,
		"-access-db", filepath.Join(t.TempDir(), "access.db"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, args, &out)
	}()

	resp := waitForOK(t, fmt.Sprintf("http://127.0.0.1:%d/tts_app.html", port))
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Cross-Origin-Embedder-Policy"); got != "require-corp" {
		t.Errorf("expected Cross-Origin-Embedder-Policy require-corp, got %q", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil on shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		t.Fatalf("expected rebind to succeed, got %v", err)
	}
	ln.Close()

	if !strings.Contains(out.String(), fmt.Sprintf("http://localhost:%d/tts_app.html", port)) {
		t.Errorf("expected banner with local url, got:\n%s", out.String())
	}
}

func TestRun_InvalidDirectory(t *testing.T) {
	args := []string{"-port", "0", "-dir", filepath.Join(t.TempDir(), "missing")}

	err := run(context.Background(), args, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRun_BadFlag(t *testing.T) {
	if err := run(context.Background(), []string{"-nope"}, &bytes.Buffer{}); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}

func TestNotifyShutdown_StopTwice(t *testing.T) {
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := notifyShutdown(cancel, &bytes.Buffer{}, os.Interrupt)
	stop()
	stop()
}
