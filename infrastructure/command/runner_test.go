package command

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestExecRunner_Run(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := NewExecRunner()

	if err := r.Run(context.Background(), "sh", "-c", "exit 0"); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	err := r.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	var cmdErr *Error
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Run() error = %T %v, want *Error", err, err)
	}
	if cmdErr.Stderr != "boom" {
		t.Errorf("Stderr = %q, want %q", cmdErr.Stderr, "boom")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error() = %q, want stderr included", err.Error())
	}
}

func TestExecRunner_RunCancelled(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewExecRunner().Run(ctx, "sleep", "5")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestExecRunner_Output(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	out, err := NewExecRunner().Output(context.Background(), "sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("Output() unexpected error: %v", err)
	}
	if string(out) != "hello" {
		t.Errorf("Output() = %q, want %q", out, "hello")
	}
}
