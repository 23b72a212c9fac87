package runner

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/nalgeon/be"
)

func requireCommand(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestRunPassesCodeOnStdin(t *testing.T) {
	requireCommand(t, "cat")
	out, err := Runner{Command: "cat"}.Run(context.Background(), "console.log(1);")
	be.Err(t, err, nil)
	be.Equal(t, out.Stdout, "console.log(1);")
	be.Equal(t, out.ExitCode, 0)
}

func TestRunReportsExitStatus(t *testing.T) {
	requireCommand(t, "sh")
	r := Runner{Command: "sh", Args: []string{"-c", "echo oops >&2; exit 3"}}
	out, err := r.Run(context.Background(), "")
	be.Err(t, err, "exited with status 3")
	be.Equal(t, out.Stderr, "oops\n")
	be.Equal(t, out.ExitCode, 3)
}

func TestRunTimeout(t *testing.T) {
	requireCommand(t, "sleep")
	r := Runner{Command: "sleep", Args: []string{"5"}, Timeout: 50 * time.Millisecond}
	_, err := r.Run(context.Background(), "")
	be.True(t, errors.Is(err, ErrTimeout))
}

func TestRunMissingCommand(t *testing.T) {
	r := Runner{Command: "ks-no-such-engine"}
	be.True(t, !r.Available())
	_, err := r.Run(context.Background(), "")
	be.Err(t, err, "failed to run ks-no-such-engine")
}

func TestRunNode(t *testing.T) {
	r := Runner{Timeout: 10 * time.Second}
	if !r.Available() {
		t.Skip("node not available")
	}
	out, err := r.Run(context.Background(), `for (let i = 1; i <= 3; i++) { console.log(i); }`)
	be.Err(t, err, nil)
	be.Equal(t, out.Stdout, "1\n2\n3\n")
}
