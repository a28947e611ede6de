// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// DryRunRunner prints each command line instead of executing it.
type DryRunRunner struct {
	mu  sync.Mutex
	out io.Writer
	// Tools maps default tool names to configured binaries, as in ExecRunner.
	Tools map[string]string
}

// NewDryRunRunner creates a DryRunRunner writing to out.
func NewDryRunRunner(out io.Writer, tools map[string]string) *DryRunRunner {
	return &DryRunRunner{out: out, Tools: tools}
}

// Run prints the command and reports success.
func (r *DryRunRunner) Run(_ context.Context, cmd Command) *Result {
	r.print(cmd)
	return NewSuccessResult()
}

// Capture prints the command and reports success with empty output.
func (r *DryRunRunner) Capture(_ context.Context, cmd Command) *Result {
	r.print(cmd)
	return NewSuccessResult()
}

// LookPath resolves overrides but does not require the tool to be installed;
// a dry run on a machine without the tool is still useful.
func (r *DryRunRunner) LookPath(name string) (string, error) {
	bin := name
	if b, ok := r.Tools[name]; ok && b != "" {
		bin = b
	}
	if path, err := exec.LookPath(bin); err == nil {
		return path, nil
	}
	return bin, nil
}

func (r *DryRunRunner) print(cmd Command) {
	if b, ok := r.Tools[cmd.Name]; ok && b != "" {
		cmd.Name = b
	}

	var sb strings.Builder
	if cmd.Dir != "" {
		sb.WriteString("cd " + quote(cmd.Dir) + " && ")
	}
	for _, kv := range cmd.Env {
		sb.WriteString(quote(kv) + " ")
	}
	sb.WriteString(cmd.String())

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, sb.String())
}
