// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"io"
	"sync"
)

// Recorder is a Runner for tests. It records every command and answers with
// scripted results, without running anything.
type Recorder struct {
	mu       sync.Mutex
	commands []Command
	stdin    []string

	// Results are returned in order; once exhausted, commands succeed.
	Results []*Result
	// Missing lists tool names for which LookPath fails.
	Missing map[string]bool
}

// Run records cmd. Scripted Output is written to cmd.Stdout when set.
func (r *Recorder) Run(_ context.Context, cmd Command) *Result {
	res := r.record(cmd)
	if cmd.Stdout != nil && res.Output != "" {
		_, _ = io.WriteString(cmd.Stdout, res.Output)
	}
	return res
}

// Capture records cmd and returns the next scripted result.
func (r *Recorder) Capture(_ context.Context, cmd Command) *Result {
	return r.record(cmd)
}

// LookPath fails for names listed in Missing.
func (r *Recorder) LookPath(name string) (string, error) {
	if r.Missing[name] {
		return "", ErrToolNotFound
	}
	return "/usr/bin/" + name, nil
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}

// Argvs returns the argument vectors of the recorded commands.
func (r *Recorder) Argvs() [][]string {
	cmds := r.Commands()
	out := make([][]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Argv()
	}
	return out
}

// Stdin returns what each recorded command would have read from stdin.
func (r *Recorder) Stdin() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stdin...)
}

func (r *Recorder) record(cmd Command) *Result {
	var in string
	if cmd.Stdin != nil {
		b, _ := io.ReadAll(cmd.Stdin)
		in = string(b)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.commands = append(r.commands, cmd)
	r.stdin = append(r.stdin, in)

	if r.Missing[cmd.Name] {
		return NewErrorResult(1, ErrToolNotFound)
	}
	if len(r.Results) == 0 {
		return NewSuccessResult()
	}
	res := r.Results[0]
	r.Results = r.Results[1:]
	return res
}
