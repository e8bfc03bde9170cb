package runner

import (
	"context"
	"sync"
)

// Recorder is a Runner that records every command instead of executing it.
// Respond, when set, decides the outcome of each call; otherwise every
// command succeeds with exit code 0.
type Recorder struct {
	mu       sync.Mutex
	Commands []Command
	Respond  func(cmd Command) (*Result, error)
}

// Run records cmd and returns the scripted outcome.
func (r *Recorder) Run(ctx context.Context, cmd Command) (*Result, error) {
	r.mu.Lock()
	r.Commands = append(r.Commands, cmd)
	respond := r.Respond
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &StartError{Command: cmd.String(), Err: err}
	}
	if respond == nil {
		return &Result{}, nil
	}
	return respond(cmd)
}

// Calls returns a snapshot of the recorded commands.
func (r *Recorder) Calls() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.Commands))
	copy(out, r.Commands)
	return out
}
