package collector

import (
	"context"

	"github.com/NVIDIA/slurmdocs/pkg/store"
)

// Fetcher runs a command on a remote target and returns its raw stdout.
// Implementations must honor context cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, command string) (string, error)
}

// Sink persists collected artifacts. *store.Store satisfies it.
type Sink interface {
	Insert(c store.Category, filename, content string) error
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, command string) (string, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, command string) (string, error) {
	return f(ctx, command)
}

// Result summarizes one collection run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string `json:"runId" yaml:"runId"`

	// Category is the category the artifacts were stored under.
	Category store.Category `json:"category" yaml:"category"`

	// Stored lists the filenames written, in order.
	Stored []string `json:"stored" yaml:"stored"`

	// Failed maps node names to the reason their collection failed.
	Failed map[string]string `json:"failed,omitempty" yaml:"failed,omitempty"`
}
