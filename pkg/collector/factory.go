package collector

import (
	"time"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateFetcher() Fetcher
	CreateCollector(sink Sink) *Collector
}

// DefaultFactory creates collectors backed by the system ssh client.
type DefaultFactory struct {
	SSH SSHFetcher

	Partition   string
	QOS         string
	Timeout     time.Duration
	Concurrency int
	Rate        float64
}

// NewDefaultFactory creates a factory targeting user@host with default
// port and throttles.
func NewDefaultFactory(user, host string) *DefaultFactory {
	return &DefaultFactory{
		SSH: SSHFetcher{User: user, Host: host},
	}
}

// CreateFetcher returns an ssh fetcher for the configured login node.
func (f *DefaultFactory) CreateFetcher() Fetcher {
	ssh := f.SSH
	return &ssh
}

// CreateCollector returns a collector writing into sink.
func (f *DefaultFactory) CreateCollector(sink Sink) *Collector {
	return &Collector{
		Fetcher:     f.CreateFetcher(),
		Sink:        sink,
		Partition:   f.Partition,
		QOS:         f.QOS,
		Timeout:     f.Timeout,
		Concurrency: f.Concurrency,
		Rate:        f.Rate,
	}
}
