package collector_test

import (
	"testing"
	"time"

	"github.com/NVIDIA/slurmdocs/pkg/collector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFactory_CreateFetcher(t *testing.T) {
	factory := collector.NewDefaultFactory("alice", "login01")
	factory.SSH.Port = 2222

	f := factory.CreateFetcher()
	ssh, ok := f.(*collector.SSHFetcher)
	require.True(t, ok, "expected *SSHFetcher, got %T", f)
	assert.Equal(t, "alice", ssh.User)
	assert.Equal(t, "login01", ssh.Host)
	assert.Equal(t, 2222, ssh.Port)

	// Copies are independent of the factory.
	ssh.Host = "other"
	assert.Equal(t, "login01", factory.SSH.Host)
}

func TestDefaultFactory_CreateCollector(t *testing.T) {
	factory := collector.NewDefaultFactory("alice", "login01")
	factory.Partition = "gpu"
	factory.QOS = "normal"
	factory.Timeout = 3 * time.Second
	factory.Concurrency = 8
	factory.Rate = -1

	sink := newMemorySink()
	c := factory.CreateCollector(sink)
	require.NotNil(t, c)
	assert.Equal(t, "gpu", c.Partition)
	assert.Equal(t, "normal", c.QOS)
	assert.Equal(t, 3*time.Second, c.Timeout)
	assert.Equal(t, 8, c.Concurrency)
	assert.InDelta(t, -1, c.Rate, 0)
	assert.Same(t, sink, c.Sink)
	assert.IsType(t, &collector.SSHFetcher{}, c.Fetcher)
}
