package collector

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/NVIDIA/slurmdocs/pkg/defaults"
	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/NVIDIA/slurmdocs/pkg/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"k8s.io/utils/set"
)

// NodeCommand prints the cluster wide node topology.
const NodeCommand = "scontrol show node"

// validName restricts values interpolated into remote shell commands.
var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// CPUCommand returns the srun invocation printing lscpu on node.
func CPUCommand(partition, qos, node string) string {
	return fmt.Sprintf("srun -p %s -q %s -w %s lscpu", partition, qos, node)
}

// Collector fetches raw artifacts and hands them to a Sink.
// Fetches may run concurrently; inserts are always sequential.
type Collector struct {
	Fetcher Fetcher
	Sink    Sink

	// Partition and QOS are passed to srun. Default to "debug".
	Partition string
	QOS       string

	// Timeout bounds each remote command. Defaults to defaults.CollectorTimeout.
	Timeout time.Duration

	// Concurrency bounds in-flight cpu fetches. Defaults to defaults.DefaultCollectConcurrency.
	Concurrency int

	// Rate bounds command launches per second. Zero selects defaults.DefaultCollectRate,
	// a negative value disables limiting.
	Rate float64
}

func (c *Collector) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaults.CollectorTimeout
}

func (c *Collector) fetch(ctx context.Context, category store.Category, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	start := time.Now()
	out, err := c.Fetcher.Fetch(ctx, command)
	fetchDuration.WithLabelValues(category.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		fetchTotal.WithLabelValues(category.String(), "error").Inc()
		return "", err
	}
	fetchTotal.WithLabelValues(category.String(), "success").Inc()
	return out, nil
}

func (c *Collector) check() error {
	if c.Fetcher == nil || c.Sink == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "collector needs a fetcher and a sink")
	}
	return nil
}

// CollectNodes fetches the node snapshot and stores it as node/<filename>.
// An empty filename selects defaults.NodeFileName.
func (c *Collector) CollectNodes(ctx context.Context, filename string) (*Result, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if filename == "" {
		filename = defaults.NodeFileName
	}

	res := &Result{RunID: uuid.New().String(), Category: store.CategoryNode, Stored: []string{}}
	log := slog.With(slog.String("run", res.RunID))
	log.Debug("collecting node snapshot")

	out, err := c.fetch(ctx, store.CategoryNode, NodeCommand)
	if err != nil {
		return nil, fmt.Errorf("failed to collect node snapshot: %w", err)
	}
	if err := c.Sink.Insert(store.CategoryNode, filename, out); err != nil {
		return nil, fmt.Errorf("failed to store node snapshot: %w", err)
	}
	res.Stored = append(res.Stored, filename)

	log.Debug("node snapshot stored", slog.String("filename", filename), slog.Int("bytes", len(out)))
	return res, nil
}

// CollectCPU fetches lscpu for every node and stores each as
// cpu/<node>.txt. Nodes whose fetch fails are listed in Result.Failed and do
// not stop the others. The call fails only when the context ends or every
// node failed.
func (c *Collector) CollectCPU(ctx context.Context, nodes []string) (*Result, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "no nodes to collect")
	}

	partition, qos := c.Partition, c.QOS
	if partition == "" {
		partition = defaults.DefaultPartition
	}
	if qos == "" {
		qos = defaults.DefaultQOS
	}
	nodes = distinct(nodes)
	for _, v := range append([]string{partition, qos}, nodes...) {
		if !validName.MatchString(v) {
			return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("invalid name %q", v))
		}
	}

	res := &Result{
		RunID:    uuid.New().String(),
		Category: store.CategoryCPU,
		Stored:   []string{},
		Failed:   map[string]string{},
	}
	log := slog.With(slog.String("run", res.RunID))
	log.Debug("collecting cpu descriptors", slog.Int("nodes", len(nodes)))

	limiter := c.limiter()
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = defaults.DefaultCollectConcurrency
	}

	var mu sync.Mutex
	outputs := make(map[string]string, len(nodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, node := range nodes {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}
			out, err := c.fetch(gctx, store.CategoryCPU, CPUCommand(partition, qos, node))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn("cpu collection failed", slog.String("node", node), slog.String("error", err.Error()))
				res.Failed[node] = err.Error()
				return nil
			}
			outputs[node] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, errors.Wrap(errors.ErrCodeTimeout, "cpu collection interrupted", err)
	}
	if err := ctx.Err(); err != nil {
		return res, errors.Wrap(errors.ErrCodeTimeout, "cpu collection interrupted", err)
	}

	for _, node := range nodes {
		out, ok := outputs[node]
		if !ok {
			continue
		}
		filename := node + defaults.CPUFileSuffix
		if err := c.Sink.Insert(store.CategoryCPU, filename, out); err != nil {
			res.Failed[node] = err.Error()
			continue
		}
		res.Stored = append(res.Stored, filename)
	}

	log.Debug("cpu collection complete", slog.Int("stored", len(res.Stored)), slog.Int("failed", len(res.Failed)))
	if len(res.Stored) == 0 {
		return res, errors.WithContext(errors.ErrCodeUnavailable,
			fmt.Sprintf("cpu collection failed on all %d nodes", len(nodes)),
			map[string]any{"failed": res.Failed})
	}
	return res, nil
}

// distinct drops repeated node names, keeping first occurrences.
func distinct(nodes []string) []string {
	seen := set.New[string]()
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if seen.Has(n) {
			continue
		}
		seen.Insert(n)
		out = append(out, n)
	}
	return out
}

func (c *Collector) limiter() *rate.Limiter {
	switch {
	case c.Rate < 0:
		return rate.NewLimiter(rate.Inf, 1)
	case c.Rate == 0:
		return rate.NewLimiter(rate.Limit(defaults.DefaultCollectRate), 1)
	default:
		return rate.NewLimiter(rate.Limit(c.Rate), 1)
	}
}
