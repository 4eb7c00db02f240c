// Package collector gathers raw Slurm artifacts from a cluster login node.
//
// A Fetcher runs one shell command remotely and returns its stdout;
// SSHFetcher shells out to the system ssh client in batch mode. A Collector
// drives the fetcher and persists results through a Sink, normally a
// *store.Store:
//
//	c := collector.NewDefaultFactory("alice", "login01").CreateCollector(st)
//	res, err := c.CollectCPU(ctx, []string{"cn001", "cn002"})
//
// CollectNodes stores the output of "scontrol show node". CollectCPU runs
// "srun -p <partition> -q <qos> -w <node> lscpu" per node, bounded by
// Concurrency and Rate, and stores one cpu/<node>.txt per success.
// Per-node failures are reported in Result.Failed.
package collector
