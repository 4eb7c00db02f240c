package defaults

import "time"

// Store layout.
const (
	// RootDirName is the per-user directory under $HOME holding all slurmdocs state.
	RootDirName = ".slurmdocs"

	// DatabaseDirName is the directory under RootDirName holding database instances.
	DatabaseDirName = "database"

	// CPUFileSuffix is appended to a NodeName to form its cpu artifact filename.
	CPUFileSuffix = ".txt"

	// NodeFileName is the filename used for collected node snapshots.
	NodeFileName = "node_info.txt"

	// MaxArtifactSize bounds the size of a single stored artifact.
	MaxArtifactSize = 16 << 20
)

// Collector settings.
const (
	// CollectorTimeout bounds a single remote command.
	CollectorTimeout = 10 * time.Second

	// DefaultSSHPort is the port used when none is given.
	DefaultSSHPort = 22

	// DefaultCollectConcurrency is the number of cpu collections in flight.
	DefaultCollectConcurrency = 4

	// DefaultCollectRate is the number of remote commands started per second.
	DefaultCollectRate = 2.0

	// DefaultPartition and DefaultQOS are used for srun when collecting cpu data.
	DefaultPartition = "debug"
	DefaultQOS       = "debug"
)
