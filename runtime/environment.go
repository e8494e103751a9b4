package runtime

import "fmt"

// Kind selects how Scheduler.Run fans worker goroutines out (spec
// §6's "standard dataflow runtime selector").
type Kind int

const (
	// Thread runs a single worker goroutine.
	Thread Kind = iota
	// Process runs Threads workers as goroutines within this process,
	// with no cross-process coordination.
	Process
	// Cluster runs Threads workers per process, coordinating a shared
	// progress frontier across NumProcesses processes over Redis.
	Cluster
)

func (k Kind) String() string {
	switch k {
	case Thread:
		return "thread"
	case Process:
		return "process"
	case Cluster:
		return "cluster"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Environment is the resolved runtime shape for one invocation: how
// many worker goroutines to run, and — in Cluster mode — the
// coordinates needed to address the shared progress channel.
type Environment struct {
	Kind Kind

	// Threads is the number of worker goroutines per process. Ignored
	// (treated as 1) for Thread.
	Threads int

	// ProcessIndex and NumProcesses identify this process among its
	// peers. Only meaningful for Cluster.
	ProcessIndex int
	NumProcesses int
}

// NewThread returns the single-goroutine environment.
func NewThread() Environment { return Environment{Kind: Thread, Threads: 1} }

// NewProcess returns a Process environment running threads worker
// goroutines with no cross-process coordination.
func NewProcess(threads int) Environment { return Environment{Kind: Process, Threads: threads} }

// NewCluster returns a Cluster environment running threads worker
// goroutines coordinated, via the progress barrier of cluster.go,
// with numProcesses peer processes identified by processIndex.
func NewCluster(threads, processIndex, numProcesses int) Environment {
	return Environment{Kind: Cluster, Threads: threads, ProcessIndex: processIndex, NumProcesses: numProcesses}
}

// NumWorkers reports how many worker goroutines Scheduler.Run should
// start for this environment.
func (e Environment) NumWorkers() int {
	if e.Kind == Thread {
		return 1
	}
	if e.Threads <= 0 {
		return 1
	}
	return e.Threads
}
