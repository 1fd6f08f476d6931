package docker

import (
	"context"
	"os"
	"sort"

	"github.com/veroxsity/sysmon/internal/logger"
)

// Inspector wraps the engine client and produces the per-cycle container
// snapshot the dashboard renders.
type Inspector struct {
	client     *Client
	socketPath string
	log        logger.Logger
}

// Snapshot is the state of the container runtime for one refresh cycle.
// Available is false when no engine socket exists or the engine does not
// answer; the rest of the fields are then empty.
type Snapshot struct {
	Available  bool
	Containers []ContainerSummary
	Services   []ServiceSummary
}

// ServiceSummary aggregates the containers of one compose service.
type ServiceSummary struct {
	Name    string
	Running int
	Total   int
}

// NewInspector returns an Inspector for the engine at socketPath.
func NewInspector(socketPath string, log logger.Logger) *Inspector {
	if log == nil {
		log = logger.Noop()
	}
	return &Inspector{
		client:     NewClient(socketPath),
		socketPath: socketPath,
		log:        log,
	}
}

// Inspect lists containers and derives the compose service summaries.
// Any failure yields an unavailable snapshot, never an error: a host
// without docker is a normal condition.
func (i *Inspector) Inspect(ctx context.Context) Snapshot {
	if _, err := os.Stat(i.socketPath); err != nil {
		return Snapshot{}
	}

	containers, err := i.client.ListContainers(ctx)
	if err != nil {
		i.log.Debug("docker list failed: %v", err)
		return Snapshot{}
	}

	// Running first, then by name, so the view is stable across refreshes.
	sort.SliceStable(containers, func(a, b int) bool {
		if containers[a].State != containers[b].State {
			return containers[a].State == "running"
		}
		return containers[a].Name() < containers[b].Name()
	})

	return Snapshot{
		Available:  true,
		Containers: containers,
		Services:   summarizeServices(containers),
	}
}

func summarizeServices(containers []ContainerSummary) []ServiceSummary {
	byName := make(map[string]*ServiceSummary)
	for _, c := range containers {
		svc := c.ComposeService()
		if svc == "" {
			continue
		}
		s, ok := byName[svc]
		if !ok {
			s = &ServiceSummary{Name: svc}
			byName[svc] = s
		}
		s.Total++
		if c.State == "running" {
			s.Running++
		}
	}

	out := make([]ServiceSummary, 0, len(byName))
	for _, s := range byName {
		out = append(out, *s)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}
