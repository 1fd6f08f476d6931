// Package docker provides a minimal Docker Engine API client over the unix
// socket, just enough to list containers for the containers view. Hosts
// without a docker socket are common; everything here degrades to
// "unavailable" rather than erroring the dashboard.
package docker

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/veroxsity/sysmon/internal/errors"
)

// composeServiceLabel is set by docker compose on every container it manages.
const composeServiceLabel = "com.docker.compose.service"

// Client talks to the Docker Engine API over a unix socket.
type Client struct {
	socketPath string
	http       *http.Client
}

// ContainerSummary mirrors the fields of /containers/json we render.
type ContainerSummary struct {
	ID      string            `json:"Id"`
	Names   []string          `json:"Names"`
	Image   string            `json:"Image"`
	State   string            `json:"State"`
	Status  string            `json:"Status"`
	Labels  map[string]string `json:"Labels"`
	Created int64             `json:"Created"`
}

// Name returns the primary container name without the leading slash.
func (c ContainerSummary) Name() string {
	if len(c.Names) == 0 {
		return c.ID[:min(12, len(c.ID))]
	}
	return strings.TrimPrefix(c.Names[0], "/")
}

// ComposeService returns the compose service name, or "" for containers not
// managed by compose.
func (c ContainerSummary) ComposeService() string {
	return c.Labels[composeServiceLabel]
}

// NewClient returns a client for the engine listening on socketPath.
func NewClient(socketPath string) *Client {
	dialer := &net.Dialer{Timeout: 2 * time.Second}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, "unix", socketPath)
		},
	}
	return &Client{
		socketPath: socketPath,
		http:       &http.Client{Transport: transport, Timeout: 5 * time.Second},
	}
}

// Ping checks whether the engine is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/_ping")
	return err
}

// ListContainers returns all containers, including stopped ones.
func (c *Client) ListContainers(ctx context.Context) ([]ContainerSummary, error) {
	b, err := c.get(ctx, "/containers/json?all=1")
	if err != nil {
		return nil, err
	}
	var out []ContainerSummary
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDocker,
			"Unexpected response from docker engine",
			"Check the docker daemon version")
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, p string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://unix"+p, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDocker,
			"Cannot reach docker engine at "+c.socketPath,
			"Check that the docker daemon is running and the socket is readable")
	}
	defer res.Body.Close()

	b, err := io.ReadAll(io.LimitReader(res.Body, 10<<20))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDocker,
			"Failed reading docker engine response", "")
	}
	if res.StatusCode >= 300 {
		msg := strings.TrimSpace(string(b))
		if msg == "" {
			msg = res.Status
		}
		return nil, errors.New(errors.ErrDocker,
			"Docker API request failed: "+msg, "")
	}
	return b, nil
}
