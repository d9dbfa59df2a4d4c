/*
 * Copyright 2024 InfAI (CC SES)
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package discovery_hdl

import (
	"bytes"
	"context"
	"fmt"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util/context_hdl"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"io"
	"strconv"
	"strings"
	"time"
)

// dockerClient is the subset of the docker SDK client used by the handler.
type dockerClient interface {
	Ping(ctx context.Context) (types.Ping, error)
	ContainerList(ctx context.Context, options types.ContainerListOptions) ([]types.Container, error)
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
	ContainerRestart(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerLogs(ctx context.Context, containerID string, options types.ContainerLogsOptions) (io.ReadCloser, error)
}

type Handler struct {
	dkClient dockerClient
	config   model.DiscoveryConfig
	timeout  time.Duration
}

func New(dkClient dockerClient, config model.DiscoveryConfig, timeout time.Duration) *Handler {
	return &Handler{
		dkClient: dkClient,
		config:   config,
		timeout:  timeout,
	}
}

func NewDockerClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

func (h *Handler) ListWorkloads(ctx context.Context) ([]model.Workload, error) {
	containers, err := h.dkClient.ContainerList(ctx, types.ContainerListOptions{All: true})
	if err != nil {
		return nil, model.NewUnavailableError(fmt.Errorf("listing workloads: %w", err))
	}
	var workloads []model.Workload
	for _, ctr := range containers {
		workloads = append(workloads, h.newWorkload(ctx, ctr))
	}
	return workloads, nil
}

func (h *Handler) ListGatewayWorkloads(ctx context.Context) ([]model.Workload, error) {
	workloads, err := h.ListWorkloads(ctx)
	if err != nil {
		return nil, err
	}
	var gateways []model.Workload
	for _, workload := range workloads {
		if h.isGatewayWorkload(workload) {
			gateways = append(gateways, workload)
		}
	}
	util.Logger.Debugf("discovery: %d of %d workloads classified as gateways", len(gateways), len(workloads))
	return gateways, nil
}

func (h *Handler) GetWorkload(ctx context.Context, name string) (model.Workload, error) {
	ch := context_hdl.New()
	defer ch.CancelAll()
	ctrJson, err := h.dkClient.ContainerInspect(ch.Add(context.WithTimeout(ctx, h.timeout)), name)
	if err != nil {
		if client.IsErrNotFound(err) {
			return model.Workload{}, model.NewNotFoundError(fmt.Errorf("workload '%s' not found", name))
		}
		return model.Workload{}, model.NewUnavailableError(err)
	}
	return workloadFromInspect(ctrJson), nil
}

func (h *Handler) RestartWorkload(ctx context.Context, name string) error {
	if err := h.dkClient.ContainerRestart(ctx, name, container.StopOptions{}); err != nil {
		if client.IsErrNotFound(err) {
			return model.NewNotFoundError(fmt.Errorf("workload '%s' not found", name))
		}
		return model.NewInternalError(err)
	}
	return nil
}

func (h *Handler) WorkloadLogs(ctx context.Context, name string, tail int) (string, error) {
	rc, err := h.dkClient.ContainerLogs(ctx, name, types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Timestamps: true,
		Tail:       strconv.Itoa(tail),
	})
	if err != nil {
		if client.IsErrNotFound(err) {
			return "", model.NewNotFoundError(fmt.Errorf("workload '%s' not found", name))
		}
		return "", model.NewInternalError(err)
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err = stdcopy.StdCopy(&buf, &buf, rc); err != nil {
		return "", model.NewInternalError(err)
	}
	return buf.String(), nil
}

// Available reports whether the container runtime responds to a ping.
func (h *Handler) Available(ctx context.Context) bool {
	_, err := h.dkClient.Ping(ctx)
	return err == nil
}

func (h *Handler) newWorkload(ctx context.Context, ctr types.Container) model.Workload {
	name := ""
	if len(ctr.Names) > 0 {
		name = strings.TrimPrefix(ctr.Names[0], "/")
	}
	workload := model.Workload{
		ID:      shortID(ctr.ID),
		Name:    name,
		State:   workloadState(ctr.State),
		Image:   ctr.Image,
		Created: time.Unix(ctr.Created, 0).UTC(),
		Ports:   portMappings(ctr.Ports),
		Labels:  ctr.Labels,
		Health:  "",
	}
	workload.Health = h.workloadHealth(ctx, ctr.ID, workload.State)
	return workload
}

// workloadHealth prefers the runtime's health-check result and falls back to
// a state-derived value when no health check is configured.
func (h *Handler) workloadHealth(ctx context.Context, id string, state model.WorkloadState) string {
	ch := context_hdl.New()
	defer ch.CancelAll()
	ctrJson, err := h.dkClient.ContainerInspect(ch.Add(context.WithTimeout(ctx, h.timeout)), id)
	if err == nil && ctrJson.State != nil && ctrJson.State.Health != nil {
		return ctrJson.State.Health.Status
	}
	switch state {
	case model.WorkloadRunning:
		return "healthy"
	case model.WorkloadExited, model.WorkloadDead:
		return "unhealthy"
	case model.WorkloadStarting:
		return "starting"
	default:
		return "unknown"
	}
}

func workloadFromInspect(ctrJson types.ContainerJSON) model.Workload {
	workload := model.Workload{
		ID:    shortID(ctrJson.ID),
		Name:  strings.TrimPrefix(ctrJson.Name, "/"),
		State: model.WorkloadUnknown,
	}
	if ctrJson.Config != nil {
		workload.Image = ctrJson.Config.Image
		workload.Labels = ctrJson.Config.Labels
	}
	if created, err := time.Parse(time.RFC3339Nano, ctrJson.Created); err == nil {
		workload.Created = created.UTC()
	}
	if ctrJson.State != nil {
		workload.State = workloadState(ctrJson.State.Status)
		if ctrJson.State.Health != nil {
			workload.Health = ctrJson.State.Health.Status
		}
	}
	ports := make(map[int]int)
	if ctrJson.NetworkSettings != nil {
		for portProto, bindings := range ctrJson.NetworkSettings.Ports {
			if len(bindings) == 0 {
				continue
			}
			internal := portProto.Int()
			if external, err := strconv.Atoi(bindings[0].HostPort); err == nil {
				ports[internal] = external
			}
		}
	}
	workload.Ports = ports
	if workload.Health == "" {
		switch workload.State {
		case model.WorkloadRunning:
			workload.Health = "healthy"
		case model.WorkloadExited, model.WorkloadDead:
			workload.Health = "unhealthy"
		case model.WorkloadStarting:
			workload.Health = "starting"
		default:
			workload.Health = "unknown"
		}
	}
	return workload
}

func workloadState(state string) model.WorkloadState {
	switch state {
	case "running":
		return model.WorkloadRunning
	case "exited":
		return model.WorkloadExited
	case "dead":
		return model.WorkloadDead
	case "created", "restarting":
		return model.WorkloadStarting
	default:
		return model.WorkloadUnknown
	}
}

func portMappings(ports []types.Port) map[int]int {
	mappings := make(map[int]int)
	for _, p := range ports {
		if p.PublicPort == 0 {
			continue
		}
		mappings[int(p.PrivatePort)] = int(p.PublicPort)
	}
	return mappings
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
