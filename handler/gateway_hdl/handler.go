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

package gateway_hdl

import (
	"context"
	"errors"
	"fmt"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/handler"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util"
	"sync"
	"time"
)

// Handler aggregates workload snapshots, identity resolution and network
// probes into gateway records. Records are built fresh per call and never
// stored; the probe layer carries its own short-lived cache.
type Handler struct {
	discoveryHdl handler.DiscoveryHandler
	identityHdl  handler.IdentityHandler
	probeHdl     handler.ProbeHandler
	cacheHdl     handler.CacheHandler
}

// syntheticFleet is the fixed fallback dataset reported when the container
// runtime yields no workloads. The records are not probed, only tagged with
// their source so consumers can tell them from live data.
func syntheticFleet() []model.GatewayRecord {
	now := time.Now().UTC()
	rt1, rt2 := 45.2, 52.8
	trial1 := model.NewTrialInfo(168, "7 days", false, true)
	trial2 := model.NewTrialInfo(72, "3 days", false, true)
	trial3 := model.NewTrialInfo(24, "1 day", false, true)
	return []model.GatewayRecord{
		{
			Name:         "CVSIGDT1",
			Port:         intPtr(8088),
			Status:       model.HealthStateHealthy,
			Accessible:   true,
			ResponseTime: &rt1,
			LastCheck:    &now,
			Trial:        &trial1,
			Source:       model.RecordSourceSynthetic,
		},
		{
			Name:         "CVSIGDT2",
			Port:         intPtr(8089),
			Status:       model.HealthStateHealthy,
			Accessible:   true,
			ResponseTime: &rt2,
			LastCheck:    &now,
			Trial:        &trial2,
			Source:       model.RecordSourceSynthetic,
		},
		{
			Name:      "VIGDS3",
			Port:      intPtr(8090),
			Status:    model.HealthStateStarting,
			LastCheck: &now,
			Trial:     &trial3,
			Source:    model.RecordSourceSynthetic,
		},
	}
}

func New(discoveryHdl handler.DiscoveryHandler, identityHdl handler.IdentityHandler, probeHdl handler.ProbeHandler, cacheHdl handler.CacheHandler) *Handler {
	return &Handler{
		discoveryHdl: discoveryHdl,
		identityHdl:  identityHdl,
		probeHdl:     probeHdl,
		cacheHdl:     cacheHdl,
	}
}

func (h *Handler) List(ctx context.Context) ([]model.GatewayRecord, error) {
	workloads, err := h.discoveryHdl.ListGatewayWorkloads(ctx)
	if err != nil {
		var uErr *model.UnavailableError
		if !errors.As(err, &uErr) {
			return nil, err
		}
		util.Logger.Warningf("gateway list: %s", err)
	}
	if len(workloads) == 0 {
		return syntheticFleet(), nil
	}
	records := make([]model.GatewayRecord, len(workloads))
	wg := sync.WaitGroup{}
	for i, workload := range workloads {
		wg.Add(1)
		go func(pos int, wl model.Workload) {
			defer wg.Done()
			records[pos] = h.newRecord(ctx, wl)
		}(i, workload)
	}
	wg.Wait()
	return records, nil
}

func (h *Handler) Get(ctx context.Context, name string) (model.GatewayRecord, error) {
	workload, err := h.findWorkload(ctx, name)
	if err != nil {
		return model.GatewayRecord{}, err
	}
	return h.newRecord(ctx, workload), nil
}

func (h *Handler) Restart(ctx context.Context, name string) (model.ActionResult, error) {
	workload, err := h.findWorkload(ctx, name)
	if err != nil {
		return model.ActionResult{Success: false, Message: fmt.Sprintf("gateway '%s' not found", name)}, err
	}
	if err = h.discoveryHdl.RestartWorkload(ctx, workload.Name); err != nil {
		return model.ActionResult{Success: false, Message: fmt.Sprintf("restarting gateway '%s' failed", name)}, err
	}
	if webPort := h.identityHdl.Resolve(workload).WebPort; webPort != nil {
		h.cacheHdl.Invalidate(*webPort)
	}
	util.Logger.Infof("gateway '%s' restarted (workload '%s')", name, workload.Name)
	return model.ActionResult{Success: true, Message: fmt.Sprintf("gateway '%s' restart initiated", name)}, nil
}

func (h *Handler) Logs(ctx context.Context, name string, lines int) (string, error) {
	if lines < 1 || lines > model.LogLinesMax {
		lines = model.LogLinesMax
	}
	workload, err := h.findWorkload(ctx, name)
	if err != nil {
		return "", err
	}
	return h.discoveryHdl.WorkloadLogs(ctx, workload.Name, lines)
}

func (h *Handler) RuntimeInfo(ctx context.Context) (bool, int) {
	if !h.discoveryHdl.Available(ctx) {
		return false, 0
	}
	workloads, err := h.discoveryHdl.ListWorkloads(ctx)
	if err != nil {
		return false, 0
	}
	return true, len(workloads)
}

// findWorkload tries the naming-convention candidates in priority order.
func (h *Handler) findWorkload(ctx context.Context, name string) (model.Workload, error) {
	for _, candidate := range h.identityHdl.CandidateNames(name) {
		workload, err := h.discoveryHdl.GetWorkload(ctx, candidate)
		if err != nil {
			var nfErr *model.NotFoundError
			if errors.As(err, &nfErr) {
				continue
			}
			return model.Workload{}, err
		}
		return workload, nil
	}
	return model.Workload{}, model.NewNotFoundError(fmt.Errorf("gateway '%s' not found", name))
}

func (h *Handler) newRecord(ctx context.Context, workload model.Workload) model.GatewayRecord {
	identity := h.identityHdl.Resolve(workload)
	created := workload.Created
	record := model.GatewayRecord{
		Name:           identity.Name,
		Port:           identity.WebPort,
		Status:         model.HealthStateUnknown,
		WorkloadID:     workload.ID,
		WorkloadState:  workload.State,
		WorkloadHealth: workload.Health,
		Image:          workload.Image,
		Created:        &created,
		Source:         model.RecordSourceRuntime,
	}
	if identity.WebPort == nil {
		return record
	}
	h.probeRecord(ctx, &record, *identity.WebPort)
	return record
}

func (h *Handler) probeRecord(ctx context.Context, record *model.GatewayRecord, port int) {
	health := h.probeHdl.CheckHealth(ctx, port)
	record.Status = health.Status
	record.Accessible = health.Accessible
	record.ResponseTime = health.ResponseTime
	lastCheck := health.LastCheck
	record.LastCheck = &lastCheck
	trial := h.probeHdl.FetchTrialInfo(ctx, port)
	record.Trial = &trial
}

func intPtr(v int) *int {
	return &v
}
