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
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util/naming_hdl"
	"github.com/y-du/go-log-level/level"
	"reflect"
	"sort"
	"sync"
	"testing"
	"time"
)

func init() {
	if _, err := util.InitLogger(util.LoggerConfig{Level: level.Error, Terminal: true}); err != nil {
		panic(err)
	}
}

type mockDiscovery struct {
	workloads  []model.Workload
	listErr    error
	available  bool
	restarted  []string
	restartErr error
	logs       string
	logsTail   int
}

func (d *mockDiscovery) ListWorkloads(_ context.Context) ([]model.Workload, error) {
	return d.workloads, d.listErr
}

func (d *mockDiscovery) ListGatewayWorkloads(ctx context.Context) ([]model.Workload, error) {
	return d.ListWorkloads(ctx)
}

func (d *mockDiscovery) GetWorkload(_ context.Context, name string) (model.Workload, error) {
	for _, workload := range d.workloads {
		if workload.Name == name {
			return workload, nil
		}
	}
	return model.Workload{}, model.NewNotFoundError(fmt.Errorf("workload '%s' not found", name))
}

func (d *mockDiscovery) RestartWorkload(_ context.Context, name string) error {
	if d.restartErr != nil {
		return d.restartErr
	}
	d.restarted = append(d.restarted, name)
	return nil
}

func (d *mockDiscovery) WorkloadLogs(_ context.Context, _ string, tail int) (string, error) {
	d.logsTail = tail
	return d.logs, nil
}

func (d *mockDiscovery) Available(_ context.Context) bool {
	return d.available
}

type mockProbe struct {
	mu     sync.Mutex
	probed []int
}

func (p *mockProbe) CheckHealth(_ context.Context, port int) model.HealthInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probed = append(p.probed, port)
	rt := 5.0
	return model.HealthInfo{
		Status:       model.HealthStateHealthy,
		ResponseTime: &rt,
		Accessible:   true,
		LastCheck:    time.Now().UTC(),
	}
}

func (p *mockProbe) FetchTrialInfo(_ context.Context, port int) model.TrialInfo {
	return model.NewTrialInfo(72, "3 days", false, false)
}

type mockCache struct {
	invalidated []int
}

func (c *mockCache) Get(_ model.CacheKind, _ int) (any, bool) {
	return nil, false
}

func (c *mockCache) Put(_ model.CacheKind, _ int, _ any) {}

func (c *mockCache) Invalidate(port int) {
	c.invalidated = append(c.invalidated, port)
}

func newTestHandler(discovery *mockDiscovery) (*Handler, *mockProbe, *mockCache) {
	probe := &mockProbe{}
	cache := &mockCache{}
	identity := naming_hdl.New(model.DiscoveryConfig{
		NamePrefix:      "ignition-",
		NameSuffix:      "-gateway",
		WebPortPriority: []int{8088, 8043, 8089, 8090},
	})
	return New(discovery, identity, probe, cache), probe, cache
}

func TestHandler_List(t *testing.T) {
	discovery := &mockDiscovery{
		workloads: []model.Workload{
			{ID: "a1", Name: "ignition-cvsigdt1", State: model.WorkloadRunning, Ports: map[int]int{8088: 8088}},
			{ID: "b2", Name: "cvsigdt2", State: model.WorkloadRunning, Ports: map[int]int{8089: 8089}},
			{ID: "c3", Name: "vigds3-gateway", State: model.WorkloadExited},
		},
	}
	h, probe, _ := newTestHandler(discovery)
	records, err := h.List(context.Background())
	if err != nil {
		t.Error("err != nil")
	}
	if len(records) != 3 {
		t.Errorf("3 != %d", len(records))
	}
	a := []string{"CVSIGDT1", "CVSIGDT2", "VIGDS3"}
	var b []string
	for _, record := range records {
		b = append(b, record.Name)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("%v != %v", a, b)
	}
	for _, record := range records {
		if record.Source != model.RecordSourceRuntime {
			t.Errorf("%s != %s", model.RecordSourceRuntime, record.Source)
		}
	}
	// no web port: no probe, unknown health, no trial data
	if records[2].Port != nil {
		t.Error("port != nil")
	}
	if records[2].Status != model.HealthStateUnknown {
		t.Errorf("%s != %s", model.HealthStateUnknown, records[2].Status)
	}
	if records[2].Trial != nil {
		t.Error("trial != nil")
	}
	sort.Ints(probe.probed)
	if !reflect.DeepEqual([]int{8088, 8089}, probe.probed) {
		t.Errorf("%v != %v", []int{8088, 8089}, probe.probed)
	}
	if records[0].Trial == nil {
		t.Error("trial == nil")
	}
}

func TestHandler_ListSynthetic(t *testing.T) {
	h, probe, _ := newTestHandler(&mockDiscovery{})
	records, err := h.List(context.Background())
	if err != nil {
		t.Error("err != nil")
	}
	a := []string{"CVSIGDT1", "CVSIGDT2", "VIGDS3"}
	var b []string
	for _, record := range records {
		b = append(b, record.Name)
		if record.Source != model.RecordSourceSynthetic {
			t.Errorf("%s != %s", model.RecordSourceSynthetic, record.Source)
		}
		if !record.Trial.Synthetic {
			t.Error("synthetic == false")
		}
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("%v != %v", a, b)
	}
	c := []model.HealthState{model.HealthStateHealthy, model.HealthStateHealthy, model.HealthStateStarting}
	for i, record := range records {
		if record.Status != c[i] {
			t.Errorf("%s: %s != %s", record.Name, c[i], record.Status)
		}
	}
	d := []string{"7 days", "3 days", "1 day"}
	for i, record := range records {
		if record.Trial.RemainingDisplay != d[i] {
			t.Errorf("%s: %s != %s", record.Name, d[i], record.Trial.RemainingDisplay)
		}
	}
	// the fixed dataset is returned as is, no network probes
	if len(probe.probed) != 0 {
		t.Errorf("[] != %v", probe.probed)
	}
}

func TestHandler_ListRuntimeDown(t *testing.T) {
	discovery := &mockDiscovery{listErr: model.NewUnavailableError(errors.New("runtime down"))}
	h, probe, _ := newTestHandler(discovery)
	records, err := h.List(context.Background())
	if err != nil {
		t.Error("err != nil")
	}
	if len(records) != 3 {
		t.Errorf("3 != %d", len(records))
	}
	if len(probe.probed) != 0 {
		t.Errorf("[] != %v", probe.probed)
	}
}

func TestHandler_Get(t *testing.T) {
	discovery := &mockDiscovery{
		workloads: []model.Workload{
			{ID: "b2", Name: "cvsigdt1", Ports: map[int]int{8089: 8089}},
			{ID: "a1", Name: "ignition-cvsigdt1", Ports: map[int]int{8088: 8088}},
		},
	}
	h, _, _ := newTestHandler(discovery)
	record, err := h.Get(context.Background(), "CVSIGDT1")
	if err != nil {
		t.Error("err != nil")
	}
	// prefixed workload wins over the bare name
	if record.WorkloadID != "a1" {
		t.Errorf("a1 != %s", record.WorkloadID)
	}
	_, err = h.Get(context.Background(), "UNKNOWN")
	var nfErr *model.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Error("err != NotFoundError")
	}
}

func TestHandler_Restart(t *testing.T) {
	discovery := &mockDiscovery{
		workloads: []model.Workload{
			{ID: "a1", Name: "ignition-cvsigdt1", Ports: map[int]int{8088: 9000}},
		},
	}
	h, _, cache := newTestHandler(discovery)
	result, err := h.Restart(context.Background(), "CVSIGDT1")
	if err != nil {
		t.Error("err != nil")
	}
	if !result.Success {
		t.Error("success == false")
	}
	if !reflect.DeepEqual([]string{"ignition-cvsigdt1"}, discovery.restarted) {
		t.Errorf("%v != %v", []string{"ignition-cvsigdt1"}, discovery.restarted)
	}
	if !reflect.DeepEqual([]int{9000}, cache.invalidated) {
		t.Errorf("%v != %v", []int{9000}, cache.invalidated)
	}
}

func TestHandler_RestartNotFound(t *testing.T) {
	h, _, cache := newTestHandler(&mockDiscovery{})
	result, err := h.Restart(context.Background(), "UNKNOWN")
	if err == nil {
		t.Error("err == nil")
	}
	if result.Success {
		t.Error("success == true")
	}
	if result.Message == "" {
		t.Error("message empty")
	}
	if len(cache.invalidated) != 0 {
		t.Errorf("%v != []", cache.invalidated)
	}
}

func TestHandler_Logs(t *testing.T) {
	discovery := &mockDiscovery{
		workloads: []model.Workload{{ID: "a1", Name: "cvsigdt1"}},
		logs:      "line1\nline2\n",
	}
	h, _, _ := newTestHandler(discovery)
	logs, err := h.Logs(context.Background(), "CVSIGDT1", 100)
	if err != nil {
		t.Error("err != nil")
	}
	if logs != discovery.logs {
		t.Errorf("%s != %s", discovery.logs, logs)
	}
	if discovery.logsTail != 100 {
		t.Errorf("100 != %d", discovery.logsTail)
	}
	_, _ = h.Logs(context.Background(), "CVSIGDT1", 0)
	if discovery.logsTail != model.LogLinesMax {
		t.Errorf("%d != %d", model.LogLinesMax, discovery.logsTail)
	}
	_, _ = h.Logs(context.Background(), "CVSIGDT1", 5000)
	if discovery.logsTail != model.LogLinesMax {
		t.Errorf("%d != %d", model.LogLinesMax, discovery.logsTail)
	}
}

func TestHandler_RuntimeInfo(t *testing.T) {
	discovery := &mockDiscovery{
		workloads: []model.Workload{{ID: "a1", Name: "cvsigdt1"}},
		available: true,
	}
	h, _, _ := newTestHandler(discovery)
	available, workloads := h.RuntimeInfo(context.Background())
	if !available {
		t.Error("available == false")
	}
	if workloads != 1 {
		t.Errorf("1 != %d", workloads)
	}
	discovery.available = false
	available, workloads = h.RuntimeInfo(context.Background())
	if available {
		t.Error("available == true")
	}
	if workloads != 0 {
		t.Errorf("0 != %d", workloads)
	}
}
