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

package reset_hdl

import (
	"context"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util"
	"github.com/y-du/go-log-level/level"
	"reflect"
	"strconv"
	"testing"
	"time"
)

func init() {
	if _, err := util.InitLogger(util.LoggerConfig{Level: level.Error, Terminal: true}); err != nil {
		panic(err)
	}
}

type fakeDriver struct {
	title     string
	texts     []string
	existing  map[string]bool
	filled    map[string]string
	clicked   []string
	navigated []string
	waitGone  bool
	closed    bool
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		title:    "Ignition Gateway",
		existing: map[string]bool{},
		filled:   map[string]string{},
		waitGone: true,
	}
}

func (d *fakeDriver) Navigate(_ context.Context, url string) error {
	d.navigated = append(d.navigated, url)
	return nil
}

func (d *fakeDriver) Reload(_ context.Context) error {
	d.navigated = append(d.navigated, "reload")
	return nil
}

func (d *fakeDriver) Title(_ context.Context) (string, error) {
	return d.title, nil
}

func (d *fakeDriver) PageText(_ context.Context) (string, error) {
	if len(d.texts) == 0 {
		return "", nil
	}
	text := d.texts[0]
	d.texts = d.texts[1:]
	return text, nil
}

func (d *fakeDriver) Exists(_ context.Context, sel selector) bool {
	return d.existing[sel.value]
}

func (d *fakeDriver) Fill(_ context.Context, sel selector, value string) error {
	d.filled[sel.value] = value
	return nil
}

func (d *fakeDriver) Click(_ context.Context, sel selector, _ bool) error {
	d.clicked = append(d.clicked, sel.value)
	return nil
}

func (d *fakeDriver) WaitGone(_ context.Context, _ selector, _ time.Duration) error {
	if !d.waitGone {
		return context.DeadlineExceeded
	}
	return nil
}

func (d *fakeDriver) Close() error {
	d.closed = true
	return nil
}

type countingCache struct {
	invalidated []int
}

func (c *countingCache) Get(_ model.CacheKind, _ int) (any, bool) { return nil, false }

func (c *countingCache) Put(_ model.CacheKind, _ int, _ any) {}

func (c *countingCache) Invalidate(port int) {
	c.invalidated = append(c.invalidated, port)
}

func newTestHandler(drivers ...*fakeDriver) (*Handler, *countingCache) {
	cache := &countingCache{}
	h := &Handler{
		host:     "localhost",
		username: "admin",
		passwd:   "secret",
		timeout:  time.Second,
		cacheHdl: cache,
	}
	i := 0
	h.newDriver = func(_ bool) (driver, error) {
		drv := drivers[i%len(drivers)]
		i++
		return drv, nil
	}
	return h, cache
}

func TestHandler_Reset(t *testing.T) {
	drv := newFakeDriver()
	drv.existing["//*[contains(text(), 'Reset')]"] = true
	drv.texts = []string{"System Licensing", "Trial reset successful, 168 hours remaining"}
	h, cache := newTestHandler(drv)
	result := h.Reset(context.Background(), "CVSIGDT1", 8088)
	if !result.Success {
		t.Errorf("success == false: %s", result.Message)
	}
	a := []model.ResetStep{
		model.StepNavigateToGateway,
		model.StepAuthNotRequired,
		model.StepNavigateToTrialReset,
		model.StepTrialResetExecuted,
		model.StepTrialResetVerified,
	}
	if !reflect.DeepEqual(a, result.StepsCompleted) {
		t.Errorf("%v != %v", a, result.StepsCompleted)
	}
	if result.Error != nil {
		t.Error("error != nil")
	}
	if result.CompletedAt == nil {
		t.Error("completed at == nil")
	} else if result.CompletedAt.Before(result.StartedAt) {
		t.Error("completed at < started at")
	}
	// verification scans the reloaded page, not the licensing navigation
	b := []string{"http://localhost:8088", "http://localhost:8088/main/config/system/licensing", "reload"}
	if !reflect.DeepEqual(b, drv.navigated) {
		t.Errorf("%v != %v", b, drv.navigated)
	}
	if !drv.closed {
		t.Error("driver not closed")
	}
	if !reflect.DeepEqual([]int{8088}, cache.invalidated) {
		t.Errorf("%v != %v", []int{8088}, cache.invalidated)
	}
}

func TestHandler_ResetWithAuth(t *testing.T) {
	drv := newFakeDriver()
	drv.existing["input[name='username']"] = true
	drv.existing["input[name='password']"] = true
	drv.existing["button[type='submit']"] = true
	drv.existing["input[value*='Reset']"] = true
	drv.texts = []string{"System Licensing", "trial reset complete"}
	h, _ := newTestHandler(drv)
	result := h.Reset(context.Background(), "CVSIGDT1", 8088)
	if !result.Success {
		t.Errorf("success == false: %s", result.Message)
	}
	if result.StepsCompleted[1] != model.StepAuthSuccessful {
		t.Errorf("%s != %s", model.StepAuthSuccessful, result.StepsCompleted[1])
	}
	if drv.filled["input[name='username']"] != "admin" {
		t.Errorf("admin != %s", drv.filled["input[name='username']"])
	}
	if drv.filled["input[name='password']"] != "secret" {
		t.Errorf("secret != %s", drv.filled["input[name='password']"])
	}
}

func TestHandler_ResetAuthRejected(t *testing.T) {
	drv := newFakeDriver()
	drv.existing["input[name='username']"] = true
	drv.existing["input[name='password']"] = true
	drv.existing["button[type='submit']"] = true
	drv.waitGone = false
	h, _ := newTestHandler(drv)
	result := h.Reset(context.Background(), "CVSIGDT1", 8088)
	if result.Success {
		t.Error("success == true")
	}
	a := []model.ResetStep{model.StepNavigateToGateway}
	if !reflect.DeepEqual(a, result.StepsCompleted) {
		t.Errorf("%v != %v", a, result.StepsCompleted)
	}
	if result.Error == nil {
		t.Error("error == nil")
	}
}

func TestHandler_ResetBadTitle(t *testing.T) {
	drv := newFakeDriver()
	drv.title = "404 Not Found"
	h, cache := newTestHandler(drv)
	result := h.Reset(context.Background(), "CVSIGDT1", 8088)
	if result.Success {
		t.Error("success == true")
	}
	if len(result.StepsCompleted) != 0 {
		t.Errorf("[] != %v", result.StepsCompleted)
	}
	// failures are finalized like successes
	if result.CompletedAt == nil {
		t.Error("completed at == nil")
	}
	if !drv.closed {
		t.Error("driver not closed")
	}
	// cache is cleared even on failure, the page state may have changed
	if !reflect.DeepEqual([]int{8088}, cache.invalidated) {
		t.Errorf("%v != %v", []int{8088}, cache.invalidated)
	}
}

func TestHandler_ResetVerificationFailure(t *testing.T) {
	drv := newFakeDriver()
	drv.existing["input[value*='Reset']"] = true
	drv.texts = []string{"System Licensing", "An error occurred during reset"}
	h, _ := newTestHandler(drv)
	result := h.Reset(context.Background(), "CVSIGDT1", 8088)
	if result.Success {
		t.Error("success == true")
	}
	a := []model.ResetStep{
		model.StepNavigateToGateway,
		model.StepAuthNotRequired,
		model.StepNavigateToTrialReset,
		model.StepTrialResetExecuted,
	}
	if !reflect.DeepEqual(a, result.StepsCompleted) {
		t.Errorf("%v != %v", a, result.StepsCompleted)
	}
}

func TestHandler_ResetAssumedSuccess(t *testing.T) {
	drv := newFakeDriver()
	drv.existing["input[value*='Reset']"] = true
	drv.texts = []string{"System Licensing", "welcome to the gateway"}
	h, _ := newTestHandler(drv)
	result := h.Reset(context.Background(), "CVSIGDT1", 8088)
	if !result.Success {
		t.Errorf("success == false: %s", result.Message)
	}
	last := result.StepsCompleted[len(result.StepsCompleted)-1]
	if last != model.StepTrialResetAssumedOk {
		t.Errorf("%s != %s", model.StepTrialResetAssumedOk, last)
	}
}

func TestHandler_ResetNoControl(t *testing.T) {
	drv := newFakeDriver()
	drv.texts = []string{"System Licensing"}
	h, _ := newTestHandler(drv)
	result := h.Reset(context.Background(), "CVSIGDT1", 8088)
	if result.Success {
		t.Error("success == true")
	}
	a := []model.ResetStep{
		model.StepNavigateToGateway,
		model.StepAuthNotRequired,
		model.StepNavigateToTrialReset,
	}
	if !reflect.DeepEqual(a, result.StepsCompleted) {
		t.Errorf("%v != %v", a, result.StepsCompleted)
	}
}

func TestHandler_ResetMultiple(t *testing.T) {
	var drivers []*fakeDriver
	for i := 0; i < 2; i++ {
		drv := newFakeDriver()
		drv.existing["input[value*='Reset']"] = true
		drv.texts = []string{"System Licensing", "trial reset complete"}
		drivers = append(drivers, drv)
	}
	h, _ := newTestHandler(drivers...)
	targets := []model.ResetTarget{
		{Name: "CVSIGDT1", Port: 8088},
		{Name: "", Port: 0},
		{Name: "CVSIGDT2", Port: 8089},
	}
	bulk := h.ResetMultiple(context.Background(), targets)
	if bulk.TotalGateways != 3 {
		t.Errorf("3 != %d", bulk.TotalGateways)
	}
	if bulk.SuccessfulResets != 2 {
		t.Errorf("2 != %d", bulk.SuccessfulResets)
	}
	// invalid entries are skipped, not failed
	if bulk.FailedResets != 0 {
		t.Errorf("0 != %d", bulk.FailedResets)
	}
	if len(bulk.GatewayResults) != 2 {
		t.Errorf("2 != %d", len(bulk.GatewayResults))
	}
	var names []string
	for _, result := range bulk.GatewayResults {
		names = append(names, result.Gateway+":"+strconv.Itoa(result.Port))
	}
	a := []string{"CVSIGDT1:8088", "CVSIGDT2:8089"}
	if !reflect.DeepEqual(a, names) {
		t.Errorf("%v != %v", a, names)
	}
	for _, result := range bulk.GatewayResults {
		if result.CompletedAt == nil {
			t.Error("completed at == nil")
		}
	}
	if bulk.CompletedAt == nil {
		t.Error("completed at == nil")
	}
}
