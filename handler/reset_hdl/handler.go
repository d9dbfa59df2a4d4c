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
	"fmt"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/handler"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util/naming_hdl"
	"strings"
	"time"
)

// Handler drives the trial-reset workflow against a gateway web console.
// A fresh browser instance is created per invocation and always torn down.
// Callers must serialize invocations; the job layer runs resets on a single
// worker to guarantee that.
type Handler struct {
	host      string
	username  string
	passwd    string
	timeout   time.Duration
	settle    time.Duration
	bulkDelay time.Duration
	headless  bool
	cacheHdl  handler.CacheHandler
	newDriver driverFactory
}

func New(host string, config util.AutomationConfig, cacheHdl handler.CacheHandler) *Handler {
	return &Handler{
		host:      host,
		username:  config.Username,
		passwd:    config.Passwd,
		timeout:   time.Duration(config.Timeout),
		settle:    time.Duration(config.SettleTime),
		bulkDelay: time.Duration(config.BulkDelay),
		headless:  config.Headless,
		cacheHdl:  cacheHdl,
		newDriver: newCdpDriver,
	}
}

// Reset finalizes the result in a deferred block so completion time, duration
// and cache invalidation are set on every exit path.
func (h *Handler) Reset(ctx context.Context, name string, port int) (result model.ResetResult) {
	startedAt := time.Now().UTC()
	result = model.ResetResult{
		Gateway:   name,
		Port:      port,
		StartedAt: startedAt,
	}
	defer func() {
		completedAt := time.Now().UTC()
		result.CompletedAt = &completedAt
		result.DurationSeconds = completedAt.Sub(startedAt).Seconds()
		h.cacheHdl.Invalidate(port)
	}()
	util.Logger.Infof("trial reset for gateway '%s' on port %d started", name, port)
	drv, err := h.newDriver(h.headless)
	if err != nil {
		return failed(result, fmt.Errorf("starting automation browser: %w", err))
	}
	defer drv.Close()
	wCtx, cf := context.WithTimeout(ctx, h.timeout)
	defer cf()
	result = h.runWorkflow(wCtx, drv, result)
	if result.Success {
		util.Logger.Infof("trial reset for gateway '%s' on port %d finished: %s", name, port, result.Message)
	} else {
		util.Logger.Errorf("trial reset for gateway '%s' on port %d failed: %s", name, port, result.Message)
	}
	return result
}

func (h *Handler) ResetMultiple(ctx context.Context, targets []model.ResetTarget) model.BulkResetResult {
	startedAt := time.Now().UTC()
	bulk := model.BulkResetResult{
		TotalGateways: len(targets),
		StartedAt:     startedAt,
	}
	for i, target := range targets {
		// invalid entries are skipped, they never fail the batch
		if target.Name == "" || target.Port < 1 {
			util.Logger.Warningf("bulk trial reset: skipping invalid target '%s' (port %d)", target.Name, target.Port)
			continue
		}
		result := h.Reset(ctx, target.Name, target.Port)
		bulk.GatewayResults = append(bulk.GatewayResults, result)
		if result.Success {
			bulk.SuccessfulResets++
		} else {
			bulk.FailedResets++
		}
		if i < len(targets)-1 {
			time.Sleep(h.bulkDelay)
		}
	}
	completedAt := time.Now().UTC()
	bulk.CompletedAt = &completedAt
	return bulk
}

// runWorkflow executes the five workflow stages in order. Every stage must
// pass before the next one runs; the completed-steps list records progress
// for consumers diagnosing partial failures.
func (h *Handler) runWorkflow(ctx context.Context, drv driver, result model.ResetResult) model.ResetResult {
	if err := h.openGateway(ctx, drv, result.Port); err != nil {
		return failed(result, err)
	}
	result.StepsCompleted = append(result.StepsCompleted, model.StepNavigateToGateway)
	authStep, err := h.authenticate(ctx, drv)
	if err != nil {
		return failed(result, err)
	}
	result.StepsCompleted = append(result.StepsCompleted, authStep)
	if err = h.openLicensing(ctx, drv, result.Port); err != nil {
		return failed(result, err)
	}
	result.StepsCompleted = append(result.StepsCompleted, model.StepNavigateToTrialReset)
	if err = h.executeReset(ctx, drv); err != nil {
		return failed(result, err)
	}
	result.StepsCompleted = append(result.StepsCompleted, model.StepTrialResetExecuted)
	return h.verifyReset(ctx, drv, result)
}

func (h *Handler) openGateway(ctx context.Context, drv driver, port int) error {
	if err := drv.Navigate(ctx, naming_hdl.GatewayURL(h.host, port)); err != nil {
		return fmt.Errorf("navigating to gateway: %w", err)
	}
	title, err := drv.Title(ctx)
	if err != nil {
		return fmt.Errorf("reading page title: %w", err)
	}
	lower := strings.ToLower(title)
	for _, token := range titleTokens {
		if strings.Contains(lower, token) {
			return nil
		}
	}
	return fmt.Errorf("unexpected page title '%s'", title)
}

// authenticate logs in when the console presents a login form. Consoles
// without auth enabled skip straight through.
func (h *Handler) authenticate(ctx context.Context, drv driver) (model.ResetStep, error) {
	userSel, ok := h.findSelector(ctx, drv, usernameSelectors)
	if !ok {
		return model.StepAuthNotRequired, nil
	}
	passSel, ok := h.findSelector(ctx, drv, passwordSelectors)
	if !ok {
		return "", fmt.Errorf("login form without password field")
	}
	if err := drv.Fill(ctx, userSel, h.username); err != nil {
		return "", fmt.Errorf("filling username: %w", err)
	}
	if err := drv.Fill(ctx, passSel, h.passwd); err != nil {
		return "", fmt.Errorf("filling password: %w", err)
	}
	submitSel, ok := h.findSelector(ctx, drv, loginSubmitSelectors)
	if !ok {
		return "", fmt.Errorf("login submit control not found")
	}
	if err := drv.Click(ctx, submitSel, false); err != nil {
		return "", fmt.Errorf("submitting login: %w", err)
	}
	if err := drv.WaitGone(ctx, passSel, h.timeout/2); err != nil {
		return "", fmt.Errorf("authentication rejected")
	}
	time.Sleep(h.settle)
	return model.StepAuthSuccessful, nil
}

func (h *Handler) openLicensing(ctx context.Context, drv driver, port int) error {
	base := naming_hdl.GatewayURL(h.host, port)
	for _, path := range licensingPaths {
		if err := drv.Navigate(ctx, base+path); err != nil {
			continue
		}
		text, err := drv.PageText(ctx)
		if err != nil {
			continue
		}
		lower := strings.ToLower(text)
		for _, indicator := range licensingIndicators {
			if strings.Contains(lower, indicator) {
				return nil
			}
		}
	}
	return fmt.Errorf("licensing page not reachable")
}

func (h *Handler) executeReset(ctx context.Context, drv driver) error {
	resetSel, ok := h.findSelector(ctx, drv, resetSelectors)
	if !ok {
		return fmt.Errorf("trial reset control not found")
	}
	if err := drv.Click(ctx, resetSel, true); err != nil {
		return fmt.Errorf("clicking trial reset control: %w", err)
	}
	time.Sleep(h.settle)
	if confirmSel, ok := h.findSelector(ctx, drv, confirmSelectors); ok {
		if err := drv.Click(ctx, confirmSel, true); err != nil {
			return fmt.Errorf("confirming trial reset: %w", err)
		}
		time.Sleep(h.settle)
	}
	return nil
}

// verifyReset reloads the page and scans the updated text. An explicit
// failure keyword fails the run; success keywords verify it; no signal
// either way counts as success with a weaker step marker.
func (h *Handler) verifyReset(ctx context.Context, drv driver, result model.ResetResult) model.ResetResult {
	if err := drv.Reload(ctx); err != nil {
		return failed(result, fmt.Errorf("reloading verification page: %w", err))
	}
	text, err := drv.PageText(ctx)
	if err != nil {
		return failed(result, fmt.Errorf("reading verification page: %w", err))
	}
	lower := strings.ToLower(text)
	for _, keyword := range failureKeywords {
		if strings.Contains(lower, keyword) {
			return failed(result, fmt.Errorf("verification found failure indicator '%s'", keyword))
		}
	}
	for _, keyword := range successKeywords {
		if strings.Contains(lower, keyword) {
			result.StepsCompleted = append(result.StepsCompleted, model.StepTrialResetVerified)
			result.Success = true
			result.Message = "trial reset verified"
			return result
		}
	}
	result.StepsCompleted = append(result.StepsCompleted, model.StepTrialResetAssumedOk)
	result.Success = true
	result.Message = "trial reset assumed successful"
	return result
}

func (h *Handler) findSelector(ctx context.Context, drv driver, selectors []selector) (selector, bool) {
	for _, sel := range selectors {
		if drv.Exists(ctx, sel) {
			return sel, true
		}
	}
	return selector{}, false
}

func failed(result model.ResetResult, err error) model.ResetResult {
	msg := err.Error()
	result.Success = false
	result.Message = msg
	result.Error = &msg
	return result
}
