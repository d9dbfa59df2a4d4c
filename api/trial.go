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

package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util"
	"time"
)

const jobPollInterval = 250 * time.Millisecond

func (a *Api) GetTrialStatus(ctx context.Context) (model.TrialSummary, error) {
	records, err := a.gatewayHdl.List(ctx)
	if err != nil {
		return model.TrialSummary{}, err
	}
	summary := model.TrialSummary{TotalGateways: len(records)}
	for _, record := range records {
		summary.Gateways = append(summary.Gateways, model.GatewayTrialStatus{
			Name:   record.Name,
			Port:   record.Port,
			Status: record.Status,
			Trial:  record.Trial,
		})
		switch {
		case record.Trial == nil:
			summary.UnknownTrials++
		case record.Trial.Expired:
			summary.ExpiredTrials++
		case record.Trial.Emergency:
			summary.EmergencyTrials++
		default:
			summary.HealthyTrials++
		}
	}
	return summary, nil
}

// ResetGatewayTrial runs the reset workflow as a tracked job and waits for
// it to finish. Jobs execute on a single worker, so concurrent requests
// queue instead of sharing the automation browser.
func (a *Api) ResetGatewayTrial(ctx context.Context, name string) (model.ResetResult, error) {
	record, err := a.gatewayHdl.Get(ctx, name)
	if err != nil {
		return model.ResetResult{}, err
	}
	if record.Port == nil {
		return model.ResetResult{}, model.NewInvalidInputError(fmt.Errorf("gateway '%s' exposes no web port", name))
	}
	var result model.ResetResult
	jID, err := a.jobHdl.Create(fmt.Sprintf("trial reset for gateway '%s' on port %d", record.Name, *record.Port), func(jCtx context.Context, cf context.CancelFunc) error {
		defer cf()
		result = a.resetHdl.Reset(jCtx, record.Name, *record.Port)
		if !result.Success {
			return errors.New(result.Message)
		}
		return nil
	})
	if err != nil {
		return model.ResetResult{}, err
	}
	if err = a.awaitJob(ctx, jID); err != nil {
		return model.ResetResult{}, err
	}
	return result, nil
}

// BulkResetTrials resets multiple gateways in one job. An empty target list
// selects every discovered gateway with a web port.
func (a *Api) BulkResetTrials(ctx context.Context, request model.BulkResetRequest) (model.BulkResetResult, error) {
	targets, err := a.resolveTargets(ctx, request.Gateways)
	if err != nil {
		return model.BulkResetResult{}, err
	}
	if len(targets) == 0 {
		return model.BulkResetResult{}, model.NewInvalidInputError(errors.New("no reset targets"))
	}
	var result model.BulkResetResult
	jID, err := a.jobHdl.Create(fmt.Sprintf("bulk trial reset for %d gateways", len(targets)), func(jCtx context.Context, cf context.CancelFunc) error {
		defer cf()
		result = a.resetHdl.ResetMultiple(jCtx, targets)
		if result.FailedResets > 0 {
			return fmt.Errorf("%d of %d resets failed", result.FailedResets, result.TotalGateways)
		}
		return nil
	})
	if err != nil {
		return model.BulkResetResult{}, err
	}
	if err = a.awaitJob(ctx, jID); err != nil {
		return model.BulkResetResult{}, err
	}
	return result, nil
}

func (a *Api) resolveTargets(ctx context.Context, targets []model.ResetTarget) ([]model.ResetTarget, error) {
	if len(targets) == 0 {
		records, err := a.gatewayHdl.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, record := range records {
			if record.Port == nil {
				util.Logger.Warningf("bulk trial reset: gateway '%s' exposes no web port, skipping", record.Name)
				continue
			}
			targets = append(targets, model.ResetTarget{Name: record.Name, Port: *record.Port})
		}
		return targets, nil
	}
	var resolved []model.ResetTarget
	for _, target := range targets {
		if target.Port > 0 {
			resolved = append(resolved, target)
			continue
		}
		record, err := a.gatewayHdl.Get(ctx, target.Name)
		if err != nil || record.Port == nil {
			util.Logger.Warningf("bulk trial reset: cannot resolve port for '%s', skipping", target.Name)
			continue
		}
		resolved = append(resolved, model.ResetTarget{Name: record.Name, Port: *record.Port})
	}
	return resolved, nil
}

// awaitJob polls job metadata until the job finishes. If the caller goes
// away the job is canceled, which stops the workflow via its context.
func (a *Api) awaitJob(ctx context.Context, id string) error {
	ticker := time.NewTicker(jobPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if err := a.jobHdl.Cancel(id); err != nil {
				util.Logger.Errorf("canceling job '%s': %s", id, err)
			}
			return model.NewInternalError(ctx.Err())
		case <-ticker.C:
			job, err := a.jobHdl.Get(id)
			if err != nil {
				return err
			}
			if job.Canceled != nil {
				return model.NewInternalError(fmt.Errorf("job '%s' canceled", id))
			}
			if job.Completed != nil {
				return nil
			}
		}
	}
}
