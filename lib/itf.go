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

package lib

import (
	"context"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
)

type Api interface {
	GetGateways(ctx context.Context) ([]model.GatewayRecord, error)
	GetGateway(ctx context.Context, name string) (model.GatewayRecord, error)
	RestartGateway(ctx context.Context, name string) (model.ActionResult, error)
	GetGatewayLogs(ctx context.Context, name string, lines int) (string, error)
	GetTrialStatus(ctx context.Context) (model.TrialSummary, error)
	ResetGatewayTrial(ctx context.Context, name string) (model.ResetResult, error)
	BulkResetTrials(ctx context.Context, request model.BulkResetRequest) (model.BulkResetResult, error)
	GetJobs(ctx context.Context, filter model.JobFilter) ([]model.Job, error)
	GetJob(ctx context.Context, id string) (model.Job, error)
	CancelJob(ctx context.Context, id string) error
	SrvHealth(ctx context.Context) (model.SrvHealth, error)
}
