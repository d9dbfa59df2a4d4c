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

package handler

import (
	"context"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
)

// DiscoveryHandler reads workload snapshots from the container runtime.
// Implementations return UnavailableError when the runtime cannot be
// reached; callers degrade instead of failing.
type DiscoveryHandler interface {
	ListWorkloads(ctx context.Context) ([]model.Workload, error)
	ListGatewayWorkloads(ctx context.Context) ([]model.Workload, error)
	GetWorkload(ctx context.Context, name string) (model.Workload, error)
	RestartWorkload(ctx context.Context, name string) error
	WorkloadLogs(ctx context.Context, name string, tail int) (string, error)
	Available(ctx context.Context) bool
}

// IdentityHandler derives canonical gateway identities from workloads.
type IdentityHandler interface {
	Resolve(workload model.Workload) model.GatewayIdentity
	CandidateNames(name string) []string
}

// ProbeHandler performs network checks against a gateway web console.
// Probe results are values, never errors; transport failures map to health
// states and trial fetch falls back to synthetic data.
type ProbeHandler interface {
	CheckHealth(ctx context.Context, port int) model.HealthInfo
	FetchTrialInfo(ctx context.Context, port int) model.TrialInfo
}

// CacheHandler is a TTL-bounded memoization layer keyed by (kind, port).
type CacheHandler interface {
	Get(kind model.CacheKind, port int) (any, bool)
	Put(kind model.CacheKind, port int, value any)
	Invalidate(port int)
}

type GatewayHandler interface {
	List(ctx context.Context) ([]model.GatewayRecord, error)
	Get(ctx context.Context, name string) (model.GatewayRecord, error)
	Restart(ctx context.Context, name string) (model.ActionResult, error)
	Logs(ctx context.Context, name string, lines int) (string, error)
	RuntimeInfo(ctx context.Context) (bool, int)
}

// ResetHandler drives the browser-automation workflow. The automation
// backend is an exclusive resource; invocations must not overlap.
type ResetHandler interface {
	Reset(ctx context.Context, name string, port int) model.ResetResult
	ResetMultiple(ctx context.Context, targets []model.ResetTarget) model.BulkResetResult
}

type JobHandler interface {
	Create(desc string, tFunc func(context.Context, context.CancelFunc) error) (string, error)
	Get(id string) (model.Job, error)
	Cancel(id string) error
	List(filter model.JobFilter) []model.Job
	PurgeJobs(maxAge int64) int
}
