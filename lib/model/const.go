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

package model

const ServiceName = "mgw-gateway-monitor"

const (
	HeaderRequestID = "X-Request-ID"
	HeaderApiVer    = "X-Api-Version"
	HeaderSrvName   = "X-Service"
)

const (
	HealthCheckPath    = "health"
	GatewaysPath       = "gateways"
	GatewayRestartPath = "restart"
	GatewayLogsPath    = "logs"
	TrialPath          = "trial"
	TrialStatusPath    = "status"
	TrialResetPath     = "reset"
	TrialBulkResetPath = "bulk-reset"
	JobsPath           = "jobs"
	JobsCancelPath     = "cancel"
)

// GatewayStatusPagePath is the web console path probed for health and trial state.
const GatewayStatusPagePath = "/main/system/gateway/status"

const (
	HealthStateHealthy   HealthState = "healthy"
	HealthStateUnhealthy HealthState = "unhealthy"
	HealthStateStarting  HealthState = "starting"
	HealthStateUnknown   HealthState = "unknown"
)

const (
	WorkloadRunning  WorkloadState = "running"
	WorkloadExited   WorkloadState = "exited"
	WorkloadDead     WorkloadState = "dead"
	WorkloadStarting WorkloadState = "starting"
	WorkloadUnknown  WorkloadState = "unknown"
)

const (
	TrialStateTrial   TrialState = "TRIAL"
	TrialStateExpired TrialState = "EXPIRED"
)

const (
	CacheKindHealth CacheKind = "health"
	CacheKindTrial  CacheKind = "trial"
)

const (
	RecordSourceRuntime   RecordSource = "runtime"
	RecordSourceSynthetic RecordSource = "synthetic"
)

// Reset workflow step identifiers, appended to ResetResult.StepsCompleted in
// execution order. Authentication yields exactly one of the two auth steps.
const (
	StepNavigateToGateway    ResetStep = "navigate_to_gateway"
	StepAuthNotRequired      ResetStep = "authentication_not_required"
	StepAuthSuccessful       ResetStep = "authentication_successful"
	StepNavigateToTrialReset ResetStep = "navigate_to_trial_reset"
	StepTrialResetExecuted   ResetStep = "trial_reset_executed"
	StepTrialResetVerified   ResetStep = "trial_reset_verified"
	StepTrialResetAssumedOk  ResetStep = "trial_reset_assumed_successful"
)

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCanceled  JobStatus = "canceled"
	JobCompleted JobStatus = "completed"
	JobError     JobStatus = "error"
	JobOK        JobStatus = "ok"
)

var JobStateMap = map[JobStatus]struct{}{
	JobPending:   {},
	JobRunning:   {},
	JobCanceled:  {},
	JobCompleted: {},
	JobError:     {},
	JobOK:        {},
}

// EmergencyThresholdHours is the remaining-hours bound below which a running
// trial requires operator attention.
const EmergencyThresholdHours = 24

const LogLinesMax = 1000
