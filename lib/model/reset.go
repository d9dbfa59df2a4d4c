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

import (
	"encoding/json"
	"time"
)

type ResetStep = string

// ResetResult records one execution of the trial-reset workflow.
// StepsCompleted lists the step identifiers in the order they succeeded, so
// callers can see how far the workflow progressed before a failure.
type ResetResult struct {
	Gateway         string      `json:"gateway"`
	Port            int         `json:"port"`
	Success         bool        `json:"success"`
	Message         string      `json:"message"`
	Error           *string     `json:"error"`
	StartedAt       time.Time   `json:"started_at"`
	CompletedAt     *time.Time  `json:"completed_at"`
	DurationSeconds float64     `json:"duration_seconds"`
	StepsCompleted  []ResetStep `json:"steps_completed"`
}

type BulkResetResult struct {
	TotalGateways    int           `json:"total_gateways"`
	SuccessfulResets int           `json:"successful_resets"`
	FailedResets     int           `json:"failed_resets"`
	StartedAt        time.Time     `json:"started_at"`
	CompletedAt      *time.Time    `json:"completed_at"`
	GatewayResults   []ResetResult `json:"gateway_results"`
}

// ResetTarget identifies one gateway in a bulk-reset request. A bare JSON
// string is accepted as shorthand for an entry with only a name; the port is
// then resolved via aggregation.
type ResetTarget struct {
	Name string `json:"name"`
	Port int    `json:"port,omitempty"`
}

func (t *ResetTarget) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		*t = ResetTarget{Name: name}
		return nil
	}
	type target ResetTarget
	var tg target
	if err := json.Unmarshal(b, &tg); err != nil {
		return err
	}
	*t = ResetTarget(tg)
	return nil
}

type BulkResetRequest struct {
	Gateways []ResetTarget `json:"gateways"`
}
