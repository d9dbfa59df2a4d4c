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

import "time"

type HealthState = string

type WorkloadState = string

type TrialState = string

type CacheKind = string

type RecordSource = string

// Workload is a read-only snapshot of a runtime-managed container. The
// runtime owns the lifecycle; this service only observes and may request a
// restart.
type Workload struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	State   WorkloadState     `json:"state"`
	Image   string            `json:"image"`
	Created time.Time         `json:"created"`
	Ports   map[int]int       `json:"ports"`
	Labels  map[string]string `json:"labels"`
	Health  string            `json:"health"`
}

// GatewayIdentity is derived from a workload on every discovery pass and
// never stored. A nil WebPort means the gateway is not probeable.
type GatewayIdentity struct {
	Name    string `json:"name"`
	WebPort *int   `json:"web_port"`
}

type HealthInfo struct {
	Status       HealthState `json:"status"`
	ResponseTime *float64    `json:"response_time"`
	Accessible   bool        `json:"accessible"`
	LastCheck    time.Time   `json:"last_check"`
}

// TrialInfo describes the licensing state of a gateway. Emergency is derived
// from RemainingHours and Expired at construction time; use NewTrialInfo to
// keep the invariants intact.
type TrialInfo struct {
	RemainingHours   int        `json:"remaining_hours"`
	RemainingDisplay string     `json:"remaining_display"`
	Expired          bool       `json:"expired"`
	Emergency        bool       `json:"emergency"`
	TrialState       TrialState `json:"trial_state"`
	Synthetic        bool       `json:"synthetic"`
}

func NewTrialInfo(remainingHours int, display string, expired bool, synthetic bool) TrialInfo {
	if expired {
		remainingHours = 0
	}
	state := TrialStateTrial
	if expired {
		state = TrialStateExpired
	}
	return TrialInfo{
		RemainingHours:   remainingHours,
		RemainingDisplay: display,
		Expired:          expired,
		Emergency:        expired || remainingHours < EmergencyThresholdHours,
		TrialState:       state,
		Synthetic:        synthetic,
	}
}

// GatewayRecord is the aggregate handed to API consumers. Built fresh on
// every aggregation call, never persisted.
type GatewayRecord struct {
	Name           string        `json:"name"`
	Port           *int          `json:"port"`
	Status         HealthState   `json:"status"`
	Accessible     bool          `json:"accessible"`
	ResponseTime   *float64      `json:"response_time"`
	LastCheck      *time.Time    `json:"last_check"`
	Trial          *TrialInfo    `json:"trial"`
	WorkloadID     string        `json:"workload_id,omitempty"`
	WorkloadState  WorkloadState `json:"workload_state,omitempty"`
	WorkloadHealth string        `json:"workload_health,omitempty"`
	Image          string        `json:"image,omitempty"`
	Created        *time.Time    `json:"created,omitempty"`
	Source         RecordSource  `json:"source"`
}

type GatewayList struct {
	Gateways []GatewayRecord `json:"gateways"`
	Count    int             `json:"count"`
}

type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type GatewayTrialStatus struct {
	Name   string      `json:"name"`
	Port   *int        `json:"port"`
	Status HealthState `json:"status"`
	Trial  *TrialInfo  `json:"trial"`
}

type TrialSummary struct {
	TotalGateways   int                  `json:"total_gateways"`
	HealthyTrials   int                  `json:"healthy_trials"`
	EmergencyTrials int                  `json:"emergency_trials"`
	ExpiredTrials   int                  `json:"expired_trials"`
	UnknownTrials   int                  `json:"unknown_trials"`
	Gateways        []GatewayTrialStatus `json:"gateways"`
}

type SrvHealth struct {
	Status           HealthState `json:"status"`
	RuntimeAvailable bool        `json:"runtime_available"`
	Workloads        int         `json:"workloads"`
}

// DiscoveryConfig parametrizes the gateway classifier and identity resolver.
// Defaults mirror the known Ignition deployment conventions.
type DiscoveryConfig struct {
	NameTokens      []string `yaml:"name_tokens" json:"name_tokens"`
	GatewayPorts    []int    `yaml:"gateway_ports" json:"gateway_ports"`
	WebPortPriority []int    `yaml:"web_port_priority" json:"web_port_priority"`
	NamePrefix      string   `yaml:"name_prefix" json:"name_prefix"`
	NameSuffix      string   `yaml:"name_suffix" json:"name_suffix"`
}
