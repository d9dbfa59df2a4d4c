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

package util

import (
	"github.com/SENERGY-Platform/go-service-base/srv-base"
	"github.com/y-du/go-log-level/level"
)

type LoggerConfig struct {
	Level        level.Level `json:"level" env_var:"LOGGER_LEVEL"`
	Utc          bool        `json:"utc" env_var:"LOGGER_UTC"`
	Path         string      `json:"path" env_var:"LOGGER_PATH"`
	FileName     string      `json:"file_name" env_var:"LOGGER_FILE_NAME"`
	Prefix       string      `json:"prefix" env_var:"LOGGER_PREFIX"`
	Terminal     bool        `json:"terminal" env_var:"LOGGER_TERMINAL"`
	Microseconds bool        `json:"microseconds" env_var:"LOGGER_MICROSECONDS"`
}

type GatewayConfig struct {
	Host           string `json:"host" env_var:"GATEWAY_HOST"`
	HttpTimeout    int64  `json:"http_timeout" env_var:"GATEWAY_HTTP_TIMEOUT"`
	HealthCacheTTL int64  `json:"health_cache_ttl" env_var:"GATEWAY_HEALTH_CACHE_TTL"`
	TrialCacheTTL  int64  `json:"trial_cache_ttl" env_var:"GATEWAY_TRIAL_CACHE_TTL"`
}

type DiscoveryHandlerConfig struct {
	ConfigPath string `json:"config_path" env_var:"DISCOVERY_CONFIG_PATH"`
}

type AutomationConfig struct {
	Username   string `json:"username" env_var:"AUTOMATION_USERNAME"`
	Passwd     string `json:"passwd" env_var:"AUTOMATION_PASSWD"`
	Timeout    int64  `json:"timeout" env_var:"AUTOMATION_TIMEOUT"`
	SettleTime int64  `json:"settle_time" env_var:"AUTOMATION_SETTLE_TIME"`
	BulkDelay  int64  `json:"bulk_delay" env_var:"AUTOMATION_BULK_DELAY"`
	Headless   bool   `json:"headless" env_var:"AUTOMATION_HEADLESS"`
}

type JobsConfig struct {
	BufferSize  int   `json:"buffer_size" env_var:"JOBS_BUFFER_SIZE"`
	CCHInterval int   `json:"cch_interval" env_var:"JOBS_CCH_INTERVAL"`
	PrgInterval int   `json:"prg_interval" env_var:"JOBS_PRG_INTERVAL"`
	MaxAge      int64 `json:"max_age" env_var:"JOBS_MAX_AGE"`
}

type Config struct {
	ServerPort       uint                   `json:"server_port" env_var:"SERVER_PORT"`
	Logger           LoggerConfig           `json:"logger" env_var:"LOGGER_CONFIG"`
	Gateway          GatewayConfig          `json:"gateway" env_var:"GATEWAY_CONFIG"`
	DiscoveryHandler DiscoveryHandlerConfig `json:"discovery_handler" env_var:"DISCOVERY_HANDLER_CONFIG"`
	Automation       AutomationConfig       `json:"automation" env_var:"AUTOMATION_CONFIG"`
	Jobs             JobsConfig             `json:"jobs" env_var:"JOBS_CONFIG"`
}

func NewConfig(path string) (*Config, error) {
	cfg := Config{
		ServerPort: 8080,
		Logger: LoggerConfig{
			Level:        level.Info,
			Utc:          true,
			Terminal:     true,
			Microseconds: true,
		},
		Gateway: GatewayConfig{
			Host:           "localhost",
			HttpTimeout:    10000000000,
			HealthCacheTTL: 30000000000,
			TrialCacheTTL:  60000000000,
		},
		DiscoveryHandler: DiscoveryHandlerConfig{
			ConfigPath: "include/discovery.yml",
		},
		Automation: AutomationConfig{
			Username:   "admin",
			Passwd:     "password",
			Timeout:    30000000000,
			SettleTime: 2000000000,
			BulkDelay:  2000000000,
			Headless:   true,
		},
		Jobs: JobsConfig{
			BufferSize:  50,
			CCHInterval: 500000,
			PrgInterval: 500000,
			MaxAge:      3600000000000,
		},
	}
	err := srv_base.LoadConfig(&path, &cfg, nil, nil, nil)
	return &cfg, err
}
