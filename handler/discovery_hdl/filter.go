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

package discovery_hdl

import (
	"fmt"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"gopkg.in/yaml.v3"
	"os"
	"strings"
)

// DefaultDiscoveryConfig matches Ignition-style gateway deployments. Values
// can be overridden per installation via a yaml file.
func DefaultDiscoveryConfig() model.DiscoveryConfig {
	return model.DiscoveryConfig{
		NameTokens:      []string{"ignition", "gateway", "cvs", "vig", "scada"},
		GatewayPorts:    []int{8088, 8043, 8060, 8089, 8090, 8091, 8092, 8093, 8094, 8095},
		WebPortPriority: []int{8088, 8043, 8089, 8090, 8091, 8092, 8093, 8094, 8095},
		NamePrefix:      "ignition-",
		NameSuffix:      "-gateway",
	}
}

func LoadDiscoveryConfig(path string) (model.DiscoveryConfig, error) {
	config := DefaultDiscoveryConfig()
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return model.DiscoveryConfig{}, err
	}
	defer file.Close()
	decoder := yaml.NewDecoder(file)
	if err = decoder.Decode(&config); err != nil {
		return model.DiscoveryConfig{}, fmt.Errorf("decoding '%s': %w", path, err)
	}
	return config, nil
}

// isGatewayWorkload classifies by name token or exposed internal port.
// Either signal alone is sufficient.
func (h *Handler) isGatewayWorkload(workload model.Workload) bool {
	name := strings.ToLower(workload.Name)
	for _, token := range h.config.NameTokens {
		if strings.Contains(name, token) {
			return true
		}
	}
	for _, port := range h.config.GatewayPorts {
		if _, ok := workload.Ports[port]; ok {
			return true
		}
	}
	return false
}
