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

package naming_hdl

import (
	"fmt"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"strings"
)

// Handler normalizes workload names into canonical gateway names and
// resolves the external web-console port. Identities are computed fresh on
// every discovery pass.
type Handler struct {
	prefix   string
	suffix   string
	webPorts []int
}

func New(config model.DiscoveryConfig) *Handler {
	return &Handler{
		prefix:   config.NamePrefix,
		suffix:   config.NameSuffix,
		webPorts: config.WebPortPriority,
	}
}

func (h *Handler) Resolve(workload model.Workload) model.GatewayIdentity {
	return model.GatewayIdentity{
		Name:    h.normalizeName(workload.Name),
		WebPort: h.resolveWebPort(workload.Ports),
	}
}

// CandidateNames lists the workload names a gateway may be deployed under,
// in lookup priority order. The naming scheme is convention, not contract.
func (h *Handler) CandidateNames(name string) []string {
	n := strings.ToLower(name)
	return []string{
		h.prefix + n,
		n,
		n + h.suffix,
		"gateway-" + n,
	}
}

func (h *Handler) normalizeName(workloadName string) string {
	name := workloadName
	if pl := len(h.prefix); pl > 0 && len(name) >= pl && strings.EqualFold(name[:pl], h.prefix) {
		name = name[pl:]
	}
	if sl := len(h.suffix); sl > 0 && len(name) >= sl && strings.EqualFold(name[len(name)-sl:], h.suffix) {
		name = name[:len(name)-sl]
	}
	return strings.ToUpper(name)
}

// resolveWebPort returns the external port bound to the first known
// web-interface port, or nil if the workload exposes none. Without a web
// port the gateway is not probeable.
func (h *Handler) resolveWebPort(ports map[int]int) *int {
	for _, p := range h.webPorts {
		if ext, ok := ports[p]; ok {
			return &ext
		}
	}
	return nil
}

// GatewayURL builds the base URL of a gateway web console.
func GatewayURL(host string, port int) string {
	return fmt.Sprintf("http://%s:%d", host, port)
}
