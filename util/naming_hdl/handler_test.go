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
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"reflect"
	"testing"
)

func testConfig() model.DiscoveryConfig {
	return model.DiscoveryConfig{
		NamePrefix:      "ignition-",
		NameSuffix:      "-gateway",
		WebPortPriority: []int{8088, 8043, 8089},
	}
}

func TestHandler_Resolve(t *testing.T) {
	h := New(testConfig())
	a := "CVSIGDT1"
	if b := h.Resolve(model.Workload{Name: "ignition-cvsigdt1"}); b.Name != a {
		t.Errorf("%s != %s", a, b.Name)
	}
	if b := h.Resolve(model.Workload{Name: "cvsigdt1-gateway"}); b.Name != a {
		t.Errorf("%s != %s", a, b.Name)
	}
	if b := h.Resolve(model.Workload{Name: "cvsigdt1"}); b.Name != a {
		t.Errorf("%s != %s", a, b.Name)
	}
	if b := h.Resolve(model.Workload{Name: "Ignition-CVSIGDT1"}); b.Name != a {
		t.Errorf("%s != %s", a, b.Name)
	}
}

func TestHandler_ResolveWebPort(t *testing.T) {
	h := New(testConfig())
	b := h.Resolve(model.Workload{Name: "gw", Ports: map[int]int{8089: 9001, 8088: 9000}})
	if b.WebPort == nil {
		t.Error("web port == nil")
	} else if *b.WebPort != 9000 {
		t.Errorf("9000 != %d", *b.WebPort)
	}
	b = h.Resolve(model.Workload{Name: "gw", Ports: map[int]int{8089: 9001}})
	if b.WebPort == nil {
		t.Error("web port == nil")
	} else if *b.WebPort != 9001 {
		t.Errorf("9001 != %d", *b.WebPort)
	}
	b = h.Resolve(model.Workload{Name: "gw", Ports: map[int]int{5432: 5432}})
	if b.WebPort != nil {
		t.Error("web port != nil")
	}
	b = h.Resolve(model.Workload{Name: "gw"})
	if b.WebPort != nil {
		t.Error("web port != nil")
	}
}

func TestHandler_CandidateNames(t *testing.T) {
	h := New(testConfig())
	a := []string{"ignition-cvsigdt1", "cvsigdt1", "cvsigdt1-gateway", "gateway-cvsigdt1"}
	b := h.CandidateNames("CVSIGDT1")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("%v != %v", a, b)
	}
}

func TestGatewayURL(t *testing.T) {
	a := "http://localhost:8088"
	if b := GatewayURL("localhost", 8088); a != b {
		t.Errorf("%s != %s", a, b)
	}
}
