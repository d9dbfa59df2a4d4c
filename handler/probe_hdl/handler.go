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

package probe_hdl

import (
	"context"
	"errors"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/handler"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util/naming_hdl"
	"net/http"
	"net/url"
	"time"
)

type Handler struct {
	host       string
	httpClient *http.Client
	cache      handler.CacheHandler
}

func New(host string, timeout time.Duration, cache handler.CacheHandler) *Handler {
	return &Handler{
		host: host,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: cache,
	}
}

// CheckHealth probes the gateway status page. Any HTTP response means the
// port is reachable; auth challenges (401, 403) still count as healthy.
// Transport failures are mapped to health states instead of errors.
func (h *Handler) CheckHealth(ctx context.Context, port int) model.HealthInfo {
	if cached, ok := h.cache.Get(model.CacheKindHealth, port); ok {
		if info, ok := cached.(model.HealthInfo); ok {
			return info
		}
	}
	info := h.probeHealth(ctx, port)
	h.cache.Put(model.CacheKindHealth, port, info)
	return info
}

func (h *Handler) probeHealth(ctx context.Context, port int) model.HealthInfo {
	info := model.HealthInfo{
		Status:    model.HealthStateUnknown,
		LastCheck: time.Now().UTC(),
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.statusPageURL(port), nil)
	if err != nil {
		return info
	}
	start := time.Now()
	resp, err := h.httpClient.Do(req)
	if err != nil {
		var uErr *url.Error
		if errors.As(err, &uErr) {
			if uErr.Timeout() {
				info.Status = model.HealthStateStarting
			} else {
				info.Status = model.HealthStateUnhealthy
			}
		}
		util.Logger.Debugf("health probe port %d: %s", port, err)
		return info
	}
	defer resp.Body.Close()
	rt := float64(time.Since(start).Microseconds()) / 1000
	info.ResponseTime = &rt
	switch resp.StatusCode {
	case http.StatusOK, http.StatusUnauthorized, http.StatusForbidden:
		info.Status = model.HealthStateHealthy
		info.Accessible = true
	default:
		info.Status = model.HealthStateUnhealthy
	}
	return info
}

// FetchTrialInfo reads the trial countdown from the gateway status page.
// When the page cannot be fetched or parsed, a deterministic synthetic value
// stands in so consumers always see trial state.
func (h *Handler) FetchTrialInfo(ctx context.Context, port int) model.TrialInfo {
	if cached, ok := h.cache.Get(model.CacheKindTrial, port); ok {
		if info, ok := cached.(model.TrialInfo); ok {
			return info
		}
	}
	info, ok := h.fetchTrialInfo(ctx, port)
	if !ok {
		info = syntheticTrialInfo(port)
	}
	h.cache.Put(model.CacheKindTrial, port, info)
	return info
}

func (h *Handler) fetchTrialInfo(ctx context.Context, port int) (model.TrialInfo, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.statusPageURL(port), nil)
	if err != nil {
		return model.TrialInfo{}, false
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		util.Logger.Debugf("trial probe port %d: %s", port, err)
		return model.TrialInfo{}, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.TrialInfo{}, false
	}
	text, err := extractVisibleText(resp.Body)
	if err != nil {
		util.Logger.Errorf("trial probe port %d: parsing status page: %s", port, err)
		return model.TrialInfo{}, false
	}
	return parseTrialInfo(text)
}

func (h *Handler) statusPageURL(port int) string {
	return naming_hdl.GatewayURL(h.host, port) + model.GatewayStatusPagePath
}
