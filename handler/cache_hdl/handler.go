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

package cache_hdl

import (
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"sync"
	"time"
)

type key struct {
	kind model.CacheKind
	port int
}

type entry struct {
	value     any
	timestamp time.Time
}

// Handler is an in-memory TTL cache keyed by (kind, port). Expired entries
// stay in the map until the next Put overwrites them; Get treats them as
// misses either way.
type Handler struct {
	entries map[key]entry
	ttl     map[model.CacheKind]time.Duration
	mu      sync.RWMutex
}

func New(healthTTL time.Duration, trialTTL time.Duration) *Handler {
	return &Handler{
		entries: make(map[key]entry),
		ttl: map[model.CacheKind]time.Duration{
			model.CacheKindHealth: healthTTL,
			model.CacheKindTrial:  trialTTL,
		},
	}
}

func (h *Handler) Get(kind model.CacheKind, port int) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.entries[key{kind: kind, port: port}]
	if !ok {
		return nil, false
	}
	if time.Since(e.timestamp) > h.ttl[kind] {
		return nil, false
	}
	return e.value, true
}

func (h *Handler) Put(kind model.CacheKind, port int, value any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[key{kind: kind, port: port}] = entry{value: value, timestamp: time.Now()}
}

// Invalidate drops all cached state for a port. Called after actions that
// change what a probe would observe, like restarts and trial resets.
func (h *Handler) Invalidate(port int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.entries, key{kind: model.CacheKindHealth, port: port})
	delete(h.entries, key{kind: model.CacheKindTrial, port: port})
}
