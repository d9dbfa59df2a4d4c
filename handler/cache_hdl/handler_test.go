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
	"testing"
	"time"
)

func TestHandler_GetPut(t *testing.T) {
	h := New(time.Minute, time.Minute)
	if _, ok := h.Get(model.CacheKindHealth, 8088); ok {
		t.Error("ok == true")
	}
	h.Put(model.CacheKindHealth, 8088, "a")
	v, ok := h.Get(model.CacheKindHealth, 8088)
	if !ok {
		t.Error("ok == false")
	}
	if v != "a" {
		t.Errorf("a != %v", v)
	}
	if _, ok = h.Get(model.CacheKindTrial, 8088); ok {
		t.Error("ok == true")
	}
	if _, ok = h.Get(model.CacheKindHealth, 8089); ok {
		t.Error("ok == true")
	}
}

func TestHandler_Expiry(t *testing.T) {
	h := New(10*time.Millisecond, time.Minute)
	h.Put(model.CacheKindHealth, 8088, "a")
	h.Put(model.CacheKindTrial, 8088, "b")
	time.Sleep(25 * time.Millisecond)
	if _, ok := h.Get(model.CacheKindHealth, 8088); ok {
		t.Error("ok == true")
	}
	if _, ok := h.Get(model.CacheKindTrial, 8088); !ok {
		t.Error("ok == false")
	}
	h.Put(model.CacheKindHealth, 8088, "c")
	v, ok := h.Get(model.CacheKindHealth, 8088)
	if !ok {
		t.Error("ok == false")
	}
	if v != "c" {
		t.Errorf("c != %v", v)
	}
}

func TestHandler_Invalidate(t *testing.T) {
	h := New(time.Minute, time.Minute)
	h.Put(model.CacheKindHealth, 8088, "a")
	h.Put(model.CacheKindTrial, 8088, "b")
	h.Put(model.CacheKindHealth, 8089, "c")
	h.Invalidate(8088)
	if _, ok := h.Get(model.CacheKindHealth, 8088); ok {
		t.Error("ok == true")
	}
	if _, ok := h.Get(model.CacheKindTrial, 8088); ok {
		t.Error("ok == true")
	}
	if _, ok := h.Get(model.CacheKindHealth, 8089); !ok {
		t.Error("ok == false")
	}
}
