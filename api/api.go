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

package api

import (
	"context"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/handler"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
)

type Api struct {
	gatewayHdl handler.GatewayHandler
	resetHdl   handler.ResetHandler
	jobHdl     handler.JobHandler
}

func New(gatewayHdl handler.GatewayHandler, resetHdl handler.ResetHandler, jobHdl handler.JobHandler) *Api {
	return &Api{
		gatewayHdl: gatewayHdl,
		resetHdl:   resetHdl,
		jobHdl:     jobHdl,
	}
}

func (a *Api) SrvHealth(ctx context.Context) (model.SrvHealth, error) {
	available, workloads := a.gatewayHdl.RuntimeInfo(ctx)
	health := model.SrvHealth{
		Status:           model.HealthStateHealthy,
		RuntimeAvailable: available,
		Workloads:        workloads,
	}
	return health, nil
}
