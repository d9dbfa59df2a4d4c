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

package http_hdl

import (
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util"
	"github.com/gin-gonic/gin"
	"net/http"
)

const gatewayParam = "g"

type logsQuery struct {
	Lines int `form:"lines"`
}

type gatewayLogs struct {
	Name string `json:"name"`
	Logs string `json:"logs"`
}

func getGatewaysH(a lib.Api) gin.HandlerFunc {
	return func(gc *gin.Context) {
		records, err := a.GetGateways(gc.Request.Context())
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.JSON(http.StatusOK, model.GatewayList{Gateways: records, Count: len(records)})
	}
}

func getGatewayH(a lib.Api) gin.HandlerFunc {
	return func(gc *gin.Context) {
		record, err := a.GetGateway(gc.Request.Context(), gc.Param(gatewayParam))
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.JSON(http.StatusOK, record)
	}
}

// postGatewayRestartH keeps the action result in the body on failure so
// consumers see success flag and message alongside the status code.
func postGatewayRestartH(a lib.Api) gin.HandlerFunc {
	return func(gc *gin.Context) {
		result, err := a.RestartGateway(gc.Request.Context(), gc.Param(gatewayParam))
		if err != nil {
			sc := util.GetStatusCode(err)
			if sc == 0 {
				sc = http.StatusInternalServerError
			}
			gc.JSON(sc, result)
			return
		}
		gc.JSON(http.StatusOK, result)
	}
}

func getGatewayLogsH(a lib.Api) gin.HandlerFunc {
	return func(gc *gin.Context) {
		query := logsQuery{Lines: 100}
		if err := gc.ShouldBindQuery(&query); err != nil {
			_ = gc.Error(model.NewInvalidInputError(err))
			return
		}
		name := gc.Param(gatewayParam)
		logs, err := a.GetGatewayLogs(gc.Request.Context(), name, query.Lines)
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.JSON(http.StatusOK, gatewayLogs{Name: name, Logs: logs})
	}
}
