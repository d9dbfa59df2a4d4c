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
	"github.com/gin-gonic/gin"
	"net/http"
)

func getTrialStatusH(a lib.Api) gin.HandlerFunc {
	return func(gc *gin.Context) {
		summary, err := a.GetTrialStatus(gc.Request.Context())
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.JSON(http.StatusOK, summary)
	}
}

// postTrialResetH blocks until the workflow finishes. A failed workflow is
// reported with the full result body and status 500; transport-level errors
// go through the error middleware as usual.
func postTrialResetH(a lib.Api) gin.HandlerFunc {
	return func(gc *gin.Context) {
		result, err := a.ResetGatewayTrial(gc.Request.Context(), gc.Param(gatewayParam))
		if err != nil {
			_ = gc.Error(err)
			return
		}
		if !result.Success {
			gc.JSON(http.StatusInternalServerError, result)
			return
		}
		gc.JSON(http.StatusOK, result)
	}
}

func postBulkTrialResetH(a lib.Api) gin.HandlerFunc {
	return func(gc *gin.Context) {
		request := model.BulkResetRequest{}
		if gc.Request.ContentLength > 0 {
			if err := gc.ShouldBindJSON(&request); err != nil {
				_ = gc.Error(model.NewInvalidInputError(err))
				return
			}
		}
		result, err := a.BulkResetTrials(gc.Request.Context(), request)
		if err != nil {
			_ = gc.Error(err)
			return
		}
		gc.JSON(http.StatusOK, result)
	}
}
