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

package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/SENERGY-Platform/go-cc-job-handler/ccjh"
	"github.com/SENERGY-Platform/go-service-base/srv-base"
	"github.com/SENERGY-Platform/go-service-base/srv-base/types"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/api"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/handler/cache_hdl"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/handler/discovery_hdl"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/handler/gateway_hdl"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/handler/http_hdl"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/handler/job_hdl"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/handler/probe_hdl"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/handler/reset_hdl"
	lib_model "github.com/SENERGY-Platform/mgw-gateway-monitor/lib/model"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util"
	"github.com/SENERGY-Platform/mgw-gateway-monitor/util/naming_hdl"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"
)

var version string

func main() {
	srv_base.PrintInfo(lib_model.ServiceName, version)

	flags := util.NewFlags()

	config, err := util.NewConfig(flags.ConfPath)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logFile, err := util.InitLogger(config.Logger)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		var logFileError *srv_base.LogFileError
		if errors.As(err, &logFileError) {
			os.Exit(1)
		}
	}
	if logFile != nil {
		defer logFile.Close()
	}

	util.Logger.Debugf("config: %s", srv_base.ToJsonStr(config))

	discoveryConfig, err := discovery_hdl.LoadDiscoveryConfig(config.DiscoveryHandler.ConfigPath)
	if err != nil {
		util.Logger.Error(err)
		return
	}

	dockerClient, err := discovery_hdl.NewDockerClient()
	if err != nil {
		util.Logger.Error(err)
		return
	}

	discoveryHandler := discovery_hdl.New(dockerClient, discoveryConfig, time.Duration(config.Gateway.HttpTimeout))
	identityHandler := naming_hdl.New(discoveryConfig)
	cacheHandler := cache_hdl.New(time.Duration(config.Gateway.HealthCacheTTL), time.Duration(config.Gateway.TrialCacheTTL))
	probeHandler := probe_hdl.New(config.Gateway.Host, time.Duration(config.Gateway.HttpTimeout), cacheHandler)
	gatewayHandler := gateway_hdl.New(discoveryHandler, identityHandler, probeHandler, cacheHandler)
	resetHandler := reset_hdl.New(config.Gateway.Host, config.Automation, cacheHandler)

	ctx, cf := context.WithCancel(context.Background())
	defer cf()

	ccHandler := ccjh.New(config.Jobs.BufferSize)
	jobHandler := job_hdl.New(ctx, ccHandler)

	// one worker: the automation browser must never run concurrently
	err = ccHandler.RunAsync(1, time.Duration(config.Jobs.CCHInterval)*time.Microsecond)
	if err != nil {
		util.Logger.Error(err)
		return
	}
	defer ccHandler.Stop()

	go func() {
		ticker := time.NewTicker(time.Duration(config.Jobs.PrgInterval) * time.Microsecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := jobHandler.PurgeJobs(config.Jobs.MaxAge); n > 0 {
					util.Logger.Debugf("purged %d jobs", n)
				}
			}
		}
	}()

	mApi := api.New(gatewayHandler, resetHandler, jobHandler)

	httpHandler := http_hdl.New(mApi, map[string]string{
		lib_model.HeaderApiVer:  version,
		lib_model.HeaderSrvName: lib_model.ServiceName,
	})

	util.Logger.Debugf("routes: %s", srv_base.ToJsonStr(http_hdl.GetRoutes(httpHandler)))

	listener, err := net.Listen("tcp", ":"+strconv.FormatInt(int64(config.ServerPort), 10))
	if err != nil {
		util.Logger.Error(err)
		return
	}
	srv_base.StartServer(&http.Server{Handler: httpHandler}, listener, srv_base_types.DefaultShutdownSignals)
}
