// Copyright 2023 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sys/unix"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/mendersoftware/go-lib-micro/log"

	api "github.com/mendersoftware/deviceregistry/api/http"
	"github.com/mendersoftware/deviceregistry/app"
	"github.com/mendersoftware/deviceregistry/client/jobs"
	"github.com/mendersoftware/deviceregistry/client/nats"
	"github.com/mendersoftware/deviceregistry/client/twin"
	"github.com/mendersoftware/deviceregistry/client/workflows"
	dconfig "github.com/mendersoftware/deviceregistry/config"
	"github.com/mendersoftware/deviceregistry/store"
)

const shutdownTimeout = 5 * time.Second

// NewApp builds the registry App from the configuration. The twin service
// client is only created when its URL is set; without it the registry
// works on the primary store alone.
func NewApp(conf config.Reader, dataStore store.DataStore, natsClient nats.Client) app.App {
	timeout := conf.GetInt(dconfig.SettingHTTPClientTimeout)

	appConfig := app.Config{
		Devices: app.DeviceRegistryConfig{
			Workflows:     workflows.NewClient(conf.GetString(dconfig.SettingWorkflowsURL)),
			HaveAuditLogs: conf.GetBool(dconfig.SettingEnableAuditLogs),
		},
		Jobs: app.JobRegistryConfig{
			Jobs:              jobs.NewClient(conf.GetString(dconfig.SettingJobServiceURL), timeout),
			RequireJobCreator: conf.GetBool(dconfig.SettingRequireJobCreator),
		},
	}
	if natsClient != nil {
		appConfig.Devices.Events = natsClient
	}
	if url := conf.GetString(dconfig.SettingTwinServiceURL); url != "" {
		appConfig.Devices.Twins = twin.NewClient(url, timeout)
	}
	return app.New(dataStore, appConfig)
}

// InitAndRun initializes the server and runs it
func InitAndRun(conf config.Reader, dataStore store.DataStore) error {
	ctx := context.Background()

	log.Setup(conf.GetBool(dconfig.SettingDebugLog))
	l := log.FromContext(ctx)

	natsClient, err := nats.NewClientWithDefaults(conf.GetString(dconfig.SettingNatsURI))
	if err != nil {
		return errors.Wrap(err, "failed to connect to nats")
	}
	defer natsClient.Close()

	registryApp := NewApp(conf, dataStore, natsClient)
	if err := registryApp.Filters().InitializeDefaults(ctx); err != nil {
		l.Warnf("failed to initialize the built-in filters: %s", err)
	}
	app.RegisterMetrics(prometheus.DefaultRegisterer)

	api.SetAcceptedOrigins(conf.GetStringSlice(dconfig.SettingWSAllowedOrigins))
	router, err := api.NewRouter(registryApp, natsClient, &api.Config{
		SuperAdminList: conf.GetString(dconfig.SettingSuperAdminList),
	})
	if err != nil {
		l.Fatal(err)
	}

	var listen = conf.GetString(dconfig.SettingListen)
	srv := &http.Server{
		Addr:    listen,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, unix.SIGINT, unix.SIGTERM)
	<-quit

	l.Info("Shutdown Server ...")

	// Event streams only end when cancelled.
	registryApp.Shutdown(shutdownTimeout)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxWithTimeout); err != nil {
		l.Fatal("Server Shutdown: ", err)
	}

	return nil
}
