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

package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mendersoftware/go-lib-micro/accesslog"
	"github.com/mendersoftware/go-lib-micro/requestid"

	"github.com/mendersoftware/deviceregistry/app"
	"github.com/mendersoftware/deviceregistry/client/nats"
)

// API URL used by the HTTP router
const (
	APIURLInternal   = "/api/internal/v1/deviceregistry"
	APIURLManagement = "/api/management/v1/deviceregistry"

	APIURLInternalAlive   = APIURLInternal + "/alive"
	APIURLInternalHealth  = APIURLInternal + "/health"
	APIURLInternalMetrics = APIURLInternal + "/metrics"

	APIURLManagementDevices        = APIURLManagement + "/devices"
	APIURLManagementDevicesSearch  = APIURLManagement + "/devices/search"
	APIURLManagementDevicesEvents  = APIURLManagement + "/devices/events"
	APIURLManagementDevice         = APIURLManagement + "/devices/:deviceId"
	APIURLManagementDeviceEnabled  = APIURLManagement + "/devices/:deviceId/enabled"
	APIURLManagementDeviceTwin     = APIURLManagement + "/devices/:deviceId/twin"
	APIURLManagementFilters        = APIURLManagement + "/filters"
	APIURLManagementFiltersRecent  = APIURLManagement + "/filters/recent"
	APIURLManagementFilterExists   = APIURLManagement + "/filters/name/:name/exists"
	APIURLManagementFilter         = APIURLManagement + "/filters/:filterId"
	APIURLManagementFilterTouch    = APIURLManagement + "/filters/:filterId/touch"
	APIURLManagementFilterJobs     = APIURLManagement + "/filters/:filterId/jobs"
	APIURLManagementClauses        = APIURLManagement + "/clauses"
	APIURLManagementJobs           = APIURLManagement + "/jobs"
	APIURLManagementJobsByStatus   = APIURLManagement + "/jobs/status/:status"
	APIURLManagementJob            = APIURLManagement + "/jobs/:jobId"
	APIURLManagementJobCancel      = APIURLManagement + "/jobs/:jobId/cancel"
	APIURLManagementJobResults     = APIURLManagement + "/jobs/:jobId/results"
	APIURLManagementUserDevices    = APIURLManagement + "/users/:userName/devices"
	APIURLManagementUserJobs       = APIURLManagement + "/users/:userName/jobs"
)

// Config holds the settings of the HTTP layer
type Config struct {
	// SuperAdminList is the raw administrator allow-list; an empty list
	// disables per-user scoping
	SuperAdminList string
}

// NewRouter returns the gin router
func NewRouter(
	app app.App,
	natsClient nats.Client,
	config *Config,
) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()

	if config == nil {
		config = &Config{}
	}

	router := gin.New()
	router.Use(accesslog.Middleware())
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowCredentials: true,
		AllowHeaders: []string{
			"Accept",
			"Allow",
			"Content-Type",
			"Origin",
			"Authorization",
			"Accept-Encoding",
			"Access-Control-Request-Headers",
			"Header-Access-Control-Request",
		},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowWebSockets: true,
		ExposeHeaders: []string{
			"Location",
			"Link",
		},
		MaxAge: time.Hour * 12,
	}))

	status := NewStatusController(app)
	router.GET(APIURLInternalAlive, status.Alive)
	router.GET(APIURLInternalHealth, status.Health)
	router.GET(APIURLInternalMetrics, gin.WrapH(promhttp.Handler()))

	management := router.Group("",
		IdentityMiddleware,
		ScopeMiddleware(config.SuperAdminList),
	)

	devices := NewDeviceController(app)
	management.GET(APIURLManagementDevices, devices.List)
	management.POST(APIURLManagementDevices, devices.Add)
	management.POST(APIURLManagementDevicesSearch, devices.Search)
	management.GET(APIURLManagementDevice, devices.Get)
	management.PUT(APIURLManagementDevice, devices.Update)
	management.DELETE(APIURLManagementDevice, devices.Remove)
	management.PUT(APIURLManagementDeviceEnabled, devices.SetEnabled)
	management.GET(APIURLManagementDeviceTwin, devices.GetTwin)
	management.PUT(APIURLManagementDeviceTwin, devices.UpdateTwin)
	management.GET(APIURLManagementUserDevices, devices.ListByUser)

	if natsClient != nil {
		events := NewEventsController(app, natsClient)
		management.GET(APIURLManagementDevicesEvents, events.Stream)
	}

	filters := NewFilterController(app)
	management.GET(APIURLManagementFilters, filters.List)
	management.POST(APIURLManagementFilters, filters.Save)
	management.GET(APIURLManagementFiltersRecent, filters.Recent)
	management.GET(APIURLManagementFilterExists, filters.NameExists)
	management.GET(APIURLManagementFilter, filters.Get)
	management.DELETE(APIURLManagementFilter, filters.Delete)
	management.PUT(APIURLManagementFilterTouch, filters.Touch)

	clauses := NewClauseController(app)
	management.GET(APIURLManagementClauses, clauses.List)
	management.POST(APIURLManagementClauses, clauses.Save)
	management.DELETE(APIURLManagementClauses, clauses.Delete)

	jobs := NewJobController(app)
	management.GET(APIURLManagementJobs, jobs.List)
	management.POST(APIURLManagementJobs, jobs.Add)
	management.GET(APIURLManagementJobsByStatus, jobs.ListByStatus)
	management.GET(APIURLManagementJob, jobs.Get)
	management.DELETE(APIURLManagementJob, jobs.Delete)
	management.PUT(APIURLManagementJobCancel, jobs.Cancel)
	management.GET(APIURLManagementJobResults, jobs.Results)
	management.GET(APIURLManagementFilterJobs, jobs.ListByFilter)
	management.GET(APIURLManagementUserJobs, jobs.ListByUser)

	return router, nil
}
