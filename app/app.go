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

package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mendersoftware/deviceregistry/store"
	"github.com/mendersoftware/deviceregistry/utils"
)

// App interface describes app objects
//
//go:generate ../utils/mockgen.sh
type App interface {
	HealthCheck(ctx context.Context) error
	Filters() FilterRegistry
	Devices() DeviceRegistry
	Jobs() JobRegistry
	Shutdown(timeout time.Duration)
	ShutdownDone()
	RegisterShutdownCancel(context.CancelFunc) uint32
	UnregisterShutdownCancel(uint32)
}

// app is an app object
type app struct {
	store            store.DataStore
	filters          FilterRegistry
	devices          DeviceRegistry
	jobs             JobRegistry
	shutdownCancels  map[uint32]context.CancelFunc
	shutdownCancelsM *sync.Mutex
	shutdownDone     chan struct{}
}

// Config collects the collaborators of the registries
type Config struct {
	Devices DeviceRegistryConfig
	Jobs    JobRegistryConfig
	Clock   utils.Clock
}

// New initialize a new deviceregistry App
func New(ds store.DataStore, config Config) App {
	if config.Clock == nil {
		config.Clock = utils.RealClock{}
	}
	if config.Devices.Clock == nil {
		config.Devices.Clock = config.Clock
	}
	return &app{
		store:            ds,
		filters:          NewFilterRegistry(ds, config.Clock),
		devices:          NewDeviceRegistry(ds, config.Devices),
		jobs:             NewJobRegistry(ds, config.Jobs),
		shutdownCancels:  make(map[uint32]context.CancelFunc),
		shutdownCancelsM: &sync.Mutex{},
		shutdownDone:     make(chan struct{}),
	}
}

// HealthCheck performs a health check and returns an error if it fails
func (a *app) HealthCheck(ctx context.Context) error {
	return a.store.Ping(ctx)
}

func (a *app) Filters() FilterRegistry {
	return a.filters
}

func (a *app) Devices() DeviceRegistry {
	return a.devices
}

func (a *app) Jobs() JobRegistry {
	return a.jobs
}

// Shutdown cancels the registered long running requests, spreading the
// cancellations over timeout.
func (a *app) Shutdown(timeout time.Duration) {
	a.shutdownCancelsM.Lock()
	defer a.shutdownCancelsM.Unlock()
	ticker := time.NewTicker(timeout / time.Duration(len(a.shutdownCancels)+1))
	defer ticker.Stop()
	for _, cancel := range a.shutdownCancels {
		cancel()
		<-ticker.C
	}
	<-ticker.C
	close(a.shutdownDone)
}

func (a *app) ShutdownDone() {
	<-a.shutdownDone
}

var shutdownID uint32

func (a *app) RegisterShutdownCancel(cancel context.CancelFunc) uint32 {
	a.shutdownCancelsM.Lock()
	defer a.shutdownCancelsM.Unlock()
	id := atomic.AddUint32(&shutdownID, 1)
	a.shutdownCancels[id] = cancel
	return id
}

func (a *app) UnregisterShutdownCancel(id uint32) {
	a.shutdownCancelsM.Lock()
	defer a.shutdownCancelsM.Unlock()
	delete(a.shutdownCancels, id)
}
