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

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/mendersoftware/deviceregistry/client/nats"
	"github.com/mendersoftware/deviceregistry/client/twin"
	"github.com/mendersoftware/deviceregistry/client/workflows"
	"github.com/mendersoftware/deviceregistry/model"
	"github.com/mendersoftware/deviceregistry/scope"
	"github.com/mendersoftware/deviceregistry/store"
	"github.com/mendersoftware/deviceregistry/utils"
)

// DeviceRegistry manages the device records
//
//nolint:lll
//go:generate ../utils/mockgen.sh
type DeviceRegistry interface {
	Get(ctx context.Context, sc scope.Scope, deviceID string) (*model.Device, error)
	Add(ctx context.Context, sc scope.Scope, dev *model.Device) (*model.Device, error)
	Update(ctx context.Context, sc scope.Scope, dev *model.Device) (*model.Device, error)
	Remove(ctx context.Context, sc scope.Scope, deviceID string) error
	SetEnabled(ctx context.Context, sc scope.Scope, deviceID string, enabled bool) (*model.Device, error)
	List(ctx context.Context, sc scope.Scope, filter model.DeviceListFilter) (*model.DeviceListResult, error)
	GetTwin(ctx context.Context, sc scope.Scope, deviceID string) (*model.Twin, error)
	UpdateTwin(ctx context.Context, sc scope.Scope, deviceID string, twin *model.Twin) (*model.Device, error)
	DeviceIDsByUser(ctx context.Context, sc scope.Scope, userName string) ([]string, error)
}

// DeviceRegistryConfig selects the collaborators of the DeviceRegistry.
// Without Twins the primary store holds the twins too.
type DeviceRegistryConfig struct {
	Twins         twin.Client
	Events        nats.Client
	Workflows     workflows.Client
	HaveAuditLogs bool
	Clock         utils.Clock
}

type deviceRegistry struct {
	store      store.DataStore
	reconciler reconciler
	notifier   notifier
	clock      utils.Clock
}

// NewDeviceRegistry returns the DeviceRegistry backed by ds
func NewDeviceRegistry(ds store.DataStore, config DeviceRegistryConfig) DeviceRegistry {
	var rec reconciler = primaryOnly{store: ds}
	if config.Twins != nil {
		rec = withTwinHub{store: ds, twins: config.Twins}
	}
	clock := config.Clock
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &deviceRegistry{
		store:      ds,
		reconciler: rec,
		notifier: notifier{
			events:        config.Events,
			workflows:     config.Workflows,
			haveAuditLogs: config.HaveAuditLogs,
		},
		clock: clock,
	}
}

func (r *deviceRegistry) notify(
	ctx context.Context,
	sc scope.Scope,
	typ model.DeviceEventType,
	dev *model.Device,
) {
	r.notifier.notify(ctx, sc, model.DeviceEvent{
		Type:      typ,
		DeviceID:  dev.DeviceID(),
		Owner:     dev.Owner(),
		Timestamp: r.clock.Now(),
	})
}

// Get returns the device or nil if it does not exist. Devices of other
// users fail with ErrAccessDenied.
func (r *deviceRegistry) Get(
	ctx context.Context,
	sc scope.Scope,
	deviceID string,
) (*model.Device, error) {
	if deviceID == "" {
		return nil, ErrInvalidArgument
	}
	dev, err := r.reconciler.get(ctx, deviceID)
	if err != nil || dev == nil {
		return nil, err
	}
	if !sc.Owns(dev.Owner()) {
		return nil, ErrAccessDenied
	}
	return dev, nil
}

// existing returns the merged record of deviceID, ErrDeviceNotRegistered
// if there is none and ErrAccessDenied if it is not the caller's.
func (r *deviceRegistry) existing(
	ctx context.Context,
	sc scope.Scope,
	deviceID string,
) (*model.Device, error) {
	if deviceID == "" {
		return nil, ErrRequiredPropertyMissing
	}
	dev, err := r.reconciler.get(ctx, deviceID)
	if err != nil {
		return nil, err
	} else if dev == nil {
		return nil, ErrDeviceNotRegistered
	} else if !sc.Owns(dev.Owner()) {
		return nil, ErrAccessDenied
	}
	return dev, nil
}

func (r *deviceRegistry) Add(
	ctx context.Context,
	sc scope.Scope,
	dev *model.Device,
) (*model.Device, error) {
	if dev == nil || dev.DeviceProperties == nil || dev.DeviceID() == "" {
		return nil, ErrRequiredPropertyMissing
	}
	prev, err := r.store.GetDevice(ctx, dev.DeviceID())
	if err != nil {
		return nil, storeError(err, "app: failed to get device")
	} else if prev != nil {
		return nil, ErrDeviceAlreadyRegistered
	}

	dev.EnsureTwin()
	if sc.MultiTenant {
		dev.Twin.SetOwner(sc.UserName)
	}
	now := r.clock.Now()
	if dev.DeviceProperties.CreatedTime == nil {
		dev.DeviceProperties.CreatedTime = &now
	}
	dev.DeviceProperties.UpdatedTime = &now

	saved, err := r.store.SaveDevice(ctx, dev)
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrDeviceAlreadyRegistered
	} else if err != nil {
		return nil, withKind(ErrSaveFailed, err)
	}
	if err := r.reconciler.added(ctx, saved); err != nil {
		return nil, withKind(ErrSaveFailed, err)
	}
	r.notify(ctx, sc, model.DeviceEventCreated, saved)
	return saved, nil
}

// Update replaces the device record. The storage identities of the
// existing record are kept when the input has none, and a missing twin
// keeps the existing one. Only a supplied twin is pushed to the twin
// service.
func (r *deviceRegistry) Update(
	ctx context.Context,
	sc scope.Scope,
	dev *model.Device,
) (*model.Device, error) {
	if dev == nil || dev.DeviceProperties == nil {
		return nil, ErrRequiredPropertyMissing
	}
	prev, err := r.existing(ctx, sc, dev.DeviceID())
	if errors.Is(err, ErrAccessDenied) {
		return nil, ErrForbidden
	} else if err != nil {
		return nil, err
	}
	twinSupplied := dev.Twin != nil
	if !twinSupplied {
		dev.Twin = prev.Twin
	}
	dev.EnsureTwin()
	if sc.Active() {
		if dev.Owner() != prev.Owner() {
			return nil, ErrOperationNotAllowed
		}
		dev.Twin.SetOwner(prev.Owner())
	}
	if dev.ID == "" {
		dev.ID = prev.ID
	}
	if dev.RID == "" {
		dev.RID = prev.RID
	}
	if dev.DeviceProperties.CreatedTime == nil && prev.DeviceProperties != nil {
		dev.DeviceProperties.CreatedTime = prev.DeviceProperties.CreatedTime
	}
	now := r.clock.Now()
	dev.DeviceProperties.UpdatedTime = &now

	saved, err := r.store.SaveDevice(ctx, dev)
	if err != nil {
		return nil, withKind(ErrSaveFailed, err)
	}
	if twinSupplied {
		if err := r.reconciler.updated(ctx, saved); err != nil {
			return nil, withKind(ErrSaveFailed, err)
		}
	}
	r.notify(ctx, sc, model.DeviceEventUpdated, saved)
	return saved, nil
}

func (r *deviceRegistry) Remove(ctx context.Context, sc scope.Scope, deviceID string) error {
	prev, err := r.existing(ctx, sc, deviceID)
	if err != nil {
		return err
	}
	err = r.store.DeleteDevice(ctx, prev.ID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrDeviceNotRegistered
	} else if err != nil {
		return withKind(ErrDeleteFailed, err)
	}
	r.notify(ctx, sc, model.DeviceEventDeleted, prev)
	return nil
}

func (r *deviceRegistry) SetEnabled(
	ctx context.Context,
	sc scope.Scope,
	deviceID string,
	enabled bool,
) (*model.Device, error) {
	dev, err := r.existing(ctx, sc, deviceID)
	if err != nil {
		return nil, err
	} else if dev.DeviceProperties == nil {
		return nil, ErrRequiredPropertyMissing
	}
	now := r.clock.Now()
	dev.DeviceProperties.HubEnabledState = &enabled
	dev.DeviceProperties.UpdatedTime = &now

	saved, err := r.store.SaveDevice(ctx, dev)
	if err != nil {
		return nil, withKind(ErrSaveFailed, err)
	}
	if err := r.reconciler.enabled(ctx, deviceID, enabled); err != nil {
		return nil, withKind(ErrSaveFailed, err)
	}
	event := model.DeviceEventDisabled
	if enabled {
		event = model.DeviceEventEnabled
	}
	r.notify(ctx, sc, event, saved)
	return saved, nil
}

// List returns a page of the devices matching filter together with the
// total and the filtered device counts.
func (r *deviceRegistry) List(
	ctx context.Context,
	sc scope.Scope,
	filter model.DeviceListFilter,
) (*model.DeviceListResult, error) {
	if filter.Skip < 0 {
		return nil, ErrInvalidArgument
	}
	res, err := r.reconciler.list(ctx, sc, filter)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Debugf("listed %d of %d devices (%d total)",
		len(res.Results), res.TotalFilteredCount, res.TotalDeviceCount)
	return res, nil
}

func (r *deviceRegistry) GetTwin(
	ctx context.Context,
	sc scope.Scope,
	deviceID string,
) (*model.Twin, error) {
	if deviceID == "" {
		return nil, ErrInvalidArgument
	}
	t, err := r.reconciler.twin(ctx, deviceID)
	if err != nil {
		return nil, err
	} else if t == nil {
		return nil, ErrDeviceNotRegistered
	} else if !sc.Owns(t.Owner()) {
		return nil, ErrAccessDenied
	}
	return t, nil
}

// UpdateTwin replaces the twin of a device through Update
func (r *deviceRegistry) UpdateTwin(
	ctx context.Context,
	sc scope.Scope,
	deviceID string,
	t *model.Twin,
) (*model.Device, error) {
	if t == nil {
		return nil, ErrRequiredPropertyMissing
	}
	dev, err := r.existing(ctx, sc, deviceID)
	if errors.Is(err, ErrAccessDenied) {
		return nil, ErrForbidden
	} else if err != nil {
		return nil, err
	}
	t.DeviceID = deviceID
	dev.Twin = t
	return r.Update(ctx, sc, dev)
}

// DeviceIDsByUser returns the ids of the devices owned by userName, the
// caller by default. Without multi-tenancy devices have no owner and the
// result is nil.
func (r *deviceRegistry) DeviceIDsByUser(
	ctx context.Context,
	sc scope.Scope,
	userName string,
) ([]string, error) {
	if !sc.MultiTenant {
		return nil, nil
	}
	if userName == "" {
		userName = sc.UserName
	}
	if !sc.Owns(userName) {
		return nil, ErrForbidden
	}
	return r.reconciler.deviceIDsByOwner(ctx, userName)
}
