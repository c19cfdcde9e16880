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
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	nats_mocks "github.com/mendersoftware/deviceregistry/client/nats/mocks"
	twin_mocks "github.com/mendersoftware/deviceregistry/client/twin/mocks"
	"github.com/mendersoftware/deviceregistry/client/workflows"
	wf_mocks "github.com/mendersoftware/deviceregistry/client/workflows/mocks"
	"github.com/mendersoftware/deviceregistry/model"
	"github.com/mendersoftware/deviceregistry/scope"
	store_mocks "github.com/mendersoftware/deviceregistry/store/mocks"
)

func newDevice(deviceID string) *model.Device {
	return &model.Device{
		DeviceProperties: &model.DeviceProperties{DeviceID: deviceID},
	}
}

func withTemperature(dev *model.Device, temp float64) *model.Device {
	twin := dev.EnsureTwin()
	twin.Properties.Reported = map[string]interface{}{
		"Config": map[string]interface{}{"TemperatureMeanValue": temp},
	}
	return dev
}

func deviceIDs(devs []model.Device) []string {
	ids := make([]string, 0, len(devs))
	for _, dev := range devs {
		ids = append(ids, dev.DeviceID())
	}
	return ids
}

func TestDeviceOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	devices := NewDeviceRegistry(newMemStore(), DeviceRegistryConfig{
		Clock: newStepClock(),
	})

	added, err := devices.Add(ctx, scopeAlice, newDevice("dev-1"))
	require.NoError(t, err)
	assert.Equal(t, scopeAlice.UserName, added.Owner())
	assert.NotEmpty(t, added.ID)
	assert.NotNil(t, added.DeviceProperties.CreatedTime)

	testCases := map[string]struct {
		scope scope.Scope

		visible bool
	}{
		"owner": {
			scope:   scopeAlice,
			visible: true,
		},
		"other user": {
			scope:   scopeBob,
			visible: false,
		},
		"super admin": {
			scope:   scopeAdmin,
			visible: true,
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			dev, err := devices.Get(ctx, tc.scope, "dev-1")
			res, errList := devices.List(ctx, tc.scope, model.DeviceListFilter{})
			require.NoError(t, errList)
			if tc.visible {
				require.NoError(t, err)
				assert.Equal(t, "dev-1", dev.DeviceID())
				assert.Equal(t, []string{"dev-1"}, deviceIDs(res.Results))
				assert.Equal(t, 1, res.TotalDeviceCount)
			} else {
				assert.ErrorIs(t, err, ErrAccessDenied)
				assert.Nil(t, dev)
				assert.Empty(t, res.Results)
				assert.Equal(t, 0, res.TotalDeviceCount)
			}
		})
	}
}

func TestDeviceUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ds := newMemStore()
	devices := NewDeviceRegistry(ds, DeviceRegistryConfig{
		Clock: newStepClock(),
	})
	added, err := devices.Add(ctx, scopeAlice, newDevice("dev-1"))
	require.NoError(t, err)

	stolen := newDevice("dev-1")
	stolen.EnsureTwin().SetOwner(scopeBob.UserName)
	_, err = devices.Update(ctx, scopeAlice, stolen)
	assert.ErrorIs(t, err, ErrOperationNotAllowed)

	stored, err := ds.GetDevice(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, scopeAlice.UserName, stored.Owner())

	_, err = devices.Update(ctx, scopeBob, newDevice("dev-1"))
	assert.ErrorIs(t, err, ErrForbidden)

	update := newDevice("dev-1")
	update.DeviceProperties.Manufacturer = "acme"
	update.EnsureTwin().SetOwner(scopeAlice.UserName)
	update.Twin.Tags["site"] = "oslo"
	updated, err := devices.Update(ctx, scopeAlice, update)
	require.NoError(t, err)
	assert.Equal(t, added.ID, updated.ID)
	assert.Equal(t, added.DeviceProperties.CreatedTime.Unix(),
		updated.DeviceProperties.CreatedTime.Unix())
	assert.True(t, updated.DeviceProperties.UpdatedTime.After(
		*added.DeviceProperties.UpdatedTime))

	stored, err = ds.GetDevice(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "acme", stored.DeviceProperties.Manufacturer)
	assert.Equal(t, "oslo", stored.Twin.Tags["site"])
	assert.Len(t, ds.devices, 1)
}

func TestDeviceErrors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		call func(ctx context.Context, devices DeviceRegistry) error

		err error
	}{
		"add, already registered": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				_, err := devices.Add(ctx, scopeBob, newDevice("dev-1"))
				return err
			},
			err: ErrDeviceAlreadyRegistered,
		},
		"add, missing properties": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				_, err := devices.Add(ctx, scopeAlice, &model.Device{})
				return err
			},
			err: ErrRequiredPropertyMissing,
		},
		"add, missing device id": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				_, err := devices.Add(ctx, scopeAlice, newDevice(""))
				return err
			},
			err: ErrRequiredPropertyMissing,
		},
		"update, not registered": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				_, err := devices.Update(ctx, scopeAlice, newDevice("dev-2"))
				return err
			},
			err: ErrDeviceNotRegistered,
		},
		"remove, not registered": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				return devices.Remove(ctx, scopeAlice, "dev-2")
			},
			err: ErrDeviceNotRegistered,
		},
		"remove, other user": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				return devices.Remove(ctx, scopeBob, "dev-1")
			},
			err: ErrAccessDenied,
		},
		"set enabled, not registered": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				_, err := devices.SetEnabled(ctx, scopeAlice, "dev-2", true)
				return err
			},
			err: ErrDeviceNotRegistered,
		},
		"set enabled, other user": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				_, err := devices.SetEnabled(ctx, scopeBob, "dev-1", true)
				return err
			},
			err: ErrAccessDenied,
		},
		"get twin, not registered": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				_, err := devices.GetTwin(ctx, scopeAlice, "dev-2")
				return err
			},
			err: ErrDeviceNotRegistered,
		},
		"get twin, other user": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				_, err := devices.GetTwin(ctx, scopeBob, "dev-1")
				return err
			},
			err: ErrAccessDenied,
		},
		"update twin, other user": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				_, err := devices.UpdateTwin(ctx, scopeBob, "dev-1", model.NewTwin("dev-1"))
				return err
			},
			err: ErrForbidden,
		},
		"list, negative skip": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				_, err := devices.List(ctx, scopeAlice, model.DeviceListFilter{Skip: -1})
				return err
			},
			err: ErrInvalidArgument,
		},
		"device ids, other user": {
			call: func(ctx context.Context, devices DeviceRegistry) error {
				_, err := devices.DeviceIDsByUser(ctx, scopeBob, scopeAlice.UserName)
				return err
			},
			err: ErrForbidden,
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			ds := newMemStore()
			devices := NewDeviceRegistry(ds, DeviceRegistryConfig{})
			_, err := devices.Add(ctx, scopeAlice, newDevice("dev-1"))
			require.NoError(t, err)

			err = tc.call(ctx, devices)
			assert.ErrorIs(t, err, tc.err)
			assert.Len(t, ds.devices, 1)
		})
	}
}

func TestDeviceGetAbsent(t *testing.T) {
	t.Parallel()
	devices := NewDeviceRegistry(newMemStore(), DeviceRegistryConfig{})
	dev, err := devices.Get(context.Background(), scopeAlice, "dev-1")
	assert.NoError(t, err)
	assert.Nil(t, dev)
}

func TestDeviceRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ds := newMemStore()
	devices := NewDeviceRegistry(ds, DeviceRegistryConfig{})
	_, err := devices.Add(ctx, scopeAlice, newDevice("dev-1"))
	require.NoError(t, err)

	require.NoError(t, devices.Remove(ctx, scopeAdmin, "dev-1"))
	assert.Empty(t, ds.devices)
	assert.ErrorIs(t, devices.Remove(ctx, scopeAdmin, "dev-1"), ErrDeviceNotRegistered)
}

func TestDeviceListPaging(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	devices := NewDeviceRegistry(newMemStore(), DeviceRegistryConfig{})
	for i := 0; i < 25; i++ {
		temp := 40.0
		if i%2 == 0 {
			temp = 75
		}
		dev := withTemperature(newDevice(fmt.Sprintf("dev-%02d", i)), temp)
		_, err := devices.Add(ctx, scopeUnscoped, dev)
		require.NoError(t, err)
	}

	testCases := map[string]struct {
		filter model.DeviceListFilter

		results  int
		filtered int
		first    string
	}{
		"last page": {
			filter:   model.DeviceListFilter{Skip: 20, Take: 10},
			results:  5,
			filtered: 25,
		},
		"take all from skip": {
			filter:   model.DeviceListFilter{Skip: 20},
			results:  5,
			filtered: 25,
		},
		"take all": {
			filter:   model.DeviceListFilter{},
			results:  25,
			filtered: 25,
		},
		"skip past the end": {
			filter:   model.DeviceListFilter{Skip: 30, Take: 10},
			results:  0,
			filtered: 25,
		},
		"clauses, sorted": {
			filter: model.DeviceListFilter{
				Clauses:    []model.Clause{hotClause},
				SortColumn: "DeviceID",
				SortOrder:  model.SortDescending,
				Take:       5,
			},
			results:  5,
			filtered: 13,
			first:    "dev-24",
		},
		"search": {
			filter: model.DeviceListFilter{
				SearchQuery: "dev-1",
			},
			results:  10,
			filtered: 10,
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			res, err := devices.List(ctx, scopeUnscoped, tc.filter)
			require.NoError(t, err)
			assert.Len(t, res.Results, tc.results)
			assert.Equal(t, tc.filtered, res.TotalFilteredCount)
			assert.Equal(t, 25, res.TotalDeviceCount)
			if tc.first != "" {
				assert.Equal(t, tc.first, res.Results[0].DeviceID())
			}
		})
	}
}

func TestDeviceTwin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	devices := NewDeviceRegistry(newMemStore(), DeviceRegistryConfig{})
	_, err := devices.Add(ctx, scopeAlice, newDevice("dev-1"))
	require.NoError(t, err)

	twin, err := devices.GetTwin(ctx, scopeAlice, "dev-1")
	require.NoError(t, err)
	twin.Tags["site"] = "oslo"
	twin.Properties.Desired = map[string]interface{}{"interval": 30}

	_, err = devices.UpdateTwin(ctx, scopeAlice, "dev-1", twin)
	require.NoError(t, err)

	twin, err = devices.GetTwin(ctx, scopeAdmin, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "oslo", twin.Tags["site"])
	assert.Equal(t, scopeAlice.UserName, twin.Owner())
	assert.EqualValues(t, 30, twin.Properties.Desired["interval"])

	ids, err := devices.DeviceIDsByUser(ctx, scopeAlice, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev-1"}, ids)

	ids, err = devices.DeviceIDsByUser(ctx, scopeUnscoped, "")
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestDeviceEvents(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		publishErr error
		auditErr   error
	}{
		"ok": {},
		"ok, best effort": {
			publishErr: errors.New("nats: connection closed"),
			auditErr:   errors.New("workflows: 500"),
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := identity.WithContext(context.Background(), &identity.Identity{
				Subject: scopeAlice.UserName,
				Tenant:  "tenant1",
			})
			events := &nats_mocks.Client{}
			defer events.AssertExpectations(t)
			wf := &wf_mocks.Client{}
			defer wf.AssertExpectations(t)

			devices := NewDeviceRegistry(newMemStore(), DeviceRegistryConfig{
				Events:        events,
				Workflows:     wf,
				HaveAuditLogs: true,
			})
			isEvent := func(typ model.DeviceEventType) interface{} {
				return mock.MatchedBy(func(b []byte) bool {
					var event model.DeviceEvent
					if err := msgpack.Unmarshal(b, &event); err != nil {
						return false
					}
					return event.Type == typ &&
						event.DeviceID == "dev-1" &&
						event.TenantID == "tenant1" &&
						event.Owner == scopeAlice.UserName
				})
			}
			isAuditLog := func(action workflows.Action) interface{} {
				return mock.MatchedBy(func(l workflows.AuditLog) bool {
					return l.Action == action &&
						l.Actor.ID == scopeAlice.UserName &&
						l.Actor.Type == workflows.ActorUser &&
						l.Object.ID == "dev-1"
				})
			}
			subject := model.GetDeviceEventSubject("tenant1")
			events.On("Publish", ctx, subject, isEvent(model.DeviceEventCreated)).
				Return(tc.publishErr).Once()
			events.On("Publish", ctx, subject, isEvent(model.DeviceEventDisabled)).
				Return(tc.publishErr).Once()
			wf.On("SubmitAuditLog", ctx, isAuditLog(workflows.ActionCreate)).
				Return(tc.auditErr).Once()
			wf.On("SubmitAuditLog", ctx, isAuditLog(workflows.ActionDisable)).
				Return(tc.auditErr).Once()

			_, err := devices.Add(ctx, scopeAlice, newDevice("dev-1"))
			require.NoError(t, err)
			dev, err := devices.SetEnabled(ctx, scopeAlice, "dev-1", false)
			require.NoError(t, err)
			require.NotNil(t, dev.DeviceProperties.HubEnabledState)
			assert.False(t, *dev.DeviceProperties.HubEnabledState)
		})
	}
}

func TestDeviceCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds := &store_mocks.DataStore{}
	defer ds.AssertExpectations(t)
	ds.On("GetDevice", ctx, "dev-1").Return(nil, context.Canceled)
	ds.On("QueryDevices", ctx).Return(nil, context.Canceled)

	devices := NewDeviceRegistry(ds, DeviceRegistryConfig{})
	_, err := devices.Get(ctx, scopeAlice, "dev-1")
	assert.ErrorIs(t, err, ErrCancelled)
	_, err = devices.List(ctx, scopeAlice, model.DeviceListFilter{})
	assert.ErrorIs(t, err, ErrCancelled)
	_, err = devices.SetEnabled(ctx, scopeAlice, "dev-1", true)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestHubGet(t *testing.T) {
	t.Parallel()

	twin := model.NewTwin("dev-1")
	twin.SetOwner(scopeAlice.UserName)
	twin.Tags["site"] = "oslo"

	testCases := map[string]struct {
		device  *model.Device
		twin    *model.Twin
		twinErr error

		err  error
		site interface{}
	}{
		"ok, merged": {
			device: newDevice("dev-1"),
			twin:   twin,
			site:   "oslo",
		},
		"ok, absent": {},
		"error, twin service": {
			device:  newDevice("dev-1"),
			twinErr: errors.New("twin: unexpected HTTP status"),
			err:     errors.New("app: failed to get twin: twin: unexpected HTTP status"),
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ds := &store_mocks.DataStore{}
			defer ds.AssertExpectations(t)
			twins := &twin_mocks.Client{}
			defer twins.AssertExpectations(t)

			ds.On("GetDevice", mock.Anything, "dev-1").Return(tc.device, nil)
			twins.On("GetTwin", mock.Anything, "dev-1").Return(tc.twin, tc.twinErr)

			devices := NewDeviceRegistry(ds, DeviceRegistryConfig{Twins: twins})
			dev, err := devices.Get(context.Background(), scopeAlice, "dev-1")
			if tc.err != nil {
				assert.EqualError(t, err, tc.err.Error())
				return
			}
			require.NoError(t, err)
			if tc.device == nil {
				assert.Nil(t, dev)
				return
			}
			assert.Equal(t, tc.site, dev.Twin.Tags["site"])
		})
	}
}

func TestHubAdd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ds := &store_mocks.DataStore{}
	defer ds.AssertExpectations(t)
	twins := &twin_mocks.Client{}
	defer twins.AssertExpectations(t)

	ds.On("GetDevice", ctx, "dev-1").Return(nil, nil)
	ds.On("SaveDevice", ctx, mock.AnythingOfType("*model.Device")).
		Return(func(_ context.Context, dev *model.Device) (*model.Device, error) {
			return dev, nil
		})
	twins.On("UpdateTwin", ctx, "dev-1", mock.MatchedBy(func(t *model.Twin) bool {
		return t.ETag == model.WildcardETag &&
			t.Tags[model.HubEnabledStateTagName] == model.HubEnabledStateRunning &&
			t.Tags[model.OwnerTagName] == scopeAlice.UserName
	})).Return(nil).Once()

	devices := NewDeviceRegistry(ds, DeviceRegistryConfig{Twins: twins})
	dev, err := devices.Add(ctx, scopeAlice, newDevice("dev-1"))
	require.NoError(t, err)
	assert.Equal(t, scopeAlice.UserName, dev.Owner())
}

func TestHubUpdatePushesChangedTwin(t *testing.T) {
	t.Parallel()

	existing := model.NewTwin("dev-1")
	existing.Tags["site"] = "oslo"
	existing.Properties.Desired = map[string]interface{}{"interval": 30.0}

	testCases := map[string]struct {
		twin func() *model.Twin

		push    bool
		pushErr error
		err     error
	}{
		"unchanged": {
			twin: func() *model.Twin {
				t := model.NewTwin("dev-1")
				t.Tags["site"] = "oslo"
				t.Properties.Desired = map[string]interface{}{"interval": 30}
				return t
			},
		},
		"tags changed": {
			twin: func() *model.Twin {
				t := model.NewTwin("dev-1")
				t.Tags["site"] = "bergen"
				t.Properties.Desired = map[string]interface{}{"interval": 30}
				return t
			},
			push: true,
		},
		"desired changed": {
			twin: func() *model.Twin {
				t := model.NewTwin("dev-1")
				t.Tags["site"] = "oslo"
				t.Properties.Desired = map[string]interface{}{"interval": 60}
				return t
			},
			push: true,
		},
		"push failed": {
			twin: func() *model.Twin {
				t := model.NewTwin("dev-1")
				t.Tags["site"] = "bergen"
				return t
			},
			push:    true,
			pushErr: errors.New("twin: precondition failed"),
			err:     ErrSaveFailed,
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			ds := &store_mocks.DataStore{}
			defer ds.AssertExpectations(t)
			twins := &twin_mocks.Client{}
			defer twins.AssertExpectations(t)

			prev := newDevice("dev-1")
			prev.ID = "storage-id"
			ds.On("GetDevice", mock.Anything, "dev-1").Return(prev, nil)
			ds.On("SaveDevice", ctx, mock.AnythingOfType("*model.Device")).
				Return(func(_ context.Context, dev *model.Device) (*model.Device, error) {
					return dev, nil
				})
			twins.On("GetTwin", mock.Anything, "dev-1").Return(existing, nil)
			if tc.push {
				twins.On("UpdateTwin", ctx, "dev-1", mock.AnythingOfType("*model.Twin")).
					Return(tc.pushErr).Once()
			}

			devices := NewDeviceRegistry(ds, DeviceRegistryConfig{Twins: twins})
			update := newDevice("dev-1")
			update.Twin = tc.twin()
			dev, err := devices.Update(ctx, scopeUnscoped, update)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "storage-id", dev.ID)
		})
	}
}

func TestHubUpdateUsesHubTwin(t *testing.T) {
	t.Parallel()

	hubTwin := func() *model.Twin {
		t := model.NewTwin("dev-1")
		t.SetOwner(scopeAlice.UserName)
		t.Tags[model.HubEnabledStateTagName] = model.HubEnabledStateDisabled
		t.Properties.Desired = map[string]interface{}{"interval": 60.0}
		return t
	}
	// the primary copy of the twin is stale
	stale := func() *model.Device {
		dev := newDevice("dev-1")
		dev.ID = "storage-id"
		dev.Twin = model.NewTwin("dev-1")
		dev.Twin.SetOwner(scopeBob.UserName)
		return dev
	}

	testCases := map[string]struct {
		scope scope.Scope
		twin  *model.Twin

		push bool
		err  error
	}{
		"ok, without twin nothing is pushed": {
			scope: scopeAlice,
		},
		"ok, supplied twin is pushed": {
			scope: scopeAlice,
			twin: func() *model.Twin {
				t := hubTwin()
				t.Properties.Desired["interval"] = 30
				return t
			}(),
			push: true,
		},
		"error, owner taken from the hub twin": {
			scope: scopeBob,
			err:   ErrForbidden,
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			ds := &store_mocks.DataStore{}
			defer ds.AssertExpectations(t)
			twins := &twin_mocks.Client{}
			defer twins.AssertExpectations(t)

			ds.On("GetDevice", mock.Anything, "dev-1").Return(stale(), nil)
			twins.On("GetTwin", mock.Anything, "dev-1").Return(hubTwin(), nil)
			var saved *model.Device
			if tc.err == nil {
				ds.On("SaveDevice", ctx, mock.AnythingOfType("*model.Device")).
					Return(func(_ context.Context, dev *model.Device) (*model.Device, error) {
						saved = dev
						return dev, nil
					}).Once()
			}
			if tc.push {
				twins.On("UpdateTwin", ctx, "dev-1", mock.MatchedBy(func(tw *model.Twin) bool {
					return tw.Properties.Desired["interval"] == 30
				})).Return(nil).Once()
			}

			devices := NewDeviceRegistry(ds, DeviceRegistryConfig{Twins: twins})
			update := newDevice("dev-1")
			update.DeviceProperties.Manufacturer = "acme"
			update.Twin = tc.twin
			dev, err := devices.Update(ctx, tc.scope, update)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "storage-id", dev.ID)
			assert.Equal(t, scopeAlice.UserName, saved.Owner())
		})
	}
}

// TestHubList is not parallel; it reads the global drop counter.
func TestHubList(t *testing.T) {
	primary := []model.Device{*newDevice("dev-1"), *newDevice("dev-3")}
	twin1 := model.NewTwin("dev-1")
	twin1.Tags["site"] = "oslo"
	twin2 := model.NewTwin("dev-2")
	twin3 := model.NewTwin("dev-3")

	testCases := map[string]struct {
		scope  scope.Scope
		filter model.DeviceListFilter

		ids      []string
		filtered int
		total    int
		dropped  float64
	}{
		"unscoped, drops orphaned twins": {
			scope: scopeUnscoped,
			ids:   []string{"dev-1", "dev-3"},

			filtered: 3,
			total:    3,
			dropped:  1,
		},
		"scoped, sorted and paged": {
			scope: scopeAlice,
			filter: model.DeviceListFilter{
				SortColumn: "DeviceID",
				SortOrder:  model.SortDescending,
				Take:       1,
			},
			ids: []string{"dev-3"},

			filtered: 3,
			total:    2,
		},
		"search": {
			scope:  scopeUnscoped,
			filter: model.DeviceListFilter{SearchQuery: "oslo"},
			ids:    []string{"dev-1"},

			filtered: 1,
			total:    3,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			ds := &store_mocks.DataStore{}
			defer ds.AssertExpectations(t)
			twins := &twin_mocks.Client{}
			defer twins.AssertExpectations(t)

			ds.On("QueryDevices", mock.Anything).Return(primary, nil)
			twins.On("QueryDevices", mock.Anything, mock.MatchedBy(func(cond string) bool {
				return tc.scope.Active() == strings.Contains(cond, tc.scope.UserName)
			})).Return([]model.Twin{*twin1, *twin2, *twin3}, nil)
			if tc.scope.Active() {
				twins.On("DeviceCountQuery", mock.Anything,
					mock.MatchedBy(func(q string) bool {
						return strings.HasPrefix(q, "SELECT COUNT() AS total") &&
							strings.Contains(q, tc.scope.UserName)
					}), countAlias,
				).Return(tc.total, nil)
			} else {
				twins.On("DeviceCount", mock.Anything).Return(tc.total, nil)
			}

			before := testutil.ToFloat64(ReconcileDropped)
			devices := NewDeviceRegistry(ds, DeviceRegistryConfig{Twins: twins})
			res, err := devices.List(context.Background(), tc.scope, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.ids, deviceIDs(res.Results))
			assert.Equal(t, tc.filtered, res.TotalFilteredCount)
			assert.Equal(t, tc.total, res.TotalDeviceCount)
			assert.Equal(t, tc.dropped, testutil.ToFloat64(ReconcileDropped)-before)
		})
	}
}

func TestHubListScopedCondition(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		clauses   []model.Clause
		condition string
	}{
		"ownership only": {
			condition: "tags.__UserName__ = 'bob@example.com'",
		},
		"user condition grouped": {
			clauses: []model.Clause{{
				ColumnName:  "tags.city",
				ClauseValue: "Oslo",
			}},
			condition: "(tags.city = 'Oslo') AND " +
				"(tags.__UserName__ = 'bob@example.com')",
		},
		"column cannot widen the scope": {
			clauses: []model.Clause{{
				ColumnName:  "deviceId != '' OR tags.x",
				ClauseValue: "y",
			}},
			condition: "tags.__UserName__ = 'bob@example.com'",
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ds := &store_mocks.DataStore{}
			defer ds.AssertExpectations(t)
			twins := &twin_mocks.Client{}
			defer twins.AssertExpectations(t)

			ds.On("QueryDevices", mock.Anything).Return([]model.Device{}, nil)
			twins.On("QueryDevices", mock.Anything, tc.condition).
				Return([]model.Twin{}, nil)
			twins.On("DeviceCountQuery", mock.Anything,
				"SELECT COUNT() AS total FROM devices WHERE "+
					"tags.__UserName__ = 'bob@example.com'",
				countAlias,
			).Return(0, nil)

			devices := NewDeviceRegistry(ds, DeviceRegistryConfig{Twins: twins})
			res, err := devices.List(context.Background(), scopeBob,
				model.DeviceListFilter{Clauses: tc.clauses})
			require.NoError(t, err)
			assert.Empty(t, res.Results)
		})
	}
}

func TestHubListError(t *testing.T) {
	t.Parallel()
	ds := &store_mocks.DataStore{}
	twins := &twin_mocks.Client{}

	ds.On("QueryDevices", mock.Anything).Return(nil, errors.New("mongo: no reachable servers"))
	twins.On("QueryDevices", mock.Anything, mock.Anything).Return([]model.Twin{}, nil).Maybe()
	twins.On("DeviceCount", mock.Anything).Return(0, nil).Maybe()

	devices := NewDeviceRegistry(ds, DeviceRegistryConfig{Twins: twins})
	_, err := devices.List(context.Background(), scopeUnscoped, model.DeviceListFilter{})
	assert.EqualError(t, err, "app: failed to query devices: mongo: no reachable servers")
}
