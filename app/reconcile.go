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
	"golang.org/x/sync/errgroup"

	"github.com/mendersoftware/deviceregistry/client/twin"
	"github.com/mendersoftware/deviceregistry/model"
	"github.com/mendersoftware/deviceregistry/query"
	"github.com/mendersoftware/deviceregistry/scope"
	"github.com/mendersoftware/deviceregistry/store"
)

const countAlias = "total"

// reconciler keeps the device records of the primary store consistent
// with wherever the twins are authoritative.
type reconciler interface {
	// get returns the merged record of deviceID, nil if absent
	get(ctx context.Context, deviceID string) (*model.Device, error)
	// added, updated and enabled run after the primary write succeeded
	added(ctx context.Context, dev *model.Device) error
	updated(ctx context.Context, dev *model.Device) error
	enabled(ctx context.Context, deviceID string, enabled bool) error
	twin(ctx context.Context, deviceID string) (*model.Twin, error)
	list(ctx context.Context, sc scope.Scope, filter model.DeviceListFilter) (*model.DeviceListResult, error)
	deviceIDsByOwner(ctx context.Context, owner string) ([]string, error)
}

// primaryOnly keeps everything in the primary store
type primaryOnly struct {
	store store.DataStore
}

func (p primaryOnly) get(ctx context.Context, deviceID string) (*model.Device, error) {
	dev, err := p.store.GetDevice(ctx, deviceID)
	return dev, storeError(err, "app: failed to get device")
}

func (primaryOnly) added(context.Context, *model.Device) error { return nil }

func (primaryOnly) updated(context.Context, *model.Device) error { return nil }

func (primaryOnly) enabled(context.Context, string, bool) error { return nil }

func (p primaryOnly) twin(ctx context.Context, deviceID string) (*model.Twin, error) {
	dev, err := p.get(ctx, deviceID)
	if err != nil || dev == nil {
		return nil, err
	}
	return dev.Twin, nil
}

func (p primaryOnly) owned(
	ctx context.Context,
	sc scope.Scope,
) ([]model.Device, error) {
	devs, err := p.store.QueryDevices(ctx)
	if err != nil {
		return nil, storeError(err, "app: failed to query devices")
	}
	if !sc.Active() {
		return devs, nil
	}
	owned := make([]model.Device, 0, len(devs))
	for _, dev := range devs {
		if dev.Owner() == sc.UserName {
			owned = append(owned, dev)
		}
	}
	return owned, nil
}

func (p primaryOnly) list(
	ctx context.Context,
	sc scope.Scope,
	filter model.DeviceListFilter,
) (*model.DeviceListResult, error) {
	devs, err := p.owned(ctx, sc)
	if err != nil {
		return nil, err
	}
	filtered := query.Filter(devs, sc.WithOwnershipClause(filter.Clauses))
	filtered = query.Search(filtered, filter.SearchQuery)
	query.Sort(filtered, filter.SortColumn, filter.SortOrder)
	return &model.DeviceListResult{
		Results:            query.Page(filtered, filter.Skip, filter.Take),
		TotalDeviceCount:   len(devs),
		TotalFilteredCount: len(filtered),
	}, nil
}

func (p primaryOnly) deviceIDsByOwner(ctx context.Context, owner string) ([]string, error) {
	devs, err := p.store.QueryDevices(ctx)
	if err != nil {
		return nil, storeError(err, "app: failed to query devices")
	}
	ids := []string{}
	for _, dev := range devs {
		if dev.Owner() == owner {
			ids = append(ids, dev.DeviceID())
		}
	}
	return ids, nil
}

// withTwinHub treats the twin service as authoritative for tags and
// properties; the primary store holds the remaining device properties.
type withTwinHub struct {
	store store.DataStore
	twins twin.Client
}

func (h withTwinHub) get(ctx context.Context, deviceID string) (*model.Device, error) {
	var (
		dev *model.Device
		t   *model.Twin
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		dev, err = h.store.GetDevice(egCtx, deviceID)
		return storeError(err, "app: failed to get device")
	})
	eg.Go(func() (err error) {
		t, err = h.twins.GetTwin(egCtx, deviceID)
		return storeError(err, "app: failed to get twin")
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if dev != nil && t != nil {
		dev.Twin = t
	}
	return dev, nil
}

// pushTags overwrites the given tags of the twin regardless of its ETag
func (h withTwinHub) pushTags(
	ctx context.Context,
	deviceID string,
	tags map[string]interface{},
) error {
	t := model.NewTwin(deviceID)
	t.ETag = model.WildcardETag
	for k, v := range tags {
		t.Tags[k] = v
	}
	return h.twins.UpdateTwin(ctx, deviceID, t)
}

func enabledStateTag(enabled bool) string {
	if enabled {
		return model.HubEnabledStateRunning
	}
	return model.HubEnabledStateDisabled
}

func (h withTwinHub) added(ctx context.Context, dev *model.Device) error {
	tags := map[string]interface{}{
		model.HubEnabledStateTagName: enabledStateTag(true),
	}
	if owner := dev.Owner(); owner != "" {
		tags[model.OwnerTagName] = owner
	}
	return h.pushTags(ctx, dev.DeviceID(), tags)
}

func (h withTwinHub) updated(ctx context.Context, dev *model.Device) error {
	if dev.Twin == nil {
		return nil
	}
	existing, err := h.twins.GetTwin(ctx, dev.DeviceID())
	if err != nil {
		return err
	}
	if !dev.Twin.UpdateRequired(existing) {
		return nil
	}
	return h.twins.UpdateTwin(ctx, dev.DeviceID(), dev.Twin)
}

func (h withTwinHub) enabled(ctx context.Context, deviceID string, enabled bool) error {
	return h.pushTags(ctx, deviceID, map[string]interface{}{
		model.HubEnabledStateTagName: enabledStateTag(enabled),
	})
}

func (h withTwinHub) twin(ctx context.Context, deviceID string) (*model.Twin, error) {
	t, err := h.twins.GetTwin(ctx, deviceID)
	return t, storeError(err, "app: failed to get twin")
}

// list filters, sorts and pages on the twin service and joins the page
// with the primary records. Twins without a primary record are dropped.
func (h withTwinHub) list(
	ctx context.Context,
	sc scope.Scope,
	filter model.DeviceListFilter,
) (*model.DeviceListResult, error) {
	condition := query.AndConditions(
		query.SQLCondition(filter.Clauses),
		query.SQLCondition(sc.WithOwnershipClause(nil)),
	)
	var (
		devs  []model.Device
		twins []model.Twin
		total int
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		devs, err = h.store.QueryDevices(egCtx)
		return storeError(err, "app: failed to query devices")
	})
	eg.Go(func() (err error) {
		twins, err = h.twins.QueryDevices(egCtx, condition)
		return storeError(err, "app: failed to query twins")
	})
	eg.Go(func() (err error) {
		if sc.Active() {
			total, err = h.twins.DeviceCountQuery(egCtx,
				query.CountQuery([]model.Clause{sc.OwnershipClause()}, countAlias),
				countAlias,
			)
		} else {
			total, err = h.twins.DeviceCount(egCtx)
		}
		return storeError(err, "app: failed to count devices")
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	twins = query.SearchTwins(twins, filter.SearchQuery)
	query.SortTwins(twins, filter.SortColumn, filter.SortOrder)
	page := query.Page(twins, filter.Skip, filter.Take)

	primary := make(map[string]*model.Device, len(devs))
	for i := range devs {
		primary[devs[i].DeviceID()] = &devs[i]
	}
	results := make([]model.Device, 0, len(page))
	for i := range page {
		dev, ok := primary[page[i].DeviceID]
		if !ok {
			ReconcileDropped.Inc()
			log.FromContext(ctx).Warnf(
				"device %s has a twin but no primary record", page[i].DeviceID)
			continue
		}
		dev.Twin = &page[i]
		results = append(results, *dev)
	}
	return &model.DeviceListResult{
		Results:            results,
		TotalDeviceCount:   total,
		TotalFilteredCount: len(twins),
	}, nil
}

func (h withTwinHub) deviceIDsByOwner(ctx context.Context, owner string) ([]string, error) {
	sc := scope.Scope{UserName: owner, MultiTenant: true}
	twins, err := h.twins.QueryDevices(ctx,
		query.SQLCondition([]model.Clause{sc.OwnershipClause()}))
	if err != nil {
		return nil, storeError(err, "app: failed to query twins")
	}
	ids := make([]string, 0, len(twins))
	for _, t := range twins {
		ids = append(ids, t.DeviceID)
	}
	return ids, nil
}
