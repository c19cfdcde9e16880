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

// Package twin is the client of the device twin service, which holds the
// tags and the desired and reported properties of every device.
package twin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/requestid"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/mendersoftware/deviceregistry/model"
)

const (
	URITwin  = "/api/internal/v1/devicetwin/tenants/:tid/twins/:id"
	URIQuery = "/api/internal/v1/devicetwin/tenants/:tid/query"
	URICount = "/api/internal/v1/devicetwin/tenants/:tid/count"

	defaultTimeout = 10 * time.Second
)

var (
	// ErrPreconditionFailed is returned when the twin ETag does not match
	ErrPreconditionFailed = errors.New("twin: etag mismatch")
)

// Client is the twin service client
//
//go:generate ../../utils/mockgen.sh
type Client interface {
	GetTwin(ctx context.Context, deviceID string) (*model.Twin, error)
	UpdateTwin(ctx context.Context, deviceID string, twin *model.Twin) error
	QueryDevices(ctx context.Context, condition string) ([]model.Twin, error)
	DeviceCount(ctx context.Context) (int, error)
	DeviceCountQuery(ctx context.Context, query, alias string) (int, error)
}

type client struct {
	client  *http.Client
	uriBase string
}

// NewClient returns a twin service client; timeout is in seconds
func NewClient(uriBase string, timeout int) Client {
	t := time.Duration(timeout) * time.Second
	if t <= 0 {
		t = defaultTimeout
	}
	return &client{
		uriBase: strings.TrimSuffix(uriBase, "/"),
		client:  &http.Client{Timeout: t},
	}
}

type queryRequest struct {
	Query string `json:"query"`
}

type countResponse struct {
	Count int `json:"count"`
}

func (c *client) url(ctx context.Context, uri, deviceID string) string {
	var tenantID string
	if id := identity.FromContext(ctx); id != nil {
		tenantID = id.Tenant
	}
	repl := strings.NewReplacer(
		":tid", url.PathEscape(tenantID),
		":id", url.PathEscape(deviceID),
	)
	return c.uriBase + repl.Replace(uri)
}

func (c *client) do(
	ctx context.Context,
	method, url string,
	body interface{},
	hdr http.Header,
) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "twin: failed to serialize request")
		}
		payload = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, errors.Wrap(err, "twin: error preparing HTTP request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := requestid.FromContext(ctx); reqID != "" {
		req.Header.Set(requestid.RequestIdHeader, reqID)
	}
	for k, v := range hdr {
		req.Header[k] = v
	}
	rsp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "twin: %s request failed", method)
	}
	return rsp, nil
}

func unexpectedStatus(rsp *http.Response) error {
	return errors.Errorf(
		"twin: unexpected HTTP status from twin service: %s",
		rsp.Status,
	)
}

// GetTwin returns the twin of deviceID, or nil when the service has none
func (c *client) GetTwin(ctx context.Context, deviceID string) (*model.Twin, error) {
	log.FromContext(ctx).Debugf("get twin %s", deviceID)

	rsp, err := c.do(ctx, http.MethodGet, c.url(ctx, URITwin, deviceID), nil, nil)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	switch rsp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, unexpectedStatus(rsp)
	}
	twin := &model.Twin{}
	if err := json.NewDecoder(rsp.Body).Decode(twin); err != nil {
		return nil, errors.Wrap(err, "twin: error parsing twin")
	}
	if twin.ETag == "" {
		twin.ETag = rsp.Header.Get("ETag")
	}
	return twin, nil
}

// UpdateTwin patches the tags and desired properties of a twin. The twin
// ETag is sent as If-Match; the wildcard ETag always applies.
func (c *client) UpdateTwin(ctx context.Context, deviceID string, twin *model.Twin) error {
	log.FromContext(ctx).Debugf("update twin %s", deviceID)

	etag := twin.ETag
	if etag == "" {
		etag = model.WildcardETag
	}
	rsp, err := c.do(ctx, http.MethodPatch,
		c.url(ctx, URITwin, deviceID),
		twin,
		http.Header{"If-Match": []string{etag}},
	)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()

	switch rsp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusPreconditionFailed:
		return ErrPreconditionFailed
	}
	return unexpectedStatus(rsp)
}

func (c *client) query(ctx context.Context, query string, v interface{}) error {
	rsp, err := c.do(ctx, http.MethodPost,
		c.url(ctx, URIQuery, ""),
		queryRequest{Query: query},
		nil,
	)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		return unexpectedStatus(rsp)
	}
	if err := json.NewDecoder(rsp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "twin: error parsing query result")
	}
	return nil
}

// QueryDevices returns the twins matching condition; an empty condition
// selects every twin.
func (c *client) QueryDevices(ctx context.Context, condition string) ([]model.Twin, error) {
	query := "SELECT * FROM devices"
	if condition != "" {
		query += " WHERE " + condition
	}
	log.FromContext(ctx).Debugf("query twins: %s", query)

	twins := []model.Twin{}
	if err := c.query(ctx, query, &twins); err != nil {
		return nil, err
	}
	return twins, nil
}

// DeviceCount returns the number of twins of the tenant
func (c *client) DeviceCount(ctx context.Context) (int, error) {
	rsp, err := c.do(ctx, http.MethodGet, c.url(ctx, URICount, ""), nil, nil)
	if err != nil {
		return 0, err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		return 0, unexpectedStatus(rsp)
	}
	var count countResponse
	if err := json.NewDecoder(rsp.Body).Decode(&count); err != nil {
		return 0, errors.Wrap(err, "twin: error parsing device count")
	}
	return count.Count, nil
}

// DeviceCountQuery runs a COUNT query and returns the value selected as
// alias.
func (c *client) DeviceCountQuery(ctx context.Context, query, alias string) (int, error) {
	var rows []map[string]interface{}
	if err := c.query(ctx, query, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	count, err := cast.ToIntE(rows[0][alias])
	if err != nil {
		return 0, errors.Wrapf(err, "twin: invalid %q in count result", alias)
	}
	return count, nil
}
