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
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/rest.utils"

	"github.com/mendersoftware/deviceregistry/scope"
)

const (
	headerAuthorization = "Authorization"

	contextKeyScope = "deviceregistry.scope"
)

// HTTP errors
var (
	ErrMissingAuthentication = errors.New(
		"missing or invalid identity in the authorization headers",
	)
	ErrMissingUserAuthentication = errors.New(
		"missing or non-user identity in the authorization headers",
	)
)

// IdentityMiddleware is a gin middleware which extracts the identity from
// the JWT token. The token is read from the Authorization header, or from
// the jwt query parameter for websocket clients which cannot set headers.
func IdentityMiddleware(c *gin.Context) {
	req := c.Request
	ctx := req.Context()

	jwt := extractTokenFromRequest(req)
	if jwt == "" {
		return
	}
	idata, err := identity.ExtractIdentity(jwt)
	if err == nil {
		ctx = identity.WithContext(ctx, &idata)
		c.Request = req.WithContext(ctx)
	}
}

func extractTokenFromRequest(req *http.Request) string {
	jwt := req.URL.Query().Get("jwt")
	if jwt == "" {
		auth := strings.Split(req.Header.Get(headerAuthorization), " ")
		if len(auth) == 2 && auth[0] == "Bearer" {
			jwt = auth[1]
		}
	}
	return jwt
}

// ScopeMiddleware resolves the tenant scope of the authenticated user once
// per request. Requests without a user identity are rejected.
func ScopeMiddleware(superAdminList string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idata := identity.FromContext(c.Request.Context())
		if idata == nil || idata.Subject == "" {
			rest.RenderError(c, http.StatusUnauthorized, ErrMissingAuthentication)
			c.Abort()
			return
		}
		if !idata.IsUser {
			rest.RenderError(c, http.StatusForbidden, ErrMissingUserAuthentication)
			c.Abort()
			return
		}
		c.Set(contextKeyScope, scope.New(idata.Subject, superAdminList))
	}
}

func scopeFromContext(c *gin.Context) scope.Scope {
	if v, ok := c.Get(contextKeyScope); ok {
		if sc, ok := v.(scope.Scope); ok {
			return sc
		}
	}
	return scope.Unscoped("")
}
