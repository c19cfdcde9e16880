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

// Package scope decides whether the records visible to a user are limited
// to the ones the user owns. Scoping is enabled by configuring a list of
// super administrators: everybody outside the list only sees their own
// devices, filters and jobs, while the administrators see everything.
package scope

import (
	"strings"

	"github.com/mendersoftware/deviceregistry/model"
)

// ParseAdminList splits the configured allow-list on commas, semicolons
// and spaces, dropping empty tokens.
func ParseAdminList(allowList string) []string {
	return strings.FieldsFunc(allowList, func(r rune) bool {
		return r == ',' || r == ';' || r == ' '
	})
}

// IsSuperAdmin returns true if identity is listed in allowList. The
// comparison is exact and case sensitive.
func IsSuperAdmin(allowList, identity string) bool {
	if identity == "" {
		return false
	}
	for _, admin := range ParseAdminList(allowList) {
		if admin == identity {
			return true
		}
	}
	return false
}

// IsScopingActive returns true if the allow-list is non-empty and
// identity is not part of it.
func IsScopingActive(identity, allowList string) bool {
	return len(ParseAdminList(allowList)) > 0 &&
		!IsSuperAdmin(allowList, identity)
}

// Scope is the tenant context of a single request. It is computed once
// from the caller identity and handed to every registry operation.
type Scope struct {
	// UserName is the identity of the caller
	UserName string
	// ShortName is the local part of UserName
	ShortName string
	// MultiTenant is set when a super administrator list is configured
	MultiTenant bool
	// SuperAdmin is set when the caller is in the administrator list
	SuperAdmin bool
}

// New resolves the scope of userName against the configured allow-list
func New(userName, allowList string) Scope {
	return Scope{
		UserName:    userName,
		ShortName:   model.ShortUserName(userName),
		MultiTenant: len(ParseAdminList(allowList)) > 0,
		SuperAdmin:  IsSuperAdmin(allowList, userName),
	}
}

// Unscoped returns the scope of a single-tenant installation
func Unscoped(userName string) Scope {
	return Scope{
		UserName:  userName,
		ShortName: model.ShortUserName(userName),
	}
}

// Active returns true when the caller is restricted to its own records
func (s Scope) Active() bool {
	return s.MultiTenant && !s.SuperAdmin
}

// Owns returns true if the caller may access a record owned by owner
func (s Scope) Owns(owner string) bool {
	return !s.Active() || owner == s.UserName
}

// OwnershipClause is the clause restricting device lists to the caller
func (s Scope) OwnershipClause() model.Clause {
	return model.Clause{
		ColumnName:     model.OwnerTagColumn,
		ClauseType:     model.ClauseEQ,
		ClauseValue:    s.UserName,
		ClauseDataType: model.DataTypeString,
	}
}

// WithOwnershipClause returns clauses extended with the ownership clause
// when scoping is active. The input slice is never modified.
func (s Scope) WithOwnershipClause(clauses []model.Clause) []model.Clause {
	out := make([]model.Clause, 0, len(clauses)+1)
	out = append(out, clauses...)
	if s.Active() {
		out = append(out, s.OwnershipClause())
	}
	return out
}

// ShortNameOf returns the local part of a user name, used to namespace
// the filters of a tenant.
func ShortNameOf(name string) string {
	return model.ShortUserName(name)
}
