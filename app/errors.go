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

	"github.com/pkg/errors"
)

// App errors
var (
	ErrNotFound                = errors.New("not found")
	ErrDeviceNotRegistered     = errors.New("device not registered")
	ErrDeviceAlreadyRegistered = errors.New("device already registered")
	ErrDuplicateName           = errors.New("a filter with this name already exists")
	ErrForbidden               = errors.New("forbidden")
	ErrAccessDenied            = errors.New("access denied")
	ErrOperationNotAllowed     = errors.New("operation not allowed")
	ErrRequiredPropertyMissing = errors.New("required property missing")
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrSaveFailed              = errors.New("failed to save")
	ErrDeleteFailed            = errors.New("failed to delete")
	ErrDataIntegrity           = errors.New("duplicate record found")
	ErrCancelled               = errors.New("operation cancelled")
)

// kindError tags a cause with one of the App error kinds so that both
// errors.Is(err, ErrSaveFailed) and errors.Is(err, cause) hold.
type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func (e *kindError) Unwrap() error {
	return e.cause
}

// withKind returns cause tagged as kind, or as ErrCancelled when the
// cause is a cancelled context.
func withKind(kind, cause error) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, context.Canceled) {
		kind = ErrCancelled
	}
	return &kindError{kind: kind, cause: cause}
}

// storeError is used for failed reads: cancellation surfaces as
// ErrCancelled, anything else is returned as is.
func storeError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return &kindError{kind: ErrCancelled, cause: errors.Wrap(err, msg)}
	}
	return errors.Wrap(err, msg)
}
