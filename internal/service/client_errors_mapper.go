// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/ai-interviewer/internal/adapter"
)

// mapAdapterError translates a 404 of the adapter into notFound. The adapter
// error stays in the chain, so its status sentinels and the server message
// remain reachable via errors.Is and adapter.Message.
func mapAdapterError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if notFound != nil && errors.Is(err, adapter.ErrNotFound) {
		return fmt.Errorf("%w: %w", notFound, err)
	}

	return err
}
