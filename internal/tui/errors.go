// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/ai-interviewer/internal/adapter"
)

const msgServerUnavailable = "Отсутствует сеть или сервер недоступен"

// humanizeError returns the text shown for err: the server message when
// there is one, a fixed notice for network failures.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var reqErr *adapter.RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode == 0 {
		return msgServerUnavailable
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return msgServerUnavailable
	}

	return adapter.Message(err)
}
