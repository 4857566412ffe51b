// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive interviewer client runtime.
//
// It restores the saved credential, starts the session refresh job and runs
// the terminal UI until the user leaves.
package client
