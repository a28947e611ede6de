// SPDX-License-Identifier: MPL-2.0

// Package testutil provides Must-style file helpers for tests: setup failures
// stop the test immediately instead of being checked at every call site.
package testutil
