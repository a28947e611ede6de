// SPDX-License-Identifier: MPL-2.0

// Package process starts child processes that either outlive toolbelt
// (Detach) or are waited for together with every process they spawn
// (RunWait).
package process
