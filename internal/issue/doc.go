// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown help
// entries for the failures toolbelt users hit most often: a wrapped tool is
// not installed, a device is still mounted, a destination already exists.
package issue
