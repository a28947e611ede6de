// SPDX-License-Identifier: MPL-2.0

// Package platform detects application sandboxes that hide the host's tools.
//
// A toolbelt installed as a Flatpak cannot see dd, wodim or rsync from the
// host; commands have to be routed through flatpak-spawn instead.
package platform
