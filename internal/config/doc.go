// SPDX-License-Identifier: MPL-2.0

// Package config loads toolbelt settings.
//
// The settings file is CUE, validated against an embedded #Config schema and
// merged into Viper on top of built-in defaults. TOOLBELT_* environment
// variables override file values (e.g. TOOLBELT_BURN_DEVICE=/dev/sr1).
package config
