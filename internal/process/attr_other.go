// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package process

import "syscall"

func detachAttr() *syscall.SysProcAttr {
	return nil
}
