//go:build windows

package command

import "syscall"

const createNewProcessGroup = 0x00000200

func detachedAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: createNewProcessGroup}
}
