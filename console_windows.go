package main

import (
	"log"
	"os"
	"syscall"
)

const attachParentProcess = ^uint32(0)

var procAttachConsole = syscall.NewLazyDLL("kernel32.dll").NewProc("AttachConsole")

// When built as a GUI binary there is no console. Attach to the one of the
// shell that started us so log output stays visible.
func init() {
	r1, _, _ := syscall.SyscallN(procAttachConsole.Addr(), uintptr(attachParentProcess))
	if r1 == 0 {
		return
	}
	con, err := os.OpenFile("CONOUT$", os.O_WRONLY, 0)
	if err != nil {
		return
	}
	os.Stdout, os.Stderr = con, con
	log.SetOutput(con)
}
