// logx/debug_stubs.go

//go:build !logxdebug

package logx

type Stats struct{}

func DebugStats() Stats { return Stats{} }
func DebugReset()       {}

func dbgRecord(int, int)   {}
func dbgTransferStart(int) {}
func dbgPoll()             {}
func dbgHighWater(int)     {}
