//go:build rp2040 || rp2350

// On-target self-test for the DMA log transport. Flash to a Pico and
// watch the USB serial console; the LED blinks three times on success
// and slow-blinks forever on failure.
package main

import (
	"time"

	"device/rp"
	"machine"

	"github.com/jangala-dev/tinygo-logx/logx"
)

const baud = 115200

func ledBlink(times int, on time.Duration) {
	for i := 0; i < times; i++ {
		machine.LED.High()
		time.Sleep(on)
		machine.LED.Low()
		time.Sleep(on)
	}
}

func main() {
	// Give the monitor time to attach.
	time.Sleep(3 * time.Second)

	println("logx self-test starting")

	machine.LED.Configure(machine.PinConfig{Mode: machine.PinOutput})
	if err := machine.UART0.Configure(machine.UARTConfig{
		BaudRate: baud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	}); err != nil {
		println("uart0 configure failed")
		for {
			ledBlink(1, 500*time.Millisecond)
		}
	}

	dst, dreq := logx.UARTTx(rp.UART0)
	ch, err := logx.ClaimChannel(dst, dreq)
	if err != nil {
		println("no DMA channel")
		for {
			ledBlink(1, 500*time.Millisecond)
		}
	}

	engine, err := logx.Init(ch, logx.Config{})
	if err != nil {
		println("init failed")
		for {
			ledBlink(1, 500*time.Millisecond)
		}
	}

	pass, fail := 0, 0
	defer func() {
		println("")
		println("Summary")
		println("  passed =", pass)
		println("  failed =", fail)
		if fail == 0 {
			ledBlink(3, 120*time.Millisecond)
		} else {
			for {
				ledBlink(1, 600*time.Millisecond)
				time.Sleep(800 * time.Millisecond)
			}
		}
	}()

	run := func(name string, f func() string) {
		println("")
		println("[Test]", name)
		if msg := f(); msg == "" {
			println("  PASS")
			pass++
		} else {
			println("  FAIL:", msg)
			fail++
		}
	}

	run("registration: second Init is rejected", func() string {
		if _, err := logx.Init(ch, logx.Config{}); err != logx.ErrLoggerSet {
			return "duplicate registration accepted"
		}
		return ""
	})

	run("record: single message reaches idle", func() string {
		logx.Infof("selftest", "hello")
		if engine.Poll() != logx.Active {
			return "no transfer after record"
		}
		if !drainWithin(engine, time.Second) {
			return "never drained"
		}
		return ""
	})

	run("record: burst while transfer active", func() string {
		for i := 0; i < 50; i++ {
			logx.Debugf("selftest", "burst %d", i)
		}
		if !drainWithin(engine, 2*time.Second) {
			return "burst never drained"
		}
		return ""
	})

	run("poll: idempotent when idle", func() string {
		for i := 0; i < 5; i++ {
			if engine.Poll() != logx.Idle {
				return "spurious activity"
			}
		}
		return ""
	})

	run("throughput: 16 KiB of records", func() string {
		start := time.Now()
		line := "0123456789012345678901234567890123456789012345678901234567890123"
		for i := 0; i < 256; i++ {
			logx.Tracef("tp", line)
			engine.Poll()
		}
		if !drainWithin(engine, 5*time.Second) {
			return "timeout"
		}
		elapsed := time.Since(start)
		println("  elapsed =", int(elapsed/time.Millisecond), "ms")
		return ""
	})

	run("isr: logging from a timer-ish context", func() string {
		// Records issued back to back with no Poll in between exercise
		// the tail-append path; the wire order must survive.
		logx.Warnf("order", "first")
		logx.Warnf("order", "second")
		logx.Warnf("order", "third")
		if !drainWithin(engine, time.Second) {
			return "never drained"
		}
		return ""
	})

	println("")
	println("All tests completed")
}

func drainWithin(e *logx.Engine, d time.Duration) bool {
	deadline := time.Now().Add(d)
	for e.Poll() != logx.Idle {
		if time.Now().After(deadline) {
			return false
		}
	}
	return true
}
