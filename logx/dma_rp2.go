// logx/dma_rp2.go

//go:build rp2040 || rp2350

package logx

import (
	"device/rp"
	"errors"
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"
)

// Register block of a single DMA channel. Layout per rp.DMA_Type; the
// trailing pad covers the alias registers.
type dmaChannelHW struct {
	READ_ADDR   volatile.Register32
	WRITE_ADDR  volatile.Register32
	TRANS_COUNT volatile.Register32
	CTRL_TRIG   volatile.Register32
	_           [12]volatile.Register32 // alias registers
}

var (
	dmaChannels  = (*[numDMAChannels]dmaChannelHW)(unsafe.Pointer(rp.DMA))
	claimedChans uint16
	dmaHandlers  [numDMAChannels]func()
	dmaIRQ       interrupt.Interrupt
)

func init() {
	// Completion interrupts are routed through DMA_IRQ_0. Low priority:
	// reclaiming a buffer is less time-critical than most interrupts.
	dmaIRQ = interrupt.New(rp.IRQ_DMA_IRQ_0, dmaDispatch)
	dmaIRQ.SetPriority(0xff)
}

// ErrNoDMAChannel reports that every DMA channel is claimed.
var ErrNoDMAChannel = errors.New("logx: no free DMA channel")

// DMAChannel implements Channel over one RP2 DMA channel paced by a
// peripheral DREQ, copying bytes into a fixed data register.
type DMAChannel struct {
	hw   *dmaChannelHW
	dst  *volatile.Register32
	ctrl uint32
	idx  uint8
}

// ClaimChannel reserves the lowest free DMA channel and configures it
// to feed dst, paced by dreq. For a PL011 transmit register use UARTTx
// to obtain both arguments.
func ClaimChannel(dst *volatile.Register32, dreq uint32) (*DMAChannel, error) {
	token := enterCritical()
	defer exitCritical(token)
	for i := uint8(0); i < numDMAChannels; i++ {
		if claimedChans&(1<<i) == 0 {
			claimedChans |= 1 << i
			ch := &DMAChannel{hw: &dmaChannels[i], dst: dst, idx: i}
			ch.ctrl = ch.ctrlValue(dreq)
			return ch, nil
		}
	}
	return nil, ErrNoDMAChannel
}

// ctrlValue builds CTRL for byte-wide, read-incrementing, DREQ-paced
// transfers. Chain-to-self disables chaining.
func (ch *DMAChannel) ctrlValue(dreq uint32) uint32 {
	var ctrl uint32
	ctrl |= dreq << rp.DMA_CH0_CTRL_TRIG_TREQ_SEL_Pos
	ctrl |= uint32(ch.idx) << rp.DMA_CH0_CTRL_TRIG_CHAIN_TO_Pos
	// DATA_SIZE field stays zero: 8-bit transfers.
	ctrl |= 1 << rp.DMA_CH0_CTRL_TRIG_INCR_READ_Pos
	ctrl |= 1 << rp.DMA_CH0_CTRL_TRIG_EN_Pos
	return ctrl
}

// Start begins a hardware copy of p into the data register. The caller
// guarantees p stays valid and untouched until Busy reports false.
func (ch *DMAChannel) Start(p []byte) {
	hw := ch.hw
	hw.READ_ADDR.Set(uint32(uintptr(unsafe.Pointer(&p[0]))))
	hw.WRITE_ADDR.Set(uint32(uintptr(unsafe.Pointer(ch.dst))))
	hw.TRANS_COUNT.Set(uint32(len(p)))
	hw.CTRL_TRIG.Set(ch.ctrl) // this write triggers the transfer
}

// Busy reports whether the channel is still moving data.
func (ch *DMAChannel) Busy() bool {
	return ch.hw.CTRL_TRIG.Get()&rp.DMA_CH0_CTRL_TRIG_BUSY != 0
}

// InterruptPending reports the channel's raw completion latch. The
// latch is set on completion whether or not the IRQ line is unmasked,
// so polling mode sees it too.
func (ch *DMAChannel) InterruptPending() bool {
	return rp.DMA.INTR.Get()&(1<<ch.idx) != 0
}

// ClearInterrupt clears the completion latch (write-1-to-clear).
func (ch *DMAChannel) ClearInterrupt() {
	rp.DMA.INTR.Set(1 << ch.idx)
}

// SetInterruptHandler installs handler as the channel's completion
// callback on DMA_IRQ_0 and unmasks it. Pass the engine's
// ServiceInterrupt for interrupt-driven reclaim; do not also call Poll
// from the event loop, mixing the two driving strategies risks
// double-servicing.
func (ch *DMAChannel) SetInterruptHandler(handler func()) {
	token := enterCritical()
	dmaHandlers[ch.idx] = handler
	rp.DMA.INTE0.SetBits(1 << ch.idx)
	exitCritical(token)
	dmaIRQ.Enable()
}

// dmaDispatch fans DMA_IRQ_0 out to per-channel handlers. Handlers
// clear the completion latch themselves (ServiceInterrupt does), which
// deasserts the IRQ.
func dmaDispatch(interrupt.Interrupt) {
	status := rp.DMA.INTS0.Get()
	for i := uint8(0); i < numDMAChannels; i++ {
		if status&(1<<i) != 0 && dmaHandlers[i] != nil {
			dmaHandlers[i]()
		}
	}
}

// UARTTx returns the DMA destination and pacing DREQ for a PL011
// transmit data register.
func UARTTx(bus *rp.UART0_Type) (*volatile.Register32, uint32) {
	switch bus {
	case rp.UART0:
		return &bus.UARTDR, dreqUART0TX
	case rp.UART1:
		return &bus.UARTDR, dreqUART1TX
	}
	panic("logx: unknown UART")
}
