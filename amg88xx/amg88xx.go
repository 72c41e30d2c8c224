package amg88xx

import (
	"context"
	"fmt"
	"time"

	"github.com/mklimuk/grideye"
)

// AMG88xx default 7-bit I2C address. Pulling the AD_SELECT pin low moves
// the device to 0x68.
const DefaultAddress = 0x69

// Register map (datasheet chapter 4). PIXEL_OFFSET is the base of the
// 64-pixel array, two bytes per pixel, low byte first.
const (
	regPCTL        byte = 0x00
	regRST         byte = 0x01
	regFPSC        byte = 0x02
	regINTC        byte = 0x03
	regSTAT        byte = 0x04
	regSCLR        byte = 0x05
	regAVE         byte = 0x07
	regINTHL       byte = 0x08
	regINTHH       byte = 0x09
	regINTLL       byte = 0x0A
	regINTLH       byte = 0x0B
	regIHYSL       byte = 0x0C
	regIHYSH       byte = 0x0D
	regTTHL        byte = 0x0E
	regTTHH        byte = 0x0F
	regINTOffset   byte = 0x10
	regPixelOffset byte = 0x80
)

// Power control register values.
const (
	modeNormal    byte = 0x00
	modeSleep     byte = 0x10
	modeStandby60 byte = 0x20
	modeStandby10 byte = 0x21
)

// Reset register values.
const (
	resetFlag    byte = 0x30
	resetInitial byte = 0x3F
)

// FrameRate selects the sensor refresh rate.
type FrameRate byte

const (
	FrameRate10 FrameRate = 0x00 // 10 frames per second
	FrameRate1  FrameRate = 0x01 // 1 frame per second
)

// InterruptMode selects how pixel values are compared against the
// configured levels.
type InterruptMode byte

const (
	InterruptModeDifference InterruptMode = 0x00
	InterruptModeAbsolute   InterruptMode = 0x01
)

const intcINTEN byte = 0x01
const intcINTMOD byte = 0x02

const aveMAMOD byte = 0x20

// PixelCount is the number of sensor elements in the array.
const PixelCount = 64

// InterruptFlagBytes is the size of the pixel interrupt flag block; one
// bit per pixel, row per byte.
const InterruptFlagBytes = 8

const settleDelay = 100 * time.Millisecond

// AMG88xx represents a Panasonic AMG88xx Grid-EYE 8x8 thermal sensor.
// Typical usage:
//
//	cam := amg88xx.New(bus)
//	if err := cam.Begin(ctx); err != nil { ... }
//	pixels, err := cam.ReadPixels(ctx)
//
// The driver is synchronous and holds no lock; a single goroutine must own
// it, because a register transaction interleaved with another caller's
// would read the wrong registers.
type AMG88xx struct {
	regs registerBus

	pctl byte
	rst  byte
	fpsc byte
	intc byte
	ave  byte
}

type Config struct {
	Address byte
}

type ConfigOption func(*Config)

func WithAddress(address byte) ConfigOption {
	return func(c *Config) {
		c.Address = address
	}
}

// New creates a new Grid-EYE driver on the given transport. If no address
// option is passed the default 0x69 is used.
func New(bus grideye.I2CBus, opts ...ConfigOption) *AMG88xx {
	config := &Config{
		Address: DefaultAddress,
	}
	for _, opt := range opts {
		opt(config)
	}
	return &AMG88xx{regs: newRegisterBus(bus, config.Address)}
}

// Begin puts the device into a known state: normal power mode, software
// reset, interrupts disabled, 10 FPS. A transport failure here means the
// device is absent or not answering at the configured address.
func (d *AMG88xx) Begin(ctx context.Context) error {
	d.pctl = modeNormal
	if err := d.regs.write8(ctx, regPCTL, d.pctl); err != nil {
		return fmt.Errorf("amg88xx: could not enter normal mode: %w", err)
	}
	d.rst = resetInitial
	if err := d.regs.write8(ctx, regRST, d.rst); err != nil {
		return fmt.Errorf("amg88xx: initial reset failed: %w", err)
	}
	if err := d.DisableInterrupt(ctx); err != nil {
		return err
	}
	if err := d.SetFrameRate(ctx, FrameRate10); err != nil {
		return err
	}
	// first frame is valid only after the device settles
	time.Sleep(settleDelay)
	return nil
}

// ReadPixels reads the full pixel array and returns 64 temperatures in
// Celsius, row-major. Every call fetches a fresh frame; the device only
// buffers the latest one.
func (d *AMG88xx) ReadPixels(ctx context.Context) ([]float32, error) {
	raw := make([]byte, 2*PixelCount)
	if err := d.regs.read(ctx, regPixelOffset, raw); err != nil {
		return nil, fmt.Errorf("amg88xx: could not read pixel array: %w", err)
	}
	pixels := make([]float32, PixelCount)
	for i := range pixels {
		word := uint16(raw[2*i+1])<<8 | uint16(raw[2*i])
		pixels[i] = int12ToFloat(word) * pixelTempConversion
	}
	return pixels, nil
}

// ReadThermistor returns the die thermistor temperature in Celsius.
func (d *AMG88xx) ReadThermistor(ctx context.Context) (float32, error) {
	raw := make([]byte, 2)
	if err := d.regs.read(ctx, regTTHL, raw); err != nil {
		return 0, fmt.Errorf("amg88xx: could not read thermistor: %w", err)
	}
	word := uint16(raw[1])<<8 | uint16(raw[0])
	return signedMag12ToFloat(word) * thermistorConversion, nil
}

// SetInterruptLevels sets the high and low trigger levels in Celsius.
// The hysteresis level defaults to 95% of the high level.
func (d *AMG88xx) SetInterruptLevels(ctx context.Context, high, low float32) error {
	return d.SetInterruptLevelsHysteresis(ctx, high, low, high*0.95)
}

// SetInterruptLevelsHysteresis sets the high, low and hysteresis trigger
// levels in Celsius. Levels beyond the register range saturate silently.
func (d *AMG88xx) SetInterruptLevelsHysteresis(ctx context.Context, high, low, hysteresis float32) error {
	lo, hi := encodeLevel(high)
	if err := d.regs.write8(ctx, regINTHL, lo); err != nil {
		return err
	}
	if err := d.regs.write8(ctx, regINTHH, hi); err != nil {
		return err
	}
	lo, hi = encodeLevel(low)
	if err := d.regs.write8(ctx, regINTLL, lo); err != nil {
		return err
	}
	if err := d.regs.write8(ctx, regINTLH, hi); err != nil {
		return err
	}
	lo, hi = encodeLevel(hysteresis)
	if err := d.regs.write8(ctx, regIHYSL, lo); err != nil {
		return err
	}
	return d.regs.write8(ctx, regIHYSH, hi)
}

// EnableInterrupt enables the INT output pin.
func (d *AMG88xx) EnableInterrupt(ctx context.Context) error {
	d.intc |= intcINTEN
	return d.regs.write8(ctx, regINTC, d.intc)
}

// DisableInterrupt disables the INT output pin.
func (d *AMG88xx) DisableInterrupt(ctx context.Context) error {
	d.intc &^= intcINTEN
	return d.regs.write8(ctx, regINTC, d.intc)
}

// SetInterruptMode switches between absolute and difference interrupt
// comparison.
func (d *AMG88xx) SetInterruptMode(ctx context.Context, mode InterruptMode) error {
	if mode == InterruptModeAbsolute {
		d.intc |= intcINTMOD
	} else {
		d.intc &^= intcINTMOD
	}
	return d.regs.write8(ctx, regINTC, d.intc)
}

// Interrupt reads the pixel interrupt flag block: 8 bytes, one bit per
// pixel, bit n of byte m covering pixel 8*m+n.
func (d *AMG88xx) Interrupt(ctx context.Context) ([InterruptFlagBytes]byte, error) {
	var flags [InterruptFlagBytes]byte
	if err := d.regs.read(ctx, regINTOffset, flags[:]); err != nil {
		return flags, fmt.Errorf("amg88xx: could not read interrupt flags: %w", err)
	}
	return flags, nil
}

// TriggeredPixels returns the indices of the pixels flagged in an
// interrupt block.
func TriggeredPixels(flags [InterruptFlagBytes]byte) []int {
	var pixels []int
	for row, b := range flags {
		for bit := 0; bit < 8; bit++ {
			if b&(1<<bit) != 0 {
				pixels = append(pixels, 8*row+bit)
			}
		}
	}
	return pixels
}

// ClearInterrupt clears all triggered interrupt flags.
func (d *AMG88xx) ClearInterrupt(ctx context.Context) error {
	d.rst = resetFlag
	return d.regs.write8(ctx, regRST, d.rst)
}

// SetMovingAverageMode enables or disables the twice moving average
// output mode.
func (d *AMG88xx) SetMovingAverageMode(ctx context.Context, on bool) error {
	if on {
		d.ave |= aveMAMOD
	} else {
		d.ave &^= aveMAMOD
	}
	return d.regs.write8(ctx, regAVE, d.ave)
}

// SetFrameRate sets the sensor refresh rate.
func (d *AMG88xx) SetFrameRate(ctx context.Context, rate FrameRate) error {
	d.fpsc = byte(rate)
	return d.regs.write8(ctx, regFPSC, d.fpsc)
}

// Sleep puts the device into sleep mode. Registers other than PCTL are
// not accessible until Wake is called.
func (d *AMG88xx) Sleep(ctx context.Context) error {
	d.pctl = modeSleep
	return d.regs.write8(ctx, regPCTL, d.pctl)
}

// Wake returns the device to normal mode. The datasheet asks for a write
// to the initial reset after waking from sleep.
func (d *AMG88xx) Wake(ctx context.Context) error {
	d.pctl = modeNormal
	if err := d.regs.write8(ctx, regPCTL, d.pctl); err != nil {
		return err
	}
	time.Sleep(2 * time.Millisecond)
	d.rst = resetInitial
	return d.regs.write8(ctx, regRST, d.rst)
}

// Status reads the status register. Bit 1 reports a pixel interrupt, bit 2
// a pixel overflow; ClearStatus resets them.
func (d *AMG88xx) Status(ctx context.Context) (byte, error) {
	return d.regs.read8(ctx, regSTAT)
}

// ClearStatus clears the overflow and interrupt bits of the status
// register.
func (d *AMG88xx) ClearStatus(ctx context.Context) error {
	return d.regs.write8(ctx, regSCLR, 0x06)
}
