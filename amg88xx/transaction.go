package amg88xx

import (
	"context"
	"fmt"

	"github.com/mklimuk/grideye"
)

// registerBus performs register-addressed transactions against a single
// device on an I2C bus. A read larger than the bus transfer limit is split
// into consecutive addressed chunks; the register address of each chunk is
// advanced by the number of bytes already transferred, which is how the
// device exposes its contiguous register space.
type registerBus struct {
	bus   grideye.I2CBus
	addr  byte
	chunk int
}

func newRegisterBus(bus grideye.I2CBus, addr byte) registerBus {
	rb := registerBus{bus: bus, addr: addr}
	if lim, ok := bus.(grideye.TransferLimiter); ok {
		rb.chunk = lim.MaxTransferSize()
	}
	return rb
}

// read fills buf with len(buf) bytes starting at register reg, so that
// buf[i] holds the content of register reg+i. On error the content of buf
// is undefined and must not be used.
func (rb registerBus) read(ctx context.Context, reg byte, buf []byte) error {
	if rb.chunk <= 0 || len(buf) <= rb.chunk {
		return rb.readChunk(ctx, reg, buf)
	}
	pos := 0
	for pos < len(buf) {
		n := len(buf) - pos
		if n > rb.chunk {
			n = rb.chunk
		}
		if err := rb.readChunk(ctx, reg+byte(pos), buf[pos:pos+n]); err != nil {
			return err
		}
		pos += n
	}
	return nil
}

func (rb registerBus) readChunk(ctx context.Context, reg byte, buf []byte) error {
	err := rb.bus.WriteToAddr(ctx, rb.addr, []byte{reg})
	if err != nil {
		return fmt.Errorf("amg88xx: could not select register %#02x: %w", reg, err)
	}
	err = rb.bus.ReadFromAddr(ctx, rb.addr, buf)
	if err != nil {
		return fmt.Errorf("amg88xx: could not read %d bytes at register %#02x: %w", len(buf), reg, err)
	}
	return nil
}

// write sends the register address and payload as one contiguous bus
// transaction. Writes are never chunked; nothing the device accepts is
// larger than a couple of bytes.
func (rb registerBus) write(ctx context.Context, reg byte, data []byte) error {
	out := make([]byte, 0, len(data)+1)
	out = append(out, reg)
	out = append(out, data...)
	err := rb.bus.WriteToAddr(ctx, rb.addr, out)
	if err != nil {
		return fmt.Errorf("amg88xx: could not write register %#02x: %w", reg, err)
	}
	return nil
}

func (rb registerBus) write8(ctx context.Context, reg, value byte) error {
	return rb.write(ctx, reg, []byte{value})
}

func (rb registerBus) read8(ctx context.Context, reg byte) (byte, error) {
	buf := make([]byte, 1)
	if err := rb.read(ctx, reg, buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}
