package grideye

import (
	"context"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

type I2CBus interface {
	AddressableReader
	AddressableWriter
}

// TransferLimiter is implemented by buses that cannot move a register
// read in a single transaction (HID bridges, SMBus block transfers).
// MaxTransferSize returns the largest number of data bytes a single
// bus read may carry. Buses without a limit simply do not implement it.
type TransferLimiter interface {
	MaxTransferSize() int
}
