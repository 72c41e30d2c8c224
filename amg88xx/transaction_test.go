package amg88xx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type readOp struct {
	reg byte
	len int
}

// fakeDevice simulates a register-addressed peripheral: a one-byte write
// positions the register cursor, a read serves consecutive bytes from the
// simulated register file, a longer write stores payload at the addressed
// register. Every read transaction is recorded.
type fakeDevice struct {
	mem    [256]byte
	cursor byte
	limit  int
	reads  []readOp
	writes [][]byte
}

func (f *fakeDevice) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	if len(buffer) == 1 {
		f.cursor = buffer[0]
		return nil
	}
	f.writes = append(f.writes, append([]byte(nil), buffer...))
	copy(f.mem[buffer[0]:], buffer[1:])
	return nil
}

func (f *fakeDevice) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	f.reads = append(f.reads, readOp{reg: f.cursor, len: len(buffer)})
	copy(buffer, f.mem[f.cursor:])
	return nil
}

func (f *fakeDevice) Release(ctx context.Context) error { return nil }

func (f *fakeDevice) MaxTransferSize() int { return f.limit }

func TestRead_SingleTransaction(t *testing.T) {
	dev := &fakeDevice{limit: 32}
	for i := 0; i < 16; i++ {
		dev.mem[0x10+i] = byte(i)
	}
	rb := newRegisterBus(dev, 0x69)

	buf := make([]byte, 16)
	err := rb.read(context.Background(), 0x10, buf)
	require.NoError(t, err)
	assert.Equal(t, []readOp{{reg: 0x10, len: 16}}, dev.reads)
	for i, b := range buf {
		assert.Equal(t, byte(i), b)
	}
}

func TestRead_Chunked(t *testing.T) {
	dev := &fakeDevice{limit: 32}
	for i := 0; i < 64; i++ {
		dev.mem[0x80+i] = byte(64 - i)
	}
	rb := newRegisterBus(dev, 0x69)

	buf := make([]byte, 64)
	err := rb.read(context.Background(), 0x80, buf)
	require.NoError(t, err)
	// exactly two sub-transactions, second one addressed past the first
	assert.Equal(t, []readOp{{reg: 0x80, len: 32}, {reg: 0xA0, len: 32}}, dev.reads)
	assert.Equal(t, dev.mem[0x80:0xC0], buf)
}

func TestRead_ChunkedUneven(t *testing.T) {
	dev := &fakeDevice{limit: 60}
	for i := 0; i < 128; i++ {
		dev.mem[0x80+i] = byte(i * 3)
	}
	rb := newRegisterBus(dev, 0x69)

	buf := make([]byte, 128)
	err := rb.read(context.Background(), 0x80, buf)
	require.NoError(t, err)
	assert.Equal(t, []readOp{
		{reg: 0x80, len: 60},
		{reg: 0x80 + 60, len: 60},
		{reg: 0x80 + 120, len: 8},
	}, dev.reads)
	assert.Equal(t, dev.mem[0x80:], buf)
}

func TestRead_NoLimit(t *testing.T) {
	dev := &fakeDevice{limit: 0}
	rb := newRegisterBus(dev, 0x69)

	buf := make([]byte, 128)
	err := rb.read(context.Background(), 0x80, buf)
	require.NoError(t, err)
	assert.Equal(t, []readOp{{reg: 0x80, len: 128}}, dev.reads)
}

func TestWrite_RegisterPrefix(t *testing.T) {
	dev := &fakeDevice{}
	rb := newRegisterBus(dev, 0x69)

	err := rb.write8(context.Background(), 0x02, 0x01)
	require.NoError(t, err)
	// register byte and payload go out as a single transaction
	assert.Equal(t, [][]byte{{0x02, 0x01}}, dev.writes)
}

func TestRead8(t *testing.T) {
	dev := &fakeDevice{}
	dev.mem[0x04] = 0x02
	rb := newRegisterBus(dev, 0x69)

	val, err := rb.read8(context.Background(), 0x04)
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), val)
}

// MockI2CBus is a mock implementation of grideye.I2CBus using testify/mock.
type MockI2CBus struct {
	mock.Mock
	limit int
}

func (m *MockI2CBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	return args.Error(0)
}

func (m *MockI2CBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	if data, ok := args.Get(0).([]byte); ok && len(data) <= len(buffer) {
		copy(buffer, data)
	}
	return args.Error(1)
}

func (m *MockI2CBus) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockI2CBus) MaxTransferSize() int { return m.limit }

func TestRead_ErrorMidChunk(t *testing.T) {
	bus := &MockI2CBus{limit: 32}
	busErr := errors.New("bus not acknowledging")
	bus.On("WriteToAddr", mock.Anything, byte(0x69), []byte{0x80}).Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(0x69), mock.Anything).Return(make([]byte, 32), nil).Once()
	bus.On("WriteToAddr", mock.Anything, byte(0x69), []byte{0xA0}).Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(0x69), mock.Anything).Return(nil, busErr).Once()

	rb := newRegisterBus(bus, 0x69)
	err := rb.read(context.Background(), 0x80, make([]byte, 64))
	require.Error(t, err)
	assert.ErrorIs(t, err, busErr)
	bus.AssertExpectations(t)
}

func TestRead_RegisterSelectError(t *testing.T) {
	bus := &MockI2CBus{}
	busErr := errors.New("device absent")
	bus.On("WriteToAddr", mock.Anything, byte(0x69), []byte{0x0E}).Return(busErr).Once()

	rb := newRegisterBus(bus, 0x69)
	err := rb.read(context.Background(), 0x0E, make([]byte, 2))
	assert.ErrorIs(t, err, busErr)
	bus.AssertNotCalled(t, "ReadFromAddr", mock.Anything, mock.Anything, mock.Anything)
}
