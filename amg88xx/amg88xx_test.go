package amg88xx

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBegin_InitSequence(t *testing.T) {
	dev := &fakeDevice{}
	cam := New(dev)
	require.NoError(t, cam.Begin(context.Background()))
	assert.Equal(t, [][]byte{
		{regPCTL, modeNormal},
		{regRST, resetInitial},
		{regINTC, 0x00},
		{regFPSC, byte(FrameRate10)},
	}, dev.writes)
}

func TestReadPixels(t *testing.T) {
	dev := &fakeDevice{limit: 60}
	// pixel 0 reads 100 counts, pixel 1 reads -200 counts, pixel 63 reads 1 count
	binary.LittleEndian.PutUint16(dev.mem[0x80:], 0x0064)
	binary.LittleEndian.PutUint16(dev.mem[0x82:], 0x0F38)
	binary.LittleEndian.PutUint16(dev.mem[0x80+126:], 0x0001)
	cam := New(dev)

	pixels, err := cam.ReadPixels(context.Background())
	require.NoError(t, err)
	require.Len(t, pixels, PixelCount)
	assert.Equal(t, float32(25.0), pixels[0])
	assert.Equal(t, float32(-50.0), pixels[1])
	assert.Equal(t, float32(0.25), pixels[63])
	// 128 bytes through a 60-byte transport take three addressed chunks
	assert.Equal(t, []readOp{
		{reg: 0x80, len: 60},
		{reg: 0xBC, len: 60},
		{reg: 0xF8, len: 8},
	}, dev.reads)
}

func TestReadThermistor(t *testing.T) {
	dev := &fakeDevice{}
	dev.mem[regTTHL] = 0x64
	dev.mem[regTTHH] = 0x08
	cam := New(dev)

	temp, err := cam.ReadThermistor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float32(-6.25), temp)
}

func TestSetInterruptLevels(t *testing.T) {
	dev := &fakeDevice{}
	cam := New(dev)

	// high 80.0 -> 320 counts, low 10.0 -> 40 counts, hysteresis 76.0 -> 304 counts
	require.NoError(t, cam.SetInterruptLevels(context.Background(), 80.0, 10.0))
	assert.Equal(t, [][]byte{
		{regINTHL, 0x40},
		{regINTHH, 0x01},
		{regINTLL, 0x28},
		{regINTLH, 0x00},
		{regIHYSL, 0x30},
		{regIHYSH, 0x01},
	}, dev.writes)
}

func TestSetInterruptLevels_ReadBack(t *testing.T) {
	dev := &fakeDevice{}
	cam := New(dev)
	ctx := context.Background()

	require.NoError(t, cam.SetInterruptLevelsHysteresis(ctx, 60.5, -10.25, 55.0))
	assert.InDelta(t, 60.5, decodeLevel(dev.mem[regINTHL], dev.mem[regINTHH]), pixelTempConversion)
	assert.InDelta(t, -10.25, decodeLevel(dev.mem[regINTLL], dev.mem[regINTLH]), pixelTempConversion)
	assert.InDelta(t, 55.0, decodeLevel(dev.mem[regIHYSL], dev.mem[regIHYSH]), pixelTempConversion)
}

func TestInterruptControl(t *testing.T) {
	dev := &fakeDevice{}
	cam := New(dev)
	ctx := context.Background()

	require.NoError(t, cam.EnableInterrupt(ctx))
	require.NoError(t, cam.SetInterruptMode(ctx, InterruptModeAbsolute))
	require.NoError(t, cam.DisableInterrupt(ctx))
	assert.Equal(t, [][]byte{
		{regINTC, 0x01},
		{regINTC, 0x03},
		{regINTC, 0x02},
	}, dev.writes)
}

func TestInterruptFlags(t *testing.T) {
	dev := &fakeDevice{}
	dev.mem[regINTOffset] = 0b00000101
	dev.mem[regINTOffset+7] = 0b10000000
	cam := New(dev)

	flags, err := cam.Interrupt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 63}, TriggeredPixels(flags))
}

func TestClearInterrupt(t *testing.T) {
	dev := &fakeDevice{}
	cam := New(dev)
	require.NoError(t, cam.ClearInterrupt(context.Background()))
	assert.Equal(t, [][]byte{{regRST, resetFlag}}, dev.writes)
}

func TestSetMovingAverageMode(t *testing.T) {
	dev := &fakeDevice{}
	cam := New(dev)
	ctx := context.Background()

	require.NoError(t, cam.SetMovingAverageMode(ctx, true))
	require.NoError(t, cam.SetMovingAverageMode(ctx, false))
	assert.Equal(t, [][]byte{
		{regAVE, aveMAMOD},
		{regAVE, 0x00},
	}, dev.writes)
}

func TestStatus(t *testing.T) {
	dev := &fakeDevice{}
	dev.mem[regSTAT] = 0x02
	cam := New(dev)
	ctx := context.Background()

	status, err := cam.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), status)

	require.NoError(t, cam.ClearStatus(ctx))
	assert.Equal(t, [][]byte{{regSCLR, 0x06}}, dev.writes)
}

func TestWithAddress(t *testing.T) {
	dev := &fakeDevice{}
	cam := New(dev, WithAddress(0x68))
	assert.Equal(t, byte(0x68), cam.regs.addr)
}
