package amg88xx

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedMag12ToFloat(t *testing.T) {
	tests := []struct {
		given    uint16
		expected float32
	}{
		{0x0000, 0.0},
		{0x0001, 1.0},
		{0x0064, 100.0},
		{0x07FF, 2047.0},
		{0x0801, -1.0},
		{0x0864, -100.0},
		{0x0FFF, -2047.0},
		// bits 12-15 are beyond the device resolution and must be ignored
		{0xF064, 100.0},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%#04x", test.given), func(t *testing.T) {
			assert.Equal(t, test.expected, signedMag12ToFloat(test.given))
		})
	}
}

func TestSignedMag12ToFloat_FullRange(t *testing.T) {
	for word := uint16(0); word < 4096; word++ {
		expected := float32(word & 0x7FF)
		if word&0x800 != 0 {
			expected = -expected
		}
		if got := signedMag12ToFloat(word); got != expected {
			t.Fatalf("word %#04x: expected %v, got %v", word, expected, got)
		}
	}
}

func TestInt12ToFloat(t *testing.T) {
	tests := []struct {
		given    uint16
		expected float32
	}{
		{0x0000, 0.0},
		{0x0064, 100.0},
		{0x07FF, 2047.0},
		{0x0800, -2048.0},
		{0x0FFF, -1.0},
		{0x0F38, -200.0},
		// bits 12-15 are beyond the device resolution and must be ignored
		{0xF064, 100.0},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%#04x", test.given), func(t *testing.T) {
			assert.Equal(t, test.expected, int12ToFloat(test.given))
		})
	}
}

func TestInt12ToFloat_RoundTrip(t *testing.T) {
	for v := -2048; v <= 2047; v++ {
		word := uint16(v) & 0xFFF
		if got := int12ToFloat(word); got != float32(v) {
			t.Fatalf("value %d: decoded to %v", v, got)
		}
	}
}

func TestPixelConversion(t *testing.T) {
	// raw bytes 0x64, 0x00 little-endian make word 0x0064 = 100 counts
	word := uint16(0x00)<<8 | uint16(0x64)
	assert.Equal(t, float32(25.0), int12ToFloat(word)*pixelTempConversion)
}

func TestThermistorConversion(t *testing.T) {
	// raw bytes 0x64, 0x08: sign bit set, magnitude 100 counts
	word := uint16(0x08)<<8 | uint16(0x64)
	assert.Equal(t, float32(-6.25), signedMag12ToFloat(word)*thermistorConversion)
}

func TestLevelToRaw_Clamp(t *testing.T) {
	tests := []struct {
		given    float32
		expected int
	}{
		{25.0, 100},
		{-25.0, -100},
		{511.75, 2047},
		{2000.0, 4095},
		{-2000.0, -4095},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v", test.given), func(t *testing.T) {
			assert.Equal(t, test.expected, levelToRaw(test.given))
		})
	}
}

func TestEncodeLevel_RegisterSplit(t *testing.T) {
	tests := []struct {
		given  float32
		lo, hi byte
	}{
		{100.0, 0x90, 0x01}, // 400 counts = 0x190
		{25.0, 0x64, 0x00},
		{0.0, 0x00, 0x00},
		{511.75, 0xFF, 0x07},
		{2000.0, 0xFF, 0x0F}, // clamped to 4095
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v", test.given), func(t *testing.T) {
			lo, hi := encodeLevel(test.given)
			assert.Equal(t, test.lo, lo)
			assert.Equal(t, test.hi, hi)
		})
	}
}

func TestLevel_RoundTrip(t *testing.T) {
	levels := []float32{0.0, 0.25, 10.1, 25.0, 80.0, 511.75, -0.25, -20.25, -100.0, -512.0}
	for _, level := range levels {
		t.Run(fmt.Sprintf("%v", level), func(t *testing.T) {
			lo, hi := encodeLevel(level)
			assert.InDelta(t, level, decodeLevel(lo, hi), pixelTempConversion)
		})
	}
}
