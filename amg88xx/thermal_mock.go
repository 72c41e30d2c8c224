package amg88xx

import (
	"context"
)

// PixelsBehaviorFunc defines the function signature for pixel frame behavior.
// It returns 64 temperatures in Celsius or an error.
type PixelsBehaviorFunc func(ctx context.Context) ([]float32, error)

// TemperatureBehaviorFunc defines the function signature for thermistor behavior.
// It returns the temperature in Celsius or an error.
type TemperatureBehaviorFunc func(ctx context.Context) (float32, error)

// MockThermalCamera is a mock implementation of a thermal camera that uses
// behavior functions to produce results without requiring hardware.
type MockThermalCamera struct {
	pixelsBehavior     PixelsBehaviorFunc
	thermistorBehavior TemperatureBehaviorFunc
}

// NewMockThermalCamera creates a new mock thermal camera with the given
// behavior functions. The pixels behavior is called by ReadPixels, the
// thermistor behavior by ReadThermistor.
//
// Example usage:
//
//	cam := NewMockThermalCamera(
//		func(ctx context.Context) ([]float32, error) { return make([]float32, 64), nil },
//		func(ctx context.Context) (float32, error) { return 26.5, nil },
//	)
func NewMockThermalCamera(pixels PixelsBehaviorFunc, thermistor TemperatureBehaviorFunc) *MockThermalCamera {
	return &MockThermalCamera{
		pixelsBehavior:     pixels,
		thermistorBehavior: thermistor,
	}
}

// ReadPixels returns a pixel frame by calling the pixels behavior function.
func (m *MockThermalCamera) ReadPixels(ctx context.Context) ([]float32, error) {
	return m.pixelsBehavior(ctx)
}

// ReadThermistor returns the thermistor reading by calling the thermistor
// behavior function.
func (m *MockThermalCamera) ReadThermistor(ctx context.Context) (float32, error) {
	return m.thermistorBehavior(ctx)
}
