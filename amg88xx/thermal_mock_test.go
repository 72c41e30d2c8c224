package amg88xx

import (
	"context"
	"fmt"
	"testing"
)

func TestMockThermalCamera_StaticValues(t *testing.T) {
	frame := make([]float32, PixelCount)
	frame[12] = 36.5
	cam := NewMockThermalCamera(
		func(ctx context.Context) ([]float32, error) { return frame, nil },
		func(ctx context.Context) (float32, error) { return 26.0, nil },
	)
	ctx := context.Background()

	pixels, err := cam.ReadPixels(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pixels[12] != 36.5 {
		t.Errorf("expected 36.5, got %v", pixels[12])
	}
	temp, err := cam.ReadThermistor(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if temp != 26.0 {
		t.Errorf("expected 26.0, got %v", temp)
	}
}

func TestMockThermalCamera_Dynamic(t *testing.T) {
	temp := float32(20.0)
	cam := NewMockThermalCamera(
		func(ctx context.Context) ([]float32, error) { return make([]float32, PixelCount), nil },
		func(ctx context.Context) (float32, error) { return temp, nil },
	)
	ctx := context.Background()

	v1, _ := cam.ReadThermistor(ctx)
	if v1 != 20.0 {
		t.Errorf("expected 20.0, got %v", v1)
	}
	temp = 31.25
	v2, _ := cam.ReadThermistor(ctx)
	if v2 != 31.25 {
		t.Errorf("expected 31.25, got %v", v2)
	}
}

func TestMockThermalCamera_Error(t *testing.T) {
	cam := NewMockThermalCamera(
		func(ctx context.Context) ([]float32, error) { return nil, fmt.Errorf("sensor error") },
		func(ctx context.Context) (float32, error) { return 0, fmt.Errorf("sensor error") },
	)
	ctx := context.Background()
	if _, err := cam.ReadPixels(ctx); err == nil || err.Error() != "sensor error" {
		t.Errorf("expected sensor error, got %v", err)
	}
	if _, err := cam.ReadThermistor(ctx); err == nil || err.Error() != "sensor error" {
		t.Errorf("expected sensor error, got %v", err)
	}
}
