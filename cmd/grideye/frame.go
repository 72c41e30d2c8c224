package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/grideye/amg88xx"
	"github.com/mklimuk/grideye/cmd/grideye/console"
)

var frameCmd = cli.Command{
	Name:    "frame",
	Aliases: []string{"px"},
	Usage:   "read the 8x8 pixel array",
	Flags: append([]cli.Flag{
		&cli.DurationFlag{
			Name:    "watch",
			Aliases: []string{"w"},
			Usage:   "re-read the frame at the given interval",
		},
	}, adapterFlags...),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		bus, done, err := openBus(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer done()

		cam := amg88xx.New(bus)
		if err := cam.Begin(ctx); err != nil {
			return console.Exit(1, "sensor initialization error: %s", console.Red(err))
		}
		for {
			pixels, err := cam.ReadPixels(ctx)
			if err != nil {
				return console.Exit(1, "error reading frame: %s", console.Red(err))
			}
			console.Print(renderFrame(pixels))
			if c.Duration("watch") == 0 {
				return nil
			}
			time.Sleep(c.Duration("watch"))
		}
	},
}

// renderFrame formats the 64 temperatures as an 8x8 grid, coloring each
// cell by rough temperature band.
func renderFrame(pixels []float32) string {
	var b strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			cell := fmt.Sprintf("%6.2f", pixels[8*row+col])
			b.WriteString(colorize(pixels[8*row+col], cell))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func colorize(temp float32, cell string) string {
	switch {
	case temp < 20:
		return console.Blue(cell)
	case temp < 26:
		return console.Cyan(cell)
	case temp < 30:
		return console.Green(cell)
	case temp < 35:
		return console.Yellow(cell)
	default:
		return console.Red(cell)
	}
}
