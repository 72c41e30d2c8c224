package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/grideye/amg88xx"
	"github.com/mklimuk/grideye/cmd/grideye/console"
)

var thermistorCmd = cli.Command{
	Name:    "thermistor",
	Aliases: []string{"temp"},
	Usage:   "read the onboard thermistor",
	Flags:   adapterFlags,
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
		temp, err := cam.ReadThermistor(ctx)
		if err != nil {
			return console.Exit(1, "error getting thermistor read: %s", console.Red(err))
		}
		console.Printf("%s %s\n", console.PictoThermometer, console.White(temp))
		return nil
	},
}
