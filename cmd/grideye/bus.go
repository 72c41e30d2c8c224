package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/grideye"
	"github.com/mklimuk/grideye/adapter"
	"github.com/mklimuk/grideye/i2c"
)

var adapterFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "adapter",
		Aliases: []string{"a"},
		Value:   "mcp2221",
	},
	&cli.StringFlag{
		Name:    "device",
		Aliases: []string{"d"},
		Value:   "/dev/i2c-1",
	},
	&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
}

// openBus builds the transport selected on the command line. The returned
// closer is a no-op for adapters that hold no persistent handle.
func openBus(c *cli.Context) (grideye.I2CBus, func(), error) {
	switch c.String("adapter") {
	case "mcp2221":
		ad := adapter.NewMCP2221()
		if err := ad.Init(); err != nil {
			return nil, nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		return ad, func() {}, nil
	case "generic", "nanopi":
		bus, err := i2c.NewGenericBus(c.String("device"))
		if err != nil {
			return nil, nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		return bus, func() { _ = bus.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown adapter %s", c.String("adapter"))
}
