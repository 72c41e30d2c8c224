package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/grideye/adapter"
	"github.com/mklimuk/grideye/amg88xx"
	"github.com/mklimuk/grideye/cmd/grideye/console"
)

// InterruptConfig is the yaml layout accepted by `interrupt set --config`.
type InterruptConfig struct {
	High       float32 `yaml:"high"`
	Low        float32 `yaml:"low"`
	Hysteresis float32 `yaml:"hysteresis"`
	Mode       string  `yaml:"mode"`
}

var interruptCmd = cli.Command{
	Name:    "interrupt",
	Aliases: []string{"int"},
	Subcommands: cli.Commands{
		&interruptSetCmd,
		&interruptStatusCmd,
		&interruptClearCmd,
		&interruptEnableCmd,
		&interruptDisableCmd,
		&interruptPinCmd,
	},
}

var interruptSetCmd = cli.Command{
	Name:  "set",
	Usage: "set interrupt threshold levels",
	Flags: append([]cli.Flag{
		&cli.Float64Flag{Name: "high", Usage: "high trigger level in Celsius"},
		&cli.Float64Flag{Name: "low", Usage: "low trigger level in Celsius"},
		&cli.Float64Flag{Name: "hysteresis", Usage: "hysteresis level in Celsius (defaults to 0.95*high)"},
		&cli.StringFlag{Name: "mode", Value: "absolute", Usage: "comparison mode: absolute or difference"},
		&cli.StringFlag{Name: "config", Usage: "yaml file with high/low/hysteresis/mode"},
	}, adapterFlags...),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		cfg := InterruptConfig{
			High:       float32(c.Float64("high")),
			Low:        float32(c.Float64("low")),
			Hysteresis: float32(c.Float64("hysteresis")),
			Mode:       c.String("mode"),
		}
		if path := c.String("config"); path != "" {
			raw, err := os.ReadFile(path)
			if err != nil {
				return console.Exit(1, "could not read config: %s", console.Red(err))
			}
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return console.Exit(1, "could not parse config: %s", console.Red(err))
			}
		}
		mode := amg88xx.InterruptModeAbsolute
		switch cfg.Mode {
		case "", "absolute":
		case "difference":
			mode = amg88xx.InterruptModeDifference
		default:
			return console.Exit(1, "unknown interrupt mode %s", cfg.Mode)
		}

		bus, done, err := openBus(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer done()
		cam := amg88xx.New(bus)
		if err := cam.Begin(ctx); err != nil {
			return console.Exit(1, "sensor initialization error: %s", console.Red(err))
		}
		if err := cam.SetInterruptMode(ctx, mode); err != nil {
			return console.Exit(1, "error setting interrupt mode: %s", console.Red(err))
		}
		if cfg.Hysteresis == 0 {
			err = cam.SetInterruptLevels(ctx, cfg.High, cfg.Low)
		} else {
			err = cam.SetInterruptLevelsHysteresis(ctx, cfg.High, cfg.Low, cfg.Hysteresis)
		}
		if err != nil {
			return console.Exit(1, "error setting interrupt levels: %s", console.Red(err))
		}
		if err := cam.EnableInterrupt(ctx); err != nil {
			return console.Exit(1, "error enabling interrupt: %s", console.Red(err))
		}
		console.PInfof(console.PictoBell, "levels set: high %.2f low %.2f", cfg.High, cfg.Low)
		return nil
	},
}

var interruptStatusCmd = cli.Command{
	Name:  "status",
	Usage: "show triggered pixels",
	Flags: adapterFlags,
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		bus, done, err := openBus(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer done()
		cam := amg88xx.New(bus)
		flags, err := cam.Interrupt(ctx)
		if err != nil {
			return console.Exit(1, "error reading interrupt flags: %s", console.Red(err))
		}
		triggered := amg88xx.TriggeredPixels(flags)
		if len(triggered) == 0 {
			console.Info("no pixels triggered")
			return nil
		}
		console.PInfof(console.PictoFire, "triggered pixels: %v", triggered)
		return nil
	},
}

var interruptClearCmd = cli.Command{
	Name:  "clear",
	Usage: "clear triggered interrupt flags",
	Flags: adapterFlags,
	Action: func(c *cli.Context) error {
		answer, err := console.YesOrNo("clear all triggered interrupt flags?")
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		if answer != console.Yes {
			return nil
		}
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		bus, done, err := openBus(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer done()
		cam := amg88xx.New(bus)
		if err := cam.ClearInterrupt(ctx); err != nil {
			return console.Exit(1, "error clearing interrupt: %s", console.Red(err))
		}
		if err := cam.ClearStatus(ctx); err != nil {
			return console.Exit(1, "error clearing status: %s", console.Red(err))
		}
		console.Info("interrupt flags cleared")
		return nil
	},
}

var interruptEnableCmd = cli.Command{
	Name:  "enable",
	Flags: adapterFlags,
	Action: func(c *cli.Context) error {
		return setInterruptPin(c, true)
	},
}

var interruptDisableCmd = cli.Command{
	Name:  "disable",
	Flags: adapterFlags,
	Action: func(c *cli.Context) error {
		return setInterruptPin(c, false)
	},
}

func setInterruptPin(c *cli.Context, enable bool) error {
	ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
	bus, done, err := openBus(c)
	if err != nil {
		return console.Exit(1, "%s", console.Red(err))
	}
	defer done()
	cam := amg88xx.New(bus)
	if enable {
		err = cam.EnableInterrupt(ctx)
	} else {
		err = cam.DisableInterrupt(ctx)
	}
	if err != nil {
		return console.Exit(1, "error switching interrupt pin: %s", console.Red(err))
	}
	if enable {
		console.PInfof(console.PictoBell, "interrupt pin enabled")
	} else {
		console.PInfof(console.PictoBellOff, "interrupt pin disabled")
	}
	return nil
}

var interruptPinCmd = cli.Command{
	Name:  "pin",
	Usage: "poll the INT line through the MCP2221 GPIO",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	},
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		a := adapter.NewMCP2221()
		values, err := a.ReadGPIO(ctx)
		if err != nil {
			return console.Exit(1, "adapter communication error: %s", console.Red(err))
		}
		enc := yaml.NewEncoder(os.Stdout)
		if err := enc.Encode(values); err != nil {
			return console.Exit(1, "encoding error: %s", console.Red(err))
		}
		return nil
	},
}
