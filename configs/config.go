package configs

import (
	"github.com/ezrec/handheld/cpu"
	"github.com/ezrec/handheld/crt"
	"github.com/ezrec/handheld/signal"
	"github.com/ezrec/handheld/translate"
)

var f = translate.From

// ErrRegisterName rejects a register name that is not a single character.
type ErrRegisterName string

func (err ErrRegisterName) Error() string {
	return f("register name '%v' is not a single character", string(err))
}

// SignalConfig selects the signal strength samples.
type SignalConfig struct {
	Register string `json:"register"`
	Offset   uint32 `json:"offset"`
	Period   int    `json:"period"`
}

// CrtConfig describes the CRT beam.
type CrtConfig struct {
	Register string `json:"register"`
	Width    int    `json:"width"`
	Radius   int    `json:"radius"`
	Strict   bool   `json:"strict"` // Reject frames ending in a partial row.
}

// Config is the run configuration of a simulation.
type Config struct {
	Registers map[string]int `json:"registers"`
	Signal    SignalConfig   `json:"signal"`
	Crt       CrtConfig      `json:"crt"`
}

func registerName(name string) (id rune, err error) {
	runes := []rune(name)
	if len(runes) != 1 {
		err = ErrRegisterName(name)
		return
	}
	id = runes[0]
	return
}

// Initial returns the seeded register bank.
func (cfg Config) Initial() (regs cpu.Registers, err error) {
	regs = make(cpu.Registers, len(cfg.Registers))
	for name, value := range cfg.Registers {
		var id rune
		id, err = registerName(name)
		if err != nil {
			return nil, err
		}
		regs[id] = value
	}

	return
}

// Sampler returns the configured signal sampler.
func (cfg Config) Sampler() (sm signal.Sampler, err error) {
	id, err := registerName(cfg.Signal.Register)
	if err != nil {
		return
	}

	sm = signal.Sampler{
		Register: id,
		Offset:   cfg.Signal.Offset,
		Period:   cfg.Signal.Period,
	}
	err = sm.Validate()
	return
}

// Beam returns the configured CRT beam.
func (cfg Config) Beam() (beam crt.Beam, err error) {
	id, err := registerName(cfg.Crt.Register)
	if err != nil {
		return
	}

	beam = crt.Beam{
		Register: id,
		Width:    cfg.Crt.Width,
		Radius:   cfg.Crt.Radius,
	}
	err = beam.Validate()
	return
}
