package main

import (
	"errors"
	"strconv"
	"time"

	"github.com/harveysanders/rgbcycle/rgbcycle/drive"
)

// Overridable at link time, e.g.
//
//	tinygo flash -target=pico -ldflags "-X main.hold=250ms -X main.baud=9600" ./rgbcycle
var (
	hold   string
	gap    string
	baud   string
	broker string
)

const (
	defaultBaud   = 115200
	defaultBroker = "10.0.0.9:1883"
)

type settings struct {
	drive  drive.Config
	baud   uint32
	broker string
}

// loadSettings applies the link-time overrides to the defaults. Invalid
// values keep the default and are reported in errs.
func loadSettings(hold, gap, baud, broker string) (s settings, errs []error) {
	s = settings{
		drive:  drive.DefaultConfig(),
		baud:   defaultBaud,
		broker: defaultBroker,
	}
	if hold != "" {
		d, err := parseWait(hold)
		if err != nil {
			errs = append(errs, errors.New("hold: "+err.Error()))
		} else {
			s.drive.Hold = d
		}
	}
	if gap != "" {
		d, err := parseWait(gap)
		if err != nil {
			errs = append(errs, errors.New("gap: "+err.Error()))
		} else {
			s.drive.Gap = d
		}
	}
	if baud != "" {
		v, err := strconv.ParseUint(baud, 10, 32)
		if err != nil || v == 0 {
			errs = append(errs, errors.New("baud: invalid rate "+strconv.Quote(baud)))
		} else {
			s.baud = uint32(v)
		}
	}
	if broker != "" {
		s.broker = broker
	}
	return s, errs
}

func parseWait(v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.New("negative duration " + v)
	}
	return d, nil
}
