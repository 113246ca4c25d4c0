package mqtt

import (
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/harveysanders/rgbcycle/rgbcycle/color"
	"github.com/harveysanders/rgbcycle/rgbcycle/drive"
)

// Payload is the JSON body published for each drive loop event.
type Payload struct {
	Kind        string        `json:"kind"`
	Step        uint64        `json:"step"`
	Color       string        `json:"color"`
	RGB         [3]uint32     `json:"rgb"`
	Byte        *uint8        `json:"byte,omitempty"` // Set for echoed bytes.
	SinceBootNS time.Duration `json:"since_boot_ns"`
}

// NewPayload converts ev. sinceBoot is the time since power-on.
func NewPayload(ev drive.Event, sinceBoot time.Duration) Payload {
	r, g, b := color.Intensities(ev.Color)
	p := Payload{
		Kind:        ev.Kind.String(),
		Step:        ev.Step,
		Color:       ev.Color.String(),
		RGB:         [3]uint32{r, g, b},
		SinceBootNS: sinceBoot,
	}
	if ev.Kind == drive.ByteEchoed {
		v := ev.Byte
		p.Byte = &v
	}
	return p
}

// Marshal encodes p.
func (p Payload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// brokerHostPort splits a "host:port" broker address. IPv6 hosts must be
// bracketed, e.g. "[fd00::9]:1883".
func brokerHostPort(addr string) (host string, port uint16, err error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	if host == "" {
		return "", 0, errors.New("empty host")
	}
	p, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || p == 0 {
		return "", 0, errors.New("invalid port " + strconv.Quote(portStr))
	}
	return host, uint16(p), nil
}
