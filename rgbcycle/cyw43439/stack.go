//go:build tinygo

// Package cyw43439 brings up WiFi on a Pico W so the drive loop can publish
// telemetry. It joins the network configured at link time, runs DHCP through
// the lneto stack and pumps packets between the stack and the radio.
//
// Build with:
//
//	tinygo flash -target=pico-w -ldflags \
//	  "-X github.com/harveysanders/rgbcycle/rgbcycle/cyw43439.ssid=... \
//	   -X github.com/harveysanders/rgbcycle/rgbcycle/cyw43439.pass=..." ./rgbcycle
package cyw43439

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"net/netip"
	"time"

	"github.com/soypat/cyw43439"
	"github.com/soypat/lneto/x/xnet"
)

const mtu = cyw43439.MTU

var (
	ssid string
	pass string
)

// ErrNoSSID is returned by Connect when the firmware was built without an SSID.
var ErrNoSSID = errors.New("no wifi ssid set at link time")

// Config configures the link.
type Config struct {
	// Hostname is sent in DHCP requests.
	Hostname string
	// MaxTCPConns is the number of TCP connections the stack can track.
	MaxTCPConns int
	// StaticAddr is used when DHCP does not complete. Optional.
	StaticAddr netip.Addr
	Logger     *slog.Logger
}

// Stack couples the lneto stack to the CYW43439 radio.
type Stack struct {
	s       xnet.StackAsync
	dev     *cyw43439.Device
	log     *slog.Logger
	sendbuf []byte
	done    chan struct{}
}

// Connect initializes the radio, joins the network and configures the IP
// stack with DHCP. Joining is retried until it succeeds.
func Connect(cfg Config) (*Stack, error) {
	if ssid == "" {
		return nil, ErrNoSSID
	}
	if cfg.Hostname == "" {
		return nil, errors.New("empty hostname")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	start := time.Now()
	dev := cyw43439.NewPicoWDevice()
	dev.SetLogger(logger)
	if err := dev.Init(cyw43439.DefaultWifiConfig()); err != nil {
		return nil, errors.New("wifi init: " + err.Error())
	}
	logger.Info("wifi:init", slog.Duration("took", time.Since(start)))

	for {
		err := dev.JoinWPA2(ssid, pass)
		if err == nil {
			break
		}
		logger.Error("wifi:join-failed", slog.String("ssid", ssid), slog.String("err", err.Error()))
		time.Sleep(5 * time.Second)
	}

	mac, err := dev.HardwareAddr6()
	if err != nil {
		return nil, errors.New("hardware address: " + err.Error())
	}
	logger.Info("wifi:joined", slog.String("ssid", ssid), slog.String("mac", net.HardwareAddr(mac[:]).String()))

	stack := &Stack{
		dev:     dev,
		log:     logger,
		sendbuf: make([]byte, mtu),
	}
	maxTCP := cfg.MaxTCPConns
	if maxTCP < 1 {
		maxTCP = 1
	}
	err = stack.s.Reset(xnet.StackConfig{
		Hostname:        cfg.Hostname,
		MaxTCPConns:     maxTCP,
		RandSeed:        time.Since(start).Nanoseconds(),
		HardwareAddress: mac,
		MTU:             mtu,
	})
	if err != nil {
		return nil, errors.New("stack reset: " + err.Error())
	}
	dev.RecvEthHandle(func(pkt []byte) error {
		return stack.s.Demux(pkt, 0)
	})

	// DHCP needs packets flowing. The pump outlives Connect only on success.
	stack.done = make(chan struct{})
	go stack.Serve()

	if err := stack.dhcp(cfg.StaticAddr); err != nil {
		stack.Close()
		return nil, err
	}
	return stack, nil
}

func (s *Stack) dhcp(static netip.Addr) error {
	const pollTime = 50 * time.Millisecond
	rstack := s.s.StackRetrying(pollTime)

	requested := netip.AddrFrom4([4]byte{})
	if static.Is4() {
		requested = static
	}
	results, err := rstack.DoDHCPv4(requested.As4(), 3*time.Second, 3)
	if err != nil {
		if static.Is4() && !static.IsUnspecified() {
			s.log.Info("dhcp:fallback-static", slog.String("ip", static.String()))
			s.s.SetIPAddr(static)
			return nil
		}
		return errors.New("dhcp: " + err.Error())
	}
	if err := s.s.AssimilateDHCPResults(results); err != nil {
		return errors.New("assimilate dhcp: " + err.Error())
	}
	gatewayHW, err := rstack.DoResolveHardwareAddress6(results.Router, 500*time.Millisecond, 4)
	if err != nil {
		return errors.New("resolve gateway: " + err.Error())
	}
	s.s.SetGateway6(gatewayHW)
	s.log.Info("dhcp:complete",
		slog.String("ip", results.AssignedAddr.String()),
		slog.String("router", results.Router.String()),
		slog.Uint64("lease_sec", uint64(results.TLease)),
	)
	return nil
}

// Serve moves packets between the radio and the stack until Close is called.
func (s *Stack) Serve() {
	pump(s.done, s.recvAndSend, time.Sleep)
}

// Close stops Serve.
func (s *Stack) Close() {
	close(s.done)
}

func (s *Stack) recvAndSend() (send, recv int, err error) {
	gotPacket, errRecv := s.dev.PollOne()
	if gotPacket {
		recv = 1
	}
	if errRecv != nil {
		s.log.Error("stack:poll", slog.String("err", errRecv.Error()))
	}

	send, err = s.s.Encapsulate(s.sendbuf, -1, 0)
	if err != nil {
		s.log.Error("stack:encapsulate", slog.Int("plen", send), slog.String("err", err.Error()))
		return send, recv, err
	}
	if send == 0 {
		return send, recv, errRecv
	}
	if err = s.dev.SendEth(s.sendbuf[:send]); err != nil {
		s.log.Error("stack:send", slog.Int("plen", send), slog.String("err", err.Error()))
	}
	return send, recv, err
}

// Lneto returns the underlying stack for TCP dials and DNS lookups.
func (s *Stack) Lneto() *xnet.StackAsync {
	return &s.s
}

// Addr returns the stack's IP address.
func (s *Stack) Addr() netip.Addr {
	return s.s.Addr()
}
