// Package mqtt publishes drive loop events to an MQTT broker over the lneto
// TCP stack.
package mqtt

import (
	"errors"
	"io"
	"log/slog"
	"net/netip"
	"runtime"
	"time"

	"github.com/soypat/lneto/tcp"
	"github.com/soypat/lneto/x/xnet"
	mqtt "github.com/soypat/natiu-mqtt"

	"github.com/harveysanders/rgbcycle/rgbcycle/drive"
	"github.com/harveysanders/rgbcycle/rgbcycle/lcd"
)

// Topic events are published on.
const Topic = "rgbcycle/events"

var pubFlags, _ = mqtt.NewPublishFlags(mqtt.QoS0, false, false)

type Client struct {
	ID                string
	Timeout           time.Duration
	TCPBufSize        int
	Logger            *slog.Logger
	HeartbeatInterval time.Duration
	Boot              time.Time // Power-on time, for Payload.SinceBootNS.
	Username          string    // MQTT broker username (optional)
	Password          string    // MQTT broker password (optional, requires Username)
}

// ConnectAndPublish connects to the broker at addr and publishes every event
// received on events. It reconnects forever and only returns on
// configuration errors. lcdMessages may be nil.
func (c *Client) ConnectAndPublish(
	stack *xnet.StackAsync,
	addr string,
	events <-chan drive.Event,
	lcdMessages chan<- lcd.Message,
) error {
	const pollTime = 5 * time.Millisecond

	host, port, err := brokerHostPort(addr)
	if err != nil {
		return errors.New("broker address " + addr + ": " + err.Error())
	}

	rstack := stack.StackRetrying(pollTime)

	brokerAddr, err := netip.ParseAddr(host)
	if err != nil {
		c.Logger.Info("dns:resolving", slog.String("host", host))
		addrs, err := rstack.DoLookupIP(host, 5*time.Second, 3)
		if err != nil {
			return errors.New("dns lookup for " + host + ": " + err.Error())
		}
		if len(addrs) == 0 {
			return errors.New("dns lookup for " + host + ": no addresses returned")
		}
		brokerAddr = addrs[0]
	}
	c.Logger.Info("mqtt:broker", slog.String("addr", brokerAddr.String()), slog.Uint64("port", uint64(port)))

	cfg := mqtt.ClientConfig{
		Decoder: mqtt.DecoderNoAlloc{UserBuffer: make([]byte, 1024)},
		OnPub: func(pubHead mqtt.Header, varPub mqtt.VariablesPublish, r io.Reader) error {
			c.Logger.Info("mqtt:received", slog.String("topic", string(varPub.TopicName)))
			return nil
		},
	}
	var varconn mqtt.VariablesConnect
	varconn.SetDefaultMQTT([]byte(c.ID))
	if c.Username != "" {
		varconn.Username = []byte(c.Username)
		if c.Password != "" {
			varconn.Password = []byte(c.Password)
		}
	}
	client := mqtt.NewClient(cfg)

	var conn tcp.Conn
	err = conn.Configure(tcp.ConnConfig{
		RxBuf:             make([]byte, c.TCPBufSize),
		TxBuf:             make([]byte, c.TCPBufSize),
		TxPacketQueueSize: 3,
	})
	if err != nil {
		return errors.New("tcp configure: " + err.Error())
	}

	closeConn := func(reason string) {
		c.Logger.Error("tcp:closing", slog.String("reason", reason))
		conn.Close()
		for i := 0; i < 50 && !conn.State().IsClosed(); i++ {
			time.Sleep(100 * time.Millisecond)
		}
		conn.Abort()
	}

	pubVar := mqtt.VariablesPublish{TopicName: []byte(Topic)}
	serverAddr := netip.AddrPortFrom(brokerAddr, port)
	for {
		localPort := uint16(stack.Prand32()>>17) + 1024
		lcd.Send(lcdMessages, "MQTT dialing", addr)
		err = rstack.DoDialTCP(&conn, localPort, serverAddr, 10*time.Second, 3)
		if err != nil {
			closeConn("dial failed: " + err.Error())
			time.Sleep(2 * time.Second)
			continue
		}

		conn.SetDeadline(time.Now().Add(c.Timeout))
		if err = client.StartConnect(&conn, &varconn); err != nil {
			lcd.Send(lcdMessages, "MQTT failed", err.Error())
			closeConn("connect failed: " + err.Error())
			continue
		}
		for retries := 50; retries > 0 && !client.IsConnected(); retries-- {
			time.Sleep(100 * time.Millisecond)
			if err = client.HandleNext(); err != nil {
				c.Logger.Error("mqtt:handle-next", slog.String("err", err.Error()))
			}
		}
		if !client.IsConnected() {
			lcd.Send(lcdMessages, "MQTT failed", "timed out")
			closeConn("connect timed out")
			continue
		}
		c.Logger.Info("mqtt:connected")
		lcd.Send(lcdMessages, "MQTT connected", Topic)

		c.publishLoop(client, &conn, stack, &pubVar, events)

		c.Logger.Error("mqtt:disconnected", slog.Any("reason", client.Err()))
		closeConn("disconnected")
		runtime.Gosched()
	}
}

const defaultHeartbeat = 30 * time.Second

// heartbeat returns HeartbeatInterval, or defaultHeartbeat when unset.
func (c *Client) heartbeat() time.Duration {
	if c.HeartbeatInterval <= 0 {
		return defaultHeartbeat
	}
	return c.HeartbeatInterval
}

func (c *Client) publishLoop(
	client *mqtt.Client,
	conn *tcp.Conn,
	stack *xnet.StackAsync,
	pubVar *mqtt.VariablesPublish,
	events <-chan drive.Event,
) {
	heartbeat := time.NewTicker(c.heartbeat())
	defer heartbeat.Stop()
	for client.IsConnected() {
		select {
		case ev := <-events:
			payload, err := NewPayload(ev, time.Since(c.Boot)).Marshal()
			if err != nil {
				c.Logger.Error("mqtt:marshal", slog.String("err", err.Error()))
				continue
			}
			conn.SetDeadline(time.Now().Add(c.Timeout))
			pubVar.PacketIdentifier = uint16(stack.Prand32())
			if err := client.PublishPayload(pubFlags, *pubVar, payload); err != nil {
				c.Logger.Error("mqtt:publish", slog.String("err", err.Error()))
				continue
			}
			if err := client.HandleNext(); err != nil {
				c.Logger.Error("mqtt:handle-next", slog.String("err", err.Error()))
			}
		case <-heartbeat.C:
			if err := client.HandleNext(); err != nil {
				c.Logger.Error("mqtt:handle-next", slog.String("err", err.Error()))
			}
		default:
			// TinyGo runs goroutines on one core; let the drive loop and
			// the packet pump run.
			runtime.Gosched()
		}
	}
}
