package service

import (
	"encoding/hex"
	"io"
	"net"
	"testing"

	"github.com/XC-/gorm-gatt"
	"github.com/sirupsen/logrus"
)

type testConn struct {
	mtu   int
	reply []byte
}

func (c *testConn) MTU() int       { return c.mtu }
func (c *testConn) SetMTU(mtu int) { c.mtu = mtu }
func (c *testConn) RemoteAddr() gatt.BDAddr {
	return gatt.BDAddr{HardwareAddr: net.HardwareAddr{1, 2, 3, 4, 5, 6}}
}
func (c *testConn) Reply(b []byte) error {
	c.reply = append(c.reply[:0], b...)
	return nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

func newTestServer(t *testing.T, svcs ...*gatt.Service) *gatt.Server {
	srv := gatt.NewServer(gatt.Logger(testLogger()))
	for _, s := range svcs {
		if err := srv.AddService(s); err != nil {
			t.Fatalf("AddService(%s): %v", s.UUID(), err)
		}
	}
	return srv
}

// roundTrip serves the hex request and returns the hex reply.
func roundTrip(srv *gatt.Server, req string) string {
	c := &testConn{mtu: 23}
	b, err := hex.DecodeString(req)
	if err != nil {
		panic(err)
	}
	buf := make([]byte, 64)
	n := copy(buf, b)
	srv.ServePDU(c, buf, n)
	return hex.EncodeToString(c.reply)
}

func TestGapService(t *testing.T) {
	srv := newTestServer(t, NewGapService("gorm", 0x0341, DefaultConnParams), NewGattService(), NewIPSService())
	cases := []struct {
		name string
		send string
		want string
	}{
		{name: "groups", send: "100100ffff0028", want: "1106" + "0001ff010018" + "0002ff020118" + "0003ff032018"},
		{name: "device name", send: "0a1801", want: "0b676f726d"},
		{name: "appearance", send: "0a2801", want: "0b4103"},
		{name: "preferred params", send: "0a3801", want: "0b060006000000c800"},
		{name: "name is read only", send: "12180161", want: "0112180103"},
		{name: "declarations", send: "080100ffff0328", want: "0907" + "10010218 01002a" + "20010228 01012a" + "30010238 01042a"},
	}
	for _, tt := range cases {
		want := compact(tt.want)
		if got := roundTrip(srv, tt.send); got != want {
			t.Errorf("%s: sent %s got %s want %s", tt.name, tt.send, got, want)
		}
	}
}

func compact(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			b = append(b, s[i])
		}
	}
	return string(b)
}

type testLED struct{ on bool }

func (l *testLED) On() bool    { return l.on }
func (l *testLED) Set(on bool) { l.on = on }

func TestLEDService(t *testing.T) {
	leds := []*testLED{{}, {on: true}}
	s := NewLEDService(leds[0], leds[1])
	if got := s.UUID().String(); got != "544f4952-0000-0e0f-0f0a-000000010000" {
		t.Errorf("service uuid: got %s", got)
	}
	srv := newTestServer(t, s)

	cases := []struct {
		name  string
		send  string
		want  string
		after func()
	}{
		{name: "led 0 is off", send: "0a1881", want: "0b00"},
		{name: "led 1 is on", send: "0a2881", want: "0b01"},
		{
			name: "turn led 0 on",
			send: "12188101",
			want: "13",
			after: func() {
				if !leds[0].on {
					t.Errorf("led 0 still off")
				}
			},
		},
		{name: "led 0 reads on", send: "0a1881", want: "0b01"},
		{
			name: "turn led 1 off",
			send: "12288100",
			want: "13",
			after: func() {
				if leds[1].on {
					t.Errorf("led 1 still on")
				}
			},
		},
		{name: "bool presentation format", send: "0a1981", want: "0b01000027010000"},
		{name: "one descriptor per led", send: "040081ffff", want: "0501" + "19810429" + "29810429"},
	}
	for _, tt := range cases {
		if got := roundTrip(srv, tt.send); got != tt.want {
			t.Errorf("%s: sent %s got %s want %s", tt.name, tt.send, got, tt.want)
		}
		if tt.after != nil {
			tt.after()
		}
	}
}

func TestInfoService(t *testing.T) {
	srv := newTestServer(t, NewInfoService("hi", testLogger()))
	cases := []struct {
		name string
		send string
		want string
	}{
		{name: "initial text", send: "0a1881", want: "0b6869"},
		{name: "write text", send: "1218816f6b", want: "13"},
		{name: "read it back", send: "0a1881", want: "0b6f6b"},
		{name: "utf8 presentation format", send: "0a1981", want: "0b19000027010000"},
		{name: "extended properties", send: "0a1a81", want: "0b0000"},
		{name: "user description", send: "0a1b81", want: "0b696e666f2074657874"},
		{name: "group", send: "100081ffff0028", want: "1114" + "0081ff81" + "0000150800000a0f0f0e000052494f54"},
	}
	for _, tt := range cases {
		if got := roundTrip(srv, tt.send); got != tt.want {
			t.Errorf("%s: sent %s got %s want %s", tt.name, tt.send, got, tt.want)
		}
	}
}

func TestConnParamsBytes(t *testing.T) {
	p := ConnParams{MinInterval: 0x0010, MaxInterval: 0x0020, Latency: 4, Timeout: 0x0190}
	if got, want := hex.EncodeToString(p.Bytes()), "1000200004009001"; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}
