package tprt

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// Shape errors: the response body differed from the literal bytes the
// protocol expects for the command.
var (
	ErrShapeMismatch     = errors.New("unexpected response body")
	ErrShortResponse     = errors.New("response shorter than packet header")
	ErrStartRejected     = fmt.Errorf("start-print: %w", ErrShapeMismatch)
	ErrStopRejected      = fmt.Errorf("stop-print: %w", ErrShapeMismatch)
	ErrNotifyOpenFailed  = fmt.Errorf("notify-open: %w", ErrShapeMismatch)
	ErrNotifyReadyFailed = fmt.Errorf("notify-ready: %w", ErrShapeMismatch)
)

// exchangeTimeout bounds a single request/response round trip.
const exchangeTimeout = 10 * time.Second

// Session is the UDP control channel to a printer (port 9100). It owns one
// socket for the duration of a job; every exchange is one request datagram
// followed by exactly one response datagram. Nothing is ever retried: the
// printer is stateful and replaying an ambiguous command could duplicate a
// cut.
type Session struct {
	conn *net.UDPConn
	addr *net.UDPAddr
}

// Dial binds an ephemeral UDP socket for exchanges with the printer at
// host:port.
func Dial(host string, port int) (*Session, error) {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	dst, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("control resolve: %w", err)
	}
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: 0})
	if err != nil {
		return nil, fmt.Errorf("control bind: %w", err)
	}
	slog.Debug("control channel open", "printer", addr, "local", conn.LocalAddr())
	return &Session{conn: conn, addr: dst}, nil
}

// Close releases the control socket.
func (s *Session) Close() error {
	return s.conn.Close()
}

// exchange sends one request datagram and reads one response datagram. The
// response source address is ignored. Responses shorter than the packet
// header fail with ErrShortResponse.
func (s *Session) exchange(cmd uint32, body []byte) (PacketHeader, []byte, error) {
	req := MarshalRequest(cmd, body)
	slog.Debug("control send", "cmd", fmt.Sprintf("0x%04x", cmd), "bytes", len(req), "hex", hex.EncodeToString(req))
	if _, err := s.conn.WriteToUDP(req, s.addr); err != nil {
		return PacketHeader{}, nil, fmt.Errorf("control send: %w", err)
	}

	s.conn.SetReadDeadline(time.Now().Add(exchangeTimeout))
	buf := make([]byte, 128)
	n, _, err := s.conn.ReadFromUDP(buf)
	if err != nil {
		return PacketHeader{}, nil, fmt.Errorf("control recv: %w", err)
	}
	slog.Debug("control recv", "bytes", n, "hex", hex.EncodeToString(buf[:n]))
	if n < HeaderSize {
		return PacketHeader{}, nil, fmt.Errorf("%w: got %d bytes", ErrShortResponse, n)
	}
	hdr, err := ParseHeader(buf[:n])
	if err != nil {
		return PacketHeader{}, nil, err
	}
	return hdr, buf[HeaderSize:n], nil
}

// Status queries and classifies the printer state.
func (s *Session) Status() (PrinterStatus, error) {
	hdr, data, err := s.exchange(CmdStatus, nil)
	if err != nil {
		return PrinterStatus{}, err
	}
	if len(data) != StatusBodySize {
		return PrinterStatus{}, fmt.Errorf("status: invalid body len, expected %d but got %d", StatusBodySize, len(data))
	}
	var body [StatusBodySize]byte
	copy(body[:], data)
	status := ClassifyStatus(hdr, body)
	if status.Kind == StatusUnknown {
		slog.Warn("unknown printer status", "header", fmt.Sprintf("%+v", hdr), "body", hex.EncodeToString(body[:]))
	}
	return status, nil
}

// StartPrint brackets the beginning of a print job.
func (s *Session) StartPrint() error {
	hdr, data, err := s.exchange(CmdStartPrint, nil)
	if err != nil {
		return err
	}
	if !bytes.Equal(data, []byte{0x02, 0x00, 0x00}) {
		return fmt.Errorf("%w: header %+v, body %v", ErrStartRejected, hdr, data)
	}
	return nil
}

// StopPrint brackets the end of a print job.
func (s *Session) StopPrint() error {
	hdr, data, err := s.exchange(CmdStopPrint, nil)
	if err != nil {
		return err
	}
	if !bytes.Equal(data, []byte{0x03, 0x00, 0x00}) {
		return fmt.Errorf("%w: header %+v, body %v", ErrStopRejected, hdr, data)
	}
	return nil
}

// NotifyDataStream announces and arms the companion TCP data stream:
// notify-open (0x0101, empty response) followed by notify-ready (0x0100,
// response 0x10, or 0x00 which the device sometimes returns and which is
// accepted with a warning).
func (s *Session) NotifyDataStream() error {
	hdr, data, err := s.exchange(CmdNotifyOpen, nil)
	if err != nil {
		return err
	}
	if len(data) != 0 {
		return fmt.Errorf("%w: header %+v, body %v", ErrNotifyOpenFailed, hdr, data)
	}

	hdr, data, err = s.exchange(CmdNotifyReady, nil)
	if err != nil {
		return err
	}
	switch {
	case bytes.Equal(data, []byte{0x10}):
	case bytes.Equal(data, []byte{0x00}):
		slog.Warn("notify-ready answered 0x00 (normally 0x10)")
	default:
		return fmt.Errorf("%w: header %+v, body %v", ErrNotifyReadyFailed, hdr, data)
	}
	return nil
}
