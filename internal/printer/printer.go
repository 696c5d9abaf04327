// Package printer sequences one print job against an SR5900P-class network
// label printer: UDP control exchanges bracketing a single TCP bulk write.
package printer

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/hikalium/sr5900p/internal/label"
	"github.com/hikalium/sr5900p/internal/raster"
	"github.com/hikalium/sr5900p/internal/tprt"
)

// ErrUnexpectedState indicates the printer was not ready to accept a job.
var ErrUnexpectedState = errors.New("printer not ready")

// defaultStepDelay paces the job's phase transitions. The device requires
// these gaps; shorter values have not been validated against its state
// machine and may wedge it. The status poll runs at the same cadence.
const defaultStepDelay = 500 * time.Millisecond

const connectTimeout = 5 * time.Second

// Printer drives print jobs against a device at a fixed address. Jobs are
// strictly sequential; each one owns a fresh UDP/TCP socket pair for its
// duration. Nothing is retried: the printer is stateful and replaying an
// ambiguous command could duplicate a cut.
type Printer struct {
	host      string
	port      int
	stepDelay time.Duration
}

// New creates a Printer for the given host, using port 9100 for both the
// UDP control channel and the TCP data stream.
func New(host string) *Printer {
	return &Printer{host: host, port: tprt.DefaultPort, stepDelay: defaultStepDelay}
}

// Status opens a short-lived control session and queries the printer state.
func (p *Printer) Status() (tprt.PrinterStatus, error) {
	session, err := tprt.Dial(p.host, p.port)
	if err != nil {
		return tprt.PrinterStatus{}, err
	}
	defer session.Close()
	return session.Status()
}

// Print encodes the framebuffer for the currently loaded tape and runs a
// full print job. The framebuffer's width is the tape length in pixels;
// callers wanting a safety margin add blank columns before calling.
func (p *Printer) Print(fb *raster.Framebuffer) error {
	session, err := tprt.Dial(p.host, p.port)
	if err != nil {
		return err
	}
	defer session.Close()

	status, err := session.Status()
	if err != nil {
		return err
	}
	if status.Kind != tprt.StatusSomeTape {
		return fmt.Errorf("%w: %v", ErrUnexpectedState, status)
	}
	data, err := label.Encode(fb, status.Tape)
	if err != nil {
		return err
	}
	slog.Info("tape detected", "tape", status.Tape, "stream_bytes", len(data))
	return p.runJob(session, status, data)
}

// PrintEncoded runs a full print job with a pre-encoded TCP byte stream,
// e.g. a captured dump. The stream is vetted by the analyzer first.
func (p *Printer) PrintEncoded(data []byte) error {
	if _, err := label.Analyze(data); err != nil {
		return fmt.Errorf("encoded stream rejected: %w", err)
	}

	session, err := tprt.Dial(p.host, p.port)
	if err != nil {
		return err
	}
	defer session.Close()

	status, err := session.Status()
	if err != nil {
		return err
	}
	if status.Kind != tprt.StatusSomeTape {
		return fmt.Errorf("%w: %v", ErrUnexpectedState, status)
	}
	return p.runJob(session, status, data)
}

// runJob executes the job state machine:
//
//	start-print → TCP connect → notify → TCP write → poll → stop-print
//
// with the mandated pacing gaps between phases. Once the TCP write has
// begun the job must run to a terminal status; before that, failing fast
// and closing both sockets is safe.
func (p *Printer) runJob(session *tprt.Session, status tprt.PrinterStatus, data []byte) error {
	slog.Info("starting print job", "printer", p.host, "status", status.String())
	if err := session.StartPrint(); err != nil {
		return err
	}
	time.Sleep(p.stepDelay)

	addr := net.JoinHostPort(p.host, fmt.Sprintf("%d", p.port))
	conn, err := net.DialTimeout("tcp", addr, connectTimeout)
	if err != nil {
		return fmt.Errorf("data connect: %w", err)
	}
	defer conn.Close()
	slog.Debug("data stream connected", "addr", addr)
	time.Sleep(p.stepDelay)

	if err := session.NotifyDataStream(); err != nil {
		return err
	}
	time.Sleep(p.stepDelay)

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("data send: %w", err)
	}
	slog.Info("print data sent, waiting for completion", "bytes", len(data))

	// No wall-clock guard here: the poll exits on the first non-printing
	// status, and callers needing a timeout impose it externally.
	for {
		time.Sleep(p.stepDelay)
		status, err := session.Status()
		if err != nil {
			return err
		}
		slog.Debug("status poll", "status", status.String())
		if status.Kind != tprt.StatusPrinting {
			break
		}
	}

	if err := session.StopPrint(); err != nil {
		return err
	}
	slog.Info("print job finished", "printer", p.host)
	return nil
}
