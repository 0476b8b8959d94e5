package linktest

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Server echoes every received line back after replacing each occurrence
// of "TX" with "RX". It has no terminal state of its own: it serves until
// the context is canceled or the port fails.
type Server struct {
	port *Port
	log  zerolog.Logger
}

// NewServer returns a Server echoing over port.
func NewServer(port *Port, log zerolog.Logger) *Server {
	return &Server{port: port, log: log}
}

// Serve reads one line at a time and writes the transformed line back.
// A read that timed out is processed as-is, like the original bytes.
// Payloads that are not valid text are logged and skipped without a
// response; every other error is fatal and returned. Cancellation is
// honored between exchanges, never mid-transfer; a blocked read unblocks
// within the port's configured timeout.
func (s *Server) Serve(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		payload, err := s.port.ReadLine()
		if err != nil {
			return err
		}

		if !utf8.Valid(payload) {
			// Best-effort diagnostic: report the payload and keep serving.
			s.port.Metrics().DecodeFailures.Inc()
			s.log.Warn().Hex("payload", payload).Msg("failed to decode payload")
			continue
		}

		response := strings.ReplaceAll(string(payload), "TX", "RX")
		if err := s.port.Write([]byte(response)); err != nil {
			return err
		}
	}
}
