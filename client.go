package linktest

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// DefaultNumRuns is the number of echo test runs the client performs when
// not told otherwise.
const DefaultNumRuns = 10

// Client drives a fixed sequence of echo exchanges against a peer running
// the echo server and verifies every response.
type Client struct {
	port *Port
	log  zerolog.Logger
}

// NewClient returns a Client exchanging payloads over port.
func NewClient(port *Port, log zerolog.Logger) *Client {
	return &Client{port: port, log: log}
}

// Run performs numRuns+1 echo exchanges, one for each run index 0 through
// numRuns inclusive. Each exchange writes "TX_run_<N>\n" and expects the
// peer to answer exactly "RX_run_<N>\n". The first response that differs,
// including an empty one after a read timeout, aborts the sequence with a
// *ResponseMismatchError carrying both the received and the expected
// bytes. Exchanges are strictly sequential; there are no retries.
func (c *Client) Run(ctx context.Context, numRuns int) error {
	for run := 0; run <= numRuns; run++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		payload := fmt.Sprintf("TX_run_%d", run)
		expected := []byte(fmt.Sprintf("RX_run_%d\n", run))

		if err := c.port.WriteLine([]byte(payload)); err != nil {
			return fmt.Errorf("writing payload %q: %w", payload, err)
		}

		response, err := c.port.ReadLine()
		if err != nil {
			return fmt.Errorf("reading response for %q: %w", payload, err)
		}

		if !bytes.Equal(response, expected) {
			c.port.Metrics().Mismatches.Inc()
			return &ResponseMismatchError{Response: response, Expected: expected}
		}

		c.log.Debug().Int("run", run).Str("payload", payload).Msg("echo exchange matched")
	}

	return nil
}
