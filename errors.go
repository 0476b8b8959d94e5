package linktest

import (
	"errors"
	"fmt"
)

var (
	ErrPortNotOpen   = errors.New("linktest: port not open")
	ErrInvalidDevice = errors.New("linktest: device is not an available serial port")
)

// ResponseMismatchError reports an echo exchange whose response did not
// match the expected payload byte-for-byte. Both byte sequences are kept
// so the caller can show exactly what came back.
type ResponseMismatchError struct {
	Response []byte
	Expected []byte
}

func (e *ResponseMismatchError) Error() string {
	return fmt.Sprintf("response does not match expected response: %q != %q", e.Response, e.Expected)
}
