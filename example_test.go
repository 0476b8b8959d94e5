package linktest_test

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	linktest "github.com/nbuchwitz/test-serial"
)

func Example() {
	cfg := linktest.DefaultConfig("/dev/ttyUSB0")

	port, err := linktest.Open(cfg, zerolog.Nop())
	if err != nil {
		fmt.Println("open error:", err)
		return
	}
	defer port.Close()

	client := linktest.NewClient(port, zerolog.Nop())
	if err := client.Run(context.Background(), 2); err != nil {
		fmt.Println("echo test failed:", err)
		return
	}

	fmt.Println("TEST OK")
}
