//go:build darwin

package platform

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ioregIdleProvider reads HIDIdleTime, reported in nanoseconds, from the IOHIDSystem class.
type ioregIdleProvider struct{}

func newIdleProvider() IdleProvider {
	return ioregIdleProvider{}
}

func (ioregIdleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command("ioreg", "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("%w: ioreg: %v", ErrIdleUnsupported, err)
	}
	return parseHIDIdleTime(output)
}

func parseHIDIdleTime(output []byte) (time.Duration, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, `"HIDIdleTime"`) {
			continue
		}
		_, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		nanos, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
		}
		return time.Duration(nanos), nil
	}
	return 0, fmt.Errorf("%w: HIDIdleTime not reported", ErrIdleUnsupported)
}
