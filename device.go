package linktest

import "strings"

// isPortAvailable reports whether device shows up in the OS port list.
func isPortAvailable(device string) (bool, error) {
	ports, err := getPortsList()
	if err != nil {
		return false, err
	}
	for _, port := range ports {
		if port == device {
			return true, nil
		}
	}
	return false, nil
}

// isValidPortPattern rejects names that cannot be serial devices before
// they ever reach the driver.
// Unix: /dev/tty* or /dev/cu* (macOS). Windows: COM1-COM999.
func isValidPortPattern(device string) bool {
	if strings.Contains(device, "..") {
		return false
	}
	if strings.HasPrefix(device, "COM") && len(device) >= 4 && len(device) <= 6 {
		return true
	}
	return strings.HasPrefix(device, "/dev/tty") || strings.HasPrefix(device, "/dev/cu")
}
