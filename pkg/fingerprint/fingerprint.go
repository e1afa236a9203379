package fingerprint

import (
	"strings"

	"github.com/labstack/echo/v4"

	"backoffice/pkg/security"
)

// DeviceIDHeader carries the client-chosen device identifier, when present.
const DeviceIDHeader = "X-Device-Id"

// DeviceDetector produces a stable hash of client and device signals for the
// current request. The hash is embedded into issued tokens and compared at
// validation time to detect replay from a different client.
type DeviceDetector interface {
	RequestDeviceHash(c echo.Context) string
	DeviceHash(userAgent, deviceID string) string
}

type deviceDetector struct{}

func NewDeviceDetector() DeviceDetector {
	return &deviceDetector{}
}

func (d *deviceDetector) RequestDeviceHash(c echo.Context) string {
	req := c.Request()
	return d.DeviceHash(req.UserAgent(), req.Header.Get(DeviceIDHeader))
}

// DeviceHash derives the fingerprint from the raw signals. Signals are
// normalized so that header-casing differences do not rotate the hash.
func (d *deviceDetector) DeviceHash(userAgent, deviceID string) string {
	details := strings.Join([]string{
		strings.TrimSpace(userAgent),
		strings.TrimSpace(strings.ToLower(deviceID)),
	}, "|")
	return security.HashInput(details)
}
