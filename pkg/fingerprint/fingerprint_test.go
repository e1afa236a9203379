package fingerprint

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestDeviceHash(t *testing.T) {
	d := NewDeviceDetector()

	t.Run("stable for identical signals", func(t *testing.T) {
		assert.Equal(t, d.DeviceHash("Mozilla/5.0", "tablet-7"), d.DeviceHash("Mozilla/5.0", "tablet-7"))
	})

	t.Run("case-insensitive device id", func(t *testing.T) {
		assert.Equal(t, d.DeviceHash("Mozilla/5.0", "Tablet-7"), d.DeviceHash("Mozilla/5.0", "tablet-7"))
	})

	t.Run("differs across devices", func(t *testing.T) {
		assert.NotEqual(t, d.DeviceHash("Mozilla/5.0", "tablet-7"), d.DeviceHash("Mozilla/5.0", "phone-1"))
		assert.NotEqual(t, d.DeviceHash("Mozilla/5.0", "tablet-7"), d.DeviceHash("curl/8.0", "tablet-7"))
	})
}

func TestRequestDeviceHash(t *testing.T) {
	d := NewDeviceDetector()
	e := echo.New()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set(DeviceIDHeader, "tablet-7")
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, d.DeviceHash("Mozilla/5.0", "tablet-7"), d.RequestDeviceHash(c))
}
