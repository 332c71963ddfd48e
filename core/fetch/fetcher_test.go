package fetch

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	f := New("", 0, "", zerolog.Nop())

	assert.Equal(t, DefaultMarker, f.marker)
	assert.Equal(t, DefaultTimeout, f.timeout)
	assert.Empty(t, f.chromePath)
}

func TestNew_Overrides(t *testing.T) {
	f := New("conteudo", 30*time.Second, "/usr/bin/chromium", zerolog.Nop())

	assert.Equal(t, "conteudo", f.marker)
	assert.Equal(t, 30*time.Second, f.timeout)
	assert.Equal(t, "/usr/bin/chromium", f.chromePath)
}

func TestTimeoutError_Message(t *testing.T) {
	err := &TimeoutError{Marker: "tabResult", Timeout: 5 * time.Second}

	assert.Contains(t, err.Error(), "#tabResult")
	assert.Contains(t, err.Error(), "5s")
}
