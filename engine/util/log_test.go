package util

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	oldLevel, oldCats := GLOBAL_LOG_LEVEL, GLOBAL_LOG_CATEGORIES
	defer func() {
		SetLogOutput(os.Stderr)
		GLOBAL_LOG_LEVEL, GLOBAL_LOG_CATEGORIES = oldLevel, oldCats
	}()

	GLOBAL_LOG_LEVEL = LogLevelInfo
	GLOBAL_LOG_CATEGORIES = LogShader | LogTextures

	LogShaderError("link failed")
	LogShaderDebug("hidden by level")
	LogRenderInfo("hidden by category")
	LogTextureError("missing file")

	out := buf.String()
	assert.Contains(t, out, "ERROR [shader] link failed")
	assert.Contains(t, out, "ERROR [texture] missing file")
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "\x1b[", "buffers are not terminals")

	buf.Reset()
	GLOBAL_LOG_LEVEL = LogLevelDebug
	LogShaderDebug("now visible")
	assert.Contains(t, buf.String(), "DEBUG [shader] now visible")
}
