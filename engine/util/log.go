package util

import (
	"io"
	"log"
	"os"

	"golang.org/x/term"
)

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogSystem | LogOpenGL | LogShader | LogTextures | LogInput | LogRender

type LogLevel int

const (
	LogLevelError LogLevel = iota + 1
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

func (l LogLevel) tag() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	}
	return "?"
}

func (l LogLevel) color() string {
	switch l {
	case LogLevelError:
		return "\x1b[31m"
	case LogLevelWarning:
		return "\x1b[33m"
	case LogLevelDebug:
		return "\x1b[90m"
	}
	return "\x1b[36m"
}

type LogCategory int

const (
	LogSystem LogCategory = 1 << iota
	LogOpenGL
	LogShader
	LogTextures
	LogInput
	LogRender
)

func (c LogCategory) String() string {
	switch c {
	case LogSystem:
		return "system"
	case LogOpenGL:
		return "gl"
	case LogShader:
		return "shader"
	case LogTextures:
		return "texture"
	case LogInput:
		return "input"
	case LogRender:
		return "render"
	}
	return "log"
}

var (
	logger   = log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
	colorize = isTerminal(os.Stderr)
)

// SetLogOutput redirects all log output. Level tags are colored only if w is a terminal.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
	colorize = isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func logMessage(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	tag := lvl.tag()
	if colorize {
		tag = lvl.color() + tag + "\x1b[0m"
	}
	logger.Printf("%s [%s] %s", tag, cat, txt)
}

func LogSystemInfo(txt string) {
	logMessage(LogSystem, LogLevelInfo, txt)
}

func LogSystemError(txt string) {
	logMessage(LogSystem, LogLevelError, txt)
}

func LogSystemWarning(txt string) {
	logMessage(LogSystem, LogLevelWarning, txt)
}

func LogGlInfo(txt string) {
	logMessage(LogOpenGL, LogLevelInfo, txt)
}

func LogGlDebug(txt string) {
	logMessage(LogOpenGL, LogLevelDebug, txt)
}

func LogGlError(txt string) {
	logMessage(LogOpenGL, LogLevelError, txt)
}

func LogGlWarning(txt string) {
	logMessage(LogOpenGL, LogLevelWarning, txt)
}

func LogShaderError(txt string) {
	logMessage(LogShader, LogLevelError, txt)
}

func LogShaderWarning(txt string) {
	logMessage(LogShader, LogLevelWarning, txt)
}

func LogShaderDebug(txt string) {
	logMessage(LogShader, LogLevelDebug, txt)
}

func LogTextureDebug(txt string) {
	logMessage(LogTextures, LogLevelDebug, txt)
}

func LogTextureError(txt string) {
	logMessage(LogTextures, LogLevelError, txt)
}

func LogInputDebug(txt string) {
	logMessage(LogInput, LogLevelDebug, txt)
}

func LogRenderDebug(txt string) {
	logMessage(LogRender, LogLevelDebug, txt)
}

func LogRenderInfo(txt string) {
	logMessage(LogRender, LogLevelInfo, txt)
}
