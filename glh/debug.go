// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"log"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// EnableDebugOutput routes driver messages to the log. High severity
// messages panic when fatal is set.
func EnableDebugOutput(fatal bool) {
	gl.Enable(gl.DEBUG_OUTPUT)
	cb := func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		if fatal && severity == gl.DEBUG_SEVERITY_HIGH {
			log.Panicf("[GL_DEBUG] source %d gltype %d id %d severity %d length %d: %s", source, gltype, id, severity, length, message)
		}
		if severity == gl.DEBUG_SEVERITY_NOTIFICATION {
			return
		}
		log.Printf("[GL_DEBUG] source %d gltype %d id %d severity %d length %d: %s", source, gltype, id, severity, length, message)
	}
	gl.DebugMessageCallback(cb, unsafe.Pointer(nil))
}
