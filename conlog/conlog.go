// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the engine wide console log. Everything printed here
// ends up in the process log; the developer variant is only printed when
// developer output is enabled.
package conlog

import (
	"fmt"
	"log"
	"sync"
)

var (
	mu        sync.Mutex
	p         = log.Printf
	developer bool
	listeners []func(string)
)

// SetPrintf replaces the underlying print function.
func SetPrintf(f func(string, ...interface{})) {
	mu.Lock()
	defer mu.Unlock()
	if f == nil {
		f = log.Printf
	}
	p = f
}

// SetDeveloper toggles DPrintf output.
func SetDeveloper(b bool) {
	mu.Lock()
	developer = b
	mu.Unlock()
}

// AddListener registers f to receive every formatted line.
func AddListener(f func(string)) {
	mu.Lock()
	listeners = append(listeners, f)
	mu.Unlock()
}

func Printf(format string, v ...interface{}) {
	mu.Lock()
	pf, ls := p, listeners
	mu.Unlock()
	pf(format, v...)
	if len(ls) == 0 {
		return
	}
	s := fmt.Sprintf(format, v...)
	for _, l := range ls {
		l(s)
	}
}

// DPrintf only prints if developer output is enabled.
func DPrintf(format string, v ...interface{}) {
	mu.Lock()
	d := developer
	mu.Unlock()
	if !d {
		return
	}
	Printf(format, v...)
}
