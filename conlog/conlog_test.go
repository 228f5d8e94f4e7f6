// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"fmt"
	"testing"
)

func TestPrintfListener(t *testing.T) {
	var printed, heard []string
	SetPrintf(func(f string, v ...interface{}) {
		printed = append(printed, fmt.Sprintf(f, v...))
	})
	defer SetPrintf(nil)
	AddListener(func(s string) { heard = append(heard, s) })

	Printf("hello %d", 1)
	SetDeveloper(false)
	DPrintf("hidden")
	SetDeveloper(true)
	DPrintf("shown %s", "dev")
	SetDeveloper(false)

	want := []string{"hello 1", "shown dev"}
	if len(printed) != len(want) {
		t.Fatalf("printed %v, want %v", printed, want)
	}
	for i := range want {
		if printed[i] != want[i] {
			t.Errorf("printed[%d] = %q, want %q", i, printed[i], want[i])
		}
		if heard[i] != want[i] {
			t.Errorf("heard[%d] = %q, want %q", i, heard[i], want[i])
		}
	}
}
