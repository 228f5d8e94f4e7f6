// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	fullscreen bool
	window     bool
	noSound    bool
	noMouse    bool
	developer  bool

	fsaa   = optionalInt{false, 4}
	width  int
	height int

	basedir string
	game    string
	config  string
	model   string
	shader  string
	texture string
	sound   string
)

// optionalInt is a flag that can be given as "-flag" or "-flag=N".
type optionalInt struct {
	set bool
	num int
}

func (b *optionalInt) IsBoolFlag() bool {
	// "-flag 10" can not be supported together with "-flag"
	return true
}

func (b *optionalInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = true
	b.num = int(v)
	return nil
}

func (b *optionalInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

func init() {
	flag.BoolVar(&fullscreen, "f", false, "")
	flag.BoolVar(&fullscreen, "fullscreen", false, "Start in fullscreen mode")
	flag.BoolVar(&window, "w", false, "")
	flag.BoolVar(&window, "window", false, "Start in windowed mode")
	flag.BoolVar(&noSound, "nosound", false, "Disable sound")
	flag.BoolVar(&noMouse, "nomouse", false, "Disable mouse input")
	flag.BoolVar(&developer, "developer", false, "Enable developer output")
	flag.Var(&fsaa, "fsaa", "Enable multisampling, optionally with the sample count")
	flag.IntVar(&width, "width", 0, "Window width")
	flag.IntVar(&height, "height", 0, "Window height")
	flag.StringVar(&basedir, "basedir", ".", "Base directory of the content")
	flag.StringVar(&game, "game", "", "Content sub directory used on top of base")
	flag.StringVar(&config, "config", "config.cfg", "Config script executed at start")
	flag.StringVar(&model, "model", "", "Model shown by the viewer")
	flag.StringVar(&shader, "shader", "", "Shader program (without .vs/.fs) used for the model")
	flag.StringVar(&texture, "texture", "", "Texture bound to unit 0 for -shader")
	flag.StringVar(&sound, "sound", "", "Sound played when spinning is toggled")
}

// Fullscreen reports if fullscreen was requested. -window wins over it.
func Fullscreen() bool {
	return fullscreen && !window
}

func Window() bool {
	return window
}

func Sound() bool {
	return !noSound
}

func Mouse() bool {
	return !noMouse
}

func Developer() bool {
	return developer
}

// Fsaa returns the number of multisample samples, 0 if disabled.
func Fsaa() int {
	if !fsaa.set {
		return 0
	}
	return fsaa.num
}

func Width() int {
	return width
}

func Height() int {
	return height
}

func BaseDirectory() string {
	return basedir
}

func Game() string {
	return game
}

func Config() string {
	return config
}

func Model() string {
	return model
}

func Shader() string {
	return shader
}

func Texture() string {
	return texture
}

func SoundEffect() string {
	return sound
}

// Commands turns the arguments after the flags into script text. Commands
// start with a '+' and run until the next '+' or '-' argument:
//
//	goengine -width 1024 +bind x quit +dev_stats 1
func Commands() string {
	return scripts(flag.Args())
}

func scripts(args []string) string {
	var cmds []string
	plus := false
	for _, a := range args {
		if a == "" {
			continue
		}
		switch a[0] {
		case '+':
			cmds = append(cmds, a[1:])
			plus = true
		case '-':
			plus = false
		default:
			if plus {
				cmds[len(cmds)-1] += " " + a
			}
		}
	}
	return strings.Join(cmds, "\n")
}
