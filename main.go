// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	cmdl "goengine/commandline"
	"goengine/engine"

	"github.com/gopxl/mainthread/v2"
)

func settings() engine.Settings {
	s := engine.DefaultSettings()
	s.Title = "goengine viewer"
	if w := cmdl.Width(); w > 0 {
		s.Width = w
	}
	if h := cmdl.Height(); h > 0 {
		s.Height = h
	}
	s.Fullscreen = cmdl.Fullscreen()
	s.Fsaa = cmdl.Fsaa()
	s.Sound = cmdl.Sound()
	s.Debug = cmdl.Developer()
	s.BaseDir = cmdl.BaseDirectory()
	s.Game = cmdl.Game()
	s.Config = cmdl.Config()
	s.Commands = cmdl.Commands()
	return s
}

func run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v := newViewer(options{
		model:   cmdl.Model(),
		shader:  cmdl.Shader(),
		texture: cmdl.Texture(),
		sound:   cmdl.SoundEffect(),
		mouse:   cmdl.Mouse(),
	})
	e, err := engine.New(settings(), v)
	if err != nil {
		log.Fatalf("Couldn't start: %v", err)
	}
	v.attach(e)
	if err := e.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	flag.Parse()
	mainthread.Run(run)
}
