//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"chunklife/internal/app"
	"chunklife/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := engine.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	scale := flag.Int("scale", 6, "pixels per cell")
	load := flag.String("load", "", "pattern file to load (RLE or macrocell)")
	flag.Parse()

	ctrl := engine.NewController(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.Run(ctx)

	game := app.New(ctrl, cfg.Cols, cfg.Rows, *scale)
	if *load != "" {
		text, err := os.ReadFile(*load)
		if err != nil {
			log.Fatalf("load %s: %v", *load, err)
		}
		ctrl.Requests() <- engine.LoadPattern{Text: string(text)}
	}

	ebiten.SetWindowTitle("chunklife")
	ebiten.SetWindowSize(cfg.Cols**scale+160, cfg.Rows**scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
