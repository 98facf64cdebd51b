// Command paintrender paints a JSON scene file into a PNG.
//
// With -watch it stays running and repaints whenever the scene changes.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/custompaint"
	"github.com/gogpu/custompaint/internal/config"
)

func main() {
	var (
		conf   = flag.String("conf", "", "config file (optional)")
		output = flag.String("output", "scene.png", "output file")
		watch  = flag.Bool("watch", false, "repaint when the scene file changes")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: paintrender [flags] scene.json")
	}
	if err := run(*conf, flag.Arg(0), *output, *watch); err != nil {
		log.Fatal(err)
	}
}

func run(conf, scenePath, output string, watch bool) error {
	c := config.Default()
	if conf != "" {
		var err error
		if c, err = config.LoadFile(conf); err != nil {
			return err
		}
	}
	custompaint.SetLogger(c.Logger(os.Stderr))

	e, err := custompaint.New(c.EngineOptions()...)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := renderFile(ctx, e, scenePath, output); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	err = watchScene(ctx, scenePath, func() {
		if err := renderFile(ctx, e, scenePath, output); err != nil {
			log.Println("error:", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func renderFile(ctx context.Context, e *custompaint.Engine, scenePath, output string) error {
	s, err := loadScene(scenePath)
	if err != nil {
		return err
	}
	img, err := render(ctx, e, s)
	if err != nil {
		return err
	}
	if err := writePNG(output, img); err != nil {
		return err
	}
	log.Printf("Scene saved to %s (%dx%d)\n", output, img.Rect.Dx(), img.Rect.Dy())
	return nil
}

// watchScene calls f after writes to path until ctx is done. Editors that
// replace the file are handled by watching its directory.
func watchScene(ctx context.Context, path string, f func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	log.Println("watching", path)

	target := filepath.Clean(path)
	wait := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || wait.After(time.Now()) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				f()
				wait = time.Now().Add(100 * time.Millisecond)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("error:", err)
		}
	}
}
