// Command paintd serves a custompaint engine to hosts over a websocket.
//
// Routes:
//
//	GET  /ws               host message stream; replies are broadcast
//	POST /messages         deliver one host message
//	GET  /views/{id}.png   current pixels of a view
//	GET  /views/{id}/attributes  attributes for the view's canvas element
//	GET  /drawables/stats  drawable cache statistics
//	GET  /metrics          Prometheus metrics
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/custompaint"
	"github.com/gogpu/custompaint/internal/config"
)

var confFlag = flag.String("conf", "", "config file (optional)")

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	c := config.Default()
	if *confFlag != "" {
		var err error
		if c, err = config.LoadFile(*confFlag); err != nil {
			return fmt.Errorf("failed to decode config file: %w", err)
		}
	}
	custompaint.SetLogger(c.Logger(os.Stderr))

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())

	s, err := newServer(c, reg)
	if err != nil {
		return err
	}
	defer s.Close()

	log.Println("listening on", c.Listen)
	return http.ListenAndServe(c.Listen, s.router(reg))
}
