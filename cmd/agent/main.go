// Command agent wires together the decoder dictionary extraction core: a
// manifest snapshot, a CAN interface registry, the extractor, the change
// notifier, and a read-only diagnostics server — the same "construct
// dependencies, then block serving" shape as the teacher's cmd/api/main.go.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/caninterface"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/diagnostics"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/extractor"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/notifier"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/notifier/esnotify"
	"github.com/thomas-roos/aws-iot-fleetwise-edge/internal/scheme"
)

func main() {
	log := setupLogger()
	log.Info("starting decoder dictionary extraction core")

	addr := flag.String("addr", envOr("DIAGNOSTICS_ADDR", ":8090"), "diagnostics server bind address")
	esAddr := flag.String("elasticsearch-addr", envOr("ELASTICSEARCH_URL", ""), "elasticsearch URL for the dictionary-change sink (disabled if empty)")
	esIndex := flag.String("elasticsearch-index", envOr("ELASTICSEARCH_INDEX", "decoder-dictionary-changes"), "elasticsearch index for dictionary-change documents")
	flag.Parse()

	translator := caninterface.NewRegistry()
	m := demoManifest(translator)

	reg := notifier.NewRegistry()
	snap := diagnostics.NewSnapshot()
	reg.Register(snap)

	if *esAddr != "" {
		sink, err := esnotify.NewSink(*esAddr, *esIndex)
		if err != nil {
			log.Warnf("elasticsearch sink disabled: %v", err)
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := sink.Initialize(ctx); err != nil {
				log.Warnf("elasticsearch sink disabled: %v", err)
			} else {
				reg.Register(sink)
			}
			cancel()
		}
	}

	ex := extractor.New(m, translator, logrusAdapter{log})

	// Demo scheme set — a real deployment hands the extractor a fresh
	// enabled-scheme snapshot from the scheme manager on every change
	// (spec §5); loading/storing schemes is out of scope here (spec §1).
	schemes := demoSchemes()
	dicts := ex.Extract(schemes)
	reg.NotifyAll(dicts)

	server := diagnostics.NewServer(log, snap)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		if err := server.Run(ctx, *addr); err != nil {
			log.Fatalf("diagnostics server exited: %v", err)
		}
	}()

	log.Infof("diagnostics server listening on %s", *addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()
	<-serverDone
}

// logrusAdapter satisfies extractor.Logger so the core algorithm's
// warn/error diagnostics (spec §7) flow through the same structured logger
// as the rest of the process, instead of the package's plain stdlib
// fallback.
type logrusAdapter struct {
	log *logrus.Logger
}

func (a logrusAdapter) Warnf(format string, args ...interface{}) { a.log.Warnf(format, args...) }
func (a logrusAdapter) Errorf(format string, args ...interface{}) { a.log.Errorf(format, args...) }

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	return log
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// demoSchemes builds a tiny scheme set so the agent has something to
// extract on startup without a scheme manager wired in (out of scope,
// spec §1).
func demoSchemes() map[uint64]*scheme.Scheme {
	s := scheme.NewScheme(1)
	s.CollectSignals = []scheme.SignalInfo{{SignalID: 7}}
	return map[uint64]*scheme.Scheme{1: s}
}
