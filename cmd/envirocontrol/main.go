// Command envirocontrol reads environmental telemetry from a serial
// channel, drives the fan and light actuators, persists samples to
// SQLite, and resolves voice commands into control changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/envirocontrol/internal/config"
	"github.com/sweeney/envirocontrol/internal/control"
	"github.com/sweeney/envirocontrol/internal/forecast"
	"github.com/sweeney/envirocontrol/internal/intent"
	"github.com/sweeney/envirocontrol/internal/link"
	"github.com/sweeney/envirocontrol/internal/mqtt"
	"github.com/sweeney/envirocontrol/internal/status"
	"github.com/sweeney/envirocontrol/internal/store"
	"github.com/sweeney/envirocontrol/internal/telemetry"
	"github.com/sweeney/envirocontrol/internal/web"
)

func main() {
	cfg := config.Load()

	device := flag.String("device", cfg.Device, "Serial device for the sensor/actuator channel")
	baud := flag.Int("baud", cfg.Baud, "Serial baud rate")
	broker := flag.String("broker", cfg.Broker, `MQTT broker address ("off" disables MQTT)`)
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	queueDepth := flag.Int("queue-depth", cfg.QueueDepth, "Persistence queue depth in samples")
	httpAddr := flag.String("http", cfg.HTTPAddr, "HTTP status address (empty to disable)")
	threshold := flag.Float64("threshold", cfg.Threshold, "Initial temperature setpoint in Celsius")
	band := flag.Float64("band", cfg.Band, "Hysteresis half-band in Celsius")
	wakeWord := flag.String("wake-word", cfg.WakeWord, "Voice trigger phrase")
	heartbeat := flag.Duration("heartbeat", cfg.Heartbeat, "Heartbeat interval (0 to disable)")
	forecastOn := flag.Bool("forecast", cfg.Forecast, "Enable trend forecasting inside the dead band")
	voiceStdin := flag.Bool("voice-stdin", false, "Read voice text lines from stdin instead of MQTT")

	flag.Parse()

	cfg.Device = *device
	cfg.Baud = *baud
	cfg.Broker = *broker
	cfg.DBPath = *dbPath
	cfg.QueueDepth = *queueDepth
	cfg.HTTPAddr = *httpAddr
	cfg.Threshold = *threshold
	cfg.Band = *band
	cfg.WakeWord = *wakeWord
	cfg.Heartbeat = *heartbeat
	cfg.Forecast = *forecastOn

	if err := run(cfg, *voiceStdin); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config, voiceStdin bool) error {
	// Open the serial channel
	port, err := link.Open(cfg.Device, cfg.Baud)
	if err != nil {
		return fmt.Errorf("open serial device: %w", err)
	}
	defer port.Close()

	// Open the persistence sink
	sink, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sink.Close()

	writer := store.NewWriter(sink, cfg.QueueDepth)
	defer writer.Close()

	// Connect MQTT unless disabled
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	var realPub *mqtt.RealPublisher
	if cfg.Broker != "" && cfg.Broker != "off" {
		realPub, err = mqtt.NewRealPublisher(cfg.Broker)
		if err != nil {
			return fmt.Errorf("connect mqtt: %w", err)
		}
		defer realPub.Close()
		publisher = realPub
		mqttStatus = realPub
	}

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		Device:      cfg.Device,
		Baud:        cfg.Baud,
		Broker:      brokerForDisplay(cfg.Broker),
		DBPath:      cfg.DBPath,
		HTTPAddr:    cfg.HTTPAddr,
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		ForecastOn:  cfg.Forecast,
	})
	tracker.SetConnectionCallback(func(name string, connected bool) {
		log.Printf("%s: connected=%v", name, connected)
	})
	tracker.SetSerialConnected(true)
	if mqttStatus != nil {
		tracker.SetMQTTConnected(mqttStatus.IsConnected())
	}

	// Publish startup event with full status snapshot
	if publisher != nil {
		snap := tracker.Snapshot()
		startupEvent := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startupEvent); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	// Start HTTP status server
	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTPAddr)
	}

	// Control plumbing
	state := control.NewState(cfg.Threshold, cfg.Band)
	var predictor *forecast.Predictor
	var advisor control.Advisor
	if cfg.Forecast {
		predictor = forecast.New(0, 0)
		advisor = predictor
	}
	controller := control.NewController(state, advisor)
	gateway := link.NewGateway(port)

	// Voice command resolver
	shutdownCh := make(chan string, 1)
	requestShutdown := func(reason string) {
		select {
		case shutdownCh <- reason:
		default:
		}
	}
	announce := func(text string) {
		log.Printf("voice: %s", text)
		// Every dispatch announces, so this also keeps the status page
		// current after voice-driven control changes.
		tracker.SetControl(state.Snapshot())
	}
	resolver := intent.NewResolver(cfg.WakeWord, state, gateway, announce, requestShutdown)

	var recognizer intent.Recognizer
	if voiceStdin || realPub == nil {
		log.Printf("voice input: stdin")
		recognizer = intent.NewReaderRecognizer(os.Stdin)
	} else {
		mr, err := mqtt.NewRecognizer(realPub)
		if err != nil {
			return fmt.Errorf("subscribe voice topic: %w", err)
		}
		log.Printf("voice input: mqtt %s", mqtt.TopicVoiceText)
		recognizer = mr
	}

	stop := make(chan struct{})
	defer close(stop)
	go resolver.Run(recognizer, stop)

	// Telemetry/actuation mirror, decoupled from the control loop so a
	// slow broker never delays a decision.
	var mirror *mqtt.Mirror
	if publisher != nil {
		mirror = mqtt.NewMirror(publisher, 0)
		defer mirror.Close()
	}

	// Telemetry line stream. Read faults are logged and retried inside
	// Stream; the daemon stays up on voice and status duty even if the
	// link never comes back.
	lines := make(chan string, 16)
	reader := link.NewLineReader(port)
	go reader.Stream(lines, func(err error) {
		log.Printf("serial read error: %v", err)
		tracker.SetSerialConnected(false)
	})

	log.Printf("started: device=%s baud=%d broker=%s db=%s heartbeat=%v forecast=%v",
		cfg.Device, cfg.Baud, cfg.Broker, cfg.DBPath, cfg.Heartbeat, cfg.Forecast)

	var hb <-chan time.Time
	if cfg.Heartbeat > 0 {
		ticker := time.NewTicker(cfg.Heartbeat)
		defer ticker.Stop()
		hb = ticker.C
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(lines, controller, state, gateway, writer, predictor,
		mirror, publisher, mqttStatus, tracker, time.Now, hb, sigCh, shutdownCh)
}

// runLoop is the daemon's main loop: telemetry lines in, actuation
// decisions out, with heartbeat and shutdown handling. All channels and
// the clock are injected so tests can drive it directly. The lines
// channel closing means telemetry is gone for good; the loop keeps
// serving voice and heartbeat duty regardless.
func runLoop(lines <-chan string, controller *control.Controller, state *control.State,
	gateway *link.Gateway, writer *store.Writer, predictor *forecast.Predictor,
	mirror *mqtt.Mirror, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus,
	tracker *status.Tracker, now func() time.Time, hb <-chan time.Time,
	sig <-chan os.Signal, shutdownCh <-chan string) error {

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			publishShutdown(publisher, mqttStatus, tracker, signalName)
			return nil

		case reason := <-shutdownCh:
			log.Printf("shutdown requested: %s", reason)
			publishShutdown(publisher, mqttStatus, tracker, reason)
			return nil

		case <-hb:
			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}
			snap := tracker.Snapshot()
			log.Printf("heartbeat: uptime=%v fan_on=%d fan_off=%d",
				snap.Uptime().Truncate(time.Second), snap.Counts.FanOn, snap.Counts.FanOff)
			if publisher != nil {
				hbEvent := mqtt.SystemEvent{
					Timestamp:  snap.Now,
					Event:      "HEARTBEAT",
					RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

		case line, ok := <-lines:
			if !ok {
				log.Printf("serial channel closed, continuing without telemetry")
				tracker.SetSerialConnected(false)
				lines = nil
				continue
			}
			tracker.SetSerialConnected(true)
			t := now()

			sample, err := telemetry.ParseLine(line, t)
			if err != nil {
				log.Printf("telemetry: %v", err)
				tracker.RecordParseFailure(line, t)
				continue
			}

			// Persistence is fire-and-forget: the control decision below
			// never waits on the database.
			writer.Enqueue(sample)

			if predictor != nil {
				predictor.Observe(sample)
			}

			// Decide and actuate first; the broker mirror below is
			// best-effort and must never delay the wire byte.
			cmd := controller.Evaluate(sample)
			if cmd != nil {
				if err := gateway.Send(*cmd); err != nil {
					log.Printf("actuation error: %v", err)
					cmd = nil
				} else {
					log.Printf("actuation: %s (temp=%.1f setpoint=%.1f)",
						*cmd, sample.Temperature, state.Snapshot().Threshold)
				}
			}

			if mirror != nil {
				mirror.Sample(sample)
				if cmd != nil {
					mirror.Actuation(*cmd, t)
				}
			}

			tracker.Update(state.Snapshot(), sample, gateway.Counts())
			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}
		}
	}
}

func publishShutdown(publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, reason string) {
	if publisher == nil {
		return
	}
	if mqttStatus != nil {
		tracker.SetMQTTConnected(mqttStatus.IsConnected())
	}
	snap := tracker.Snapshot()
	event := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "SHUTDOWN",
		Reason:     reason,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", reason),
	}
	if err := publisher.PublishSystem(event); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	} else {
		log.Printf("published shutdown event")
	}
}

func brokerForDisplay(broker string) string {
	if broker == "off" {
		return ""
	}
	return broker
}
