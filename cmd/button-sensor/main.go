// Command button-sensor polls a debounced GPIO button and a periodic timer
// and publishes button edges and housekeeping events to MQTT.
package main

import (
	"context"
	"flag"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/zoobzio/clockz"

	"github.com/sweeney/button-sensor/internal/clock"
	"github.com/sweeney/button-sensor/internal/gpio"
	"github.com/sweeney/button-sensor/internal/input"
	"github.com/sweeney/button-sensor/internal/logic"
	"github.com/sweeney/button-sensor/internal/mqtt"
	"github.com/sweeney/button-sensor/internal/status"
	"github.com/sweeney/button-sensor/internal/ticker"
	"github.com/sweeney/button-sensor/internal/web"
)

type config struct {
	chip         string
	pin          int
	activeLow    bool
	bias         string
	debounce     time.Duration
	poll         time.Duration
	tick         time.Duration
	heartbeat    time.Duration
	publishTicks bool
	broker       string
	httpAddr     string
	wsBroker     string
	printState   bool
	clockStart   uint
}

func main() {
	var cfg config
	flag.StringVar(&cfg.chip, "chip", gpio.DefaultChip, "GPIO chip name")
	flag.IntVar(&cfg.pin, "pin", gpio.DefaultPin, "BCM pin number for the button")
	flag.BoolVar(&cfg.activeLow, "active-low", true, "Button pulls the pin low when pressed")
	flag.StringVar(&cfg.bias, "bias", "up", "Line bias: up, down or none")
	flag.DurationVar(&cfg.debounce, "debounce", time.Duration(input.DefaultDebounce)*time.Millisecond, "Debounce window")
	flag.DurationVar(&cfg.poll, "poll", 5*time.Millisecond, "Main loop polling interval")
	flag.DurationVar(&cfg.tick, "tick", time.Second, "Periodic timer period")
	flag.DurationVar(&cfg.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	flag.BoolVar(&cfg.publishTicks, "publish-ticks", false, "Publish a TICK event for every timer tick")
	flag.StringVar(&cfg.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	flag.StringVar(&cfg.httpAddr, "http", ":80", "HTTP status address (empty to disable)")
	flag.StringVar(&cfg.wsBroker, "ws-broker", "=broker", `MQTT websocket URL for live UI ("=broker" derives from --broker, "off" disables)`)
	flag.BoolVar(&cfg.printState, "print-state", false, "Print current pin level and exit")
	flag.UintVar(&cfg.clockStart, "clock-start", 0, "Initial millisecond counter value")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")

	flag.Parse()

	if err := setupLogging(*logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	return nil
}

func activeLevel(activeLow bool) input.Level {
	if activeLow {
		return input.Low
	}
	return input.High
}

// validate rejects flag values the loop cannot run with.
func validate(cfg config) error {
	if cfg.poll <= 0 {
		return fmt.Errorf("poll interval %v: %w", cfg.poll, ticker.ErrInvalidPeriod)
	}
	if cfg.tick <= 0 {
		return fmt.Errorf("tick period %v: %w", cfg.tick, ticker.ErrInvalidPeriod)
	}
	if cfg.debounce < 0 {
		return fmt.Errorf("debounce %v: must not be negative", cfg.debounce)
	}
	if uint64(cfg.clockStart) > math.MaxUint32 {
		return fmt.Errorf("clock start %d: %w", cfg.clockStart, errClockStartRange)
	}
	return nil
}

var errClockStartRange = errors.New("exceeds 32-bit millisecond counter")

// resolveWSBroker converts the --ws-broker flag value into a concrete URL.
// "=broker" derives ws://host:9001 from the TCP broker address; empty disables.
func resolveWSBroker(ws, broker string) string {
	if ws == "off" {
		return ""
	}
	if ws != "=broker" {
		return ws
	}
	u, err := url.Parse(broker)
	if err != nil || u.Hostname() == "" {
		log.Warn().Err(err).Str("broker", broker).Msg("cannot derive websocket broker, live UI disabled")
		return ""
	}
	u.Scheme = "ws"
	u.Host = u.Hostname() + ":9001"
	return u.String()
}

func run(cfg config) error {
	if err := validate(cfg); err != nil {
		return err
	}

	bias, err := gpio.ParseBias(cfg.bias)
	if err != nil {
		return err
	}

	gpioReader, err := gpio.NewRealReader(cfg.chip, bias, cfg.pin)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer gpioReader.Close()

	level := activeLevel(cfg.activeLow)

	if cfg.printState {
		high, err := gpioReader.Level(cfg.pin)
		if err != nil {
			return fmt.Errorf("read gpio: %w", err)
		}
		pressed := input.Level(high) == level
		fmt.Printf("pin %d: %s, button %s\n", cfg.pin, input.Level(high), logic.StateFor(pressed))
		return nil
	}

	bootID := uuid.NewString()

	publisher, err := mqtt.NewRealPublisher(cfg.broker, mqtt.Source{Pin: cfg.pin, BootID: bootID})
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	// Tracker exists before STARTUP so the snapshot is available
	tracker := status.NewTracker(time.Now(), bootID, status.Config{
		Pin:         cfg.pin,
		ActiveLow:   cfg.activeLow,
		PollMs:      cfg.poll.Milliseconds(),
		DebounceMs:  cfg.debounce.Milliseconds(),
		TickMs:      cfg.tick.Milliseconds(),
		HeartbeatMs: cfg.heartbeat.Milliseconds(),
		Broker:      cfg.broker,
		HTTPAddr:    cfg.httpAddr,
		WSBroker:    resolveWSBroker(cfg.wsBroker, cfg.broker),
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Error().Err(err).Msg("failed to publish startup event")
	} else {
		log.Info().Str("boot_id", bootID).Msg("published startup event")
	}

	if cfg.httpAddr != "" {
		srv := web.New(cfg.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("http server error")
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Info().Str("addr", cfg.httpAddr).Msg("http status server listening")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	millis := clock.NewMonotonic(clockz.RealClock, clock.Millis(cfg.clockStart))
	button := input.NewButton(gpioReader, millis, cfg.pin, level, clock.FromDuration(cfg.debounce))

	timer := ticker.New(ticker.NewClockTrigger(clockz.RealClock))
	if err := timer.Begin(ctx, cfg.tick); err != nil {
		return fmt.Errorf("start timer: %w", err)
	}

	log.Info().
		Int("pin", cfg.pin).
		Str("active", level.String()).
		Dur("debounce", cfg.debounce).
		Dur("poll", cfg.poll).
		Dur("tick", cfg.tick).
		Dur("heartbeat", cfg.heartbeat).
		Str("broker", cfg.broker).
		Msg("started")

	poll := clockz.RealClock.NewTicker(cfg.poll)
	defer poll.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	l := &loop{
		button:       button,
		timer:        timer,
		publisher:    publisher,
		mqttStatus:   publisher,
		tracker:      tracker,
		heartbeat:    cfg.heartbeat,
		publishTicks: cfg.publishTicks,
		now:          time.Now,
	}
	return l.run(poll.C(), sigCh)
}

// loop holds what the main loop polls and where its events go.
type loop struct {
	button       *input.Button
	timer        *ticker.Timer
	publisher    mqtt.Publisher
	mqttStatus   mqtt.ConnectionStatus
	tracker      *status.Tracker
	heartbeat    time.Duration
	publishTicks bool
	now          func() time.Time
}

// run evaluates the button and the timer once per poll tick until a signal
// arrives. The button is sampled exactly once per iteration.
func (l *loop) run(tick <-chan time.Time, sig <-chan os.Signal) error {
	recorder := logic.NewRecorder(l.now(), l.publishTicks)
	var readFailing bool

	for {
		select {
		case s := <-sig:
			l.shutdown(s)
			return nil

		case <-tick:
			t := l.now()
			edge := l.button.Poll()

			if err := l.button.Err(); err != nil {
				if !readFailing {
					log.Warn().Err(err).Int("pin", l.button.Pin()).Msg("gpio read error")
				}
				readFailing = true
			} else if readFailing {
				log.Info().Int("pin", l.button.Pin()).Msg("gpio read recovered")
				readFailing = false
			}

			tickReady := l.timer.Ready()

			events := recorder.Process(logic.Input{
				Pressed: l.button.Current(),
				Toggled: edge != input.EdgeNone,
				Settled: l.button.Settled(),
				Tick:    tickReady,
				Time:    t,
			})

			for _, event := range events {
				log.Info().Str("event", string(event.Type)).Str("state", string(event.State)).Msg("event")
				if err := l.publisher.Publish(event); err != nil {
					log.Error().Err(err).Str("event", string(event.Type)).Msg("publish error")
				}
			}

			// Housekeeping runs at the timer's pace, not the poll's
			if tickReady {
				l.housekeeping(recorder, t)
			}

			if l.tracker != nil {
				l.tracker.Update(recorder.CurrentState(), recorder.IsBaselined(), recorder.EventCountsSnapshot())
				l.tracker.SetTickPending(l.timer.Pending())
			}
		}
	}
}

func (l *loop) housekeeping(recorder *logic.Recorder, t time.Time) {
	if l.tracker != nil && l.mqttStatus != nil {
		l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
	}

	hbData := recorder.CheckHeartbeat(t, l.heartbeat)
	if hbData == nil {
		return
	}
	log.Info().
		Dur("uptime", hbData.Uptime).
		Int("on", hbData.Counts.On).
		Int("off", hbData.Counts.Off).
		Int("ticks", hbData.Counts.Ticks).
		Msg("heartbeat")

	hbEvent := mqtt.SystemEvent{
		Timestamp: hbData.Timestamp,
		Event:     "HEARTBEAT",
	}
	if l.tracker != nil {
		// Refresh network info for heartbeat
		if net := readNetworkInfo(); net != nil {
			l.tracker.SetNetwork(net)
		}
		l.tracker.Update(recorder.CurrentState(), recorder.IsBaselined(), recorder.EventCountsSnapshot())
		hbEvent.RawPayload = status.FormatStatusEvent(l.tracker.Snapshot(), "HEARTBEAT", "")
	}
	if err := l.publisher.PublishSystem(hbEvent); err != nil {
		log.Error().Err(err).Msg("heartbeat publish error")
	}
}

func (l *loop) shutdown(s os.Signal) {
	log.Info().Str("signal", s.String()).Msg("shutting down")
	signalName := "UNKNOWN"
	if s == syscall.SIGINT {
		signalName = "SIGINT"
	} else if s == syscall.SIGTERM {
		signalName = "SIGTERM"
	}
	event := mqtt.SystemEvent{
		Timestamp: l.now(),
		Event:     "SHUTDOWN",
		Reason:    signalName,
		Retained:  true,
	}
	if l.tracker != nil {
		if l.mqttStatus != nil {
			l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
		}
		event.RawPayload = status.FormatStatusEvent(l.tracker.Snapshot(), "SHUTDOWN", signalName)
	}
	if err := l.publisher.PublishSystem(event); err != nil {
		log.Error().Err(err).Msg("failed to publish shutdown event")
	} else {
		log.Info().Msg("published shutdown event")
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
