// Command power-cycler runs unattended power-cycle testing of an external
// device. It watches the device's power rail through an ADC, pulses a power
// switch to bring the device back up after a scheduled delay, and verifies
// that each power-on attempt actually succeeded. Test sessions are driven by
// line commands on stdin; observations are printed and published to MQTT.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/power-cycler/internal/adc"
	"github.com/sweeney/power-cycler/internal/config"
	"github.com/sweeney/power-cycler/internal/console"
	"github.com/sweeney/power-cycler/internal/gpio"
	"github.com/sweeney/power-cycler/internal/logic"
	"github.com/sweeney/power-cycler/internal/mqtt"
	"github.com/sweeney/power-cycler/internal/status"
	"github.com/sweeney/power-cycler/internal/web"
)

const defaultConfigPath = "/etc/power-cycler/config.toml"

func main() {
	configPath := flag.String("config", "", "Config file path (TOML)")
	broker := flag.String("broker", "", `MQTT broker address ("" uses config, "off" disables)`)
	httpAddr := flag.String("http", "", `HTTP status address ("" uses config, "off" disables)`)
	threshold := flag.Int("threshold", 0, "Power-on ADC threshold (0 uses config)")
	printState := flag.Bool("print-state", false, "Print current power state and exit")

	flag.Parse()

	if err := run(*configPath, *broker, *httpAddr, *threshold, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(configPath, broker, httpAddr string, threshold int, printState bool) error {
	cfg, err := config.Load(configPath, defaultConfigPath)
	if err != nil {
		return err
	}
	brokerAddr := resolveOverride(broker, cfg.MQTT.Broker)
	statusAddr := resolveOverride(httpAddr, cfg.HTTP.Addr)
	if threshold > 0 {
		cfg.Hardware.Threshold = threshold
	}

	// Initialize ADC
	reader, err := adc.NewRealReader(cfg.Hardware.ADCDevice, cfg.Hardware.ADCChannel)
	if err != nil {
		return fmt.Errorf("init adc: %w", err)
	}
	defer reader.Close()

	// Print state mode
	if printState {
		return printCurrentState(reader, cfg.Hardware.Threshold, cfg.Timing.Poll.Duration, os.Stdout)
	}

	// Initialize the switch output
	sw, err := gpio.NewRealSwitch(cfg.Hardware.SwitchPin)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer sw.Close()

	sampler := logic.NewSampler(cfg.Hardware.Threshold)
	actuator := logic.NewActuator(sw, cfg.Timing.Pulse.Duration, cfg.Timing.Settle.Duration)
	seq := logic.NewSequencer(sampler, actuator)
	proc := logic.NewCommandProcessor(seq)

	// Initialize MQTT
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if brokerAddr != "" {
		p, err := mqtt.NewRealPublisher(brokerAddr)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		defer p.Close()
		publisher = p
		mqttStatus = p
	}

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:     cfg.Timing.Poll.Milliseconds(),
		Threshold:  cfg.Hardware.Threshold,
		PulseMs:    cfg.Timing.Pulse.Milliseconds(),
		SettleMs:   cfg.Timing.Settle.Milliseconds(),
		Broker:     brokerAddr,
		HTTPPort:   statusAddr,
		ADCDevice:  cfg.Hardware.ADCDevice,
		ADCChannel: cfg.Hardware.ADCChannel,
		SwitchPin:  cfg.Hardware.SwitchPin,
	})

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
	if statusAddr != "" {
		srv := web.New(statusAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", statusAddr)
	}

	log.Printf("started: poll=%v threshold=%d adc=%s/ch%d pin=%d broker=%s",
		cfg.Timing.Poll.Duration, cfg.Hardware.Threshold,
		cfg.Hardware.ADCDevice, cfg.Hardware.ADCChannel,
		cfg.Hardware.SwitchPin, brokerAddr)

	ticker := time.NewTicker(cfg.Timing.Poll.Duration)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	return runLoop(reader, seq, proc, publisher, mqttStatus, tracker, os.Stdout, time.Now, ticker.C, lines, sigCh)
}

func runLoop(reader adc.Reader, seq *logic.Sequencer, proc *logic.CommandProcessor, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, out io.Writer, now func() time.Time, tick <-chan time.Time, lines <-chan string, sig <-chan os.Signal) error {
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
			if publisher != nil {
				event := mqtt.SystemEvent{
					Timestamp: now(),
					Event:     "SHUTDOWN",
					Reason:    signalName,
					Retained:  true,
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					snap := tracker.Snapshot()
					event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
				}
				if err := publisher.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			return nil

		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			handleLine(proc, seq, publisher, out, line, now())

		case <-tick:
			// Commands queued since the last tick are applied before this
			// tick's sample is classified.
		drain:
			for lines != nil {
				select {
				case line, ok := <-lines:
					if !ok {
						lines = nil
						break drain
					}
					handleLine(proc, seq, publisher, out, line, now())
				default:
					break drain
				}
			}

			t := now()
			raw, err := reader.Read()
			if err != nil {
				log.Printf("adc read error: %v", err)
				continue
			}

			events, err := seq.Tick(raw, t)
			if err != nil {
				log.Printf("sequencer error: %v", err)
			}
			emit(seq, publisher, out, events)

			if tracker != nil {
				tracker.Update(seq.Snapshot())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

// handleLine feeds one stdin line through the command processor and renders
// the outcome.
func handleLine(proc *logic.CommandProcessor, seq *logic.Sequencer, publisher mqtt.Publisher, out io.Writer, line string, now time.Time) {
	res, err := proc.Handle(line, now)
	if err != nil {
		log.Printf("command error: %v", err)
	}
	emit(seq, publisher, out, res.Events)
	if res.Prompt != "" {
		fmt.Fprintln(out, res.Prompt)
	}
	if res.Debug != nil {
		fmt.Fprintln(out, console.FormatDebug(*res.Debug))
	}
}

// emit prints each event to the console and publishes it.
func emit(seq *logic.Sequencer, publisher mqtt.Publisher, out io.Writer, events []logic.Event) {
	for _, event := range events {
		elapsed, stamped := seq.Elapsed(event)
		fmt.Fprintln(out, console.FormatEvent(event, elapsed, stamped))
		if publisher != nil {
			if err := publisher.Publish(event); err != nil {
				log.Printf("publish error: %v", err)
				// Don't crash on publish failure
			}
		}
	}
}

// readLines forwards stdin lines to the run loop, closing the channel when
// stdin is exhausted.
func readLines(r io.Reader, lines chan<- string) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines <- sc.Text()
	}
	close(lines)
}

// printCurrentState reads one full debounce window and prints the state.
func printCurrentState(reader adc.Reader, threshold int, poll time.Duration, out io.Writer) error {
	sampler := logic.NewSampler(threshold)
	for {
		raw, err := reader.Read()
		if err != nil {
			return fmt.Errorf("read adc: %w", err)
		}
		on, ok := sampler.Observe(raw)
		if ok {
			fmt.Fprintf(out, "power: %s\n", stateString(on))
			return nil
		}
		time.Sleep(poll)
	}
}

func stateString(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// resolveOverride merges a flag value with the config value: empty keeps the
// config value, "off" disables the feature.
func resolveOverride(flagVal, cfgVal string) string {
	switch flagVal {
	case "":
		return cfgVal
	case "off":
		return ""
	default:
		return flagVal
	}
}
