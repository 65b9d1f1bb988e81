// Package main is the entry point of the EcuLink bridge.
// It loads the configuration, connects to the MQTT broker, opens the ECU
// serial port and starts the polling session. The session runs until 'q'
// is entered on an attached terminal or the process receives a signal.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"EcuLink/internal/broker"
	"EcuLink/internal/core"
	"EcuLink/internal/device"
	"EcuLink/internal/model"
)

const readTimeout = time.Second

func displayWelcome() {
	fmt.Print("\nWelcome to EcuLink, Speeduino to MQTT bridge\n\n")
	fmt.Println("===================================")
	fmt.Println("Press 'q' to quit the application.")
	fmt.Println("===================================")
	fmt.Println()
}

func main() {
	cfgPath := flag.String("c", "configs/config.yml", "path to configuration file")
	flag.Parse()

	displayWelcome()
	log.Printf("[Main] Using config: %s", *cfgPath)

	cfg, err := model.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pub, err := broker.Connect(cfg.MQTTHost, cfg.MQTTPort)
	if err != nil {
		log.Fatalf("failed to connect to MQTT broker: %v", err)
	}
	defer pub.Close()

	tr, err := device.NewSerialTransport(cfg.PortName, cfg.BaudRate, readTimeout)
	if err != nil {
		log.Fatalf("failed to open serial %s: %v", cfg.PortName, err)
	}

	sess := core.NewSession(cfg, tr, pub)
	cmd := make(chan string, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sess.Run(cmd)
	}()

	// Control input only exists with an attached terminal; otherwise the
	// process runs until a signal arrives.
	if isatty.IsTerminal(os.Stdin.Fd()) {
		go readCommands(cmd)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("[Main] Shutting down...")
		cmd <- core.QuitToken
	}()

	wg.Wait()
	log.Println("[Main] Stopped cleanly.")
}

// readCommands forwards single-character commands from the terminal to
// the session. 'q' (case-insensitive) requests shutdown; anything else is
// acknowledged and ignored by the session.
func readCommands(cmd chan<- string) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		tok := strings.TrimSpace(sc.Text())
		if tok == "" {
			continue
		}
		cmd <- tok
		if strings.EqualFold(tok, core.QuitToken) {
			return
		}
	}
}
