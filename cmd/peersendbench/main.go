// Command peersendbench is a small standalone driver for the send scheduler, in the spirit of the
// project's DustTool/DustProxy command-line tools: it wires together an identity, a symmetric key, and a
// scheduler, then simulates a writable outbound socket draining whatever has been enqueued.
package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/op/go-logging"

	"github.com/OperatorFoundation/peersend/clock"
	"github.com/OperatorFoundation/peersend/crypting"
	"github.com/OperatorFoundation/peersend/framing"
	"github.com/OperatorFoundation/peersend/identity"
	"github.com/OperatorFoundation/peersend/message"
	"github.com/OperatorFoundation/peersend/ratelimit"
	"github.com/OperatorFoundation/peersend/scheduler"
)

const progName = "peersendbench"

var log = logging.MustGetLogger("peersendbench")

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

func setupLogging() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(
		"%{time:15:04:05.000} %{level:.4s} %{module}: %{message}",
	))
	logging.SetBackend(formatted)
}

func main() {
	setupLogging()

	peer, err := identity.Generate()
	if err != nil {
		exitError(fmt.Errorf("generating identity: %w", err))
	}
	log.Infof("peer identity: %s", peer.Fingerprint())

	key, err := crypting.GenerateSymmetricKey()
	if err != nil {
		exitError(fmt.Errorf("generating symmetric key: %w", err))
	}

	sched := scheduler.New(ratelimit.DefaultLimits(), clock.Steady{}, framing.DefaultMaxFrameDataSize)

	seedTraffic(sched)

	var socket bytes.Buffer
	totalFrames, totalMessages := drainUntilEmpty(sched, &socket, key)

	log.Infof("wrote %d frames (%d messages, %d bytes) to the simulated socket", totalFrames, totalMessages, socket.Len())
}

// seedTraffic enqueues a representative mix of application, relay, noise, and expedited traffic, the way
// a real peer context would hand the scheduler work as producers call in.
func seedTraffic(sched *scheduler.Scheduler) {
	producers := []struct {
		typ      message.Type
		priority scheduler.Priority
		delay    time.Duration
		sizes    []int
	}{
		{message.Default, scheduler.Normal, 0, []int{512, 256, 1024}},
		{message.RelayData, scheduler.Normal, 0, []int{2048}},
		{message.ExtenderCommunication, scheduler.Expedited, 0, []int{128}},
		{message.Noise, scheduler.Delayed, 25 * time.Millisecond, []int{64, 64, 64}},
	}

	for _, p := range producers {
		for _, size := range p.sizes {
			msg := crypting.NewPayload(p.typ, make([]byte, size))
			if err := sched.Enqueue(msg, p.priority, p.delay); err != nil {
				log.Warningf("enqueue %v (%d bytes): %v", p.typ, size, err)
			}
		}
	}
}

// drainUntilEmpty repeatedly calls PackFrame as if the outbound socket had just become writable, until a
// call packs nothing further. Delayed traffic not yet ready simply means fewer frames are produced on
// this pass; a real caller would be invoked again once its socket is writable once more.
func drainUntilEmpty(sched *scheduler.Scheduler, socket *bytes.Buffer, key *crypting.SymmetricKey) (frames, messages int) {
	for {
		var frame bytes.Buffer
		success, count := sched.PackFrame(&frame, key, true)
		if !success {
			log.Errorf("framing failure; tearing down session")
			return frames, messages
		}
		if count == 0 {
			return frames, messages
		}

		socket.Write(frame.Bytes())
		frames++
		messages += count
	}
}
