// callsim drives a scripted emergency call against a running service:
// it opens the websocket channel, sends a config message followed by
// audio chunks, and prints every decision record it receives.
package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// Chunk cadence approximates real-time capture: 48kHz 16-bit mono at
// 250ms per chunk = 24000 bytes.
const (
	chunkSize       = 24000
	chunkIntervalMs = 250
)

func main() {
	serverAddr := flag.String("server", "localhost:8000", "Service address")
	callID := flag.String("call", "sim-"+time.Now().Format("150405"), "Call ID")
	language := flag.String("language", "en", "Transcription language")
	chunks := flag.Int("chunks", 5, "Number of audio chunks to send")
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: *serverAddr, Path: "/ws/transcribe/" + *callID}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", u.String(), err)
	}
	defer conn.Close()

	log.Printf("Connected: callId=%s", *callID)

	// Apply configuration before any audio
	config := map[string]any{
		"type":            "config",
		"language":        *language,
		"noise_filtering": true,
		"sample_rate":     48000,
	}
	if err := conn.WriteJSON(config); err != nil {
		log.Fatalf("Failed to send config: %v", err)
	}

	// Collect decisions concurrently with sending
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var decision map[string]any
			if err := conn.ReadJSON(&decision); err != nil {
				return
			}
			pretty, _ := json.MarshalIndent(decision, "", "  ")
			fmt.Printf("--- decision ---\n%s\n", pretty)
		}
	}()

	// The service's mock transcriber ignores chunk content and walks its
	// script, so synthetic PCM is enough to exercise the pipeline.
	audio := make([]byte, chunkSize)
	for i := 0; i < *chunks; i++ {
		msg := map[string]any{
			"type":      "audio_chunk",
			"data":      base64.StdEncoding.EncodeToString(audio),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Fatalf("Failed to send chunk %d: %v", i, err)
		}
		log.Printf("Sent chunk %d/%d (%d bytes)", i+1, *chunks, chunkSize)
		time.Sleep(chunkIntervalMs * time.Millisecond)
	}

	// Give the last decision time to arrive, then close cleanly
	time.Sleep(time.Second)
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
	log.Printf("Call finished: callId=%s", *callID)
}
