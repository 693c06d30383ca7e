// Package main provides a CLI that tails the live admin event feed.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	host := flag.String("host", "localhost:8080", "API server host")
	username := flag.String("username", "admin", "Admin username")
	password := flag.String("password", "", "Admin password")
	raw := flag.Bool("raw", false, "Print raw JSON payloads instead of formatted lines")
	flag.Parse()

	if *password == "" {
		log.Fatal("❌ -password is required")
	}

	token, err := login(*host, *username, *password)
	if err != nil {
		log.Fatalf("❌ Login failed: %v", err)
	}
	log.Printf("✅ Logged in as %s", *username)

	u := url.URL{Scheme: "ws", Host: *host, Path: "/api/admin/events", RawQuery: "token=" + url.QueryEscape(token)}
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("❌ WebSocket dial failed: %v", err)
	}
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	defer func() { _ = conn.Close() }()
	log.Printf("📡 Watching events from %s (Ctrl-C to stop)", *host)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.Printf("read error: %v", err)
				}
				return
			}
			printEvent(payload, *raw)
		}
	}()

	select {
	case <-interrupt:
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	case <-done:
	}
}

func login(host, username, password string) (string, error) {
	loginURL := fmt.Sprintf("http://%s/api/admin/login", host)
	payload := map[string]string{
		"username": username,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(loginURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.Token, nil
}

func printEvent(payload []byte, raw bool) {
	if raw {
		fmt.Println(string(payload))
		return
	}

	var ev struct {
		Type   string    `json:"type"`
		PostID uint      `json:"post_id"`
		Slug   string    `json:"slug"`
		Kind   string    `json:"kind"`
		At     time.Time `json:"at"`
	}
	if err := json.Unmarshal(payload, &ev); err != nil {
		fmt.Println(string(payload))
		return
	}

	line := fmt.Sprintf("%s  %-15s", ev.At.Local().Format("15:04:05"), ev.Type)
	if ev.PostID != 0 {
		line += fmt.Sprintf("  post=%d", ev.PostID)
	}
	if ev.Slug != "" {
		line += fmt.Sprintf("  slug=%s", ev.Slug)
	}
	if ev.Kind != "" {
		line += fmt.Sprintf("  kind=%s", ev.Kind)
	}
	fmt.Println(line)
}
