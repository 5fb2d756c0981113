package main

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
)

// ============================================================================
// vrrvrrctl - Command-line IPC Client
// ============================================================================
// This tool drives the vrrvrr daemon's virtual keypad via IPC.
//
// Usage:
//   vrrvrrctl tap                  # one tap on the '0'/tap key
//   vrrvrrctl key 5                # release of a single key
//   vrrvrrctl hold 3               # long press of a key (e.g. subdivision 3)
//   vrrvrrctl tempo 120            # type a tempo digit by digit
//   vrrvrrctl recall A             # recall a preset slot
//   vrrvrrctl save B               # save the live settings into a slot
//
// Options:
//   -socket PATH    Unix domain socket path (default: /tmp/vrrvrr.sock)
// ============================================================================

// Key ids follow the physical grid, row-major (duplicated from the daemon
// package for a standalone binary):
//
//	1  2  3  A
//	4  5  6  B
//	7  8  9  C
//	*  0  #  D

// EventEnvelope wraps key events for JSON
type EventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type keyPayload struct {
	Key uint8 `json:"key"`
}

// IPCResponse represents the daemon's response
type IPCResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// keyID resolves a key name ("0"-"9", "A"-"D", "*", "#") to its id.
func keyID(name string) (uint8, bool) {
	grid := map[string]uint8{
		"1": 0, "2": 1, "3": 2, "A": 3,
		"4": 4, "5": 5, "6": 6, "B": 7,
		"7": 8, "8": 9, "9": 10, "C": 11,
		"*": 12, "0": 13, "#": 14, "D": 15,
	}
	id, ok := grid[name]
	return id, ok
}

func main() {
	socketPath := "/tmp/vrrvrr.sock"

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	// Extract -socket flag if present
	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if args[i] == "-socket" && i+1 < len(args) {
			socketPath = args[i+1]
			i++
			continue
		}
		filtered = append(filtered, args[i])
	}
	args = filtered

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	var events []EventEnvelope
	switch args[0] {
	case "tap":
		events = append(events, keyEvent("key_released", 13))

	case "key", "hold", "recall", "save":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "error: %s requires a key name\n", args[0])
			os.Exit(1)
		}
		id, ok := keyID(args[1])
		if !ok {
			fmt.Fprintf(os.Stderr, "error: unknown key %q\n", args[1])
			os.Exit(1)
		}
		evType := "key_released"
		if args[0] == "hold" || args[0] == "save" {
			evType = "key_long_pressed"
		}
		events = append(events, keyEvent(evType, id))

	case "tempo":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "error: tempo requires a value")
			os.Exit(1)
		}
		for _, digit := range args[1] {
			if digit < '0' || digit > '9' {
				fmt.Fprintf(os.Stderr, "error: invalid tempo %q\n", args[1])
				os.Exit(1)
			}
			id, _ := keyID(string(digit))
			events = append(events, keyEvent("key_released", id))
		}

	case "help", "-help", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", args[0])
		printUsage()
		os.Exit(1)
	}

	for _, env := range events {
		if err := sendEvent(socketPath, env); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Println("ok")
}

func keyEvent(evType string, id uint8) EventEnvelope {
	data, _ := json.Marshal(keyPayload{Key: id})
	return EventEnvelope{Type: evType, Data: data}
}

// sendEvent connects to the daemon socket, sends one event and checks the
// response.
func sendEvent(socketPath string, env EventEnvelope) error {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return fmt.Errorf("connect to %s: %w (is the daemon running?)", socketPath, err)
	}
	defer conn.Close()

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(conn, "%s\n", data); err != nil {
		return fmt.Errorf("send event: %w", err)
	}

	var resp IPCResponse
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.Status != "ok" {
		return fmt.Errorf("daemon error: %s", resp.Error)
	}
	return nil
}

func printUsage() {
	fmt.Println("vrrvrrctl - virtual keypad client for the vrrvrr daemon")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  vrrvrrctl [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("COMMANDS:")
	fmt.Println("  tap              One tap on the '0'/tap key")
	fmt.Println("  key KEY          Release a single key (0-9, A-D, *, #)")
	fmt.Println("  hold KEY         Long-press a key (digit: set subdivision)")
	fmt.Println("  tempo BPM        Type a tempo digit by digit")
	fmt.Println("  recall SLOT      Recall a preset slot (A-D)")
	fmt.Println("  save SLOT        Save the live settings into a slot (A-D)")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -socket PATH     Unix domain socket path (default: /tmp/vrrvrr.sock)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  vrrvrrctl tempo 120")
	fmt.Println("  vrrvrrctl hold 3")
	fmt.Println("  vrrvrrctl save A")
}
