//go:build linux

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// inputEvent represents a Linux input event structure
// struct input_event { struct timeval time; __u16 type; __u16 code; __s32 value; };
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// scancodeToKey maps evdev key codes to the 4x4 matrix keys. A numeric
// keypad covers the digit column plus '*' and '#'; the letter keys arrive
// as KEY_A..KEY_D.
var scancodeToKey = map[uint16]Key{
	KEY_KP1:        Key1,
	KEY_KP2:        Key2,
	KEY_KP3:        Key3,
	KEY_A:          KeyA,
	KEY_KP4:        Key4,
	KEY_KP5:        Key5,
	KEY_KP6:        Key6,
	KEY_B:          KeyB,
	KEY_KP7:        Key7,
	KEY_KP8:        Key8,
	KEY_KP9:        Key9,
	KEY_C:          KeyC,
	KEY_KPASTERISK: KeyTempoUp,
	KEY_KP0:        KeyTapOrZero,
	KEY_KPMINUS:    KeyTempoDown,
	KEY_D:          KeyD,
}

// keypadReader turns raw evdev events from one or more devices into
// KeyPressed / KeyLongPressed / KeyReleased events.
//
// Long-press classification: a press immediately emits KeyPressed and arms
// a per-key timer. If the timer fires while the key is still down, the
// reader emits KeyLongPressed; the following release is then still
// delivered (the reducer suppresses its action). A release before the
// timer fires cancels it and emits KeyReleased.
type keypadReader struct {
	devices   []string
	longPress time.Duration
	events    chan<- Event
	logger    *slog.Logger

	mu   sync.Mutex
	held map[Key]*time.Timer
}

func newKeypadReader(devices []string, longPress time.Duration, events chan<- Event, logger *slog.Logger) *keypadReader {
	return &keypadReader{
		devices:   devices,
		longPress: longPress,
		events:    events,
		logger:    logger,
		held:      make(map[Key]*time.Timer),
	}
}

// run opens the devices and pumps key events until ctx is cancelled or a
// device fails.
func (k *keypadReader) run(ctx context.Context) error {
	files := make([]*os.File, 0, len(k.devices))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	for _, dev := range k.devices {
		f, err := os.Open(dev)
		if err != nil {
			return fmt.Errorf("open input device %s: %w", dev, err)
		}
		k.logger.Info("keypad device opened", "device", dev)
		files = append(files, f)
	}

	raw := make(chan inputEvent, 32)
	readErr := make(chan error, 1)
	go readInputEventsEpoll(files, raw, readErr)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return err
		case ev := <-raw:
			k.handleRaw(ev)
		}
	}
}

func (k *keypadReader) handleRaw(ev inputEvent) {
	if ev.Type != EV_KEY {
		return
	}
	key, ok := scancodeToKey[ev.Code]
	if !ok {
		return
	}
	at := time.Unix(ev.Sec, ev.Usec*1000)

	switch ev.Value {
	case evValuePress:
		k.press(key, at)
	case evValueRelease:
		k.release(key, at)
	case evValueRepeat:
		// Kernel auto-repeat is ignored; held-key repetition is driven
		// by the tempo-adjust timer instead.
	}
}

func (k *keypadReader) press(key Key, at time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, down := k.held[key]; down {
		return
	}
	k.held[key] = time.AfterFunc(k.longPress, func() {
		k.longPressed(key)
	})
	k.events <- KeyPressed{Key: key, At: at}
}

func (k *keypadReader) release(key Key, at time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	tmr, down := k.held[key]
	if !down {
		return
	}
	tmr.Stop()
	delete(k.held, key)
	k.events <- KeyReleased{Key: key, At: at}
}

func (k *keypadReader) longPressed(key Key) {
	k.mu.Lock()
	defer k.mu.Unlock()

	// The key may have been released between the timer firing and the
	// lock being acquired.
	if _, down := k.held[key]; !down {
		return
	}
	k.events <- KeyLongPressed{Key: key, At: time.Now()}
}

// readInputEventsEpoll reads from multiple input devices using epoll:
// one goroutine, woken by the kernel only when a device has data.
func readInputEventsEpoll(files []*os.File, events chan<- inputEvent, readErr chan<- error) {
	if len(files) == 0 {
		readErr <- fmt.Errorf("no input devices provided")
		return
	}

	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		readErr <- fmt.Errorf("epoll_create1: %w", err)
		return
	}
	defer unix.Close(epfd)

	fdToFile := make(map[int]*os.File)
	for _, f := range files {
		fd := int(f.Fd())
		fdToFile[fd] = f

		event := unix.EpollEvent{
			Events: unix.EPOLLIN,
			Fd:     int32(fd),
		}
		if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, fd, &event); err != nil {
			readErr <- fmt.Errorf("epoll_ctl_add fd=%d: %w", fd, err)
			return
		}
	}

	const maxEvents = 32
	epollEvents := make([]unix.EpollEvent, maxEvents)
	evSize := binary.Size(inputEvent{})
	buf := make([]byte, evSize)
	reader := bytes.NewReader(buf)

	for {
		n, err := unix.EpollWait(epfd, epollEvents, -1)
		if err != nil {
			if err == syscall.EINTR {
				continue
			}
			readErr <- fmt.Errorf("epoll_wait: %w", err)
			return
		}

		for i := 0; i < n; i++ {
			fd := int(epollEvents[i].Fd)
			f := fdToFile[fd]

			if epollEvents[i].Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
				readErr <- fmt.Errorf("device error/hangup: %s (fd=%d)", f.Name(), fd)
				return
			}

			if _, err := f.Read(buf); err != nil {
				readErr <- fmt.Errorf("read from %s: %w", f.Name(), err)
				return
			}

			reader.Reset(buf)
			var ev inputEvent
			if err := binary.Read(reader, binary.LittleEndian, &ev); err != nil {
				// Skip malformed events
				continue
			}

			events <- ev
		}
	}
}
