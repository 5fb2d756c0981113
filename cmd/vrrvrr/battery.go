package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// batteryMonitor samples a sysfs voltage file periodically and posts a
// single BatteryLow event when the supply drops below the threshold. After
// posting it stops sampling; the warning stays latched until power-cycle.
type batteryMonitor struct {
	path        string
	thresholdMV int
	interval    time.Duration
	events      chan<- Event
	logger      *slog.Logger
}

func newBatteryMonitor(path string, thresholdMV int, interval time.Duration, events chan<- Event, logger *slog.Logger) *batteryMonitor {
	return &batteryMonitor{
		path:        path,
		thresholdMV: thresholdMV,
		interval:    interval,
		events:      events,
		logger:      logger,
	}
}

func (b *batteryMonitor) run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case at := <-ticker.C:
			mv, err := b.readMillivolts()
			if err != nil {
				b.logger.Warn("battery voltage read failed", "path", b.path, "error", err)
				continue
			}
			b.logger.Debug("battery sample", "millivolts", mv)
			if mv < b.thresholdMV {
				b.logger.Warn("battery low", "millivolts", mv, "threshold_mv", b.thresholdMV)
				select {
				case b.events <- BatteryLow{Millivolts: mv, At: at}:
				case <-ctx.Done():
				}
				// One warning per boot; sampling stops here.
				return
			}
		}
	}
}

// readMillivolts parses the sysfs value, which power-supply drivers report
// in microvolts.
func (b *batteryMonitor) readMillivolts() (int, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return 0, err
	}
	uv, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse voltage %q: %w", strings.TrimSpace(string(data)), err)
	}
	return uv / 1000, nil
}
