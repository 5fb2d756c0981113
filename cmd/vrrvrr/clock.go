package main

import "time"

const microsPerMinute = 60 * 1000 * 1000

// tempoToInterval converts beats per minute to the beat interval.
// Callers guarantee bpm >= 1.
func tempoToInterval(bpm uint8) time.Duration {
	return time.Duration(microsPerMinute/int64(bpm)) * time.Microsecond
}

// intervalToTempo converts a beat interval to beats per minute, truncating
// toward zero. Intervals under one microsecond return 0. Callers must
// range-check the result before using it as a tempo.
func intervalToTempo(d time.Duration) int {
	us := d.Microseconds()
	if us <= 0 {
		return 0
	}
	return int(microsPerMinute / us)
}
