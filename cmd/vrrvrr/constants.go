package main

// Linux input event types and codes (from <linux/input.h>)
const (
	EV_KEY = 0x01

	KEY_A = 30
	KEY_B = 48
	KEY_C = 46
	KEY_D = 32

	KEY_KPASTERISK = 55
	KEY_KP7        = 71
	KEY_KP8        = 72
	KEY_KP9        = 73
	KEY_KPMINUS    = 74
	KEY_KP4        = 75
	KEY_KP5        = 76
	KEY_KP6        = 77
	KEY_KP1        = 79
	KEY_KP2        = 80
	KEY_KP3        = 81
	KEY_KP0        = 82
)

// Input event value constants
const (
	evValueRelease = 0
	evValuePress   = 1
	evValueRepeat  = 2
)

// Timing defaults, mirroring the shipped device configuration
const (
	defaultLongPressMS         = 600   // Hold time before a press is classified as a long press
	defaultEntryTimeoutMS      = 2000  // Unsubmitted digit input is discarded after this interval
	defaultTapTimeoutMS        = 2000  // Tap sequences reset after this interval without a tap
	defaultBlinkMS             = 100   // Beat/feedback blink duration
	defaultVibrationMS         = 100   // Beat vibration pulse duration
	defaultNotifyMS            = 500   // Save-confirmation pulse and post-write pause
	defaultAdjustRepeatMS      = 50    // Auto-repeat interval while +/- is held
	defaultPowerOnMS           = 500   // Power-on indicator duration
	defaultInactivityTimeoutS  = 600   // Ten minutes idle before requesting suspend
	defaultInactivityCheckS    = 5     // Inactivity check cadence
	defaultBatteryCheckS       = 5     // Battery sample cadence
	defaultBatteryThresholdMV  = 3300  // Low-battery threshold in millivolts
)

// Tempo bounds. Zero means "no tempo set / stopped".
const (
	minTempo = 1
	maxTempo = 255

	minSubdivision = 1
	maxSubdivision = 9
)

// Persisted preset block layout: one 256-byte storage page holding a 3-byte
// magic signature followed by 4 tempo bytes, 4 subdivision bytes and 4 accent
// bytes. The remainder of the page is zero padding.
const (
	presetSlots    = 4
	blockMagicLen  = 3
	blockPageSize  = 256
	blockTempoOff  = blockMagicLen
	blockSubdivOff = blockMagicLen + presetSlots
	blockAccentOff = blockMagicLen + 2*presetSlots
)

// 'BPM'
var blockMagic = [blockMagicLen]byte{0x42, 0x50, 0x4D}
