package main

// Key identifies one of the sixteen logical keys of the 4x4 matrix keypad.
// Key ids follow the physical grid, row-major:
//
//	1  2  3  A
//	4  5  6  B
//	7  8  9  C
//	*  0  #  D
//
// The '*' and '#' keys are the tempo adjustment keys; the '0' key is shared
// between digit entry and tap tempo.
type Key uint8

const (
	Key1 Key = 0
	Key2 Key = 1
	Key3 Key = 2
	KeyA Key = 3
	Key4 Key = 4
	Key5 Key = 5
	Key6 Key = 6
	KeyB Key = 7
	Key7 Key = 8
	Key8 Key = 9
	Key9 Key = 10
	KeyC Key = 11

	// The original device's '*' key raises the tempo and '#' lowers it.
	KeyTempoUp   Key = 12
	KeyTapOrZero Key = 13
	KeyTempoDown Key = 14
	KeyD         Key = 15
)

const numKeys = 16

// digitValue returns the digit 1-9 carried by a plain digit key.
// The shared '0'/tap key is routed separately and is not covered here.
func digitValue(k Key) (uint8, bool) {
	switch k {
	case Key1:
		return 1, true
	case Key2:
		return 2, true
	case Key3:
		return 3, true
	case Key4:
		return 4, true
	case Key5:
		return 5, true
	case Key6:
		return 6, true
	case Key7:
		return 7, true
	case Key8:
		return 8, true
	case Key9:
		return 9, true
	}
	return 0, false
}

// presetSlot returns the preset slot 0-3 addressed by a letter key.
func presetSlot(k Key) (int, bool) {
	switch k {
	case KeyA:
		return 0, true
	case KeyB:
		return 1, true
	case KeyC:
		return 2, true
	case KeyD:
		return 3, true
	}
	return 0, false
}

func (k Key) String() string {
	names := [numKeys]string{
		"1", "2", "3", "A",
		"4", "5", "6", "B",
		"7", "8", "9", "C",
		"*", "0", "#", "D",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}
