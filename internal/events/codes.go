package events

// Key is a keyboard key code. Values match GLFW so the window layer converts
// with a plain cast.
type Key int

const (
	KeyUnknown Key = -1

	KeySpace  Key = 32
	Key0      Key = 48
	Key1      Key = 49
	Key2      Key = 50
	Key3      Key = 51
	Key4      Key = 52
	Key5      Key = 53
	Key6      Key = 54
	Key7      Key = 55
	Key8      Key = 56
	Key9      Key = 57
	KeyA      Key = 65
	KeyD      Key = 68
	KeyE      Key = 69
	KeyF      Key = 70
	KeyQ      Key = 81
	KeyR      Key = 82
	KeyS      Key = 83
	KeyV      Key = 86
	KeyW      Key = 87
	KeyEscape Key = 256
	KeyEnter  Key = 257
	KeyTab    Key = 258
	KeyRight  Key = 262
	KeyLeft   Key = 263
	KeyDown   Key = 264
	KeyUp     Key = 265
	KeyF1     Key = 290

	KeyLeftShift    Key = 340
	KeyLeftControl  Key = 341
	KeyLeftAlt      Key = 342
	KeyLeftSuper    Key = 343
	KeyRightShift   Key = 344
	KeyRightControl Key = 345
	KeyRightAlt     Key = 346
	KeyRightSuper   Key = 347
)

// MouseButton is a mouse button code, GLFW numbering.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// ModifierKey is a bitmask of held modifiers, GLFW numbering.
type ModifierKey int

const (
	ModShift   ModifierKey = 0x0001
	ModControl ModifierKey = 0x0002
	ModAlt     ModifierKey = 0x0004
	ModSuper   ModifierKey = 0x0008
)
