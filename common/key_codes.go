package common

// Virtual key codes used by the reference host. These values match GLFW key codes which
// use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	Key1 = 49 // 1 key (ASCII)
	Key9 = 57 // 9 key (ASCII)

	KeyDelete = 261 // Delete key (GLFW)
	KeyEsc    = 256 // Escape key (GLFW)
)
