// Package hyprpaper speaks the hyprpaper IPC protocol over its unix socket.
package hyprpaper

import "strings"

// Command is a single hyprpaper request.
type Command interface {
	// Verb returns the protocol keyword (preload, wallpaper, unload, reload).
	Verb() string

	// Encode returns the request line without the trailing newline.
	Encode() string
}

// Preload loads an image into hyprpaper's memory without displaying it.
type Preload struct {
	Path string
}

func (c Preload) Verb() string { return "preload" }

func (c Preload) Encode() string {
	return c.Verb() + " " + c.Path
}

// Wallpaper displays an image. An empty Monitor applies it to every monitor;
// Mode is passed through untouched when set.
type Wallpaper struct {
	Monitor string
	Mode    string
	Path    string
}

func (c Wallpaper) Verb() string { return "wallpaper" }

func (c Wallpaper) Encode() string {
	return c.Verb() + " " + joinArgs(c.Monitor, c.Path, c.Mode)
}

// Unload frees a preloaded image, or every unused image when All is set.
type Unload struct {
	Path string
	All  bool
}

// UnloadAll returns an Unload of every unused image.
func UnloadAll() Unload {
	return Unload{All: true}
}

func (c Unload) Verb() string { return "unload" }

func (c Unload) Encode() string {
	if c.All {
		return c.Verb() + " all"
	}
	return c.Verb() + " " + c.Path
}

// Reload preloads, applies and unloads the previous image of a monitor in one step.
type Reload struct {
	Monitor string
	Mode    string
	Path    string
}

func (c Reload) Verb() string { return "reload" }

func (c Reload) Encode() string {
	return c.Verb() + " " + joinArgs(c.Monitor, c.Path, c.Mode)
}

// joinArgs renders "monitor,path" with ",mode" appended only when mode is set.
func joinArgs(monitor, path, mode string) string {
	args := []string{monitor, path}
	if mode != "" {
		args = append(args, mode)
	}
	return strings.Join(args, ",")
}
