package hyprpaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand_Encode(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		expected string
	}{
		{"preload", Preload{Path: "/walls/beach.jpg"}, "preload /walls/beach.jpg"},
		{"wallpaper all monitors", Wallpaper{Path: "/walls/beach.jpg"}, "wallpaper ,/walls/beach.jpg"},
		{"wallpaper monitor", Wallpaper{Monitor: "DP-1", Path: "/walls/beach.jpg"}, "wallpaper DP-1,/walls/beach.jpg"},
		{"wallpaper mode", Wallpaper{Monitor: "DP-1", Mode: "contain", Path: "/w.jpg"}, "wallpaper DP-1,/w.jpg,contain"},
		{"wallpaper mode all monitors", Wallpaper{Mode: "tile", Path: "/w.jpg"}, "wallpaper ,/w.jpg,tile"},
		{"unload path", Unload{Path: "/walls/night.jpg"}, "unload /walls/night.jpg"},
		{"unload all", UnloadAll(), "unload all"},
		{"reload", Reload{Path: "/w.jpg"}, "reload ,/w.jpg"},
		{"reload monitor mode", Reload{Monitor: "HDMI-A-1", Mode: "contain", Path: "/w.jpg"}, "reload HDMI-A-1,/w.jpg,contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cmd.Encode())
		})
	}
}

func TestCommand_Verb(t *testing.T) {
	assert.Equal(t, "preload", Preload{}.Verb())
	assert.Equal(t, "wallpaper", Wallpaper{}.Verb())
	assert.Equal(t, "unload", Unload{}.Verb())
	assert.Equal(t, "reload", Reload{}.Verb())
}
