// Package dbus sends desktop notifications through the
// org.freedesktop.Notifications D-Bus interface on the session bus.
package dbus
