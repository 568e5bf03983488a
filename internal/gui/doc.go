// Package gui shows the particles in a desktop window through raylib.
package gui
