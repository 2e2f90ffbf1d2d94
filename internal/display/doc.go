// Package display renders cropper windows in a terminal.
//
// Terminal draws images with half-block characters in 24-bit color, so each
// character cell shows two vertically stacked pixels. Mouse motion over the
// main window is translated back to source pixel coordinates before it
// reaches the registered handler.
package display
