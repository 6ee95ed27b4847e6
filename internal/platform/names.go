// SPDX-License-Identifier: MPL-2.0

// Package platform holds file naming rules that differ between operating systems.
package platform

import "strings"

// windowsReservedNames are device names Windows refuses as file base names,
// whatever the extension.
var windowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsWindowsReservedName reports whether name, minus its extension, is a
// reserved device name. The check is case-insensitive.
func IsWindowsReservedName(name string) bool {
	base := strings.ToUpper(name)
	if idx := strings.LastIndex(base, "."); idx != -1 {
		base = base[:idx]
	}
	return windowsReservedNames[base]
}

// IsPortableFileName reports whether name can be stored as a single file on
// every supported platform.
func IsPortableFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\:*?"<>|`) || strings.HasSuffix(name, ".") || strings.HasSuffix(name, " ") {
		return false
	}
	return !IsWindowsReservedName(name)
}
