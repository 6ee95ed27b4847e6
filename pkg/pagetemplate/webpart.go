// SPDX-License-Identifier: MPL-2.0

package pagetemplate

// WebPart is a sub-component attached to a web part zone of a page.
type WebPart struct {
	// Title identifies the web part on its page. Synchronization de-duplicates by title.
	Title string `json:"title"`
	// Contents is the web part definition markup; it may contain tokens.
	Contents string `json:"contents"`
	// Zone is the web part zone on the page layout.
	Zone string `json:"zone"`
	// Order is the position within the zone.
	Order int `json:"order"`
}
