// SPDX-License-Identifier: MPL-2.0

package site

import (
	"context"
	"path"

	"github.com/pubpages/pubpages/internal/layout"
)

// PageLibrary is the library holding every publishing page of a site.
const PageLibrary = "Pages"

const (
	// CheckinMinor checks a file in as a minor (draft) version.
	CheckinMinor CheckinType = iota
	// CheckinMajor checks a file in as a major version.
	CheckinMajor
	// CheckinOverwrite checks a file in without creating a new version.
	CheckinOverwrite
)

const (
	// LevelCheckedOut marks a file checked out for editing.
	LevelCheckedOut PublishLevel = "checkout"
	// LevelDraft marks a checked-in file whose latest version is not published.
	LevelDraft PublishLevel = "draft"
	// LevelPublished marks a file whose latest version is published.
	LevelPublished PublishLevel = "published"
)

type (
	// CheckinType selects the version created by a check-in.
	CheckinType int

	// PublishLevel is the lifecycle state of a file.
	PublishLevel string

	// Info describes the site itself.
	Info struct {
		ServerRelativeURL string
		Title             string
	}

	// File is the metadata of a file in the site.
	File struct {
		ServerRelativeURL string
		Name              string
		Level             PublishLevel
		MajorVersion      int
		MinorVersion      int
	}

	// PageCreation is the request to create a publishing page.
	PageCreation struct {
		Name   string
		Layout layout.Record
	}

	// WebPartDefinition is the request to attach a web part to a page.
	WebPartDefinition struct {
		Title string
		XML   string
		Zone  string
		Index int
	}

	// AttachedWebPart is a web part already present on a page.
	AttachedWebPart struct {
		ID    string
		Title string
		Zone  string
		Index int
	}

	// FileGetter is the narrow capability used by Probe.
	FileGetter interface {
		GetFile(ctx context.Context, serverRelativeURL string) (File, error)
	}

	// Client is the remote publishing site. Implementations are not required to be
	// safe for concurrent use.
	Client interface {
		FileGetter

		// Info returns the site URL and title.
		Info(ctx context.Context) (Info, error)
		// IsPublishingSite reports whether publishing pages are enabled.
		IsPublishingSite(ctx context.Context) (bool, error)
		// PageLayouts returns the layout catalog.
		PageLayouts(ctx context.Context) ([]layout.Record, error)

		// HomePage returns the welcome page relative to the site, e.g. "Pages/Home.aspx".
		// An empty string means no welcome page is set.
		HomePage(ctx context.Context) (string, error)
		// SetHomePage points the welcome page at a site-relative path.
		SetHomePage(ctx context.Context, relativePath string) error
		// ClearHomePage removes the welcome page setting.
		ClearHomePage(ctx context.Context) error

		// DeleteFile removes a file.
		DeleteFile(ctx context.Context, serverRelativeURL string) error
		// CreatePublishingPage creates a page and returns its server-relative URL.
		CreatePublishingPage(ctx context.Context, req PageCreation) (string, error)
		// SetPageFields writes custom field values on a page.
		SetPageFields(ctx context.Context, serverRelativeURL string, fields map[string]string) error

		// WebParts lists the web parts attached to a page.
		WebParts(ctx context.Context, serverRelativeURL string) ([]AttachedWebPart, error)
		// AddWebPart attaches a web part to a page.
		AddWebPart(ctx context.Context, serverRelativeURL string, def WebPartDefinition) error

		// CheckIn checks a file in.
		CheckIn(ctx context.Context, serverRelativeURL, comment string, kind CheckinType) error
		// Publish publishes the checked-in version of a file.
		Publish(ctx context.Context, serverRelativeURL, comment string) error
	}
)

// String returns the check-in type name.
func (c CheckinType) String() string {
	switch c {
	case CheckinMinor:
		return "minor"
	case CheckinMajor:
		return "major"
	case CheckinOverwrite:
		return "overwrite"
	default:
		return "unknown"
	}
}

// PageURL returns the server-relative URL of the page name in the page library of siteURL.
func PageURL(siteURL, name string) string {
	return path.Join("/", siteURL, PageLibrary, name)
}

// RelativeTo returns serverRelativeURL relative to siteURL, without a leading slash.
func RelativeTo(siteURL, serverRelativeURL string) string {
	base := path.Join("/", siteURL)
	full := path.Join("/", serverRelativeURL)
	if base == "/" {
		return full[1:]
	}
	if len(full) > len(base) && full[:len(base)] == base && full[len(base)] == '/' {
		return full[len(base)+1:]
	}
	return full[1:]
}
