// Package templates holds the templ components for the HTML pages and HTMX partials
package templates

//go:generate templ generate

import (
	"fmt"
	"strconv"
	"strings"

	"video-downloader/pkg/models"
)

// QualityOptions are the picker labels, indexed like models.QualityFromIndex
var QualityOptions = []string{"best", "high", "medium"}

// HomeData is everything the home page shows
type HomeData struct {
	Platforms []string
	Entries   []models.HistoryEntry
	Reachable bool
	Toast     string
}

func historyPath(id int64) string {
	return fmt.Sprintf("/history/%d", id)
}

func entryID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func optionValue(index int) string {
	return strconv.Itoa(index)
}

func platformList(names []string) string {
	return strings.Join(names, ", ")
}
