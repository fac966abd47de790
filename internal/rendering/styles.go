// Package rendering projects CV records into presentation trees using interchangeable templates.
package rendering

import (
	"embed"
	"fmt"
	"sync"
)

//go:embed styles/*.css
var styleFiles embed.FS

var (
	styleCache   = make(map[string]string)
	styleCacheMu sync.RWMutex
)

// stylesheet returns the shared base rules followed by the rules for id.
// A template without its own file gets the base rules only.
func stylesheet(id string) string {
	styleCacheMu.RLock()
	css, ok := styleCache[id]
	styleCacheMu.RUnlock()
	if ok {
		return css
	}

	base, err := styleFiles.ReadFile("styles/base.css")
	if err != nil {
		panic(fmt.Sprintf("failed to load base stylesheet: %v", err))
	}
	css = string(base)
	if own, err := styleFiles.ReadFile("styles/" + id + ".css"); err == nil {
		css += "\n" + string(own)
	}

	styleCacheMu.Lock()
	styleCache[id] = css
	styleCacheMu.Unlock()
	return css
}
