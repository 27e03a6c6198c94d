package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
	"sync"
)

// VersionInfo describes the running build
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Commit    string `json:"commit,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// Version may be set with -ldflags "-X .../handler.Version=v1.2.0"
var Version = ""

var buildInfo = sync.OnceValue(func() VersionInfo {
	info := VersionInfo{
		Version:   resolveVersion(Version, os.Getenv("VERSION")),
		GoVersion: runtime.Version(),
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
		case "vcs.time":
			info.BuiltAt = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
})

// resolveVersion prefers the linked-in version, then the environment
func resolveVersion(linked, env string) string {
	for _, v := range []string{linked, env} {
		if v != "" && v != "dev" {
			return v
		}
	}
	return "dev"
}

// HandleVersion reports the build version and VCS stamp
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, buildInfo())
	}
}
