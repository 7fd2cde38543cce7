// Package provenance writes the metadata text file kept next to each output raster.
package provenance

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/wgdzlh/rastool/grid"
	"github.com/wgdzlh/rastool/log"
	"github.com/wgdzlh/rastool/utils"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

const (
	FileSuffix = "_meta.txt"
	logTag     = "Provenance:"
)

// Record is what gets written for one run.
type Record struct {
	Tool        string
	Args        []string
	Output      string
	Description string
	Extent      orb.Bound
	HasExtent   bool
}

// Path returns the sidecar path for output.
func Path(output string) string {
	return utils.SiblingPath(output, FileSuffix)
}

// Revision is the VCS revision the binary was built from, or "unknown".
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value
		}
	}
	return "unknown"
}

func (r Record) text(now time.Time, runID, wd, rev string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "RUN ID: %s\n", runID)
	fmt.Fprintf(&b, "DATE: %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "TOOL: %s\n", r.Tool)
	fmt.Fprintf(&b, "COMMAND: %s\n", strings.Join(r.Args, " "))
	fmt.Fprintf(&b, "WORKING DIRECTORY: %s\n", wd)
	fmt.Fprintf(&b, "REVISION: %s\n", rev)
	fmt.Fprintf(&b, "OUTPUT: %s\n", r.Output)
	if r.HasExtent {
		fmt.Fprintf(&b, "EXTENT: %g %g %g %g\n", r.Extent.Min.X(), r.Extent.Min.Y(), r.Extent.Max.X(), r.Extent.Max.Y())
	}
	if r.Description != "" {
		fmt.Fprintf(&b, "DESCRIPTION: %s\n", r.Description)
	}
	return b.String()
}

// Write creates or replaces the sidecar of r.Output and returns its path.
func Write(r Record) (path string, err error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	path = Path(r.Output)
	body := r.text(time.Now(), uuid.NewString(), wd, Revision())
	if err = os.WriteFile(path, []byte(body), 0o644); err != nil {
		log.Error(logTag+"write meta failed", zap.String("path", path), zap.Error(err))
		return
	}
	log.Info(logTag+"meta written", zap.String("path", path))
	return
}

// ExtentOf fills the extent fields from raster meta.
func (r Record) ExtentOf(m grid.Meta) Record {
	r.Extent, r.HasExtent = m.Bound(), true
	return r
}
