package debug

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/dcrodman/slash/internal/core"
)

// StartUtilities spins off the services associated with debug mode.
func StartUtilities(logger *logrus.Logger, cfg *core.Config) {
	if !cfg.Debugging.Enabled {
		return
	}
	startPprofServer(logger, cfg.Debugging.PprofPort)
}

// This function starts the default pprof HTTP server that can be accessed via localhost
// to get runtime information about the simulation. See https://golang.org/pkg/net/http/pprof/
func startPprofServer(logger *logrus.Logger, port int) {
	listenerAddr := fmt.Sprintf("localhost:%d", port)
	logger.Infof("starting pprof server on %s", listenerAddr)

	go func() {
		if err := http.ListenAndServe(listenerAddr, nil); err != nil {
			logger.Infof("error starting pprof server: %s", err)
		}
	}()
}

// Dumper writes full structural dumps of simulation state to the log.
type Dumper struct {
	logger  *logrus.Logger
	enabled bool
	config  *spew.ConfigState
}

func NewDumper(logger *logrus.Logger, cfg *core.Config) *Dumper {
	return &Dumper{
		logger:  logger,
		enabled: cfg.Debugging.StateDumpsEnabled,
		config: &spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		},
	}
}

func (d *Dumper) Enabled() bool { return d != nil && d.enabled }

// Dump logs label followed by a dump of each value at debug level.
func (d *Dumper) Dump(label string, values ...interface{}) {
	if !d.Enabled() {
		return
	}
	d.logger.Debugf("%s:\n%s", label, strings.TrimRight(d.config.Sdump(values...), "\n"))
}
