package debug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/dcrodman/slash/internal/core"
)

type sample struct {
	Name  string
	Zoom  float64
	Items map[string]int
}

func TestDumper(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	cfg := &core.Config{}
	cfg.Debugging.StateDumpsEnabled = true
	d := NewDumper(logger, cfg)

	d.Dump("after Equip", sample{Name: "Slash", Zoom: 0.5, Items: map[string]int{"b": 2, "a": 1}})

	out := buf.String()
	for _, want := range []string{"after Equip", "(len=5)", "Slash", "Zoom: (float64) 0.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestDumper_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	d := NewDumper(logger, &core.Config{})
	d.Dump("ignored", sample{Name: "Slash"})
	if buf.Len() != 0 {
		t.Errorf("disabled dumper wrote output:\n%s", buf.String())
	}

	var nilDumper *Dumper
	nilDumper.Dump("ignored", 1)
}
