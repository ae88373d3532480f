package presenter

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestPresenter() (*TerminalPresenter, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewWithOptions(out, errOut, ColorNever), out, errOut
}

func TestError(t *testing.T) {
	p, out, errOut := newTestPresenter()

	p.Error(errors.New("boom"), "failed to parse skill")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "[ERROR] failed to parse skill: boom")

	errOut.Reset()
	p.Error(nil, "nothing")
	assert.Empty(t, errOut.String())
}

func TestSuccessAndWarning(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Success("exported skill")
	p.Warning("no workflows found")

	assert.Contains(t, out.String(), "✓ exported skill")
	assert.Contains(t, out.String(), "⚠ no workflows found")
}

func TestQuietModeSuppressesOutput(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.SetQuiet(true)

	p.Success("hidden")
	p.Warning("hidden")
	p.Info("hidden")
	p.Section("hidden")
	assert.Empty(t, out.String())

	// Errors are never suppressed.
	p.Error(errors.New("boom"), "")
	assert.Contains(t, errOut.String(), "boom")
	assert.True(t, p.IsQuiet())
}

func TestSection(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Section("Skills")
	assert.Contains(t, out.String(), "Skills\n------\n")
}
