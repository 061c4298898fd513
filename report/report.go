// Package report writes measurement status lines to the diagnostic
// stream. Rates carry locale-aware thousands separators so a ten-digit
// calls-per-second figure stays readable; everything goes to the
// writer the caller supplies (stderr in the driver) so results survive
// stdout redirection.
package report

import (
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Printer formats rate and ratio lines onto one writer.
type Printer struct {
	w io.Writer
	p *message.Printer
}

// NewPrinter creates a Printer whose number formatting follows the
// process locale (LC_ALL, LC_NUMERIC, LANG), falling back to English.
func NewPrinter(w io.Writer) *Printer {
	return NewPrinterFor(w, localeTag())
}

// NewPrinterFor creates a Printer with an explicit locale.
func NewPrinterFor(w io.Writer, tag language.Tag) *Printer {
	return &Printer{
		w: w,
		p: message.NewPrinter(tag),
	}
}

// WorkloadRate writes the per-run status line for a workload run, e.g.
//
//	low IPC (rdtscp) loops/s 1,234,567
//	low IPC (no rdtscp) loops/s 1,534,567
//
// The "no" marker means sampling was suppressed for the run.
func (p *Printer) WorkloadRate(workload, clock string, suppressed bool, callsPerSec uint64) {
	marker := ""
	if suppressed {
		marker = "no "
	}

	p.p.Fprintf(p.w, "%s (%s%s) loops/s %d\n", workload, marker, clock, callsPerSec)
}

// SamplerRate writes the status line for a sampler-only run, e.g.
//
//	rdtscp calls/s 45,678,901
func (p *Printer) SamplerRate(clock string, callsPerSec uint64) {
	p.p.Fprintf(p.w, "%s calls/s %d\n", clock, callsPerSec)
}

// Ratio writes the comparison ratio: the sampled rate divided by the
// suppressed rate.
func (p *Printer) Ratio(ratio float64) {
	p.p.Fprintf(p.w, "ratio %.2f\n", ratio)
}

func localeTag() language.Tag {
	for _, env := range []string{
		os.Getenv("LC_ALL"),
		os.Getenv("LC_NUMERIC"),
		os.Getenv("LANG"),
	} {
		if env == "" || env == "C" || env == "POSIX" {
			continue
		}

		// POSIX locale names look like "en_US.UTF-8"; strip the charset
		// suffix and use BCP 47 subtag separators.
		if i := strings.IndexByte(env, '.'); i >= 0 {
			env = env[:i]
		}
		env = strings.ReplaceAll(env, "_", "-")

		if tag, err := language.Parse(env); err == nil {
			return tag
		}
	}

	return language.English
}
