package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"wtime/internal/app"
	"wtime/internal/domain"
	"wtime/internal/gesture"
)

const barWidth = 24

func holdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hold",
		Short: "Press and hold a button; Enter releases it",
	}
	cmd.AddCommand(holdUnlockCmd(), holdPanicCmd())
	return cmd
}

func holdUnlockCmd() *cobra.Command {
	var hold time.Duration
	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Hold the stopwatch start button",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			done := make(chan struct{})
			out := newProgressWriter(cmd.OutOrStdout())
			g := appCtx.UnlockGesture(out.feedback(), func() { close(done) })
			defer g.Close()

			press(cmd, g, hold, done)
			out.finish()

			switch {
			case appCtx.Mode() == app.ModeSafe:
				printf(cmd, "safe mode unlocked\n")
			case appCtx.Stopwatch.Running():
				printf(cmd, "stopwatch started at %s\n", appCtx.Stopwatch)
			default:
				printf(cmd, "released\n")
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&hold, "for", 0, "release automatically after this long instead of waiting for Enter")
	return cmd
}

func holdPanicCmd() *cobra.Command {
	var hold time.Duration
	cmd := &cobra.Command{
		Use:   "panic",
		Short: "Hold the panic button",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type result struct {
				report domain.AlertReport
				err    error
			}
			results := make(chan result, 1)
			done := make(chan struct{})
			out := newProgressWriter(cmd.OutOrStdout())

			g := appCtx.PanicGesture(out.feedback(),
				func() { close(done) },
				func(r domain.AlertReport, err error) { results <- result{r, err} },
			)
			defer g.Close()

			press(cmd, g, hold, done)
			out.finish()

			select {
			case <-done:
				r := <-results
				return printReport(cmd, r.report, r.err)
			default:
				printf(cmd, "released, nothing sent\n")
				return nil
			}
		},
	}
	cmd.Flags().DurationVar(&hold, "for", 0, "release automatically after this long instead of waiting for Enter")
	return cmd
}

// press holds g until it completes, Enter is read, the --for duration passes
// or the command is cancelled.
func press(cmd *cobra.Command, g *gesture.Hold, hold time.Duration, done <-chan struct{}) {
	var release <-chan time.Time
	enter := make(chan struct{})
	if hold > 0 {
		release = time.After(hold)
	} else {
		printf(cmd, "holding, press Enter to release\n")
		go func() {
			_, _ = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			close(enter)
		}()
	}

	if !g.Press() {
		return
	}
	select {
	case <-done:
		return
	case <-enter:
	case <-release:
	case <-cmd.Context().Done():
		g.Close()
		return
	}
	// A release at the threshold completes on this goroutine.
	g.Release()
}

// progressWriter renders hold progress as a bar on one terminal line.
type progressWriter struct {
	w io.Writer

	mu    sync.Mutex
	drawn bool
}

func newProgressWriter(w io.Writer) *progressWriter { return &progressWriter{w: w} }

func (p *progressWriter) feedback() gesture.Feedback {
	return gesture.Feedback{
		OnProgress: p.draw,
		OnPulse: func(n int) {
			p.mu.Lock()
			defer p.mu.Unlock()
			_, _ = fmt.Fprintf(p.w, " %d", n)
		},
	}
}

func (p *progressWriter) draw(progress float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if progress == 0 && !p.drawn {
		return
	}
	filled := int(progress * barWidth)
	_, _ = fmt.Fprintf(p.w, "\r[%s%s] %3.0f%%",
		strings.Repeat("#", filled), strings.Repeat(" ", barWidth-filled), progress*100)
	p.drawn = true
}

func (p *progressWriter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawn {
		_, _ = fmt.Fprintln(p.w)
	}
}

func printReport(cmd *cobra.Command, r domain.AlertReport, err error) error {
	switch r.Status {
	case domain.AlertSent:
		printf(cmd, "Emergency SMS sent to %d contacts.\n", len(r.Recipients))
		if !r.Located {
			printf(cmd, "Location was unavailable.\n")
		}
		return nil
	case domain.AlertNoContacts:
		printf(cmd, "Please add emergency contacts before using the panic button.\n")
	case domain.AlertSMSUnavailable:
		printf(cmd, "Cannot send SMS. Please call your emergency contacts manually:\n")
		for _, phone := range r.Recipients {
			printf(cmd, "  %s\n", phone)
		}
		printf(cmd, "Message: %q\n", r.Message)
	case domain.AlertFailed:
		printf(cmd, "Failed to send emergency alert. Please try again.\n")
	}
	if err == nil {
		err = errors.New("alert not sent")
	}
	return err
}
