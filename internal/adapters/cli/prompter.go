// Package cli holds the interactive menus behind cmd/booking and cmd/storagectl.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

// ErrAborted is returned by every prompt once input is closed or the context ends.
var ErrAborted = errors.New("input aborted")

const minYear = 1900

type Prompter struct {
	ctx   context.Context
	lines <-chan string
	out   io.Writer
}

// NewPrompter reads lines from in on a background goroutine so prompts can
// give up when ctx is cancelled.
func NewPrompter(ctx context.Context, in io.Reader, out io.Writer) *Prompter {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return &Prompter{ctx: ctx, lines: ch, out: out}
}

func (p *Prompter) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) errorf(format string, args ...any) {
	p.Printf("Error: "+format+"\n", args...)
}

// Line prints label and returns the next trimmed line.
func (p *Prompter) Line(label string) (string, error) {
	p.Printf("%s", label)
	select {
	case <-p.ctx.Done():
		return "", ErrAborted
	case s, ok := <-p.lines:
		if !ok {
			return "", ErrAborted
		}
		return strings.TrimSpace(s), nil
	}
}

// String re-prompts until a non-empty answer of at most maxLen runes.
func (p *Prompter) String(label, what string, maxLen int) (string, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return "", err
		}
		switch {
		case s == "":
			p.errorf("%s cannot be empty. Please try again.", what)
		case maxLen > 0 && len([]rune(s)) > maxLen:
			p.errorf("%s is too long.", what)
		default:
			return s, nil
		}
	}
}

// Int re-prompts until a whole number in [lo, hi].
func (p *Prompter) Int(label string, lo, hi int) (int, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			p.errorf("please enter a whole number.")
			continue
		}
		if n < lo || n > hi {
			p.errorf("value must be between %d and %d.", lo, hi)
			continue
		}
		return n, nil
	}
}

// IntDefault is Int where an empty answer means def.
func (p *Prompter) IntDefault(label string, def, lo, hi int) (int, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		if s == "" {
			return def, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < lo || n > hi {
			p.errorf("please enter a whole number between %d and %d.", lo, hi)
			continue
		}
		return n, nil
	}
}

// Positive re-prompts until a number greater than zero.
func (p *Prompter) Positive(label string) (float64, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			p.errorf("please enter a valid number.")
			continue
		}
		if !domain.PositiveAmount(v) {
			p.errorf("value must be positive.")
			continue
		}
		return v, nil
	}
}

func (p *Prompter) YesNo(label string) (bool, error) {
	for {
		s, err := p.Line(label + " (y/n): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.errorf("please enter y or n.")
	}
}

// Date re-prompts until a real calendar date in d/m/yyyy form.
func (p *Prompter) Date(label string) (time.Time, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return time.Time{}, err
		}
		if s == "" {
			p.errorf("date cannot be empty.")
			continue
		}
		t, err := ParseDate(s)
		if err != nil {
			p.errorf("invalid date. Use d/m/yyyy.")
			continue
		}
		return t, nil
	}
}

// ParseDate accepts d/m/yyyy with one or two digit day and month, a four
// digit year from 1900 on, and a day that exists in that month.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(app.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	if t.Year() < minYear {
		return time.Time{}, fmt.Errorf("year %d is before %d", t.Year(), minYear)
	}
	return t, nil
}
