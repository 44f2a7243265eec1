package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kk-code-lab/ansigen/internal/config"
	statepkg "github.com/kk-code-lab/ansigen/internal/state"
	"github.com/kk-code-lab/ansigen/internal/styling"
)

// RangeSpec is one styled range given on the command line.
type RangeSpec struct {
	Start, End int
	Foreground string
	Background string
	Bold       bool
	Underline  bool
}

// ParseRangeSpec parses "start:end[:option,...]" where options are
// fg=#hex, bg=#hex, bold and underline.
func ParseRangeSpec(s string) (RangeSpec, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 3)
	if len(parts) < 2 {
		return RangeSpec{}, fmt.Errorf("range %q: want start:end[:options]", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return RangeSpec{}, fmt.Errorf("range %q: bad start: %w", s, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return RangeSpec{}, fmt.Errorf("range %q: bad end: %w", s, err)
	}
	if start < 0 || end <= start {
		return RangeSpec{}, fmt.Errorf("range %q: need 0 <= start < end", s)
	}
	spec := RangeSpec{Start: start, End: end}
	if len(parts) == 3 {
		for _, opt := range strings.Split(parts[2], ",") {
			opt = strings.TrimSpace(opt)
			key, value, _ := strings.Cut(opt, "=")
			switch strings.ToLower(key) {
			case "":
			case "fg":
				if !styling.ParseColor(value).Valid {
					return RangeSpec{}, fmt.Errorf("range %q: invalid color %q", s, value)
				}
				spec.Foreground = value
			case "bg":
				if !styling.ParseColor(value).Valid {
					return RangeSpec{}, fmt.Errorf("range %q: invalid color %q", s, value)
				}
				spec.Background = value
			case "bold", "b":
				spec.Bold = true
			case "underline", "u":
				spec.Underline = true
			default:
				return RangeSpec{}, fmt.Errorf("range %q: unknown option %q", s, opt)
			}
		}
	}
	return spec, nil
}

// RenderBatch styles text with specs, applied in order, and returns the
// ANSI block.
func RenderBatch(cfg config.Config, text string, specs []RangeSpec) (string, error) {
	state := NewInitialState(cfg)
	reducer := statepkg.NewStateReducer()
	if _, err := reducer.Reduce(state, statepkg.SetTextAction{Text: text}); err != nil {
		return "", err
	}

	for _, spec := range specs {
		if spec.End > state.TextLen() {
			return "", fmt.Errorf("range %d:%d exceeds text length %d", spec.Start, spec.End, state.TextLen())
		}
		if err := applyRangeSpec(reducer, state, spec); err != nil {
			return "", err
		}
	}
	return state.ANSI(), nil
}

// RunBatch writes the ANSI block for text to w.
func RunBatch(w io.Writer, cfg config.Config, text string, specs []RangeSpec) error {
	out, err := RenderBatch(cfg, text, specs)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func applyRangeSpec(reducer *statepkg.StateReducer, state *statepkg.AppState, spec RangeSpec) error {
	fg := spec.Foreground
	if fg == "" {
		fg = state.DefaultStyle.Foreground.Hex()
	}
	bg := spec.Background
	if bg == "" {
		bg = state.DefaultStyle.Background.Hex()
	}

	actions := []statepkg.Action{
		statepkg.SetCurrentForegroundAction{Hex: fg},
		statepkg.SetCurrentBackgroundAction{Hex: bg},
		statepkg.SetCurrentBoldAction{Bold: spec.Bold},
		statepkg.SetCurrentUnderlineAction{Underline: spec.Underline},
	}
	// A range with neither color still records its attributes.
	if spec.Foreground != "" || spec.Background == "" {
		actions = append(actions, statepkg.DeclareRangeAction{Start: spec.Start, End: spec.End, Target: statepkg.TargetForeground})
	}
	if spec.Background != "" {
		actions = append(actions, statepkg.DeclareRangeAction{Start: spec.Start, End: spec.End, Target: statepkg.TargetBackground})
	}

	for _, action := range actions {
		if _, err := reducer.Reduce(state, action); err != nil {
			return fmt.Errorf("applying range %d:%d: %w", spec.Start, spec.End, err)
		}
	}
	return nil
}
