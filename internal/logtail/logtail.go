package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path.
// maxLines <= 0 returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Level is the severity guessed from a log message.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// Entry is one standard-logger line split into its parts.
type Entry struct {
	Prefix  string // logger prefix such as "reel", may be empty
	Time    string // "2006/01/02 15:04:05", empty when the line has none
	Message string
	Level   Level
}

var stdLogLine = regexp.MustCompile(`^(?:(\S+) )?(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)?) (.*)$`)

// Split parses a line written by the standard logger. Lines in any other
// shape come back whole in Message.
func Split(line string) Entry {
	var e Entry
	if m := stdLogLine.FindStringSubmatch(line); m != nil {
		e.Prefix, e.Time, e.Message = m[1], m[2], m[3]
	} else {
		e.Message = line
	}
	e.Level = levelOf(e.Message)
	return e
}

func levelOf(msg string) Level {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "failed"), strings.Contains(lower, "panic"):
		return LevelError
	case strings.Contains(lower, "warn"), strings.Contains(lower, "retry"), strings.Contains(lower, "placeholder"):
		return LevelWarn
	default:
		return LevelInfo
	}
}

// Palette colorizes log lines for the log overlay.
type Palette struct {
	Prefix lipgloss.Style
	Time   lipgloss.Style
	Info   lipgloss.Style
	Warn   lipgloss.Style
	Error  lipgloss.Style
}

// Line renders one log line.
func (p Palette) Line(line string) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	e := Split(line)
	var b strings.Builder
	if e.Prefix != "" {
		b.WriteString(p.Prefix.Render(e.Prefix))
		b.WriteByte(' ')
	}
	if e.Time != "" {
		b.WriteString(p.Time.Render(e.Time))
		b.WriteByte(' ')
	}
	switch e.Level {
	case LevelError:
		b.WriteString(p.Error.Render(e.Message))
	case LevelWarn:
		b.WriteString(p.Warn.Render(e.Message))
	default:
		b.WriteString(p.Info.Render(e.Message))
	}
	return b.String()
}

// Lines renders every line.
func (p Palette) Lines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = p.Line(l)
	}
	return out
}
