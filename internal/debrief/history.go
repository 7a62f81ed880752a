package debrief

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type historyFrontmatter struct {
	RunID      string        `yaml:"run_id"`
	Date       string        `yaml:"date"`
	StartedAt  time.Time     `yaml:"started_at"`
	FinishedAt time.Time     `yaml:"finished_at"`
	Error      string        `yaml:"error,omitempty"`
	Entries    []UserOutcome `yaml:"entries,omitempty"`
}

// SaveReport persists a run report under dir as a dated markdown file with
// YAML frontmatter. Filename: {date}-{run-id-prefix}.md
func SaveReport(dir string, report *RunReport) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	fm := historyFrontmatter{
		RunID:      report.RunID,
		Date:       report.Date,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Error:      report.Err,
		Entries:    report.Entries,
	}

	fmYAML, err := yaml.Marshal(fm)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	content := fmt.Sprintf("---\n%s---\n\n%s", string(fmYAML), report.Render())

	filename := fmt.Sprintf("%s-%s.md", report.Date, report.RunID[:8])
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	return nil
}

// LoadRecent loads the most recent run reports from dir, newest first. A
// missing directory yields no reports and no error.
func LoadRecent(dir string, limit int) ([]*RunReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var reports []*RunReport

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		report, err := parseReportFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}

		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].StartedAt.After(reports[j].StartedAt)
	})

	if len(reports) > limit {
		reports = reports[:limit]
	}

	return reports, nil
}

func parseReportFile(path string) (*RunReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	reader := bufio.NewReader(bytes.NewReader(content))

	firstLine, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(firstLine) != "---" {
		return nil, fmt.Errorf("invalid report format: missing frontmatter")
	}

	var frontmatter strings.Builder
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unterminated frontmatter: %w", err)
		}
		if strings.TrimSpace(line) == "---" {
			break
		}
		frontmatter.WriteString(line)
	}

	var fm historyFrontmatter
	if err := yaml.Unmarshal([]byte(frontmatter.String()), &fm); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}

	return &RunReport{
		RunID:      fm.RunID,
		Date:       fm.Date,
		StartedAt:  fm.StartedAt,
		FinishedAt: fm.FinishedAt,
		Err:        fm.Error,
		Entries:    fm.Entries,
	}, nil
}
