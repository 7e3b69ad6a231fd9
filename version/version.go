// Package version exposes build metadata.
package version

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Set with -ldflags "-X github.com/zircuit-labs/zkr-go-iter/version.gitCommit=..." when no
// version file is shipped alongside the binary.
var (
	gitCommit string
	gitDate   string
	gitBranch string
	release   = "dev"
)

const versionFile = "/etc/version.json"

type Information struct {
	GitCommit string    `json:"git_commit"`
	GitDate   string    `json:"git_date"`
	GitBranch string    `json:"git_branch"`
	Version   string    `json:"version"`
	Meta      string    `json:"meta"`
	Date      time.Time `json:"-"`
}

var Info = Information{
	GitCommit: gitCommit,
	GitDate:   gitDate,
	GitBranch: gitBranch,
	Version:   release,
}

func init() {
	if file, err := os.ReadFile(versionFile); err == nil {
		_ = json.Unmarshal(file, &Info)
	}
	Info.Date = parseDate(Info.GitDate)
}

// String formats the version for humans, eg `v1.2.0 (abc1234, main)`.
func (i Information) String() string {
	s := i.Version
	if i.Meta != "" {
		s += "-" + i.Meta
	}
	if i.GitCommit == "" {
		return s
	}
	commit := i.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if i.GitBranch == "" {
		return fmt.Sprintf("%s (%s)", s, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", s, commit, i.GitBranch)
}

func parseDate(s string) time.Time {
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return d.UTC()
}
