package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowikitext/internal/cli"
	"github.com/yaklabco/gowikitext/pkg/fsutil"
)

// testPageWithUnclosedTag leaves a div open, which the unclosed-tag check
// reports and the healer can repair.
const testPageWithUnclosedTag = "== Intro ==\nSome text <div>dangling\n"

var testBuildInfo = cli.BuildInfo{
	Version: "test",
	Commit:  "test",
	Date:    "test",
}

// writeTestPage places a wikitext page and a minimal config into a temp
// directory, so project and user configs cannot leak into the run.
func writeTestPage(t *testing.T, content string) (pagePath, cfgPath string) {
	t.Helper()

	tmpDir := t.TempDir()
	pagePath = filepath.Join(tmpDir, "page.wiki")
	require.NoError(t, os.WriteFile(pagePath, []byte(content), 0644))

	cfgPath = filepath.Join(tmpDir, ".gowikitext.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("# test configuration\n"), 0644))

	return pagePath, cfgPath
}

func runCommand(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()

	cmd := cli.NewRootCommand(testBuildInfo)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), err
}

func TestIntegration_AnalyzeJSONReportsUnclosedTag(t *testing.T) {
	t.Parallel()

	pagePath, cfgPath := writeTestPage(t, testPageWithUnclosedTag)

	stdout, err := runCommand(t,
		"analyze", "--config", cfgPath, "--format", "json", pagePath)

	require.ErrorIs(t, err, cli.ErrFindingsFound)

	var payload struct {
		Pages []struct {
			Path   string `json:"path"`
			Report struct {
				Findings []struct {
					Check    string `json:"check"`
					Healable bool   `json:"healable"`
				} `json:"findings"`
			} `json:"report"`
		} `json:"pages"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Len(t, payload.Pages, 1)

	var checks []string
	for _, f := range payload.Pages[0].Report.Findings {
		checks = append(checks, f.Check)
	}
	assert.Contains(t, checks, "unclosed-tag")
}

func TestIntegration_AnalyzeDisableCheck(t *testing.T) {
	t.Parallel()

	pagePath, cfgPath := writeTestPage(t, testPageWithUnclosedTag)

	_, err := runCommand(t,
		"analyze", "--config", cfgPath, "--disable", "unclosed-tag", pagePath)

	assert.NoError(t, err)
}

func TestIntegration_HealDryRunLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	pagePath, cfgPath := writeTestPage(t, testPageWithUnclosedTag)

	_, err := runCommand(t,
		"heal", "--config", cfgPath, "--dry-run", pagePath)
	require.NoError(t, err)

	content, readErr := os.ReadFile(pagePath)
	require.NoError(t, readErr)
	assert.Equal(t, testPageWithUnclosedTag, string(content))

	_, statErr := os.Stat(pagePath + fsutil.BackupSuffix)
	assert.True(t, os.IsNotExist(statErr), "dry-run must not create backups")
}

func TestIntegration_HealRepairsAndBacksUp(t *testing.T) {
	t.Parallel()

	pagePath, cfgPath := writeTestPage(t, testPageWithUnclosedTag)

	_, err := runCommand(t, "heal", "--config", cfgPath, pagePath)
	require.NoError(t, err)

	healed, readErr := os.ReadFile(pagePath)
	require.NoError(t, readErr)
	assert.True(t, strings.HasSuffix(string(healed), "</div>"),
		"expected closing tag appended, got %q", string(healed))

	backup, backupErr := os.ReadFile(pagePath + fsutil.BackupSuffix)
	require.NoError(t, backupErr)
	assert.Equal(t, testPageWithUnclosedTag, string(backup))
}

func TestIntegration_HealNoBackupsFlag(t *testing.T) {
	t.Parallel()

	pagePath, cfgPath := writeTestPage(t, testPageWithUnclosedTag)

	_, err := runCommand(t, "heal", "--config", cfgPath, "--no-backups", pagePath)
	require.NoError(t, err)

	_, statErr := os.Stat(pagePath + fsutil.BackupSuffix)
	assert.True(t, os.IsNotExist(statErr))
}

func TestIntegration_InspectJSON(t *testing.T) {
	t.Parallel()

	pagePath, cfgPath := writeTestPage(t,
		"== Intro ==\n{{Infobox|name=Ada}} and [[Ada Lovelace]]\n")

	// inspect writes JSON to the process stdout, so only assert success here.
	_, err := runCommand(t, "inspect", "--config", cfgPath, "--format", "json", pagePath)
	require.NoError(t, err)
}
