package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fileLinePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - [A-Z]+: `)

func TestFileWriterFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(NewFileWriter(&buf)).With().Timestamp().Logger()

	logger.Info().Msg("resolved 3 supported versions")
	logger.Warn().Msg("removal failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, fileLinePattern, lines[0])
	assert.Contains(t, lines[0], "- INFO: resolved 3 supported versions")
	assert.Contains(t, lines[1], "- WARNING: removal failed")
}

func TestQuietSuppressesConsoleInfoButNotFile(t *testing.T) {
	var console bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "upkeep.log")

	logger, closeFile, err := New(Options{Quiet: true, FilePath: logPath, ConsoleOut: &console})
	require.NoError(t, err)

	logger.Debug().Msg("exit status 0")
	logger.Info().Msg("quiet info")
	logger.Warn().Msg("loud warning")
	require.NoError(t, closeFile())

	assert.NotContains(t, console.String(), "exit status 0")
	assert.NotContains(t, console.String(), "quiet info")
	assert.Contains(t, console.String(), "loud warning")

	fileContent, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(fileContent), "- DEBUG: exit status 0")
	assert.Contains(t, string(fileContent), "- INFO: quiet info")
	assert.Contains(t, string(fileContent), "- WARNING: loud warning")
}

func TestNewAppendsToExistingLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "upkeep.log")

	for _, msg := range []string{"first run", "second run"} {
		logger, closeFile, err := New(Options{FilePath: logPath, ConsoleOut: &bytes.Buffer{}})
		require.NoError(t, err)
		logger.Info().Msg(msg)
		require.NoError(t, closeFile())
	}

	fileContent, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(fileContent), "first run")
	assert.Contains(t, string(fileContent), "second run")
}

func TestNewWithoutFilePath(t *testing.T) {
	var console bytes.Buffer

	logger, closeFile, err := New(Options{ConsoleOut: &console})
	require.NoError(t, err)
	logger.Info().Msg("console only")
	require.NoError(t, closeFile())

	assert.Contains(t, console.String(), "console only")
}
