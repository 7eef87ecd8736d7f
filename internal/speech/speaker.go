package speech

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/MrSnakeDoc/learnwords/internal/logger"
)

// DefaultLanguage is the only voice the app speaks with.
const DefaultLanguage = "en-US"

// Speaker performs speech synthesis for a single utterance.
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
}

// LogSpeaker records utterances in the log instead of producing audio.
// It is the default when no synthesiser command is configured.
type LogSpeaker struct {
	logger logger.Logger
}

func NewLogSpeaker(log logger.Logger) *LogSpeaker {
	return &LogSpeaker{logger: log}
}

func (s *LogSpeaker) Speak(_ context.Context, text, lang string) error {
	s.logger.Info("speak",
		logger.String("text", text),
		logger.String("lang", lang))
	return nil
}

// CommandSpeaker shells out to a host synthesiser such as espeak-ng or say.
//
// The command line is built as: Command Args... -v <voice> -- <text>
// where voice is the lowercased language tag (en-US -> en-us). macOS say
// takes voice names rather than language tags, so it gets no voice flag.
type CommandSpeaker struct {
	Command   string
	Args      []string
	VoiceFlag string // defaults to "-v"; empty string disables voice selection
	logger    logger.Logger
}

// NewCommandSpeaker parses a command line like "espeak-ng -s 140".
func NewCommandSpeaker(commandLine string, log logger.Logger) (*CommandSpeaker, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty speech command")
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, fmt.Errorf("speech command %q not found: %w", fields[0], err)
	}
	return &CommandSpeaker{
		Command:   fields[0],
		Args:      fields[1:],
		VoiceFlag: voiceFlagFor(fields[0]),
		logger:    log,
	}, nil
}

func voiceFlagFor(command string) string {
	switch filepath.Base(command) {
	case "say":
		return ""
	default:
		return "-v"
	}
}

func (s *CommandSpeaker) Speak(ctx context.Context, text, lang string) error {
	cmd := exec.CommandContext(ctx, s.Command, s.buildArgs(text, lang)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		s.logger.Warn("speech command failed",
			logger.String("command", s.Command),
			logger.String("output", strings.TrimSpace(string(out))),
			logger.Error(err))
		return fmt.Errorf("speech command %s: %w", s.Command, err)
	}
	s.logger.Debug("spoke",
		logger.String("text", text),
		logger.String("lang", lang))
	return nil
}

func (s *CommandSpeaker) buildArgs(text, lang string) []string {
	args := make([]string, 0, len(s.Args)+3)
	args = append(args, s.Args...)
	if s.VoiceFlag != "" && lang != "" {
		args = append(args, s.VoiceFlag, strings.ToLower(lang))
	}
	// "--" keeps words starting with a dash from being read as flags
	return append(args, "--", text)
}

// New picks a CommandSpeaker when commandLine is set, otherwise a LogSpeaker.
func New(commandLine string, log logger.Logger) (Speaker, error) {
	if strings.TrimSpace(commandLine) == "" {
		return NewLogSpeaker(log), nil
	}
	return NewCommandSpeaker(commandLine, log)
}
