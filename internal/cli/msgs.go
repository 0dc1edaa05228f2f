package cli

import (
	"embed"
	"io/fs"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Combine cursor rules for your project's languages"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgListShort       = "List available language rules"
	MsgSetupShort      = "Create the config directory and default rule files"
	MsgSetupLong       = "Setup creates the config directory, seeds the bundled language rules and the global rules document, and writes the settings file. Existing files are kept unless --force is given."
	MsgShowShort       = "Show the rules of a language, or 'global'"
	MsgMatchShort      = "List the rule files that apply to a path"
	MsgStatusShort     = "Show configuration and rule file status"
	MsgGenConfigShort  = "Print the default configuration"
	MsgGenConfigLong   = "Print the default configuration with every setting commented out. With --write it is saved as config.yaml in the config directory."
	MsgCompletionShort = "Generate shell completion script"

	// Version output
	MsgVersionFormat = "crules version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Errors
	MsgErrNoLanguages = "please specify at least one language or use --list to see available options"
	MsgErrLoadConfig  = "failed to load configuration: %w"

	// Status messages
	MsgConfigWritten = "Wrote default configuration to %s"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagForce     = "Overwrite existing files without asking. With --setup, replace existing rule files"
	MsgFlagList      = "List available language rules"
	MsgFlagSetup     = "Create or update the config directory and rule files"
	MsgFlagLegacy    = "Write a single .cursorrules file"
	MsgFlagDir       = "Write one file per source into .cursor/rules"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagConfig    = "Settings file to use instead of the one in the config directory"
	MsgFlagDirectory = "Run as if crules was started in this directory"
	MsgFlagWrite     = "Write config.yaml to the config directory"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/match-long.txt
	msgMatchLongRaw string
	MsgMatchLong    = strings.TrimSpace(msgMatchLongRaw)
)

//go:embed help
var helpFS embed.FS

// helpTopics returns the embedded help topic files
func helpTopics() fs.FS {
	sub, err := fs.Sub(helpFS, "help")
	if err != nil {
		panic(err)
	}
	return sub
}
