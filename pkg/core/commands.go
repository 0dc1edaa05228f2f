package core

import (
	stderrors "errors"

	"github.com/arthur-debert/crules/pkg/errors"
	"github.com/arthur-debert/crules/pkg/filesystem"
	"github.com/arthur-debert/crules/pkg/logging"
	"github.com/arthur-debert/crules/pkg/paths"
	"github.com/arthur-debert/crules/pkg/rules"
	"github.com/arthur-debert/crules/pkg/ui/display"
)

// Mode names
const (
	ModeLegacy    = "legacy"
	ModeDirectory = "directory"
)

// GenerateOptions defines the options for GenerateRules
type GenerateOptions struct {
	// Languages are written after the global rules, in this order
	Languages []string
	// Force overwrites existing output without asking
	Force bool
	// Legacy overrides the configured mode when set
	Legacy *bool
}

// GenerateRules writes the rules for the requested languages in the
// configured mode
func GenerateRules(env *Env, opts GenerateOptions) (*display.RunSummary, error) {
	log := logging.GetLogger("core.commands")
	done := logging.LogOperationStart(log, "GenerateRules")
	defer done()

	legacy := env.Config.LegacyMode
	if opts.Legacy != nil {
		legacy = *opts.Legacy
	}

	summary := &display.RunSummary{Mode: ModeDirectory, Languages: opts.Languages}
	if legacy {
		summary.Mode = ModeLegacy
	}
	log.Debug().Str("mode", summary.Mode).Strs("languages", opts.Languages).Msg("Generating rules")

	if err := requireSources(env, opts.Languages); err != nil {
		return summary, err
	}

	if legacy {
		result, err := rules.NewLegacyWriter(env.FS, env.Diags, env.Confirmer).Write(rules.LegacyOptions{
			GlobalPath:  env.Config.GlobalRulesPath,
			LanguageDir: env.Config.LanguageRulesDir,
			Languages:   opts.Languages,
			Delimiter:   env.Config.Delimiter,
			OutputPath:  env.OutputPath(),
			IgnoreFile:  env.IgnorePath(),
			Force:       opts.Force,
		})
		if result != nil {
			summary.BackupPath = result.BackupPath
			summary.Cancelled = result.Cancelled
			summary.IgnoreAdded = result.IgnoreAdded
			if err == nil && !result.Cancelled {
				summary.Written = []string{result.OutputPath}
			}
		}
		summary.Messages = warnings(env.Diags)
		return summary, err
	}

	result, err := env.ManagedDir().WriteAll(rules.DirectoryOptions{
		GlobalPath:  env.Config.GlobalRulesPath,
		LanguageDir: env.Config.LanguageRulesDir,
		Languages:   opts.Languages,
		Force:       opts.Force,
		Backup:      env.Config.BackupExisting,
		IgnoreFile:  env.IgnorePath(),
	})
	if result != nil {
		summary.Written = result.Written
		summary.BackupPath = result.BackupPath
		summary.Cancelled = result.Cancelled
		summary.IgnoreAdded = result.IgnoreAdded
	}
	summary.Messages = warnings(env.Diags)
	return summary, err
}

// requireSources checks the inputs of a run, adding the setup suggestion
// when the config directory has not been seeded
func requireSources(env *Env, languages []string) error {
	err := env.resolver().CheckRequired(env.Config.GlobalRulesPath, env.Config.LanguageRulesDir, languages)
	if err == nil || !errors.IsErrorCode(err, errors.ErrNotFound) {
		return err
	}

	if !filesystem.IsFile(env.FS, env.Config.GlobalRulesPath) || !filesystem.IsDir(env.FS, env.Config.LanguageRulesDir) {
		var ce *errors.CrulesError
		if stderrors.As(err, &ce) {
			ce.WithDetail("suggestion", SetupSuggestion)
		}
	}
	return err
}

// SetupSuggestion is shown when the rule sources have not been created yet
const SetupSuggestion = "run 'crules --setup' to create the default rule files"

// ListLanguages returns the language rules available in the configured
// language directory
func ListLanguages(env *Env) (*display.LanguageList, error) {
	dir := env.Config.LanguageRulesDir
	available, err := env.resolver().ListAvailable(dir)
	if err != nil {
		return nil, err
	}

	ids, err := env.resolver().Languages(dir)
	if err != nil {
		return nil, err
	}

	list := &display.LanguageList{Directory: dir, Languages: []display.Language{}}
	for _, id := range ids {
		list.Languages = append(list.Languages, display.Language{
			ID:   id,
			File: paths.LangRulePrefix + id,
			Path: available[id],
		})
	}
	return list, nil
}

// ShowRules returns the source document of a language, or of the global
// rules for rules.GlobalID
func ShowRules(env *Env, id string) (*display.Document, error) {
	path := env.Config.GlobalRulesPath
	if id != rules.GlobalID {
		if err := paths.ValidateIdentifier(id); err != nil {
			return nil, err
		}
		path = paths.LangRuleFile(env.Config.LanguageRulesDir, id)
	}

	if !filesystem.IsFile(env.FS, path) {
		return nil, errors.Newf(errors.ErrNotFound, "no rules for %s", id).
			WithDetail("missing", []string{path}).
			WithDetail("suggestion", "run 'crules list' to see the available languages")
	}

	data, err := filesystem.ReadFile(env.FS, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	return &display.Document{ID: id, Path: path, Content: string(data)}, nil
}

// MatchRules returns the managed rule files whose globs apply to target
func MatchRules(env *Env, target string) (*display.MatchResult, error) {
	files, err := env.ManagedDir().Match(target)
	if err != nil {
		return nil, err
	}
	return &display.MatchResult{Target: target, Files: ruleFiles(files)}, nil
}

// Status reports the configuration, the rule sources and the current output
func Status(env *Env) (*display.StatusReport, error) {
	report := &display.StatusReport{
		Mode:        ModeDirectory,
		ConfigFile:  pathState(env, env.ConfigFile),
		GlobalRules: pathState(env, env.Config.GlobalRulesPath),
		LanguageDir: pathState(env, env.Config.LanguageRulesDir),
	}

	languages, err := env.resolver().Languages(env.Config.LanguageRulesDir)
	if err != nil {
		return nil, err
	}
	report.Languages = languages

	if env.Config.LegacyMode {
		report.Mode = ModeLegacy
		report.Output = pathState(env, env.OutputPath())
		return report, nil
	}

	dir := env.ManagedDir()
	report.Output = pathState(env, dir.RulesDir())
	files, err := dir.List()
	if err != nil {
		return nil, err
	}
	report.RuleFiles = ruleFiles(files)
	return report, nil
}

// Setup seeds the config directory with the bundled rule sources and the
// current configuration
func Setup(env *Env, force bool) (*display.SetupSummary, error) {
	log := logging.GetLogger("core.commands")
	done := logging.LogOperationStart(log, "Setup")
	defer done()

	result, err := rules.NewBootstrapper(env.FS, env.Templates, env.Diags).Setup(rules.SetupOptions{
		ConfigDir:   env.ConfigDir,
		GlobalPath:  env.Config.GlobalRulesPath,
		LanguageDir: env.Config.LanguageRulesDir,
		ConfigFile:  env.ConfigFile,
		Config:      env.Config,
		Force:       force,
	})

	summary := &display.SetupSummary{ConfigDir: env.ConfigDir}
	if result != nil {
		summary.Created = result.Created
		summary.Updated = result.Updated
		summary.Skipped = result.Skipped
		summary.Failed = result.Failed
	}
	return summary, err
}

func ruleFiles(files []rules.RuleFile) []display.RuleFile {
	out := make([]display.RuleFile, 0, len(files))
	for _, f := range files {
		rf := display.RuleFile{ID: f.ID, Path: f.Path}
		if f.Metadata != nil {
			rf.Description = f.Metadata.Description
			rf.Globs = f.Metadata.Globs
		}
		out = append(out, rf)
	}
	return out
}

func pathState(env *Env, path string) display.PathState {
	exists, _ := filesystem.Exists(env.FS, path)
	return display.PathState{Path: path, Exists: exists}
}

func warnings(diags *logging.Diagnostics) []display.Message {
	var out []display.Message
	for _, d := range diags.Filter(logging.LevelWarn) {
		out = append(out, display.Message{Level: display.LevelWarning, Text: d.Message})
	}
	return out
}
