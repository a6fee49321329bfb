package cli

import (
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/pipeline"
)

// completionScripts writes each shell's completion script for root.
var completionScripts = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// completionCommand prints a shell completion script. Variant names complete
// from the document given as the first argument of render, list, or outline.
func (c *CLI) completionCommand() *cobra.Command {
	shells := make([]string, 0, len(completionScripts))
	for name := range completionScripts {
		shells = append(shells, name)
	}
	sort.Strings(shells)

	return &cobra.Command{
		Use:   "completion [" + strings.Join(shells, "|") + "]",
		Short: "Generate shell completion scripts",
		Example: `  source <(logoslidemaker completion bash)
  logoslidemaker completion zsh > "${fpath[1]}/_logoslidemaker"
  logoslidemaker completion fish > ~/.config/fish/completions/logoslidemaker.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionScripts[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// documentArgs completes the document argument with TOML and YAML files.
func documentArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeVariants completes --variant with the names declared in the
// document argument.
func completeVariants(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	def, err := pipeline.Load(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return variantNames(def), cobra.ShellCompDirectiveNoFileComp
}

func variantNames(def *definition.Definition) []string {
	variants := def.EffectiveVariants()
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	return names
}

// completeFormats completes --format with the supported output formats.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return pipeline.FormatNames(), cobra.ShellCompDirectiveNoFileComp
}
