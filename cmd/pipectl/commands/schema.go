package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/StWron/customnode4portfolio/internal/printer"
	"github.com/StWron/customnode4portfolio/internal/settings"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

var schemaAssetRoot string

var schemaCmd = &cobra.Command{
	Use:   "schema CATEGORY",
	Short: "Preview the parameter schema of a category",
	Long: `Preview the parameter schema a settings node synthesizes for one
category, by scanning the category's setting folder exactly as the node
does at load time.

CATEGORY is a category folder name (01_Background ... 06_Audio); a bare
prefix like "03" or "Character" also works.

Examples:
  # Preview the character schema
  pipectl schema 03_Character

  # Same, by prefix
  pipectl schema 03

  # Scan a different asset root
  pipectl schema 06_Audio --root /mnt/shared/Asset_Library`,
	Args: cobra.ExactArgs(1),
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaAssetRoot, "root", "r", "", "Asset root to scan (defaults to the configured asset root)")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	category, err := resolveCategory(args[0])
	if err != nil {
		return err
	}

	root := schemaAssetRoot
	if root == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		root = cfg.Asset.Root
	}

	dir := filepath.Join(root, category)
	params, err := settings.Scan(dir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	if len(params) == 0 {
		printer.Info("No parameters declared under %s\n", filepath.Join(dir, settings.SettingDirName))
		printer.Info("Scaffold defaults with:\n  pipectl init --root %s\n", root)
		return nil
	}

	printer.Printf("Schema for %s (%d parameters):\n\n", category, len(params))
	printer.Printf("%-24s %-8s %-20s %s\n", "NAME", "TYPE", "DEFAULT", "RANGE / OPTIONS")
	printer.Printf("%-24s %-8s %-20s %s\n", "------------------------", "--------", "--------------------", "----------------------------------------")
	for _, p := range params {
		printer.Printf("%-24s %-8s %-20v %s\n", p.Name, p.Kind, p.Default, paramDetail(p))
	}
	return nil
}

// resolveCategory matches user input against the declared categories,
// accepting the full folder name or any unambiguous substring.
func resolveCategory(arg string) (string, error) {
	var matches []string
	for _, c := range pipeline.Categories() {
		if c == arg {
			return c, nil
		}
		if strings.Contains(strings.ToLower(c), strings.ToLower(arg)) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", printer.Error(
			fmt.Sprintf("unknown category '%s'", arg),
			"No category folder matches that name.",
			[]string{fmt.Sprintf("Valid categories:\n  %s", strings.Join(pipeline.Categories(), "\n  "))},
		)
	default:
		return "", printer.Error(
			fmt.Sprintf("ambiguous category '%s'", arg),
			fmt.Sprintf("Matches: %s", strings.Join(matches, ", ")),
			[]string{"Use the full folder name"},
		)
	}
}

// paramDetail renders the kind-specific tail column of the schema table.
func paramDetail(p settings.Param) string {
	switch p.Kind {
	case settings.ParamFloat, settings.ParamInt:
		return fmt.Sprintf("min %v, max %v, step %v", p.Min, p.Max, p.Step)
	case settings.ParamCombo, settings.ParamError:
		return strings.Join(p.Options, ", ")
	default:
		return ""
	}
}
