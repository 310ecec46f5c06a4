package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rpupo63/bsd-portfolio/editor"
)

var formFile string

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "List, edit and delete projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with their edit tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := api.ListProjects(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTOKEN\tTITLE\tCATEGORY\tTYPE")
		for _, p := range projects {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, codec.Encode(p.ID), p.Title, p.Category, p.Type)
		}
		return w.Flush()
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <id|token>",
	Short: "Print the form of a project as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := codec.Resolve(args[0])
		if err != nil {
			return err
		}

		e := editor.NewEditor(editor.NewStore(), api, id, logger)
		if err := e.Load(cmd.Context()); err != nil {
			return err
		}
		return writeForm(cmd.OutOrStdout(), e.Store().Snapshot())
	},
}

var projectValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a form file without sending it",
	Long: `Check a form file without sending it.

A testimonial rating must be between 1 and 5; a missing rating reads as 0 and is reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadForm(cmd.InOrStdin())
		if err != nil {
			return err
		}

		result := editor.Validate(store.Snapshot())
		if result.Valid {
			fmt.Fprintln(cmd.OutOrStdout(), "Form is valid")
			return nil
		}
		printErrors(cmd.OutOrStdout(), result.Errors)
		return errors.New("form has errors")
	},
}

var projectSaveSectionCmd = &cobra.Command{
	Use:   "save-section <id|token> <section>",
	Short: "Save one section of a form file to an existing project",
	Long: fmt.Sprintf(`Save one section of a form file to an existing project. Incomplete rows
are left out and reported.

Sections: %s`, strings.Join(sectionNames(), ", ")),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := codec.Resolve(args[0])
		if err != nil {
			return err
		}
		store, err := loadForm(cmd.InOrStdin())
		if err != nil {
			return err
		}

		e := editor.NewEditor(store, api, id, logger)
		result := e.SaveSection(cmd.Context(), editor.Section(args[1]))
		printDropped(cmd.ErrOrStderr(), result.Dropped)
		return printNotice(cmd.OutOrStdout(), result.Notice)
	},
}

var projectSubmitCmd = &cobra.Command{
	Use:   "submit [id|token]",
	Short: "Create a project from a form file, or replace an existing one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id uint64
		if len(args) == 1 {
			resolved, err := codec.Resolve(args[0])
			if err != nil {
				return err
			}
			id = resolved
		}
		store, err := loadForm(cmd.InOrStdin())
		if err != nil {
			return err
		}

		e := editor.NewEditor(store, api, id, logger)
		result := e.Submit(cmd.Context())
		printErrors(cmd.OutOrStdout(), result.Errors)
		printDropped(cmd.ErrOrStderr(), result.Dropped)
		if err := printNotice(cmd.OutOrStdout(), result.Notice); err != nil {
			return err
		}
		if result.Created && result.Project != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Edit token: %s\n", codec.Encode(result.Project.ID))
		}
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id|token>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := codec.Resolve(args[0])
		if err != nil {
			return err
		}
		if err := api.DeleteProject(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %d\n", id)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{projectValidateCmd, projectSaveSectionCmd, projectSubmitCmd} {
		c.Flags().StringVarP(&formFile, "file", "f", "-", "Form file in YAML, - for stdin")
	}

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectValidateCmd)
	projectCmd.AddCommand(projectSaveSectionCmd)
	projectCmd.AddCommand(projectSubmitCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func sectionNames() []string {
	names := make([]string, len(editor.Sections))
	for i, s := range editor.Sections {
		names[i] = string(s)
	}
	return names
}

// loadForm reads the form file into a new store. Keys missing from the file keep their
// empty values.
func loadForm(stdin io.Reader) (*editor.Store, error) {
	var (
		raw []byte
		err error
	)
	if formFile == "" || formFile == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(formFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read form: %w", err)
	}

	partial, err := yamlToJSON(raw)
	if err != nil {
		return nil, err
	}

	store := editor.NewStore()
	if err := store.LoadFormData(partial); err != nil {
		return nil, err
	}
	return store, nil
}

// yamlToJSON converts a YAML mapping into the JSON object LoadFormData expects
func yamlToJSON(raw []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert form: %w", err)
	}
	return out, nil
}

func writeForm(w io.Writer, data editor.ProjectFormData) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to write form: %w", err)
	}
	return enc.Close()
}

func printNotice(w io.Writer, notice editor.Notice) error {
	if notice.Message == "" {
		return nil
	}
	if !notice.OK() {
		return errors.New(notice.Message)
	}
	fmt.Fprintln(w, notice.Message)
	return nil
}

func printErrors(w io.Writer, errs map[string]string) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, errs[k])
	}
}

func printDropped(w io.Writer, dropped editor.Dropped) {
	keys := make([]string, 0, len(dropped))
	for k := range dropped {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "skipped incomplete %s rows: %v\n", k, dropped[k])
	}
}
