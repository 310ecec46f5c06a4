package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpupo63/bsd-portfolio/client"
	"github.com/rpupo63/bsd-portfolio/options"
)

var (
	skillCategory string
	skillLevel    string
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Project categories, merged from the server and local additions",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Refresh from the server and print every known category",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openCache()
		if err != nil {
			return err
		}
		defer repo.Close()

		categories, err := options.NewCategories(repo, api, logger)
		if err != nil {
			return err
		}
		if err := categories.Refresh(cmd.Context()); err != nil {
			logger.Warn().Err(err).Msg("Showing cached categories")
		}
		printLines(cmd, categories.List())
		return nil
	},
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category locally and on the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openCache()
		if err != nil {
			return err
		}
		defer repo.Close()

		categories, err := options.NewCategories(repo, api, logger)
		if err != nil {
			return err
		}
		return categories.Add(cmd.Context(), args[0])
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Project types, as the server defines them",
}

var typesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch and print project types with their project counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openCache()
		if err != nil {
			return err
		}
		defer repo.Close()

		types, err := options.NewTypes(repo, api, logger)
		if err != nil {
			return err
		}
		if err := types.Refresh(cmd.Context()); err != nil {
			logger.Warn().Err(err).Msg("Showing cached project types")
		}
		printTypes(cmd, types.List())
		return nil
	},
}

var typesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project type on the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openCache()
		if err != nil {
			return err
		}
		defer repo.Close()

		types, err := options.NewTypes(repo, api, logger)
		if err != nil {
			return err
		}
		if err := types.Create(cmd.Context(), args[0]); err != nil {
			return err
		}
		printTypes(cmd, types.List())
		return nil
	},
}

var imageTypesCmd = &cobra.Command{
	Use:   "image-types",
	Short: "Image types, kept only in the local cache",
}

var imageTypesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print image types",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openCache()
		if err != nil {
			return err
		}
		defer repo.Close()

		imageTypes, err := options.NewImageTypes(repo)
		if err != nil {
			return err
		}
		printLines(cmd, imageTypes.List())
		return nil
	},
}

var imageTypesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an image type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openCache()
		if err != nil {
			return err
		}
		defer repo.Close()

		imageTypes, err := options.NewImageTypes(repo)
		if err != nil {
			return err
		}
		return imageTypes.Add(args[0])
	},
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Skills that projects can reference",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		skills, err := api.GetSkills(cmd.Context())
		if err != nil {
			return err
		}
		for _, s := range skills {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", s.ID, s.Name, s.Category)
		}
		return nil
	},
}

var skillsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("skill name is required")
		}
		skill, err := api.CreateSkill(cmd.Context(), client.NewSkill{
			Name:             name,
			Category:         skillCategory,
			ProficiencyLevel: skillLevel,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", skill.ID, skill.Name)
		return nil
	},
}

func init() {
	skillsAddCmd.Flags().StringVar(&skillCategory, "category", "", "Skill category")
	skillsAddCmd.Flags().StringVar(&skillLevel, "level", "", "Proficiency level")

	categoriesCmd.AddCommand(categoriesListCmd, categoriesAddCmd)
	typesCmd.AddCommand(typesListCmd, typesAddCmd)
	imageTypesCmd.AddCommand(imageTypesListCmd, imageTypesAddCmd)
	skillsCmd.AddCommand(skillsListCmd, skillsAddCmd)
}

func printLines(cmd *cobra.Command, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}

func printTypes(cmd *cobra.Command, types []client.TypeOption) {
	for _, t := range types {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", t.Name, t.Count)
	}
}
