package main

import (
	"github.com/spf13/cobra"

	"github.com/ignatzorin/proposal-backend/internal/dto"
)

func (c *cli) templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Comandos da biblioteca de templates",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista os templates por categoria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listing, err := c.app.Templates.List()
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), listing)
		},
	}

	report := &cobra.Command{
		Use:   "report <arquivo>",
		Short: "Mostra uso, conteúdo e análises de um template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.app.Templates.Report(args[0])
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), dto.NewReportPage(r))
		},
	}

	remove := &cobra.Command{
		Use:   "delete <categoria> <arquivo>",
		Short: "Remove um template (categorias: human_adm, human, ai)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Templates.Delete(args[0], args[1]); err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), dto.MessageResponse{Message: "Template '" + args[1] + "' deletado."})
		},
	}

	analysis := &cobra.Command{
		Use:   "analyze <arquivo> <texto>",
		Short: "Adiciona uma nota de análise ao template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Templates.AppendAnalysis(args[0], args[1]); err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), dto.MessageResponse{Message: "Análise adicionada."})
		},
	}

	cmd.AddCommand(list, report, remove, analysis)
	return cmd
}
