package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) seedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Cria os templates do administrador",
		Long: `Grava os templates embutidos com nomes 00_..09_ no diretório human.
Sem --force nada é feito se já existirem templates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Seeds.Seed(force)
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "sobrescreve os templates embutidos")
	return cmd
}
