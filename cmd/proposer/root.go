package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ignatzorin/proposal-backend/internal/app"
	"github.com/ignatzorin/proposal-backend/internal/config"
	"github.com/ignatzorin/proposal-backend/internal/logger"
)

// cli общее состояние команд: флаги корня и собранное приложение.
type cli struct {
	outputFormat string
	verbose      bool
	app          *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "proposer",
		Short: "Gerador de propostas comerciais a partir da biblioteca de templates",
		Long: `proposer trabalha direto com os diretórios de templates e o registro de uso,
sem precisar do servidor HTTP.

Exemplos:
  proposer seed                      # cria os templates do administrador
  proposer templates list            # lista os templates por categoria
  proposer generate --nome Ana ...   # gera uma proposta híbrida`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	root.PersistentFlags().StringVarP(&c.outputFormat, "output", "o", "yaml", "formato de saída: yaml ou json")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "logs detalhados no stderr")

	root.AddCommand(c.generateCmd(), c.seedCmd(), c.templatesCmd())
	return root
}

// setup читает конфигурацию и собирает приложение перед любой командой.
func (c *cli) setup() error {
	if c.outputFormat != "yaml" && c.outputFormat != "json" {
		return fmt.Errorf("formato de saída desconhecido: %s", c.outputFormat)
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}
	logger.Init(level)
	logger.SetTextFormatter()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c.app, err = app.New(cfg)
	return err
}

// print выводит значение в выбранном формате.
func (c *cli) print(w io.Writer, v interface{}) error {
	if c.outputFormat == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
